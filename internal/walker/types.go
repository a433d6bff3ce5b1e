// Package walker finds caption files under a directory and hands their
// content to a callback, one file at a time.
package walker

// WalkFunc receives each selected caption file. err is set when the file was
// selected but could not be read; content is nil in that case.
type WalkFunc func(relativePath string, content []byte, err error) error

// SkippedReason clarifies why a file or directory was not processed
type SkippedReason string

const (
	ReasonIgnoredRule      SkippedReason = "Ignored (Ignore Rule)"
	ReasonFilteredPattern  SkippedReason = "Filtered (Not A Caption File)"
	ReasonSkippedSizeLimit SkippedReason = "Skipped (Too Large)"
	ReasonSkippedIrregular SkippedReason = "Skipped (Not A Regular File)"
	ReasonSkippedPermError SkippedReason = "Skipped (Permission Denied)"
	ReasonSkippedWalkError SkippedReason = "Skipped (Walk Error)"
	ReasonSkippedReadError SkippedReason = "Skipped (Read Error)"
)

// SkippedItem is one path the walk passed over
type SkippedItem struct {
	Path   string        `json:"path" yaml:"path"`
	Reason SkippedReason `json:"reason" yaml:"reason"`
	// Detail names the ignore rule or the error, when there is one
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
	IsDir  bool   `json:"is_dir" yaml:"is_dir"`
}

type skipList []SkippedItem

func (s *skipList) add(path string, reason SkippedReason, detail string, isDir bool) {
	*s = append(*s, SkippedItem{Path: path, Reason: reason, Detail: detail, IsDir: isDir})
}
