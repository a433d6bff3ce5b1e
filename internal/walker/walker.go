package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/bethropolis/tag-filter/internal/ignore"
	"github.com/bethropolis/tag-filter/internal/utils"
)

// Walk visits root in lexical order and calls walkFn for every selected file.
// A nil matcher skips nothing. An error returned by walkFn, or the context
// ending, stops the walk and is returned.
func Walk(root string, matcher *ignore.Matcher, walkFn WalkFunc, opts ...Option) ([]SkippedItem, error) {
	o := Options{Logger: utils.NoopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("walker: resolving root '%s': %w", root, err)
	}
	o.Logger.Debug("walker: scanning %s", absRoot)

	var skipped skipList
	err = filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, walkErr error) error {
		if o.Context != nil {
			if err := o.Context.Err(); err != nil {
				return err
			}
		}

		if p == absRoot {
			return walkErr
		}
		isDir := d != nil && d.IsDir()
		rel, err := filepath.Rel(absRoot, p)
		if err != nil {
			return fmt.Errorf("walker: relative path for '%s': %w", p, err)
		}

		if walkErr != nil {
			reason := ReasonSkippedWalkError
			if os.IsPermission(walkErr) {
				reason = ReasonSkippedPermError
			}
			o.Logger.Warn("walker: %q: %v", rel, walkErr)
			skipped.add(rel, reason, walkErr.Error(), isDir)
			if isDir {
				return filepath.SkipDir
			}
			return nil
		}

		if rule := matcher.Check(rel, isDir); rule != ignore.RuleNone {
			skipped.add(rel, ReasonIgnoredRule, string(rule), isDir)
			if isDir {
				return filepath.SkipDir
			}
			return nil
		}
		if isDir {
			return nil
		}

		if o.Pattern != nil && !o.Pattern.Match(path.Base(filepath.ToSlash(rel))) {
			skipped.add(rel, ReasonFilteredPattern, "", false)
			return nil
		}
		return visitFile(p, rel, o, walkFn, &skipped)
	})
	return skipped, err
}

// visitFile reads one selected file and hands it to walkFn
func visitFile(p, rel string, o Options, walkFn WalkFunc, skipped *skipList) error {
	info, err := os.Lstat(p)
	if err != nil {
		skipped.add(rel, ReasonSkippedReadError, err.Error(), false)
		return walkFn(rel, nil, fmt.Errorf("walker: stat: %w", err))
	}
	if !info.Mode().IsRegular() {
		o.Logger.Debug("walker: %q is not a regular file", rel)
		skipped.add(rel, ReasonSkippedIrregular, info.Mode().Type().String(), false)
		return nil
	}
	if o.MaxFileSize > 0 && info.Size() > o.MaxFileSize {
		skipped.add(rel, ReasonSkippedSizeLimit, fmt.Sprintf("%d > %d bytes", info.Size(), o.MaxFileSize), false)
		return nil
	}

	content, err := os.ReadFile(p)
	if err != nil {
		skipped.add(rel, ReasonSkippedReadError, err.Error(), false)
		return walkFn(rel, nil, fmt.Errorf("walker: read: %w", err))
	}
	o.Logger.Debug("walker: %q read %d bytes", rel, len(content))
	return walkFn(rel, content, nil)
}
