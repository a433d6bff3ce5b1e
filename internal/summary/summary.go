// Package summary handles display of run results and statistics
package summary

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/bethropolis/tag-filter/internal/filter"
	"github.com/bethropolis/tag-filter/internal/phrases"
	"github.com/bethropolis/tag-filter/internal/walker"
)

// Logger defines the minimal logging interface required
type Logger interface {
	Info(format string, args ...interface{})
}

// Stats accumulates counts over one or more filter runs
type Stats struct {
	Files   int64
	Tags    int
	Kept    int
	Dropped map[filter.Reason]int
}

// Add records the counts of res
func (s *Stats) Add(res *filter.Result) {
	if s.Dropped == nil {
		s.Dropped = make(map[filter.Reason]int)
	}
	s.Tags += len(res.Tags)
	s.Kept += res.Kept()
	for _, d := range res.Dropped() {
		s.Dropped[d.Reason]++
	}
}

// DisplayResults shows the end results of a batch run
func DisplayResults(logger Logger, stats Stats, duration time.Duration, quiet bool) {
	if quiet {
		return
	}
	logger.Info("Filtered %d files: %d tags, %d kept, %d dropped.",
		stats.Files, stats.Tags, stats.Kept, stats.Tags-stats.Kept)

	reasons := make([]string, 0, len(stats.Dropped))
	for reason := range stats.Dropped {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		logger.Info("  %s: %d", reason, stats.Dropped[filter.Reason(reason)])
	}
	logger.Info("Batch complete in %v.", duration.Round(time.Millisecond))
}

// DisplayLoadStatus prints the state of each phrase file
func DisplayLoadStatus(results []phrases.LoadResult, output io.Writer) {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(output, "%-8s %s (%v)\n", r.Status, r.Path, r.Err)
			continue
		}
		fmt.Fprintf(output, "%-8s %s (%d phrases)\n", r.Status, r.Path, r.Phrases.Len())
	}
}

// DisplaySkippedItems formats and prints information about skipped items
func DisplaySkippedItems(
	logger Logger,
	skippedItems []walker.SkippedItem,
	output io.Writer,
	quiet bool,
) {
	infoLog := func(format string, args ...interface{}) {
		if !quiet {
			logger.Info(format, args...)
		}
	}

	infoLog("--- Skipped Items (%d) ---", len(skippedItems))
	if len(skippedItems) > 0 {
		sort.Slice(skippedItems, func(i, j int) bool {
			return skippedItems[i].Path < skippedItems[j].Path
		})
		for _, item := range skippedItems {
			typeStr := "FILE"
			if item.IsDir {
				typeStr = "DIR "
			}
			reason := string(item.Reason)
			if item.Detail != "" {
				reason += ": " + item.Detail
			}
			fmt.Fprintf(output, "Skipped %s: %-.*s [%s]\n",
				typeStr,
				50, // max path width
				item.Path,
				reason,
			)
		}
	} else {
		infoLog("No items were skipped.")
	}
	infoLog("--- End Skipped Items ---")
}
