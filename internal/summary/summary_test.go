package summary

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/bethropolis/tag-filter/internal/filter"
	"github.com/bethropolis/tag-filter/internal/phrases"
	"github.com/bethropolis/tag-filter/internal/utils"
	"github.com/bethropolis/tag-filter/internal/walker"
	"github.com/stretchr/testify/assert"
)

func TestStatsAndDisplayResults(t *testing.T) {
	var stats Stats
	stats.Files = 2
	stats.Add(&filter.Result{
		Tags: []string{"a", "b", "c"},
		Decisions: []filter.Decision{
			{Tag: "a", Kept: true},
			{Tag: "b", Reason: filter.ReasonUnmatched},
			{Tag: "c", Reason: filter.ReasonUnmatched},
		},
	})

	log := &utils.RecordingLogger{}
	DisplayResults(log, stats, 1500*time.Millisecond, false)

	lines := log.Lines()
	assert.Equal(t, "INFO Filtered 2 files: 3 tags, 1 kept, 2 dropped.", lines[0])
	assert.Equal(t, "INFO   Dropped (Unmatched, Other Off): 2", lines[1])

	quiet := &utils.RecordingLogger{}
	DisplayResults(quiet, stats, time.Second, true)
	assert.Empty(t, quiet.Lines())
}

func TestDisplayLoadStatus(t *testing.T) {
	var buf bytes.Buffer
	DisplayLoadStatus([]phrases.LoadResult{
		{Path: "config/character.txt", Status: phrases.StatusLoaded, Phrases: phrases.NewSet("alice")},
		{Path: "config/exclude.txt", Status: phrases.StatusFailed, Err: errors.New("boom")},
	}, &buf)
	assert.Equal(t, "loaded   config/character.txt (1 phrases)\nfailed   config/exclude.txt (boom)\n", buf.String())
}

func TestDisplaySkippedItems(t *testing.T) {
	var buf bytes.Buffer
	log := &utils.RecordingLogger{}
	DisplaySkippedItems(log, []walker.SkippedItem{
		{Path: "b.png", Reason: walker.ReasonFilteredPattern},
		{Path: ".hidden", Reason: walker.ReasonIgnoredRule, Detail: "hidden", IsDir: true},
	}, &buf, false)

	assert.Equal(t,
		"Skipped DIR : .hidden [Ignored (Ignore Rule): hidden]\nSkipped FILE: b.png [Filtered (Not A Caption File)]\n",
		buf.String())
	assert.Equal(t, "INFO --- Skipped Items (2) ---", log.Lines()[0])
}
