package printer

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/bethropolis/tag-filter/internal/config"
	"github.com/bethropolis/tag-filter/internal/filter"
	"github.com/bethropolis/tag-filter/internal/matcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func singleResult() *filter.Result {
	return &filter.Result{
		Mode: filter.ModeAggregate,
		All:  []string{"alice", "red dress"},
		Decisions: []filter.Decision{
			{Tag: "alice", Kept: true, Reason: filter.ReasonKeptExact},
			{Tag: "red dress", Kept: true, Reason: filter.ReasonKeptSubstring},
			{Tag: "nsfw", Reason: filter.ReasonExcluded, Match: matcher.Result{Excluded: true, ExcludedBy: "nsfw"}},
		},
	}
}

func multiResult() *filter.Result {
	return &filter.Result{
		Mode: filter.ModeMulti,
		All:  []string{"alice", "random"},
		Categories: []filter.CategoryOutput{
			{Name: "character", Enabled: true, Tags: []string{"alice"}},
			{Name: "clothing", Enabled: false, Tags: []string{"dress"}},
		},
		Other: []string{"random"},
	}
}

func newTestPrinter(format string) (*Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithColors(false).WithFormat(format)
	return p, &buf
}

func TestPrintResult_Text(t *testing.T) {
	p, buf := newTestPrinter(config.FormatText)
	require.NoError(t, p.PrintResult(singleResult()))
	assert.Equal(t, "alice, red dress\n", buf.String())
	assert.EqualValues(t, 1, p.GetCount())
}

func TestPrintResult_TextDropped(t *testing.T) {
	p, buf := newTestPrinter(config.FormatText)
	p.WithDropped(true)
	require.NoError(t, p.PrintResult(singleResult()))
	assert.Contains(t, buf.String(), "dropped: nsfw [Dropped (Exclude Phrase): nsfw]")
}

func TestPrintResult_TextMulti(t *testing.T) {
	p, buf := newTestPrinter(config.FormatText)
	require.NoError(t, p.PrintResult(multiResult()))

	out := buf.String()
	assert.Contains(t, out, "all:         alice, random\n")
	assert.Contains(t, out, "character:   alice\n")
	assert.Contains(t, out, "clothing (off): dress\n")
	assert.Contains(t, out, "other:       random\n")
}

func TestPrintResult_JSON(t *testing.T) {
	p, buf := newTestPrinter(config.FormatJSON)
	p.WithDropped(true)
	require.NoError(t, p.PrintResult(singleResult()))

	var entry Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "single", entry.Mode)
	assert.Equal(t, []Output{{Name: "all", Text: "alice, red dress"}}, entry.Outputs)
	require.Len(t, entry.Dropped, 1)
	assert.Equal(t, "nsfw", entry.Dropped[0].Tag)
}

func TestPrintFile_JSONArray(t *testing.T) {
	p, buf := newTestPrinter(config.FormatJSON)
	require.NoError(t, p.PrintFile("a.txt", singleResult()))
	require.NoError(t, p.PrintFile("b.txt", multiResult()))
	require.NoError(t, p.Finalize())

	var entries []Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "a.txt", entries[0].Path)
	assert.Equal(t, "b.txt", entries[1].Path)
	assert.Len(t, entries[1].Outputs, 4)
}

func TestPrintFile_YAMLStream(t *testing.T) {
	p, buf := newTestPrinter(config.FormatYAML)
	require.NoError(t, p.PrintFile("a.txt", singleResult()))
	require.NoError(t, p.PrintFile("b.txt", multiResult()))
	require.NoError(t, p.Finalize())

	dec := yaml.NewDecoder(bytes.NewReader(buf.Bytes()))
	var paths []string
	for {
		var entry Entry
		if err := dec.Decode(&entry); err != nil {
			break
		}
		paths = append(paths, entry.Path)
	}
	assert.Equal(t, []string{"a.txt", "b.txt"}, paths)
}

func TestPrintFile_Markdown(t *testing.T) {
	p, buf := newTestPrinter(config.FormatMarkdown)
	p.WithDropped(true)
	require.NoError(t, p.PrintFile("img|1.txt", singleResult()))

	out := buf.String()
	assert.Contains(t, out, "file: img|1.txt\n\n```\nalice, red dress\n```\n")
	assert.Contains(t, out, "| nsfw | Dropped (Exclude Phrase): nsfw |")
}

func TestPrintFile_Text(t *testing.T) {
	p, buf := newTestPrinter(config.FormatText)
	require.NoError(t, p.PrintFile("a.txt", singleResult()))
	require.NoError(t, p.Finalize())
	assert.Equal(t, "a.txt\nalice, red dress\n\n", buf.String())
}
