// Package printer handles output formatting and display
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/bethropolis/tag-filter/internal/config"
	"github.com/bethropolis/tag-filter/internal/filter"
	"github.com/bethropolis/tag-filter/internal/request"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Printer renders filter results to the configured output destination
type Printer struct {
	output      io.Writer
	count       atomic.Int64
	useColors   bool
	format      string
	showDropped bool
	jsonStarted bool
	yamlEnc     *yaml.Encoder

	header *color.Color
	label  *color.Color
	muted  *color.Color
}

// New creates a new Printer writing plain text to stdout
func New() *Printer {
	p := &Printer{
		output: os.Stdout,
		format: config.FormatText,
		header: color.New(color.FgCyan, color.Bold),
		label:  color.New(color.FgGreen),
		muted:  color.New(color.FgHiBlack),
	}
	return p.WithColors(true)
}

// WithOutput sets the output destination
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithColors enables or disables colored output
func (p *Printer) WithColors(enabled bool) *Printer {
	p.useColors = enabled
	for _, c := range []*color.Color{p.header, p.label, p.muted} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// WithFormat selects text, markdown, json or yaml output. Structured
// formats are never colored.
func (p *Printer) WithFormat(format string) *Printer {
	p.format = format
	if format == config.FormatJSON || format == config.FormatYAML {
		p.WithColors(false)
	}
	return p
}

// WithDropped includes the dropped tags and their reasons in the output
func (p *Printer) WithDropped(enabled bool) *Printer {
	p.showDropped = enabled
	return p
}

// Output is one named output string
type Output struct {
	Name string `json:"name" yaml:"name"`
	Text string `json:"text" yaml:"text"`
}

// Entry is the structured form of one result
type Entry struct {
	Path    string               `json:"path,omitempty" yaml:"path,omitempty"`
	Mode    string               `json:"mode" yaml:"mode"`
	Outputs []Output             `json:"outputs" yaml:"outputs"`
	Dropped []filter.DroppedItem `json:"dropped,omitempty" yaml:"dropped,omitempty"`
}

// NewEntry converts res into an Entry. Outputs follow the host response order.
func NewEntry(path string, res *filter.Result, withDropped bool) Entry {
	resp := request.NewResponse(res)
	entry := Entry{Path: path, Mode: resp.Mode}
	for i, name := range resp.Names {
		entry.Outputs = append(entry.Outputs, Output{Name: name, Text: resp.Outputs[i]})
	}
	if withDropped {
		entry.Dropped = res.Dropped()
	}
	return entry
}

// PrintResult outputs a single result read from text input
func (p *Printer) PrintResult(res *filter.Result) error {
	p.count.Add(1)
	entry := NewEntry("", res, p.showDropped)

	switch p.format {
	case config.FormatJSON:
		data, err := json.MarshalIndent(entry, "", "  ")
		if err != nil {
			return fmt.Errorf("printer: marshaling JSON: %w", err)
		}
		_, err = fmt.Fprintf(p.output, "%s\n", data)
		return err
	case config.FormatYAML:
		return p.encodeYAML(entry)
	case config.FormatMarkdown:
		return p.writeMarkdown(entry, res)
	default:
		return p.writeText(entry, res)
	}
}

// PrintFile outputs the result of one caption file. JSON output is collected
// into an array and YAML output into a document stream, both closed by Finalize.
func (p *Printer) PrintFile(relativePath string, res *filter.Result) error {
	p.count.Add(1)
	entry := NewEntry(relativePath, res, p.showDropped)

	switch p.format {
	case config.FormatJSON:
		if !p.jsonStarted {
			fmt.Fprint(p.output, "[\n")
			p.jsonStarted = true
		} else {
			fmt.Fprint(p.output, ",\n")
		}
		data, err := json.MarshalIndent(entry, "  ", "  ")
		if err != nil {
			return fmt.Errorf("printer: marshaling JSON: %w", err)
		}
		_, err = fmt.Fprintf(p.output, "  %s", data)
		return err
	case config.FormatYAML:
		return p.encodeYAML(entry)
	case config.FormatMarkdown:
		fmt.Fprintf(p.output, "file: %s\n\n", relativePath)
		return p.writeMarkdown(entry, res)
	default:
		fmt.Fprintln(p.output, p.header.Sprint(relativePath))
		if err := p.writeText(entry, res); err != nil {
			return err
		}
		_, err := fmt.Fprintln(p.output)
		return err
	}
}

// Finalize completes any pending operations (like closing JSON array)
func (p *Printer) Finalize() error {
	if p.format == config.FormatJSON && p.jsonStarted {
		fmt.Fprint(p.output, "\n]\n")
		p.jsonStarted = false
	}
	if p.yamlEnc != nil {
		err := p.yamlEnc.Close()
		p.yamlEnc = nil
		return err
	}
	return nil
}

// GetCount returns the number of results printed
func (p *Printer) GetCount() int64 {
	return p.count.Load()
}

func (p *Printer) encodeYAML(entry Entry) error {
	if p.yamlEnc == nil {
		p.yamlEnc = yaml.NewEncoder(p.output)
		p.yamlEnc.SetIndent(2)
	}
	if err := p.yamlEnc.Encode(entry); err != nil {
		return fmt.Errorf("printer: encoding YAML: %w", err)
	}
	return nil
}

// writeText prints the aggregate line alone in single mode and one labelled
// line per output in multi mode.
func (p *Printer) writeText(entry Entry, res *filter.Result) error {
	if res.Mode != filter.ModeMulti {
		fmt.Fprintln(p.output, res.AllText())
	} else {
		for _, out := range entry.Outputs {
			name := out.Name
			if c, ok := res.Category(name); ok && !c.Enabled {
				name += " (off)"
			}
			fmt.Fprintf(p.output, "%s %s\n", p.label.Sprintf("%-12s", name+":"), out.Text)
		}
	}

	for _, d := range entry.Dropped {
		fmt.Fprintln(p.output, p.muted.Sprintf("dropped: %s [%s]", d.Tag, describe(d)))
	}
	return nil
}

func (p *Printer) writeMarkdown(entry Entry, res *filter.Result) error {
	if res.Mode != filter.ModeMulti {
		fmt.Fprintf(p.output, "```\n%s\n```\n\n", res.AllText())
	} else {
		for _, out := range entry.Outputs {
			fmt.Fprintf(p.output, "- **%s**: %s\n", out.Name, out.Text)
		}
		fmt.Fprintln(p.output)
	}

	if len(entry.Dropped) > 0 {
		fmt.Fprintln(p.output, "| tag | reason |")
		fmt.Fprintln(p.output, "| --- | --- |")
		for _, d := range entry.Dropped {
			fmt.Fprintf(p.output, "| %s | %s |\n", escapeCell(d.Tag), escapeCell(describe(d)))
		}
		fmt.Fprintln(p.output)
	}
	return nil
}

func describe(d filter.DroppedItem) string {
	if d.Detail == "" {
		return string(d.Reason)
	}
	return fmt.Sprintf("%s: %s", d.Reason, d.Detail)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
