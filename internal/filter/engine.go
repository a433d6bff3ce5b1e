package filter

import (
	"io"
	"os"
	"strings"

	"github.com/bethropolis/tag-filter/internal/matcher"
	"github.com/bethropolis/tag-filter/internal/phrases"
	"github.com/bethropolis/tag-filter/internal/utils"
)

// Source supplies the phrase sets a run classifies against
type Source interface {
	// All returns every category's phrase set in output order
	All() []matcher.Category
	// ExcludeSet returns the exclude phrases
	ExcludeSet() phrases.Set
}

// Options are per-run settings
type Options struct {
	Mode Mode
	// Debug writes a trace line for every decision to the engine's trace writer
	Debug bool
}

// Engine runs the classification pipeline over a phrase Source
type Engine struct {
	src    Source
	logger utils.Logger
	trace  io.Writer
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used for run summaries
func WithLogger(logger utils.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTraceOutput sets where debug traces are written (stderr by default)
func WithTraceOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.trace = w
	}
}

// New creates an Engine
func New(src Source, opts ...Option) *Engine {
	e := &Engine{
		src:    src,
		logger: utils.NoopLogger{},
		trace:  os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run classifies text under toggles. It never fails: unreadable phrase files
// count as empty and empty text yields empty outputs.
func (e *Engine) Run(text string, toggles Toggles, opts Options) *Result {
	tr := tracer{out: e.trace, enabled: opts.Debug}
	tr.printf("=== filter start (%s) ===", opts.Mode)

	// Every category is resolved regardless of its toggle: a match on a
	// disabled category is what drops a tag.
	categories := e.src.All()
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	tr.printf("toggles: %s", toggles.Describe(names))

	exclude := phrases.Set{}
	if toggles.Exclude {
		exclude = e.src.ExcludeSet()
	}

	res := &Result{
		Mode:    opts.Mode,
		Toggles: toggles,
		Tags:    SplitTags(text),
	}
	tr.printf("tags: %s", Join(res.Tags))

	var outputs map[string][]string
	if opts.Mode == ModeMulti {
		outputs = make(map[string][]string, len(categories))
	}

	for _, tag := range res.Tags {
		m := matcher.Classify(tag, exclude, categories)
		d := decide(m, toggles)
		traceDecision(tr, d)

		if d.Kept {
			switch {
			case opts.Mode == ModeAggregate:
				res.All = append(res.All, tag)
			case m.HasMatch():
				d.Routes = m.Matched()
				for _, name := range d.Routes {
					outputs[name] = append(outputs[name], tag)
				}
			default:
				d.Routes = []string{"other"}
				res.Other = append(res.Other, tag)
			}
		}
		res.Decisions = append(res.Decisions, d)
	}

	if opts.Mode == ModeMulti {
		var all []string
		for _, name := range names {
			out := CategoryOutput{Name: name, Enabled: toggles.Enabled(name), Tags: Dedupe(outputs[name])}
			res.Categories = append(res.Categories, out)
			if out.Enabled {
				all = append(all, out.Tags...)
			}
		}
		res.Other = Dedupe(res.Other)
		if toggles.Other {
			all = append(all, res.Other...)
		}
		res.All = Dedupe(all)

		for _, c := range res.Categories {
			tr.printf("  %s: %s", c.Name, c.Text())
		}
		tr.printf("  other: %s", res.OtherText())
	}

	tr.printf("  all: %s", res.AllText())
	tr.printf("=== filter done ===")
	e.logger.Debug("filtered %d tags: kept %d, dropped %d", len(res.Tags), res.Kept(), len(res.Tags)-res.Kept())
	return res
}

// decide applies the override policy to one match result: any match on a
// disabled category drops the tag, even when enabled categories match too.
// The exact/substring split only informs the reason.
func decide(m matcher.Result, toggles Toggles) Decision {
	d := Decision{Tag: m.Tag, Match: m}

	if m.Excluded {
		d.Reason = ReasonExcluded
		return d
	}

	for _, name := range m.Matched() {
		if !toggles.Enabled(name) {
			d.Disabled = append(d.Disabled, name)
		}
	}
	switch {
	case len(d.Disabled) > 0:
		d.Reason = ReasonDisabledCategory
	case len(m.Exact) > 0:
		d.Kept, d.Reason = true, ReasonKeptExact
	case len(m.Substring) > 0:
		d.Kept, d.Reason = true, ReasonKeptSubstring
	case toggles.Other:
		d.Kept, d.Reason = true, ReasonKeptOther
	default:
		d.Reason = ReasonUnmatched
	}
	return d
}

func traceDecision(tr tracer, d Decision) {
	m := d.Match
	if !m.Excluded {
		for _, name := range m.Exact {
			tr.printf("tag '%s' exact match on category '%s' (phrase '%s')", d.Tag, name, m.Evidence[name])
		}
		for _, name := range m.Substring {
			tr.printf("tag '%s' substring match on category '%s' (phrase '%s')", d.Tag, name, m.Evidence[name])
		}
	}

	switch d.Reason {
	case ReasonExcluded:
		tr.printf("tag '%s' excluded by phrase '%s'", d.Tag, m.ExcludedBy)
	case ReasonDisabledCategory:
		tr.printf("tag '%s' dropped: matches disabled categories (%s)", d.Tag, strings.Join(d.Disabled, ", "))
	case ReasonKeptExact:
		tr.printf("tag '%s' kept: exact match on enabled categories (%s)", d.Tag, strings.Join(m.Exact, ", "))
	case ReasonKeptSubstring:
		tr.printf("tag '%s' kept: substring match on enabled categories (%s)", d.Tag, strings.Join(m.Substring, ", "))
	case ReasonKeptOther:
		tr.printf("tag '%s' kept: no category matched, other on", d.Tag)
	case ReasonUnmatched:
		tr.printf("tag '%s' dropped: no category matched, other off", d.Tag)
	}
}
