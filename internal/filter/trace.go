package filter

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// tracer writes debug decision lines for a single run. A nil writer or a
// disabled tracer discards everything.
type tracer struct {
	out     io.Writer
	enabled bool
}

func (t tracer) printf(format string, args ...interface{}) {
	if !t.enabled || t.out == nil {
		return
	}
	fmt.Fprintf(t.out, "[%s] %s\n", color.MagentaString("TRACE"), fmt.Sprintf(format, args...))
}
