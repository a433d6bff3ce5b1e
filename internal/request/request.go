// Package request converts host invocations into engine calls and back.
//
// A host sends a flat object: text_input, one <category>_toggle per
// category, exclude_toggle, an optional other_toggle, debug_mode and an
// optional output_mode. Toggles arrive as booleans, 0/1 integers or
// boolean strings and are normalised here.
package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/bethropolis/tag-filter/internal/category"
	"github.com/bethropolis/tag-filter/internal/filter"
)

// Field names understood in a request
const (
	FieldText    = "text_input"
	FieldExclude = "exclude_toggle"
	FieldOther   = "other_toggle"
	FieldDebug   = "debug_mode"
	FieldMode    = "output_mode"
)

// ToggleField returns the request field name for a category toggle
func ToggleField(name string) string { return name + "_toggle" }

// Invocation is a normalised request
type Invocation struct {
	Text    string
	Toggles filter.Toggles
	Options filter.Options
}

// Decode reads one JSON request object from r
func Decode(r io.Reader, categories []string) (Invocation, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return Invocation{}, fmt.Errorf("request: decoding JSON: %w", err)
	}
	return Parse(fields, categories)
}

// Parse normalises raw request fields. Missing toggles default to enabled,
// a missing other_toggle keeps unmatched tags and debug_mode defaults to off.
func Parse(fields map[string]interface{}, categories []string) (Invocation, error) {
	inv := Invocation{Toggles: filter.AllEnabled()}

	if raw, ok := fields[FieldText]; ok && raw != nil {
		text, isString := raw.(string)
		if !isString {
			return Invocation{}, NewInvalidInputError(FieldText, raw, "expected a string")
		}
		inv.Text = text
	}

	for _, name := range categories {
		enabled, err := boolField(fields, ToggleField(name), true)
		if err != nil {
			return Invocation{}, err
		}
		inv.Toggles = inv.Toggles.Set(name, enabled)
	}

	var err error
	if inv.Toggles.Exclude, err = boolField(fields, FieldExclude, true); err != nil {
		return Invocation{}, err
	}
	if inv.Toggles.Other, err = boolField(fields, FieldOther, true); err != nil {
		return Invocation{}, err
	}
	if inv.Options.Debug, err = boolField(fields, FieldDebug, false); err != nil {
		return Invocation{}, err
	}

	if raw, ok := fields[FieldMode]; ok && raw != nil {
		s, isString := raw.(string)
		if !isString {
			return Invocation{}, NewInvalidInputError(FieldMode, raw, "expected a string")
		}
		mode, err := filter.ParseMode(s)
		if err != nil {
			return Invocation{}, NewInvalidInputError(FieldMode, raw, `expected "single" or "multi"`)
		}
		inv.Options.Mode = mode
	}

	return inv, nil
}

func boolField(fields map[string]interface{}, field string, def bool) (bool, error) {
	raw, ok := fields[field]
	if !ok || raw == nil {
		return def, nil
	}
	b, err := ToBool(raw)
	if err != nil {
		return false, NewInvalidInputError(field, raw, err.Error())
	}
	return b, nil
}

// ToBool normalises a toggle value. Booleans pass through; integers and
// integral floats must be 0 or 1; strings must be a boolean word or 0/1.
// Anything else is rejected rather than coerced by truthiness.
func ToBool(v interface{}) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case int:
		return intToBool(int64(x))
	case int8:
		return intToBool(int64(x))
	case int16:
		return intToBool(int64(x))
	case int32:
		return intToBool(int64(x))
	case int64:
		return intToBool(x)
	case uint:
		return intToBool(int64(x))
	case uint8:
		return intToBool(int64(x))
	case uint16:
		return intToBool(int64(x))
	case uint32:
		return intToBool(int64(x))
	case uint64:
		if x > 1 {
			return false, fmt.Errorf("expected 0 or 1, got %d", x)
		}
		return x == 1, nil
	case float32:
		return floatToBool(float64(x))
	case float64:
		return floatToBool(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return false, fmt.Errorf("not a number: %q", x.String())
		}
		return floatToBool(f)
	case string:
		return stringToBool(x)
	default:
		return false, fmt.Errorf("unsupported type %T", v)
	}
}

func intToBool(n int64) (bool, error) {
	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("expected 0 or 1, got %d", n)
	}
}

func floatToBool(f float64) (bool, error) {
	if math.Trunc(f) != f {
		return false, fmt.Errorf("expected 0 or 1, got %v", f)
	}
	if f != 0 && f != 1 {
		return false, fmt.Errorf("expected 0 or 1, got %v", f)
	}
	return f == 1, nil
}

func stringToBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("expected a boolean, got %q", s)
	}
	return b, nil
}

// Response is the host-facing result: a tuple of output strings with their names.
// Single mode returns just the aggregate; multi mode returns
// all, one entry per category in registry order, then other.
type Response struct {
	Mode    string   `json:"mode"`
	Names   []string `json:"names"`
	Outputs []string `json:"outputs"`
}

// NewResponse builds the response tuple for res
func NewResponse(res *filter.Result) Response {
	resp := Response{Mode: res.Mode.String()}
	resp.Names = append(resp.Names, category.All)
	resp.Outputs = append(resp.Outputs, res.AllText())
	if res.Mode != filter.ModeMulti {
		return resp
	}
	for _, c := range res.Categories {
		resp.Names = append(resp.Names, c.Name)
		resp.Outputs = append(resp.Outputs, c.Text())
	}
	resp.Names = append(resp.Names, category.Other)
	resp.Outputs = append(resp.Outputs, res.OtherText())
	return resp
}

// Encode writes resp as a JSON object followed by a newline, without HTML escaping
func (resp Response) Encode(w io.Writer) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("request: encoding response: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
