// printer.go: user-facing value rendering.
//
// Two renderings exist on purpose. Render is what `print` writes: strings
// appear raw, everything else in its literal form. FormatValue is what a
// REPL echoes: strings keep their quotes so `"5"` and `5` stay
// distinguishable.
package cortado

import (
	"fmt"
	"strconv"
	"strings"
)

// Render formats v the way the print builtin writes it. Strings render raw,
// without quotes.
func Render(v Value) string {
	if v.Tag == VTStr {
		return v.Data.(string)
	}
	return FormatValue(v)
}

// FormatValue formats v in its source-literal form: strings quoted, floats
// always carrying a decimal point, methods as <method name/arity>.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNil:
		return "nil"
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTFloat:
		return formatFloat(v.Data.(float64))
	case VTStr:
		return strconv.Quote(v.Data.(string))
	case VTMethod:
		m := v.Data.(*Method)
		return fmt.Sprintf("<method %s/%d>", m.Name, len(m.Params))
	default:
		return "<unknown>"
	}
}

// formatFloat keeps float output recognizable as a Float: integral values
// get an explicit ".0" so 2.0 never prints as 2.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !strings.ContainsAny(s, "nN") { // NaN, Inf
		s += ".0"
	}
	return s
}
