// Package pattern compiles naming patterns into renderable path segments.
//
// A pattern is a literal string containing zero or more placeholders of the
// form {name} or {name:spec}, where spec is a zero-pad width for integer
// tokens (e.g. {version:03} renders 1 as "001"). This is deliberately a tiny
// subset of a general format language: name lookup plus optional padding is
// all path construction needs.
package pattern

import (
	"fmt"
	"strconv"
	"strings"
)

type partKind uint8

const (
	literalPart partKind = iota
	fieldPart
)

// part is one compiled segment of a pattern: either literal text or a
// placeholder with an optional zero-pad width.
type part struct {
	text  string // literal text, or field name for fieldPart
	width int    // zero-pad width, 0 = plain substitution
	kind  partKind
}

// Pattern is a compiled naming pattern. The zero value renders as the
// empty string. Compile once, render many times.
type Pattern struct {
	raw    string
	parts  []part
	fields []string // placeholder names, encounter order, deduplicated
}

// MissingTokenError reports placeholders that have no value in the
// supplied token map. The message enumerates every missing name so a
// caller can fix them all in one pass.
type MissingTokenError struct {
	Pattern string
	Fields  []string
}

func (e *MissingTokenError) Error() string {
	quoted := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		quoted[i] = strconv.Quote(f)
	}
	return fmt.Sprintf("tokens %s are missing for pattern %q", strings.Join(quoted, ", "), e.Pattern)
}

// Compile parses raw into a Pattern. Placeholder names are one or more
// letters or underscores; anything else inside braces is an error, as is
// an unterminated or empty placeholder.
func Compile(raw string) (Pattern, error) {
	p := Pattern{raw: raw}
	seen := make(map[string]bool)
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			p.parts = append(p.parts, part{text: lit.String(), kind: literalPart})
			lit.Reset()
		}
	}

	for i := 0; i < len(raw); {
		c := raw[i]
		if c != '{' {
			if c == '}' {
				return Pattern{}, fmt.Errorf("pattern %q: unmatched '}' at offset %d", raw, i)
			}
			lit.WriteByte(c)
			i++
			continue
		}

		end := strings.IndexByte(raw[i:], '}')
		if end < 0 {
			return Pattern{}, fmt.Errorf("pattern %q: unterminated placeholder at offset %d", raw, i)
		}
		body := raw[i+1 : i+end]
		i += end + 1

		name, spec, hasSpec := strings.Cut(body, ":")
		if !validName(name) {
			return Pattern{}, fmt.Errorf("pattern %q: invalid placeholder name %q", raw, name)
		}
		width := 0
		if hasSpec {
			w, err := parseSpec(spec)
			if err != nil {
				return Pattern{}, fmt.Errorf("pattern %q: placeholder %q: %w", raw, name, err)
			}
			width = w
		}

		flush()
		p.parts = append(p.parts, part{text: name, width: width, kind: fieldPart})
		if !seen[name] {
			seen[name] = true
			p.fields = append(p.fields, name)
		}
	}
	flush()
	return p, nil
}

// MustCompile is Compile for patterns known valid at build time.
func MustCompile(raw string) Pattern {
	p, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the original pattern text.
func (p Pattern) String() string { return p.raw }

// Fields returns the placeholder names in encounter order, each listed
// once even if it occurs multiple times in the pattern.
func (p Pattern) Fields() []string { return p.fields }

// Render substitutes tokens into the pattern. Every placeholder must have
// a value; otherwise a *MissingTokenError naming all absent fields is
// returned. Extra token keys are ignored, and a field occurring more than
// once substitutes the same value at each occurrence.
func (p Pattern) Render(tokens map[string]any) (string, error) {
	var missing []string
	for _, f := range p.fields {
		if _, ok := tokens[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return "", &MissingTokenError{Pattern: p.raw, Fields: missing}
	}

	var b strings.Builder
	b.Grow(len(p.raw))
	for _, pt := range p.parts {
		if pt.kind == literalPart {
			b.WriteString(pt.text)
			continue
		}
		s, err := formatValue(tokens[pt.text], pt.width)
		if err != nil {
			return "", fmt.Errorf("pattern %q: token %q: %w", p.raw, pt.text, err)
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_') {
			return false
		}
	}
	return true
}

// parseSpec accepts the padding subset: an optional '0' fill flag followed
// by a decimal width, e.g. "03" or "4".
func parseSpec(spec string) (int, error) {
	s := strings.TrimPrefix(spec, "0")
	if s == "" || spec == "" {
		return 0, fmt.Errorf("unsupported format spec %q", spec)
	}
	w, err := strconv.Atoi(s)
	if err != nil || w <= 0 {
		return 0, fmt.Errorf("unsupported format spec %q", spec)
	}
	return w, nil
}

func formatValue(v any, width int) (string, error) {
	if width > 0 {
		n, ok := asInt64(v)
		if !ok {
			return "", fmt.Errorf("cannot zero-pad non-integer value %v (%T)", v, v)
		}
		return fmt.Sprintf("%0*d", width, n), nil
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		if n, ok := asInt64(v); ok {
			return strconv.FormatInt(n, 10), nil
		}
		return fmt.Sprintf("%v", v), nil
	}
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float64:
		// YAML and JSON decoders may hand integers back as floats.
		if n == float64(int64(n)) {
			return int64(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}
