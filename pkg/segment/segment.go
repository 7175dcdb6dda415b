// Package segment splits raw text into alternating prose and code-fence
// segments so that rewriting operations can be applied to prose while
// leaving fenced code byte-identical.
package segment

import "strings"

// Kind identifies what a segment contains.
type Kind int

const (
	Prose Kind = iota
	Fence
)

// Segment is one contiguous run of prose or fenced code.
type Segment struct {
	Kind Kind
	Text string
}

// Split divides text into an ordered sequence of prose and fence segments.
// A fence opens and closes on lines whose trimmed form starts with three
// backticks. An unterminated opening fence produces a single trailing fence
// segment rather than being dropped.
func Split(text string) []Segment {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	var segs []Segment
	var buf []string
	inFence := false

	flush := func(kind Kind) {
		if len(buf) == 0 {
			return
		}
		segs = append(segs, Segment{Kind: kind, Text: strings.Join(buf, "\n")})
		buf = nil
	}

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if inFence {
				buf = append(buf, line)
				flush(Fence)
				inFence = false
				continue
			}
			flush(Prose)
			inFence = true
			buf = append(buf, line)
			continue
		}
		buf = append(buf, line)
	}

	if inFence {
		flush(Fence)
	} else {
		flush(Prose)
	}
	return segs
}

// Join re-concatenates segments. Fence content is emitted verbatim; a single
// newline is inserted at a boundary when the previous segment does not end
// with one, so prose never glues onto a fence marker.
func Join(segs []Segment) string {
	var b strings.Builder
	for i, s := range segs {
		if i > 0 && b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") && s.Text != "" {
			b.WriteString("\n")
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

// MapProse applies fn to every prose segment and rejoins the result. Fence
// segments pass through untouched. Empty prose results are kept empty so
// fences do not collapse together.
func MapProse(text string, fn func(string) string) string {
	segs := Split(text)
	if len(segs) == 0 {
		return fn(text)
	}
	out := make([]Segment, 0, len(segs))
	for _, s := range segs {
		if s.Kind == Prose {
			s.Text = fn(s.Text)
		}
		out = append(out, s)
	}
	return Join(out)
}

// Fences returns the fence segments of text in order. Used by callers that
// need to assert fence preservation.
func Fences(text string) []string {
	var out []string
	for _, s := range Split(text) {
		if s.Kind == Fence {
			out = append(out, s.Text)
		}
	}
	return out
}

// StripFences returns only the prose portion of text, with fence segments
// removed, joined by newlines.
func StripFences(text string) string {
	var parts []string
	for _, s := range Split(text) {
		if s.Kind == Prose {
			parts = append(parts, s.Text)
		}
	}
	return strings.Join(parts, "\n")
}
