// Package dockerfile implements the deterministic Dockerfile rewrite
// pipeline: package-install merging, COPY grouping, build-argument
// prepending, and .dockerignore derivation.
//
// The package only understands a small recognized subset of the Dockerfile
// grammar. Anything it does not recognize is left untouched, and nothing
// in here performs I/O or calls an external service.
package dockerfile

import (
	"errors"
	"strings"
)

// ErrMalformedDocument reports a document without a base-image (FROM)
// declaration. The pipeline needs FROM as an insertion anchor and refuses
// to guess one.
var ErrMalformedDocument = errors.New("malformed dockerfile: no FROM instruction")

// Document is an immutable snapshot of Dockerfile text. Rewrite passes
// never mutate a Document in place; each pass returns a new value.
type Document struct {
	text string
}

// NewDocument wraps raw Dockerfile text.
func NewDocument(text string) Document {
	return Document{text: text}
}

func (d Document) String() string {
	return d.text
}

// line is one physical line with its byte offsets in the document.
// end includes the trailing newline when one is present.
type line struct {
	start int
	end   int
	text  string // without trailing newline
}

func (d Document) lineSpans() []line {
	var out []line
	for off := 0; off < len(d.text); {
		idx := strings.IndexByte(d.text[off:], '\n')
		if idx < 0 {
			out = append(out, line{start: off, end: len(d.text), text: d.text[off:]})
			break
		}
		out = append(out, line{start: off, end: off + idx + 1, text: d.text[off : off+idx]})
		off += idx + 1
	}
	return out
}

// firstInstruction returns the first non-continuation line whose
// instruction keyword matches one of the given keywords.
func (d Document) firstInstruction(keywords ...string) (line, bool) {
	continued := false
	for _, ln := range d.lineSpans() {
		wasContinued := continued
		continued = continuesLine(ln.text)
		if wasContinued {
			continue
		}
		kw := instructionKeyword(ln.text)
		for _, want := range keywords {
			if kw == want {
				return ln, true
			}
		}
	}
	return line{}, false
}

// instructionKeyword returns the uppercased first token of a line, or ""
// for blank lines.
func instructionKeyword(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}

// continuesLine reports whether a line ends with the backslash
// line-continuation marker.
func continuesLine(s string) bool {
	return strings.HasSuffix(strings.TrimRight(s, " \t"), "\\")
}

// afterKeyword strips a leading instruction keyword (case-insensitive)
// and returns the rest of the line.
func afterKeyword(s, keyword string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	i := strings.IndexAny(trimmed, " \t")
	if i < 0 {
		return "", false
	}
	if !strings.EqualFold(trimmed[:i], keyword) {
		return "", false
	}
	return strings.TrimLeft(trimmed[i:], " \t"), true
}
