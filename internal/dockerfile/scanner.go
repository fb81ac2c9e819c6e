package dockerfile

import "strings"

// Family identifies a class of recognized instruction patterns.
type Family int

const (
	// FamilyInstall covers package-manager install commands: RUN lines
	// that start an apt-get update chain or a pip/pip3 install, together
	// with their continuation lines.
	FamilyInstall Family = iota
	// FamilyCopy covers single-line two-argument COPY instructions.
	FamilyCopy
)

// Span is a contiguous byte region matched as one instruction occurrence.
// Offsets index into the Document the span was scanned from; End includes
// the trailing newline when one is present. Spans are created by Scan and
// consumed by the splicer within the same pass.
type Span struct {
	Start int
	End   int
	Text  string
}

// Scan returns the spans of the given family in document order. Scanning
// is pure: candidate lines that do not match the family's recognized
// shape yield no span and are left untouched.
func Scan(d Document, f Family) []Span {
	switch f {
	case FamilyInstall:
		return scanInstall(d)
	case FamilyCopy:
		return scanCopy(d)
	}
	return nil
}

func scanInstall(d Document) []Span {
	lines := d.lineSpans()
	var spans []Span
	for i := 0; i < len(lines); i++ {
		if !isInstallStart(lines[i].text) {
			continue
		}
		// Extend through continuation lines.
		j := i
		for j < len(lines)-1 && continuesLine(lines[j].text) {
			j++
		}
		spans = append(spans, Span{
			Start: lines[i].start,
			End:   lines[j].end,
			Text:  d.text[lines[i].start:lines[j].end],
		})
		i = j
	}
	return spans
}

// isInstallStart reports whether a line begins a package-install span.
// Bare "RUN apt-get install" without a preceding update is deliberately
// not recognized; such lines stay untouched.
func isInstallStart(s string) bool {
	rest, ok := afterKeyword(s, "RUN")
	if !ok {
		return false
	}
	return strings.HasPrefix(rest, "apt-get update") ||
		strings.HasPrefix(rest, "pip install") ||
		strings.HasPrefix(rest, "pip3 install")
}

func scanCopy(d Document) []Span {
	var spans []Span
	continued := false
	for _, ln := range d.lineSpans() {
		wasContinued := continued
		continued = continuesLine(ln.text)
		if wasContinued || continued {
			// Copy spans are single non-continued lines only.
			continue
		}
		if _, _, ok := parseCopyArgs(ln.text); !ok {
			continue
		}
		spans = append(spans, Span{Start: ln.start, End: ln.end, Text: d.text[ln.start:ln.end]})
	}
	return spans
}

// parseCopyArgs matches the two-argument COPY form. Flagged or
// multi-source forms (COPY --from=..., COPY a b c /dst) are not
// recognized and stay where they are.
func parseCopyArgs(s string) (src, dst string, ok bool) {
	rest, found := afterKeyword(s, "COPY")
	if !found {
		return "", "", false
	}
	fields := strings.Fields(rest)
	if len(fields) != 2 || strings.HasPrefix(fields[0], "--") {
		return "", "", false
	}
	return fields[0], fields[1], true
}
