package dockerfile

import "strings"

// removeSpans deletes the given spans from the document by recorded byte
// offset and collapses any resulting run of blank lines down to at most
// one. Removal is positional on purpose: two spans with identical text
// are removed independently, which content-based search-and-replace
// cannot guarantee. Spans must be in document order and non-overlapping,
// which is what Scan produces.
func removeSpans(d Document, spans []Span) Document {
	if len(spans) == 0 {
		return d
	}
	var b strings.Builder
	prev := 0
	for _, s := range spans {
		b.WriteString(d.text[prev:s.Start])
		prev = s.End
	}
	b.WriteString(d.text[prev:])
	return Document{text: collapseBlankRuns(b.String())}
}

func collapseBlankRuns(text string) string {
	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return text
}

// insertAfterBaseImage inserts block on its own line(s) immediately after
// the first FROM line.
func insertAfterBaseImage(d Document, block string) (Document, error) {
	ln, ok := d.firstInstruction("FROM")
	if !ok {
		return Document{}, ErrMalformedDocument
	}
	head := d.text[:ln.end]
	if !strings.HasSuffix(head, "\n") {
		head += "\n"
	}
	return Document{text: head + block + "\n" + d.text[ln.end:]}, nil
}

// insertBeforeEntrypoint inserts block immediately before the first CMD
// or ENTRYPOINT line, or at document end when neither exists.
func insertBeforeEntrypoint(d Document, block string) Document {
	if ln, ok := d.firstInstruction("CMD", "ENTRYPOINT"); ok {
		return Document{text: d.text[:ln.start] + block + "\n" + d.text[ln.start:]}
	}
	text := d.text
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return Document{text: text + block + "\n"}
}
