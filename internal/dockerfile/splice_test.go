package dockerfile

import (
	"errors"
	"strings"
	"testing"
)

func TestRemoveSpans_ByOffset(t *testing.T) {
	// Two spans with identical text must both be removed exactly once
	// each; positional removal makes that safe.
	text := "FROM x\nRUN pip install flask\nEXPOSE 80\nRUN pip install flask\nCMD [\"x\"]\n"
	doc := NewDocument(text)

	spans := Scan(doc, FamilyInstall)
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}

	got := removeSpans(doc, spans).String()
	want := "FROM x\nEXPOSE 80\nCMD [\"x\"]\n"
	if got != want {
		t.Fatalf("removal mismatch:\ngot  %q\nwant %q", got, want)
	}
}

func TestRemoveSpans_CollapsesBlankRuns(t *testing.T) {
	text := "FROM x\n\nRUN pip install a\n\nRUN pip install b\n\nCMD [\"x\"]\n"
	doc := NewDocument(text)

	got := removeSpans(doc, Scan(doc, FamilyInstall)).String()
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("blank runs must collapse to at most one blank line: %q", got)
	}
}

func TestInsertAfterBaseImage(t *testing.T) {
	doc := NewDocument("FROM ubuntu:latest\nCMD [\"x\"]\n")
	out, err := insertAfterBaseImage(doc, "RUN echo hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "FROM ubuntu:latest\nRUN echo hi\nCMD [\"x\"]\n"
	if out.String() != want {
		t.Fatalf("insertion mismatch:\ngot  %q\nwant %q", out.String(), want)
	}
}

func TestInsertAfterBaseImage_NoFrom(t *testing.T) {
	_, err := insertAfterBaseImage(NewDocument("RUN echo hi\n"), "RUN echo bye")
	if !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}
}

func TestInsertAfterBaseImage_MissingTrailingNewline(t *testing.T) {
	out, err := insertAfterBaseImage(NewDocument("FROM ubuntu:latest"), "RUN echo hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "FROM ubuntu:latest\nRUN echo hi\n" {
		t.Fatalf("unexpected document: %q", out.String())
	}
}

func TestInsertBeforeEntrypoint_CMD(t *testing.T) {
	doc := NewDocument("FROM x\nEXPOSE 80\nCMD [\"x\"]\n")
	out := insertBeforeEntrypoint(doc, "COPY a /b")
	want := "FROM x\nEXPOSE 80\nCOPY a /b\nCMD [\"x\"]\n"
	if out.String() != want {
		t.Fatalf("insertion mismatch:\ngot  %q\nwant %q", out.String(), want)
	}
}

func TestInsertBeforeEntrypoint_Entrypoint(t *testing.T) {
	doc := NewDocument("FROM x\nENTRYPOINT [\"/bin/app\"]\n")
	out := insertBeforeEntrypoint(doc, "COPY a /b")
	if !strings.HasSuffix(out.String(), "COPY a /b\nENTRYPOINT [\"/bin/app\"]\n") {
		t.Fatalf("unexpected document: %q", out.String())
	}
}

func TestInsertBeforeEntrypoint_DocumentEnd(t *testing.T) {
	doc := NewDocument("FROM x\nEXPOSE 80\n")
	out := insertBeforeEntrypoint(doc, "COPY a /b")
	want := "FROM x\nEXPOSE 80\nCOPY a /b\n"
	if out.String() != want {
		t.Fatalf("insertion mismatch:\ngot  %q\nwant %q", out.String(), want)
	}
}
