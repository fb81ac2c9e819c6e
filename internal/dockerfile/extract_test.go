package dockerfile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func installSpan(text string) Span {
	return Span{Start: 0, End: len(text), Text: text}
}

func TestExtract_InstallPrimaryLine(t *testing.T) {
	p := Extract(installSpan("RUN apt-get update && apt-get install -y python3 nginx\n"), FamilyInstall)
	if diff := cmp.Diff([]string{"python3", "nginx"}, p.Packages); diff != "" {
		t.Errorf("packages mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_ContinuationLines(t *testing.T) {
	// Package tokens on continuation lines count too; only the install
	// flags and shell plumbing are dropped.
	span := installSpan("RUN apt-get update && \\\n" +
		"    apt-get install -y --no-install-recommends \\\n" +
		"    curl \\\n" +
		"    git \\\n" +
		"    && apt-get clean\n")

	p := Extract(span, FamilyInstall)
	if diff := cmp.Diff([]string{"curl", "git"}, p.Packages); diff != "" {
		t.Errorf("packages mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_MultipleInstallDirectives(t *testing.T) {
	p := Extract(installSpan("RUN apt-get update && apt-get install -y curl && apt-get install -y git\n"), FamilyInstall)
	if diff := cmp.Diff([]string{"curl", "git"}, p.Packages); diff != "" {
		t.Errorf("packages mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_VersionPinsKept(t *testing.T) {
	p := Extract(installSpan("RUN pip install flask==2.0.1 requests>=2.28\n"), FamilyInstall)
	if diff := cmp.Diff([]string{"flask==2.0.1", "requests>=2.28"}, p.Packages); diff != "" {
		t.Errorf("packages mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_MissingInstallDirective(t *testing.T) {
	// Best-effort contract: no install sub-pattern means an empty
	// payload, not an error.
	p := Extract(installSpan("RUN apt-get update\n"), FamilyInstall)
	if len(p.Packages) != 0 {
		t.Fatalf("expected empty payload, got %v", p.Packages)
	}
}

func TestExtract_CopyPair(t *testing.T) {
	p := Extract(Span{Text: "COPY app.py /app/\n"}, FamilyCopy)
	if p.Src != "app.py" || p.Dst != "/app/" {
		t.Fatalf("unexpected pair: %q -> %q", p.Src, p.Dst)
	}
}

func TestExtract_CopyMalformed(t *testing.T) {
	p := Extract(Span{Text: "COPY justone\n"}, FamilyCopy)
	if p.Src != "" || p.Dst != "" {
		t.Fatalf("expected empty payload, got %q -> %q", p.Src, p.Dst)
	}
}
