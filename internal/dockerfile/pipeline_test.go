package dockerfile

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const exampleDockerfile = `FROM ubuntu:latest
RUN apt-get update && apt-get install -y python3
RUN apt-get update && apt-get install -y nginx
RUN pip3 install flask
RUN pip3 install requests
COPY app.py /app/
RUN chmod +x /app/app.py
EXPOSE 8080
CMD ["/app/app.py"]
`

func TestRewrite_EndToEnd(t *testing.T) {
	res, err := Rewrite(NewDocument(exampleDockerfile))
	if err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	out := res.Doc.String()

	want := `# Build arguments for optimization
ARG BUILDKIT_INLINE_CACHE=1
ARG DOCKER_BUILDKIT=1
FROM ubuntu:latest
RUN apt-get update && \
    DEBIAN_FRONTEND=noninteractive \
    apt-get install -y --no-install-recommends \
        flask \
        nginx \
        python3 \
        requests \
    && apt-get clean \
    && rm -rf /var/lib/apt/lists/*
RUN chmod +x /app/app.py
EXPOSE 8080
COPY app.py /app/
CMD ["/app/app.py"]
`
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("rewritten document mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"flask", "nginx", "python3", "requests"}, res.Packages); diff != "" {
		t.Errorf("package manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestRewrite_Idempotent(t *testing.T) {
	first, err := Rewrite(NewDocument(exampleDockerfile))
	if err != nil {
		t.Fatalf("first rewrite failed: %v", err)
	}
	second, err := Rewrite(first.Doc)
	if err != nil {
		t.Fatalf("second rewrite failed: %v", err)
	}
	if diff := cmp.Diff(first.Doc.String(), second.Doc.String()); diff != "" {
		t.Errorf("rewrite must reach its fixed point in one pass (-first +second):\n%s", diff)
	}
}

func TestRewrite_Deterministic(t *testing.T) {
	a := "FROM x\nRUN apt-get update && apt-get install -y curl\nRUN pip install flask\nCMD [\"x\"]\n"
	b := "FROM x\nRUN pip install flask\nRUN apt-get update && apt-get install -y curl\nCMD [\"x\"]\n"

	ra, err := Rewrite(NewDocument(a))
	if err != nil {
		t.Fatalf("rewrite a failed: %v", err)
	}
	rb, err := Rewrite(NewDocument(b))
	if err != nil {
		t.Fatalf("rewrite b failed: %v", err)
	}
	if ra.Doc.String() != rb.Doc.String() {
		t.Fatalf("install order must not change output:\n%q\nvs\n%q", ra.Doc.String(), rb.Doc.String())
	}
}

func TestRewrite_Conservation(t *testing.T) {
	res, err := Rewrite(NewDocument(exampleDockerfile))
	if err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	out := res.Doc.String()
	for _, pkg := range []string{"python3", "nginx", "flask", "requests"} {
		if !strings.Contains(out, pkg) {
			t.Errorf("package %s lost in rewrite", pkg)
		}
	}
	if !strings.Contains(out, "COPY app.py /app/") {
		t.Error("copy pair lost in rewrite")
	}
}

func TestRewrite_MalformedDocument(t *testing.T) {
	res, err := Rewrite(NewDocument("RUN apt-get update && apt-get install -y python3\n"))
	if !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}
	if res.Doc.String() != "" || res.IgnoreGlobs != nil || res.Packages != nil {
		t.Fatal("failed rewrite must produce no partial output")
	}
}

func TestRewrite_NoMatchedFamilies(t *testing.T) {
	// Nothing recognized: only the build-arg prepend happens.
	in := "FROM scratch\nLABEL maintainer=ops\n"
	res, err := Rewrite(NewDocument(in))
	if err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	want := buildArgsBlock + in
	if res.Doc.String() != want {
		t.Fatalf("document mismatch:\ngot  %q\nwant %q", res.Doc.String(), want)
	}
	if res.Packages != nil {
		t.Fatalf("expected no package manifest, got %v", res.Packages)
	}
}

func TestRewrite_EmptyExtractionStillRemovesSpan(t *testing.T) {
	// A span whose payload cannot be parsed is removed but contributes
	// nothing; with no packages at all, no canonical instruction appears.
	in := "FROM x\nRUN apt-get update\nCMD [\"x\"]\n"
	res, err := Rewrite(NewDocument(in))
	if err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	if strings.Contains(res.Doc.String(), "apt-get") {
		t.Fatalf("span should be removed with nothing inserted: %q", res.Doc.String())
	}
}

func TestRewrite_GroupingCorrectness(t *testing.T) {
	in := strings.Join([]string{
		"FROM x",
		"COPY A /x",
		"COPY B /x",
		"COPY C /y",
		"CMD [\"x\"]",
		"",
	}, "\n")

	res, err := Rewrite(NewDocument(in))
	if err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	out := res.Doc.String()
	if !strings.Contains(out, "COPY A B /x/\n") {
		t.Errorf("missing grouped instruction for /x: %q", out)
	}
	if !strings.Contains(out, "COPY C /y\n") {
		t.Errorf("missing direct instruction for /y: %q", out)
	}
	if strings.Count(out, "COPY") != 2 {
		t.Errorf("expected exactly 2 COPY instructions: %q", out)
	}
}

func TestDefaultIgnoreGlobs_Stable(t *testing.T) {
	a := DefaultIgnoreGlobs()
	b := DefaultIgnoreGlobs()
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("ignore list must be identical across invocations:\n%s", diff)
	}
	for _, want := range []string{".git", "__pycache__", ".venv", "node_modules"} {
		found := false
		for _, glob := range a {
			if glob == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("ignore list missing %s", want)
		}
	}

	// Content of the document never changes the list.
	r1, err := Rewrite(NewDocument("FROM x\n"))
	if err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	r2, err := Rewrite(NewDocument(exampleDockerfile))
	if err != nil {
		t.Fatalf("rewrite failed: %v", err)
	}
	if diff := cmp.Diff(r1.IgnoreGlobs, r2.IgnoreGlobs); diff != "" {
		t.Errorf("ignore list must not depend on document content:\n%s", diff)
	}
}
