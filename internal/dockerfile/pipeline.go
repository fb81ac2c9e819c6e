package dockerfile

import "strings"

const buildArgsBlock = `# Build arguments for optimization
ARG BUILDKIT_INLINE_CACHE=1
ARG DOCKER_BUILDKIT=1
`

// Result is the outcome of a full rewrite.
type Result struct {
	// Doc is the rewritten document.
	Doc Document
	// IgnoreGlobs is the build-context exclusion list. It is a fixed set;
	// callers decide whether and where to persist it.
	IgnoreGlobs []string
	// Packages is the sorted union of every package name merged into the
	// canonical install instruction. Callers that want a package manifest
	// file persist this themselves; the pipeline has no side effects.
	Packages []string
}

// Rewrite runs the rewrite passes in fixed order: package-install merge,
// copy grouping, build-argument prepend. Each pass consumes the previous
// pass's output document; there are no retries, and the first failure
// aborts with no partial output.
//
// Rewrite is idempotent: running it on its own output returns a
// byte-identical document.
func Rewrite(doc Document) (Result, error) {
	if _, ok := doc.firstInstruction("FROM"); !ok {
		return Result{}, ErrMalformedDocument
	}

	doc, packages, err := rewriteInstalls(doc)
	if err != nil {
		return Result{}, err
	}
	doc = rewriteCopies(doc)
	doc = prependBuildArgs(doc)

	return Result{
		Doc:         doc,
		IgnoreGlobs: DefaultIgnoreGlobs(),
		Packages:    packages,
	}, nil
}

// rewriteInstalls merges every package-install span into one canonical
// instruction anchored after the base image. Spans whose extraction came
// up empty are still removed; they contribute nothing to the merge.
func rewriteInstalls(doc Document) (Document, []string, error) {
	spans := Scan(doc, FamilyInstall)
	if len(spans) == 0 {
		return doc, nil, nil
	}

	payloads := make([]Payload, len(spans))
	for i, s := range spans {
		payloads[i] = Extract(s, FamilyInstall)
	}

	instr, packages, ok := MergeInstall(payloads)
	doc = removeSpans(doc, spans)
	if !ok {
		return doc, nil, nil
	}

	doc, err := insertAfterBaseImage(doc, instr)
	if err != nil {
		return Document{}, nil, err
	}
	return doc, packages, nil
}

// rewriteCopies regroups two-argument COPY spans by destination, anchored
// before the first CMD/ENTRYPOINT.
func rewriteCopies(doc Document) Document {
	spans := Scan(doc, FamilyCopy)
	if len(spans) == 0 {
		return doc
	}

	payloads := make([]Payload, len(spans))
	for i, s := range spans {
		payloads[i] = Extract(s, FamilyCopy)
	}

	instrs := MergeCopy(payloads)
	doc = removeSpans(doc, spans)
	if len(instrs) == 0 {
		return doc
	}
	return insertBeforeEntrypoint(doc, strings.Join(instrs, "\n"))
}

// prependBuildArgs inserts the fixed cache-related ARG declarations at
// the top of the document. A document that already carries them is left
// unchanged so the pipeline reaches its fixed point in one pass.
func prependBuildArgs(doc Document) Document {
	if strings.Contains(doc.text, "ARG BUILDKIT_INLINE_CACHE=1") {
		return doc
	}
	return Document{text: buildArgsBlock + doc.text}
}
