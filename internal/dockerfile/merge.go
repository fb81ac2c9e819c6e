package dockerfile

import (
	"sort"
	"strings"
)

// MergeInstall unions the package payloads of all install spans and emits
// the single canonical install instruction plus the sorted package list.
// Output is deterministic: equal package sets produce byte-identical text
// regardless of the order the packages were encountered in. ok is false
// when no span yielded any package; no canonical instruction is emitted
// in that case.
func MergeInstall(payloads []Payload) (instr string, packages []string, ok bool) {
	set := make(map[string]struct{})
	for _, p := range payloads {
		for _, pkg := range p.Packages {
			set[pkg] = struct{}{}
		}
	}
	if len(set) == 0 {
		return "", nil, false
	}

	packages = make([]string, 0, len(set))
	for pkg := range set {
		packages = append(packages, pkg)
	}
	sort.Strings(packages)

	var b strings.Builder
	b.WriteString("RUN apt-get update && \\\n")
	b.WriteString("    DEBIAN_FRONTEND=noninteractive \\\n")
	b.WriteString("    apt-get install -y --no-install-recommends \\\n")
	for _, pkg := range packages {
		b.WriteString("        " + pkg + " \\\n")
	}
	b.WriteString("    && apt-get clean \\\n")
	b.WriteString("    && rm -rf /var/lib/apt/lists/*")
	return b.String(), packages, true
}

// MergeCopy groups copy payloads by destination and emits one instruction
// per group. Groups appear in the order their destination was first
// encountered in the document, preserving the original placement
// intuition for a reviewer; they are not sorted. A destination with a
// single source keeps the direct two-argument form; multiple sources are
// listed before the destination, which is treated as a directory target.
func MergeCopy(payloads []Payload) []string {
	var order []string
	groups := make(map[string][]string)
	for _, p := range payloads {
		if p.Dst == "" {
			continue
		}
		if _, seen := groups[p.Dst]; !seen {
			order = append(order, p.Dst)
		}
		groups[p.Dst] = append(groups[p.Dst], p.Src)
	}

	out := make([]string, 0, len(order))
	for _, dst := range order {
		srcs := groups[dst]
		if len(srcs) == 1 {
			out = append(out, "COPY "+srcs[0]+" "+dst)
			continue
		}
		target := dst
		if !strings.HasSuffix(target, "/") {
			target += "/"
		}
		out = append(out, "COPY "+strings.Join(srcs, " ")+" "+target)
	}
	return out
}
