package dockerfile

import "strings"

// Payload is the family-specific data extracted from one span.
type Payload struct {
	// Packages holds package names in span order (FamilyInstall).
	Packages []string
	// Src and Dst hold the copy pair (FamilyCopy).
	Src, Dst string
}

// Extract pulls the semantic payload out of a span. Extraction is
// best-effort: a span without the expected sub-pattern yields an empty
// payload, never an error. The merge step still removes such spans; they
// just contribute nothing to the canonical instruction.
func Extract(s Span, f Family) Payload {
	switch f {
	case FamilyInstall:
		return Payload{Packages: extractPackages(s.Text)}
	case FamilyCopy:
		src, dst, ok := parseCopyArgs(strings.TrimRight(s.Text, "\n"))
		if !ok {
			return Payload{}
		}
		return Payload{Src: src, Dst: dst}
	}
	return Payload{}
}

// extractPackages walks every token of the span and collects the bare
// package names following each "install" directive. Tokens are gathered
// across continuation lines, not just the first command line. Flags and
// anything after a shell operator are excluded; version pins such as
// flask==2.0 are kept verbatim.
func extractPackages(text string) []string {
	var pkgs []string
	collecting := false
	for _, tok := range strings.Fields(text) {
		switch {
		case tok == "\\":
			// Continuation marker, not a package.
		case isShellOperator(tok):
			collecting = false
		case tok == "install":
			collecting = true
		case !collecting:
		case strings.HasPrefix(tok, "-"):
			// Flag such as -y or --no-install-recommends.
		default:
			pkgs = append(pkgs, tok)
		}
	}
	return pkgs
}

func isShellOperator(tok string) bool {
	switch tok {
	case "&&", "||", ";", "|":
		return true
	}
	return false
}
