// Package textutil holds pure text transforms applied to model output
// before it reaches clients.
package textutil

import (
	"regexp"
	"strings"
)

// Model output frequently emits mermaid node labels without quotes
// (A[Start here] instead of A["Start here"]), which breaks rendering as
// soon as a label contains a parenthesis or comma. QuoteDiagramLabels
// rewrites unquoted labels inside mermaid code fences and leaves all
// other text untouched. It is deliberately the single implementation
// shared by every call site.

var (
	fencePattern = regexp.MustCompile("(?s)```mermaid\n(.*?)```")

	// node id immediately followed by a bracketed/braced/parenthesized
	// label that is not already quoted
	squareLabel = regexp.MustCompile(`([A-Za-z][A-Za-z0-9_]*)\[([^\[\]"]+)\]`)
	braceLabel  = regexp.MustCompile(`([A-Za-z][A-Za-z0-9_]*)\{([^{}"]+)\}`)
	roundLabel  = regexp.MustCompile(`([A-Za-z][A-Za-z0-9_]*)\(([^()"]+)\)`)
)

// QuoteDiagramLabels wraps unquoted mermaid node labels in double
// quotes within every ```mermaid fence of text.
func QuoteDiagramLabels(text string) string {
	if !strings.Contains(text, "```mermaid") {
		return text
	}
	return fencePattern.ReplaceAllStringFunc(text, func(block string) string {
		inner := fencePattern.FindStringSubmatch(block)[1]
		inner = squareLabel.ReplaceAllString(inner, `$1["$2"]`)
		inner = braceLabel.ReplaceAllString(inner, `$1{"$2"}`)
		inner = roundLabel.ReplaceAllString(inner, `$1("$2")`)
		return "```mermaid\n" + inner + "```"
	})
}
