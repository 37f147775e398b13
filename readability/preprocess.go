package readability

import "strings"

// emptyShell is substituted for blank input so the rest of the pipeline
// always has a document to work with.
const emptyShell = "<html><head><title></title></head><body></body></html>"

// preprocess normalizes raw markup before parsing. Order matters: spans
// wrapping only whitespace are unwrapped first (syntax highlighters leave
// these behind), then runs of two or more breaks become paragraph
// boundaries, then font tags become spans. The output is always parseable;
// malformed markup is left for the lenient parser downstream.
func preprocess(raw string) string {
	s := emptySpans.ReplaceAllString(raw, "$2")
	s = replaceBrs.ReplaceAllString(s, "</p><p>")
	s = replaceFonts.ReplaceAllString(s, "<${1}span>")
	if strings.TrimSpace(s) == "" {
		return emptyShell
	}
	return s
}
