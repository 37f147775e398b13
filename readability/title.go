package readability

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// deriveTitle returns the best-guess article title and that title wrapped
// in a new h1 element. It never fails: when no heuristic applies the raw
// document title (possibly empty) is used as is.
//
// Separated titles ("Article | Site", "Article - Site") keep the text
// before the last separator. Short results fall back to the text after
// the first separator; a colon variant keeps the text after the last
// colon. A title that is very short or very long is replaced by the
// document's sole h1, when there is exactly one. Fallback-derived
// candidates of four words or fewer revert to the original title.
func deriveTitle(doc *html.Node) (string, *html.Node) {
	original := ""
	if t := findFirst(doc, "title"); t != nil {
		original = textContent(t)
	}
	title := original
	fellBack := false

	switch {
	case titleSeparators.MatchString(title):
		title = beforeLastSep.ReplaceAllString(original, "$1")
		if wordCount(title) < 3 {
			title = afterFirstSep.ReplaceAllString(original, "$1")
			fellBack = true
		}
	case strings.Contains(title, ": "):
		title = afterLastColon.ReplaceAllString(original, "$1")
		if wordCount(title) < 3 {
			title = afterFirstColon.ReplaceAllString(original, "$1")
			fellBack = true
		}
	case utf8.RuneCountInString(title) > 150 || utf8.RuneCountInString(title) < 15:
		if h1s := findAll(doc, "h1"); len(h1s) == 1 {
			title = innerText(h1s[0], true)
			fellBack = true
		}
	}

	title = strings.TrimSpace(title)
	if fellBack && wordCount(title) <= 4 {
		title = original
	}

	h1 := createElement("h1")
	h1.AppendChild(textNode(title))
	return title, h1
}

// wordCount counts space-split segments. The count includes the empty
// segments produced by leading or trailing spaces; the separator
// heuristics depend on this when judging untrimmed candidates.
func wordCount(s string) int {
	return len(strings.Split(s, " "))
}
