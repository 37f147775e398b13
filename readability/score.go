package readability

import (
	"unicode/utf8"

	"golang.org/x/net/html"
)

// flagSet holds the three heuristic flags controlling extraction
// strictness. All are enabled at the start of a run; the retry loop
// disables them one at a time, in order, and never re-enables one.
type flagSet struct {
	stripUnlikelys     bool
	weightClasses      bool
	cleanConditionally bool
}

func allFlags() flagSet {
	return flagSet{stripUnlikelys: true, weightClasses: true, cleanConditionally: true}
}

// next returns a copy with the highest-priority active flag disabled.
// The second return value is false when every flag is already off.
func (f flagSet) next() (flagSet, bool) {
	switch {
	case f.stripUnlikelys:
		f.stripUnlikelys = false
	case f.weightClasses:
		f.weightClasses = false
	case f.cleanConditionally:
		f.cleanConditionally = false
	default:
		return f, false
	}
	return f, true
}

// classWeight scores an element by its class and id attributes. Both
// attributes are tested independently against the positive and negative
// word lists, 25 points each way. Returns 0 when class weighting is
// disabled for the current pass.
func classWeight(n *html.Node, flags flagSet) int {
	if !flags.weightClasses {
		return 0
	}
	weight := 0
	if class := getAttr(n, "class"); class != "" {
		if negativePattern.MatchString(class) {
			weight -= 25
		}
		if positivePattern.MatchString(class) {
			weight += 25
		}
	}
	if id := getAttr(n, "id"); id != "" {
		if negativePattern.MatchString(id) {
			weight -= 25
		}
		if positivePattern.MatchString(id) {
			weight += 25
		}
	}
	return weight
}

// initialScore returns the starting content score for a candidate,
// based on its tag name plus its class weight.
func initialScore(n *html.Node, flags flagSet) float64 {
	score := 0
	switch n.Data {
	case "div":
		score += 5
	case "pre", "td", "blockquote":
		score += 3
	case "address", "ol", "ul", "dl", "dd", "dt", "li", "form":
		score -= 3
	case "h1", "h2", "h3", "h4", "h5", "h6", "th":
		score -= 5
	}
	return float64(score + classWeight(n, flags))
}

// linkDensity returns the fraction of an element's text that sits inside
// anchor descendants. It is 0 for elements with no text or no anchors and
// is clamped to [0, 1].
func linkDensity(n *html.Node) float64 {
	total := utf8.RuneCountInString(innerText(n, true))
	if total == 0 {
		return 0
	}
	linked := 0
	for _, a := range findAll(n, "a") {
		linked += utf8.RuneCountInString(innerText(a, true))
	}
	density := float64(linked) / float64(total)
	if density > 1 {
		return 1
	}
	return density
}
