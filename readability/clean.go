package readability

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// prepArticle runs the cleanup cascade over a grabbed container,
// stripping presentation attributes and removing structures that are
// usually page chrome rather than content. Order matters: conditional
// cleaning of tables, lists, and divs runs last, after earlier passes
// have removed junk that would skew their counts.
func (e *Extractor) prepArticle(container *html.Node, flags flagSet, scores map[*html.Node]float64) {
	stripStyles(container)
	e.rewriteMarkup(container, "collapsing break runs", killBreaks, "<br />")
	if e.revertForced {
		revertStyledParagraphs(container)
	}

	e.cleanConditionally(container, "form", flags, scores)
	e.cleanTag(container, "object", false)
	e.cleanTag(container, "h1", false)
	if !e.lightClean && len(findAll(container, "h2")) == 1 {
		e.cleanTag(container, "h2", false)
	}
	e.cleanTag(container, "iframe", true)
	cleanHeaders(container, flags)

	e.cleanConditionally(container, "table", flags, scores)
	e.cleanConditionally(container, "ul", flags, scores)
	e.cleanConditionally(container, "div", flags, scores)

	removeEmptyParagraphs(container)
	e.rewriteMarkup(container, "repairing break-paragraph boundaries", brBeforeP, "<p")
}

// rewriteMarkup applies a regex substitution to the node's inner markup
// and reparses it. A no-op when the pattern does not match, so node
// identity (and with it any score annotations) survives untouched
// markup. Serialization failures are traced and ignored.
func (e *Extractor) rewriteMarkup(n *html.Node, what string, re *regexp.Regexp, repl string) {
	inner, err := innerHTML(n)
	if err != nil {
		e.trace("%s: serializing: %v", what, err)
		return
	}
	if !re.MatchString(inner) {
		return
	}
	if err := setInnerHTML(n, re.ReplaceAllString(inner, repl)); err != nil {
		e.trace("%s: reparsing: %v", what, err)
	}
}

// stripStyles removes style attributes everywhere except on the inline
// marker paragraphs, which need theirs to keep rendering inline.
func stripStyles(container *html.Node) {
	if getAttr(container, "class") != styledClass {
		removeAttr(container, "style")
	}
	for _, n := range collectElements(container) {
		if getAttr(n, "class") != styledClass {
			removeAttr(n, "style")
		}
	}
}

// revertStyledParagraphs undoes the prep pass's text wrapping,
// replacing each marker paragraph with the plain text it carries.
func revertStyledParagraphs(container *html.Node) {
	for _, n := range collectElements(container) {
		if getAttr(n, "class") != styledClass {
			continue
		}
		parent := n.Parent
		parent.InsertBefore(textNode(textContent(n)), n)
		parent.RemoveChild(n)
	}
}

// cleanTag removes every element with the given tag from the subtree.
// With spareVideos set, elements that reference a known video host
// survive.
func (e *Extractor) cleanTag(container *html.Node, tag string, spareVideos bool) {
	for _, n := range findAll(container, tag) {
		if !attached(n, container) {
			continue
		}
		if spareVideos && isVideoEmbed(n) {
			continue
		}
		detach(n)
	}
}

// isVideoEmbed reports whether an element references a known video host
// in any attribute value or anywhere in its inner markup.
func isVideoEmbed(n *html.Node) bool {
	var vals strings.Builder
	for _, attr := range n.Attr {
		vals.WriteString(attr.Val)
		vals.WriteString("|")
	}
	if videoHosts.MatchString(vals.String()) {
		return true
	}
	inner, err := innerHTML(n)
	return err == nil && videoHosts.MatchString(inner)
}

// cleanHeaders removes h1 and h2 headers that score negatively on
// class weight or are mostly links.
func cleanHeaders(container *html.Node, flags flagSet) {
	for _, tag := range []string{"h1", "h2"} {
		for _, h := range findAll(container, tag) {
			if classWeight(h, flags) < 0 || linkDensity(h) > 0.33 {
				detach(h)
			}
		}
	}
}

// cleanConditionally weighs elements of the given tag and removes the
// ones that look like navigation, link farms, or related-content blocks
// rather than prose. Runs only while the conditional-clean flag is
// active.
func (e *Extractor) cleanConditionally(container *html.Node, tag string, flags flagSet, scores map[*html.Node]float64) {
	if !flags.cleanConditionally {
		return
	}
	for _, n := range findAll(container, tag) {
		if !attached(n, container) {
			continue
		}
		weight := classWeight(n, flags)
		if float64(weight)+scores[n] < 0 {
			e.trace("removing %s (weight %d, score %.1f)", tag, weight, scores[n])
			detach(n)
			continue
		}
		text := innerText(n, true)
		if strings.Count(text, ",") >= 10 {
			continue
		}
		if e.shouldRemove(n, tag, weight, text) {
			e.trace("conditionally removing %s (weight %d)", tag, weight)
			detach(n)
		}
	}
}

// shouldRemove applies the conditional-clean thresholds, choosing the
// light or standard rule set per configuration.
func (e *Extractor) shouldRemove(n *html.Node, tag string, weight int, text string) bool {
	paragraphs := len(findAll(n, "p"))
	images := len(findAll(n, "img"))
	listItems := len(findAll(n, "li")) - 100
	inputs := len(findAll(n, "input"))
	anchors := len(findAll(n, "a"))
	videos := countVideoEmbeds(n)
	density := linkDensity(n)
	length := utf8.RuneCountInString(text)

	if e.lightClean {
		switch {
		case images > paragraphs && images > 4:
			return true
		case tag != "ul" && tag != "ol" && listItems > paragraphs:
			return true
		case inputs > paragraphs/3:
			return true
		case length < 25 && videos == 0 && (images == 0 || images > 2):
			return true
		case weight < 25 && density > 0.2:
			return true
		case anchors > 2 && weight >= 25 && density > 0.5:
			return true
		case videos > 3:
			return true
		}
		return false
	}
	switch {
	case images > paragraphs:
		return true
	case tag != "ul" && tag != "ol" && listItems > paragraphs:
		return true
	case inputs > paragraphs/3:
		return true
	case length < 25 && (images == 0 || images > 2):
		return true
	case weight < 25 && density > 0.2:
		return true
	case weight >= 25 && density > 0.5:
		return true
	case videos == 1 && length < 75, videos > 1:
		return true
	}
	return false
}

// countVideoEmbeds counts embed and iframe descendants whose src points
// at a known video host.
func countVideoEmbeds(n *html.Node) int {
	count := 0
	for _, tag := range []string{"embed", "iframe"} {
		for _, el := range findAll(n, tag) {
			if videoHosts.MatchString(getAttr(el, "src")) {
				count++
			}
		}
	}
	return count
}

// removeEmptyParagraphs drops paragraphs holding no text and no media.
func removeEmptyParagraphs(container *html.Node) {
	for _, p := range findAll(container, "p") {
		if len(findAll(p, "img")) > 0 || len(findAll(p, "embed")) > 0 ||
			len(findAll(p, "object")) > 0 || len(findAll(p, "iframe")) > 0 {
			continue
		}
		if innerText(p, false) == "" {
			detach(p)
		}
	}
}
