package readability

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// styledClass marks paragraphs synthesized around loose text during the
// prep pass so they can be recognized and reverted during cleanup.
const styledClass = "readability-styled"

// minContentLength is the plain-text size below which a grabbed
// container is considered too thin and a retry with relaxed flags is
// attempted.
const minContentLength = 250

// grab runs the full candidate-selection pipeline against body and
// returns the best content container along with whether it came from a
// genuinely scored candidate rather than the whole-body fallback.
//
// cached holds the body's original inner markup, captured before the
// first pass. When the assembled result is too short, the body is
// restored from it and grab runs again with the next flag disabled, so
// every retry sees the tree as it was before any pruning.
func (e *Extractor) grab(body *html.Node, flags flagSet, cached string) (*html.Node, bool) {
	candidates := e.prepNodes(body, flags)
	scores, order := scoreCandidates(candidates, flags)

	var best *html.Node
	for _, c := range order {
		scores[c] *= 1 - linkDensity(c)
		if best == nil || scores[c] > scores[best] {
			best = c
		}
	}

	genuine := best != nil && best != body
	if !genuine {
		e.trace("no suitable candidate, falling back to body wrapper")
		best = createElement("div")
		for body.FirstChild != nil {
			child := body.FirstChild
			body.RemoveChild(child)
			best.AppendChild(child)
		}
		body.AppendChild(best)
		scores[best] = initialScore(best, flags)
	}

	container := e.assemble(best, scores)
	e.prepArticle(container, flags, scores)

	if utf8.RuneCountInString(innerText(container, false)) >= minContentLength {
		return container, genuine
	}

	next, ok := flags.next()
	if !ok {
		return container, genuine
	}
	if err := setInnerHTML(body, cached); err != nil {
		e.trace("restoring body for retry: %v", err)
		return container, genuine
	}
	return e.grab(body, next, cached)
}

// prepNodes is the first grabber pass. It strips unlikely candidates by
// class and id, collects the elements worth scoring, and converts divs
// free of block-level markup into paragraphs so loose text competes
// with real paragraphs. Divs that do hold block-level markup get their
// direct text children wrapped in inline marker paragraphs instead,
// keeping stray text attached during sibling assembly.
func (e *Extractor) prepNodes(body *html.Node, flags flagSet) []*html.Node {
	var candidates []*html.Node
	for _, n := range collectElements(body) {
		if !attached(n, body) {
			continue
		}
		if flags.stripUnlikelys && n.DataAtom != atom.Body {
			hint := getAttr(n, "class") + getAttr(n, "id")
			if unlikelyCandidates.MatchString(hint) && !okMaybeItsACandidate.MatchString(hint) {
				e.trace("removing unlikely candidate %s (%s)", n.Data, hint)
				detach(n)
				continue
			}
		}
		switch n.DataAtom {
		case atom.P, atom.Td, atom.Pre:
			candidates = append(candidates, n)
		case atom.Div:
			inner, err := innerHTML(n)
			if err != nil {
				e.trace("serializing div: %v", err)
				continue
			}
			if !divToPElements.MatchString(inner) {
				n.Data = "p"
				n.DataAtom = atom.P
				candidates = append(candidates, n)
				continue
			}
			wrapTextChildren(n)
		}
	}
	return candidates
}

// wrapTextChildren wraps each direct text child of div in an inline
// paragraph carrying the marker class.
func wrapTextChildren(div *html.Node) {
	child := div.FirstChild
	for child != nil {
		next := child.NextSibling
		if child.Type == html.TextNode {
			p := createElement("p")
			setAttr(p, "class", styledClass)
			setAttr(p, "style", "display: inline;")
			div.InsertBefore(p, child)
			div.RemoveChild(child)
			p.AppendChild(child)
		}
		child = next
	}
}

// scoreCandidates is the second grabber pass. Each candidate with at
// least 25 characters of text contributes points to its parent and half
// as many to its grandparent. Parents and grandparents are initialized
// on first contact and recorded in first-seen order so selection stays
// deterministic.
func scoreCandidates(candidates []*html.Node, flags flagSet) (map[*html.Node]float64, []*html.Node) {
	scores := make(map[*html.Node]float64)
	var order []*html.Node
	register := func(n *html.Node) {
		if _, ok := scores[n]; !ok {
			scores[n] = initialScore(n, flags)
			order = append(order, n)
		}
	}
	for _, c := range candidates {
		parent := c.Parent
		if parent == nil || parent.Type != html.ElementNode {
			continue
		}
		text := innerText(c, true)
		length := utf8.RuneCountInString(text)
		if length < 25 {
			continue
		}
		local := 1 + strings.Count(text, ",") + min(length/100, 3)
		register(parent)
		scores[parent] += float64(local)
		if gp := parent.Parent; gp != nil && gp.Type == html.ElementNode && gp.DataAtom != atom.Html {
			register(gp)
			scores[gp] += float64(local / 2)
		}
	}
	return scores, order
}

// assemble is the sibling-assembly pass. It builds a fresh container
// from the winning candidate and any of its siblings that clear the
// score threshold or look like prose paragraphs. Included siblings that
// are neither div nor p are rebuilt as divs so later cleanup does not
// discard them by tag.
func (e *Extractor) assemble(best *html.Node, scores map[*html.Node]float64) *html.Node {
	container := createElement("div")
	threshold := max(10, scores[best]*0.2)
	bestClass := getAttr(best, "class")

	parent := best.Parent
	if parent == nil {
		container.AppendChild(best)
		return container
	}
	for _, sibling := range elementChildren(parent) {
		include := sibling == best
		if !include && bestClass != "" && getAttr(sibling, "class") == bestClass {
			if score, ok := scores[sibling]; ok && score+scores[best]*0.2 >= threshold {
				include = true
			}
		}
		if !include && sibling.DataAtom == atom.P {
			text := innerText(sibling, true)
			length := utf8.RuneCountInString(text)
			density := linkDensity(sibling)
			if length > 80 && density < 0.25 {
				include = true
			} else if length < 80 && density == 0 && sentenceEnd.MatchString(text) {
				include = true
			}
		}
		if !include {
			continue
		}

		node := sibling
		if sibling.DataAtom != atom.Div && sibling.DataAtom != atom.P {
			node = e.divFor(sibling)
		}
		detach(sibling)
		removeAttr(node, "class")
		container.AppendChild(node)
	}
	return container
}

// divFor rebuilds a node as a div with the same id and inner markup.
// If serialization fails the original node is returned unchanged.
func (e *Extractor) divFor(n *html.Node) *html.Node {
	inner, err := innerHTML(n)
	if err != nil {
		e.trace("serializing %s for div rewrite: %v", n.Data, err)
		return n
	}
	div := createElement("div")
	if id := getAttr(n, "id"); id != "" {
		setAttr(div, "id", id)
	}
	if err := setInnerHTML(div, inner); err != nil {
		e.trace("rebuilding %s as div: %v", n.Data, err)
		return n
	}
	return div
}
