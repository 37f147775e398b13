package readability

import (
	"net/url"
	"strconv"

	"golang.org/x/net/html"
)

// footnoteClass marks generated footnote apparatus so repeated runs
// leave already-processed links alone.
const footnoteClass = "footnote-ref"

// addFootnotes rewrites the container's anchors into numbered
// references: each link gains a superscript marker in the text, and a
// references section listing every target is appended to the container.
// Does nothing when no eligible anchors exist.
func (e *Extractor) addFootnotes(container *html.Node, sourceURL string) {
	list := createElement("ol")
	count := 0
	for _, a := range findAll(container, "a") {
		if getAttr(a, "class") == footnoteClass {
			continue
		}
		count++
		num := strconv.Itoa(count)
		href := getAttr(a, "href")

		sup := createElement("sup")
		setAttr(sup, "class", footnoteClass)
		ref := createElement("a")
		setAttr(ref, "class", footnoteClass)
		setAttr(ref, "href", "#fn-"+num)
		ref.AppendChild(textNode("[" + num + "]"))
		sup.AppendChild(ref)
		if a.NextSibling == nil {
			a.Parent.AppendChild(sup)
		} else {
			a.Parent.InsertBefore(sup, a.NextSibling)
		}

		label := innerText(a, true)
		if title := getAttr(a, "title"); title != "" {
			label = title
		}
		item := createElement("li")
		setAttr(item, "id", "fn-"+num)
		link := createElement("a")
		setAttr(link, "class", footnoteClass)
		setAttr(link, "href", href)
		link.AppendChild(textNode(label))
		item.AppendChild(link)
		if host := linkHost(href, sourceURL); host != "" {
			item.AppendChild(textNode(" "))
			small := createElement("small")
			small.AppendChild(textNode("(" + host + ")"))
			item.AppendChild(small)
		}
		list.AppendChild(item)
	}
	if count == 0 {
		return
	}

	section := createElement("div")
	heading := createElement("h3")
	heading.AppendChild(textNode("References"))
	section.AppendChild(heading)
	section.AppendChild(list)
	container.AppendChild(section)
}

// linkHost returns the host a link points at, falling back to the host
// of the source page for relative links.
func linkHost(href, sourceURL string) string {
	if u, err := url.Parse(href); err == nil && u.Host != "" {
		return u.Host
	}
	if u, err := url.Parse(sourceURL); err == nil {
		return u.Host
	}
	return ""
}
