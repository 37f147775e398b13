package legible

import "strings"

// FormatArticles formats articles for display or LLM context.
// Uses title if available, falls back to source URL; the markdown body
// is preferred over raw HTML. Articles are separated by blank lines.
func FormatArticles(articles []*Article) string {
	if len(articles) == 0 {
		return ""
	}

	parts := make([]string, 0, len(articles))
	for _, a := range articles {
		header := a.Title
		if header == "" {
			header = a.SourceURL
		}
		body := a.Markdown
		if body == "" {
			body = a.ContentHTML
		}
		parts = append(parts, "## Article: "+header+"\n"+body)
	}

	return strings.Join(parts, "\n\n")
}
