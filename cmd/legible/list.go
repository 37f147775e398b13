package main

import (
	"fmt"

	"github.com/legiblehq/legible"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	articles, err := deps.Articles.FindArticles(deps.Ctx, legible.ArticleFilter{SortBy: legible.SortByFetchedAt})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", legible.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No cached articles. Use 'legible extract <url>' to create one.")
		return nil
	}

	if c.Full {
		fmt.Fprintln(deps.Stdout, legible.FormatArticles(articles))
		return nil
	}

	for _, a := range articles {
		title := a.Title
		if title == "" {
			title = a.SourceURL
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", a.ID, title, a.SourceURL)
	}

	return nil
}
