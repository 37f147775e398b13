package main

import (
	"fmt"

	"github.com/legiblehq/legible"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return legible.Errorf(legible.EINVALID, "use --force to confirm deletion")
	}

	if c.All {
		articles, err := deps.Articles.FindArticles(deps.Ctx, legible.ArticleFilter{})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", legible.ErrorMessage(err))
			return err
		}

		for _, a := range articles {
			if err := deps.Articles.DeleteArticle(deps.Ctx, a.ID); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", legible.ErrorMessage(err))
				return err
			}
		}

		fmt.Fprintf(deps.Stdout, "Deleted %d articles\n", len(articles))
		return nil
	}

	if c.ID == "" {
		fmt.Fprintf(deps.Stderr, "error: an article ID or --all is required\n")
		return legible.Errorf(legible.EINVALID, "an article ID or --all is required")
	}

	article, err := deps.Articles.FindArticleByID(deps.Ctx, c.ID)
	if err != nil {
		if legible.ErrorCode(err) == legible.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: article %q not found. Use 'legible list' to see cached articles.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", legible.ErrorMessage(err))
		}
		return err
	}

	if err := deps.Articles.DeleteArticle(deps.Ctx, article.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", legible.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted article %q\n", article.SourceURL)
	return nil
}
