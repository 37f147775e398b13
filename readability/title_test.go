package readability_test

import (
	"testing"

	"github.com/legiblehq/legible/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titlePage(title, heading string) string {
	return `<!DOCTYPE html>
<html>
<head><title>` + title + `</title></head>
<body>
<div class="post">` + heading + `<p>` + longBody + `</p></div>
</body>
</html>`
}

func TestExtractor_SimplifiesSeparatedTitle(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	result, err := ext.Extract(titlePage("My Article | My Site", ""), "")

	require.NoError(t, err)
	assert.Equal(t, "My Article", result.Title)
}

func TestExtractor_SimplifiesDashSeparatedTitle(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	result, err := ext.Extract(titlePage("My Article - My Site", ""), "")

	require.NoError(t, err)
	assert.Equal(t, "My Article", result.Title)
}

func TestExtractor_KeepsShortSeparatedTitle(t *testing.T) {
	t.Parallel()

	// Too few words on either side of the separator, so the heuristic
	// falls back and then reverts to the original title.
	ext := readability.NewExtractor()
	result, err := ext.Extract(titlePage("A | B", ""), "")

	require.NoError(t, err)
	assert.Equal(t, "A | B", result.Title)
}

func TestExtractor_TakesTitleAfterColon(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	result, err := ext.Extract(titlePage("Site Name: The Article Headline", ""), "")

	require.NoError(t, err)
	assert.Equal(t, "The Article Headline", result.Title)
}

func TestExtractor_UsesSoleHeadingForShortTitle(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	result, err := ext.Extract(titlePage("News", "<h1>Seven Ways To Improve Your Writing</h1>"), "")

	require.NoError(t, err)
	assert.Equal(t, "Seven Ways To Improve Your Writing", result.Title)
}
