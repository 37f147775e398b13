package readability

import "regexp"

// Lexical patterns used by the scoring and cleaning heuristics. These are
// case-insensitive alternations over fixed word lists matched against class
// and id attribute values, plus a few markup-level rewrite patterns applied
// to serialized fragments. Compiled once so they are not rebuilt in loops.
var (
	unlikelyCandidates   = regexp.MustCompile(`(?i)combx|comment|community|disqus|extra|foot|header|menu|remark|rss|shoutbox|sidebar|sponsor|ad-break|agegate|pagination|pager|popup|tweet|twitter`)
	okMaybeItsACandidate = regexp.MustCompile(`(?i)and|article|body|column|main|shadow`)
	positivePattern      = regexp.MustCompile(`(?i)article|body|content|entry|hentry|main|page|pagination|post|text|blog|story`)
	negativePattern      = regexp.MustCompile(`(?i)combx|comment|com-|contact|foot|footer|footnote|masthead|media|meta|outbrain|promo|related|scroll|shoutbox|sidebar|sponsor|shopping|tags|tool|widget`)
	divToPElements       = regexp.MustCompile(`(?is)<(a|blockquote|dl|div|img|ol|p|pre|table|ul)`)
	videoHosts           = regexp.MustCompile(`(?i)//(www\.|player\.)?(youtube(-nocookie)?|vimeo)\.com`)

	emptySpans    = regexp.MustCompile(`(?is)<span(\s[^>]*)?>(\s*)</span>`)
	replaceBrs    = regexp.MustCompile(`(?i)(<br[^>]*>[ \n\r\t]*){2,}`)
	replaceFonts  = regexp.MustCompile(`(?i)<(/?)font[^>]*>`)
	killBreaks    = regexp.MustCompile(`(?i)(<br\s*/?>(\s|&nbsp;?)*)+`)
	brBeforeP     = regexp.MustCompile(`(?i)<br[^>]*>\s*<p`)
	sentenceEnd   = regexp.MustCompile(`\.( |$)`)
	whitespaceRun = regexp.MustCompile(`\s{2,}`)

	titleSeparators = regexp.MustCompile(` [|\-] `)
	beforeLastSep   = regexp.MustCompile(`(?s)(.*)[|\-] .*`)
	afterFirstSep   = regexp.MustCompile(`(?s)[^|\-]*[|\-](.*)`)
	afterLastColon  = regexp.MustCompile(`(?s).*:(.*)`)
	afterFirstColon = regexp.MustCompile(`(?s)[^:]*:(.*)`)
)
