package pipeline

import (
	"context"
	"html"
	"regexp"
	"strings"
)

// blockTagInitials lists the second character of the tags the paragraph
// stage treats as block-level: h1-h3, ul, pre, ol, li, table, tr, td, th.
// Any tag whose name starts with one of these letters is treated the same.
const blockTagInitials = "hupolt"

var (
	fencedCodePattern = regexp.MustCompile("(?s)```(\\w+)?\\n(.*?)\\n?```")
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")

	h3Pattern = regexp.MustCompile(`(?m)^### (.+)$`)
	h2Pattern = regexp.MustCompile(`(?m)^## (.+)$`)
	h1Pattern = regexp.MustCompile(`(?m)^# (.+)$`)

	boldPattern   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern = regexp.MustCompile(`\*([^*]+)\*`)

	tableRowPattern   = regexp.MustCompile(`\|(.+)\|`)
	tableGroupPattern = regexp.MustCompile(`(<tr>.*</tr>\n?)+`)

	listItemPattern  = regexp.MustCompile(`(?m)^- (.+)$`)
	listGroupPattern = regexp.MustCompile(`(<li>.*</li>\n?)+`)

	openBeforeBlockPattern = regexp.MustCompile(`<p>(<[` + blockTagInitials + `])`)
	closeAfterBlockPattern = regexp.MustCompile(`(</[` + blockTagInitials + `].*>)</p>`)
)

// FragmentOptions configures the fragment formatter.
type FragmentOptions struct {
	// EscapeHTML escapes <, >, &, ' and " in the input before any stage
	// runs, so raw HTML in the source is shown as text.
	EscapeHTML bool
}

// Stage is one named rewrite pass over the whole document.
type Stage struct {
	Name    string
	Rewrite func(doc string) string
}

// Stages returns the ordered rewrite passes for one formatting run.
// Stages that share state (the fenced code stash) are bound to a fresh
// stash on every call, so the returned slice must not be reused across
// documents.
func Stages(opts FragmentOptions) []Stage {
	stash := &codeStash{}

	var stages []Stage
	if opts.EscapeHTML {
		stages = append(stages, Stage{"escape", html.EscapeString})
	}
	return append(stages,
		Stage{"fenced-code", func(doc string) string { return replaceFencedCode(doc, stash) }},
		Stage{"inline-code", replaceInlineCode},
		Stage{"headers", replaceHeaders},
		Stage{"bold", replaceBold},
		Stage{"italic", replaceItalic},
		Stage{"table-rows", renderTableRows},
		Stage{"tables", wrapTables},
		Stage{"list-items", renderListItems},
		Stage{"lists", wrapLists},
		Stage{"paragraphs", wrapParagraphs},
		Stage{"paragraph-cleanup", cleanupParagraphs},
		Stage{"restore-code", stash.restore},
	)
}

// FormatFragment converts lightweight Markdown into an HTML fragment.
// It never fails: input that matches no rule comes back wrapped in <p>
// elements, and the empty string formats to the empty string.
func FormatFragment(md string, opts FragmentOptions) string {
	if md == "" {
		return ""
	}
	doc := md
	for _, stage := range Stages(opts) {
		doc = stage.Rewrite(doc)
	}
	return doc
}

// FragmentConverter adapts the fragment formatter to HTMLConverter.
type FragmentConverter struct {
	opts FragmentOptions
}

var _ HTMLConverter = (*FragmentConverter)(nil)

// NewFragmentConverter creates a FragmentConverter.
func NewFragmentConverter(opts FragmentOptions) *FragmentConverter {
	return &FragmentConverter{opts: opts}
}

// ToHTML formats content as an HTML fragment.
func (c *FragmentConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return FormatFragment(content, c.opts), nil
}

// replaceFencedCode swaps every fenced block for a <pre><code> wrapper around
// a placeholder. The language tag is dropped. The body is restored verbatim
// by the last stage.
func replaceFencedCode(doc string, stash *codeStash) string {
	return fencedCodePattern.ReplaceAllStringFunc(doc, func(block string) string {
		m := fencedCodePattern.FindStringSubmatch(block)
		return "<pre><code>" + stash.put(m[2]) + "</code></pre>"
	})
}

func replaceInlineCode(doc string) string {
	return inlineCodePattern.ReplaceAllString(doc, "<code>${1}</code>")
}

// replaceHeaders handles ### before ## before # so deeper levels win.
func replaceHeaders(doc string) string {
	doc = h3Pattern.ReplaceAllString(doc, "<h3>${1}</h3>")
	doc = h2Pattern.ReplaceAllString(doc, "<h2>${1}</h2>")
	return h1Pattern.ReplaceAllString(doc, "<h1>${1}</h1>")
}

func replaceBold(doc string) string {
	return boldPattern.ReplaceAllString(doc, "<strong>${1}</strong>")
}

func replaceItalic(doc string) string {
	return italicPattern.ReplaceAllString(doc, "<em>${1}</em>")
}

func renderListItems(doc string) string {
	return listItemPattern.ReplaceAllString(doc, "<li>${1}</li>")
}

// wrapLists wraps each run of consecutive list item lines in one <ul>.
func wrapLists(doc string) string {
	return listGroupPattern.ReplaceAllString(doc, "<ul>${0}</ul>")
}

// wrapParagraphs turns blank-line separators into paragraph boundaries and
// wraps every non-empty line that does not start with a block tag.
func wrapParagraphs(doc string) string {
	doc = strings.ReplaceAll(doc, "\n\n", "</p><p>")

	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		if line == "" || startsWithBlockTag(line) {
			continue
		}
		lines[i] = "<p>" + line + "</p>"
	}
	return strings.Join(lines, "\n")
}

// cleanupParagraphs removes empty paragraphs and paragraph tags that ended
// up directly around block elements.
func cleanupParagraphs(doc string) string {
	doc = strings.ReplaceAll(doc, "<p></p>", "")
	doc = openBeforeBlockPattern.ReplaceAllString(doc, "${1}")
	return closeAfterBlockPattern.ReplaceAllString(doc, "${1}")
}

func startsWithBlockTag(line string) bool {
	return len(line) >= 2 && line[0] == '<' && strings.IndexByte(blockTagInitials, line[1]) >= 0
}
