package pipeline

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// Code placeholders use Unicode Private Use Area characters. No Markdown
// rule in the fragment formatter matches them, so stashed code bodies pass
// through every rewrite stage untouched.
const (
	PlaceholderStart = "\uE000" // U+E000: Private Use Area start
	PlaceholderEnd   = "\uE001" // U+E001: Private Use Area end
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	placeholderPattern = regexp.MustCompile(`\x{E000}(\d+)\x{E001}`)
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// SourcePreprocessor normalizes Markdown read from disk before it reaches
// either engine.
type SourcePreprocessor struct{}

var _ MarkdownPreprocessor = (*SourcePreprocessor)(nil)

// PreprocessMarkdown normalizes line endings and strips leading and trailing
// blank lines.
func (p *SourcePreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	content = trimBlankEdges(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// trimBlankEdges removes blank lines before the first and after the last
// non-blank line. Indentation of the first content line is preserved.
func trimBlankEdges(content string) string {
	lines := strings.Split(content, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

// codeStash holds fenced code bodies while the rewrite stages run.
// One stash belongs to one Format call.
type codeStash struct {
	bodies []string
}

// put stores body and returns the placeholder that stands in for it.
func (s *codeStash) put(body string) string {
	s.bodies = append(s.bodies, body)
	return PlaceholderStart + strconv.Itoa(len(s.bodies)-1) + PlaceholderEnd
}

// restore replaces every placeholder with its stashed body. Placeholders
// with an unknown index are left as they are.
func (s *codeStash) restore(doc string) string {
	if len(s.bodies) == 0 {
		return doc
	}
	return placeholderPattern.ReplaceAllStringFunc(doc, func(token string) string {
		m := placeholderPattern.FindStringSubmatch(token)
		i, err := strconv.Atoi(m[1])
		if err != nil || i < 0 || i >= len(s.bodies) {
			return token
		}
		return s.bodies[i]
	})
}
