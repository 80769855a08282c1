package pipeline

// Notes:
// - Expected outputs are exact strings: the formatter is deterministic and
//   byte-level quirks (unclosed <p> after headers) are part of its contract
// - Stage order is tested through observable output, not through Stages()
//   internals, except for the escape stage toggle

import (
	"context"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestFormatFragment - Exact output per Markdown construct
// ---------------------------------------------------------------------------

func TestFormatFragment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "plain line becomes paragraph",
			input:    "hello world",
			expected: "<p>hello world</p>",
		},
		{
			name:     "h3",
			input:    "### Heading text",
			expected: "<h3>Heading text</h3>",
		},
		{
			name:     "h2",
			input:    "## Two",
			expected: "<h2>Two</h2>",
		},
		{
			name:     "h1",
			input:    "# One",
			expected: "<h1>One</h1>",
		},
		{
			name:     "h4 is not a header",
			input:    "#### Four",
			expected: "<p>#### Four</p>",
		},
		{
			name:     "hash without space is not a header",
			input:    "#tag",
			expected: "<p>#tag</p>",
		},
		{
			name:     "fenced code with language",
			input:    "```go\ncode\n```",
			expected: "<pre><code>code</code></pre>",
		},
		{
			name:     "fenced code without language",
			input:    "```\ncode\n```",
			expected: "<pre><code>code</code></pre>",
		},
		{
			name:     "fenced code body is not rewritten",
			input:    "```\n# not a header\n**x**\n```",
			expected: "<pre><code># not a header\n**x**</code></pre>",
		},
		{
			name:     "inline code",
			input:    "use `x`",
			expected: "<p>use <code>x</code></p>",
		},
		{
			name:     "bold",
			input:    "**bold**",
			expected: "<p><strong>bold</strong></p>",
		},
		{
			name:     "italic",
			input:    "*it*",
			expected: "<p><em>it</em></p>",
		},
		{
			name:     "bold before italic",
			input:    "**a** and *b*",
			expected: "<p><strong>a</strong> and <em>b</em></p>",
		},
		{
			name:     "list",
			input:    "- a\n- b\n- c",
			expected: "<ul><li>a</li>\n<li>b</li>\n<li>c</li></ul>",
		},
		{
			name:     "two paragraphs",
			input:    "one\n\ntwo",
			expected: "<p>one</p><p>two</p>",
		},
		{
			name:     "header followed by paragraph",
			input:    "## Title\n\nBody",
			expected: "<h2>Title</h2><p>Body",
		},
		{
			name:     "table with separator is one table",
			input:    "| A | B |\n| --- | --- |\n| 1 | 2 |",
			expected: "<table><tbody><tr><th>A</th><th>B</th></tr>\n<tr><th>1</th><th>2</th></tr></tbody></table>",
		},
		{
			name:     "raw html passes through",
			input:    "<b>x</b>",
			expected: "<p><b>x</b></p>",
		},
		{
			name:     "unclosed fence is left alone",
			input:    "```\ncode",
			expected: "<p>```</p>\n<p>code</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FormatFragment(tt.input, FragmentOptions{})
			if got != tt.expected {
				t.Errorf("FormatFragment(%q)\n got: %q\nwant: %q", tt.input, got, tt.expected)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFormatFragment_Properties - Structural guarantees on mixed documents
// ---------------------------------------------------------------------------

func TestFormatFragment_Properties(t *testing.T) {
	t.Parallel()

	doc := strings.Join([]string{
		"# Sessions",
		"",
		"Each chat gets its own **session**.",
		"",
		"| Source | Key |",
		"| --- | --- |",
		"| DM | main |",
		"| Group | group-1 |",
		"",
		"- first",
		"- second",
		"",
		"```bash",
		"openclaw sessions list",
		"```",
	}, "\n")

	got := FormatFragment(doc, FragmentOptions{})

	t.Run("single table", func(t *testing.T) {
		t.Parallel()
		if n := strings.Count(got, "<table>"); n != 1 {
			t.Errorf("got %d tables, want 1 in %q", n, got)
		}
		if strings.Contains(got, "---") {
			t.Errorf("separator row leaked into output: %q", got)
		}
	})

	t.Run("single list", func(t *testing.T) {
		t.Parallel()
		if n := strings.Count(got, "<ul>"); n != 1 {
			t.Errorf("got %d lists, want 1 in %q", n, got)
		}
		if n := strings.Count(got, "<li>"); n != 2 {
			t.Errorf("got %d items, want 2 in %q", n, got)
		}
	})

	t.Run("no paragraph around blocks", func(t *testing.T) {
		t.Parallel()
		for _, bad := range []string{"<p><h1>", "<p><table>", "<p><ul>", "<p><pre>", "<p></p>"} {
			if strings.Contains(got, bad) {
				t.Errorf("output contains %q: %q", bad, got)
			}
		}
	})

	t.Run("code kept verbatim", func(t *testing.T) {
		t.Parallel()
		if !strings.Contains(got, "<pre><code>openclaw sessions list</code></pre>") {
			t.Errorf("code block missing: %q", got)
		}
		if strings.Contains(got, PlaceholderStart) || strings.Contains(got, PlaceholderEnd) {
			t.Errorf("placeholder leaked: %q", got)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()
		if again := FormatFragment(doc, FragmentOptions{}); again != got {
			t.Errorf("second run differs:\n%q\n%q", got, again)
		}
	})
}

// ---------------------------------------------------------------------------
// TestFormatFragment_EscapeHTML - Opt-in escaping of raw HTML
// ---------------------------------------------------------------------------

func TestFormatFragment_EscapeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tags become text",
			input:    "<b>x</b>",
			expected: "<p>&lt;b&gt;x&lt;/b&gt;</p>",
		},
		{
			name:     "markdown still applies",
			input:    "**a & b**",
			expected: "<p><strong>a &amp; b</strong></p>",
		},
		{
			name:     "code body escaped",
			input:    "```\n<script>\n```",
			expected: "<pre><code>&lt;script&gt;</code></pre>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FormatFragment(tt.input, FragmentOptions{EscapeHTML: true})
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestStages - Stage list shape
// ---------------------------------------------------------------------------

func TestStages(t *testing.T) {
	t.Parallel()

	plain := Stages(FragmentOptions{})
	escaped := Stages(FragmentOptions{EscapeHTML: true})

	if len(escaped) != len(plain)+1 {
		t.Fatalf("escape stage count: got %d, want %d", len(escaped), len(plain)+1)
	}
	if escaped[0].Name != "escape" {
		t.Errorf("first stage = %q, want escape", escaped[0].Name)
	}
	if plain[0].Name != "fenced-code" {
		t.Errorf("first stage = %q, want fenced-code", plain[0].Name)
	}
	if last := plain[len(plain)-1].Name; last != "restore-code" {
		t.Errorf("last stage = %q, want restore-code", last)
	}
}

// ---------------------------------------------------------------------------
// TestFragmentConverter - HTMLConverter adapter
// ---------------------------------------------------------------------------

func TestFragmentConverter(t *testing.T) {
	t.Parallel()

	t.Run("converts", func(t *testing.T) {
		t.Parallel()

		got, err := NewFragmentConverter(FragmentOptions{}).ToHTML(context.Background(), "# Hi")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "<h1>Hi</h1>" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := NewFragmentConverter(FragmentOptions{}).ToHTML(ctx, "# Hi"); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}
