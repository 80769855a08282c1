package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// externalRel is set on every rewritten external link.
const externalRel = "noopener noreferrer"

// RewriteExternalLinks makes every http(s) anchor open in a new tab.
// Content without anchors is returned unchanged, so fragments that only
// use the formatter's own tags are never re-serialized.
func RewriteExternalLinks(htmlContent string) (string, error) {
	if !strings.Contains(strings.ToLower(htmlContent), "<a") {
		return htmlContent, nil
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	walkElements(doc, func(n *html.Node) {
		if n.DataAtom != atom.A || !isExternalURL(attrValue(n, "href")) {
			return
		}
		setAttr(n, "target", "_blank")
		setAttr(n, "rel", externalRel)
	})

	return renderHTML(doc, isFragment)
}

// RewriteImagePaths resolves relative img sources against baseDir as
// file:// URLs so a headless browser can load them from a temp file.
// Sources that escape baseDir are left alone.
func RewriteImagePaths(htmlContent, baseDir string) (string, error) {
	if baseDir == "" || !strings.Contains(strings.ToLower(htmlContent), "<img") {
		return htmlContent, nil
	}

	absDir, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	walkElements(doc, func(n *html.Node) {
		if n.DataAtom != atom.Img {
			return
		}
		src := attrValue(n, "src")
		if !isLocalRelative(src) {
			return
		}
		abs := filepath.Join(absDir, src)
		if !isPathUnderDir(abs, absDir) {
			return
		}
		setAttr(n, "src", (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String())
	})

	return renderHTML(doc, isFragment)
}

// parseHTML parses either a full document or a body fragment.
func parseHTML(content string) (*html.Node, bool, error) {
	lower := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML serializes doc. Fragments render their children only.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder
	if !isFragment {
		if err := html.Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func walkElements(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, visit)
	}
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// setAttr replaces key's value or appends the attribute.
func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func isExternalURL(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func isLocalRelative(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "//") {
		return false
	}
	if strings.Contains(path, ":") {
		return false // scheme such as http:, data:, file:
	}
	return !filepath.IsAbs(path)
}

// isPathUnderDir reports whether absPath stays inside dir.
func isPathUnderDir(absPath, dir string) bool {
	sep := string(filepath.Separator)
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, sep) {
		cleanDir += sep
	}
	return strings.HasPrefix(filepath.Clean(absPath)+sep, cleanDir)
}
