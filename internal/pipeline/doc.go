// Package pipeline implements the Markdown-to-HTML stages used by Mission Control.
//
// Two engines turn Markdown into an HTML fragment:
//   - the fragment formatter, an ordered list of regular-expression stages
//     that reproduces the lightweight formatter used by the explainer pages
//   - goldmark, a CommonMark engine with GFM tables and chroma highlighting
//
// Around the engines sit the supporting stages: Markdown preprocessing,
// external link rewriting, document templating and CSS injection.
// PDF rendering lives in the root package and only consumes the document
// produced here.
package pipeline
