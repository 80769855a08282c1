package missioncontrol

import "github.com/alnah/mission-control/internal/pipeline"

// FormatOptions configures Format.
type FormatOptions = pipeline.FragmentOptions

// Format converts the restricted markdown subset to an HTML fragment.
// It never fails and is safe for concurrent use. Raw HTML in md passes
// through unescaped.
func Format(md string) string {
	return pipeline.FormatFragment(md, FormatOptions{})
}

// FormatWith is Format with options.
func FormatWith(md string, opts FormatOptions) string {
	return pipeline.FormatFragment(md, opts)
}
