package missioncontrol_test

import (
	"context"
	"fmt"
	"strings"

	missioncontrol "github.com/alnah/mission-control"
)

func ExampleFormat() {
	fmt.Println(missioncontrol.Format("### Status\n\nAll **green**"))
	// Output: <h3>Status</h3><p>All <strong>green</strong>
}

// ExampleRenderer_Render renders a standalone document. PDF export needs
// Chrome and is not shown.
func ExampleRenderer_Render() {
	r, err := missioncontrol.NewRenderer()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer r.Close()

	res, err := r.Render(context.Background(), missioncontrol.Input{
		Markdown: "## Sessions\n\n- main\n- isolated",
		Title:    "Sessions",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(strings.Contains(res.HTML, "<title>Sessions</title>"))
	fmt.Println(res.Fragment)
	// Output:
	// true
	// <h2>Sessions</h2><ul><li>main</li>
	// <li>isolated</li></ul>
}
