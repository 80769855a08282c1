package assets

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestEmbeddedLoader - Bundled styles and templates
// ---------------------------------------------------------------------------

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	for _, name := range []string{StyleDashboard, StyleDocument, StylePrint} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			css, err := loader.LoadStyle(name)
			if err != nil {
				t.Fatalf("LoadStyle(%q) error = %v", name, err)
			}
			if !strings.Contains(css, "{") {
				t.Errorf("LoadStyle(%q) does not look like CSS", name)
			}
		})
	}

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		if _, err := loader.LoadStyle("nonexistent"); !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("error = %v, want ErrStyleNotFound", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		if _, err := loader.LoadStyle("../styles/dashboard"); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestEmbeddedLoader_DashboardStyleClasses(t *testing.T) {
	t.Parallel()

	css, err := NewEmbeddedLoader().LoadStyle(StyleDashboard)
	if err != nil {
		t.Fatalf("LoadStyle error = %v", err)
	}

	// Badge helpers in the dashboard package emit these classes.
	for _, class := range []string{
		".tone-blue", ".tone-gray", ".tone-pink",
		".status-completed", ".status-failed", ".status-unknown", ".status-unverifiable",
	} {
		if !strings.Contains(css, class) {
			t.Errorf("dashboard.css missing %s", class)
		}
	}
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	names := append([]string{TemplateDocument, TemplateLayout}, PageTemplates...)
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			content, err := loader.LoadTemplate(name)
			if err != nil {
				t.Fatalf("LoadTemplate(%q) error = %v", name, err)
			}
			if content == "" {
				t.Errorf("LoadTemplate(%q) is empty", name)
			}
		})
	}

	t.Run("pages define content", func(t *testing.T) {
		t.Parallel()

		for _, name := range PageTemplates {
			content, _ := loader.LoadTemplate(name)
			if !strings.Contains(content, `{{define "content"}}`) {
				t.Errorf("%s.html does not define content", name)
			}
		}
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		if _, err := loader.LoadTemplate("nonexistent"); !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("error = %v, want ErrTemplateNotFound", err)
		}
	})
}

func TestEmbeddedLoader_ListStyles(t *testing.T) {
	t.Parallel()

	got := NewEmbeddedLoader().ListStyles()
	want := []string{StyleDashboard, StyleDocument, StylePrint}
	if !slices.Equal(got, want) {
		t.Errorf("ListStyles() = %v, want %v", got, want)
	}
}
