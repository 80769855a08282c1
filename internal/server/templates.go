package server

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/alnah/mission-control/internal/assets"
	"github.com/alnah/mission-control/internal/config"
	"github.com/alnah/mission-control/internal/dashboard"
	"github.com/alnah/mission-control/internal/dateutil"
)

// page is the data every page template receives.
type page struct {
	Title     string
	Subtitle  string
	Assistant string
	BlogURL   string
	PageTitle string
	Tabs      []tab
	Updated   string
	Data      any
}

type tab struct {
	Label  string
	Href   string
	Active bool
}

// pageSet holds one parsed template per page, each combined with the
// shared layout.
type pageSet map[string]*template.Template

func loadPages(loader assets.Loader, funcs template.FuncMap) (pageSet, error) {
	layout, err := loader.LoadTemplate(assets.TemplateLayout)
	if err != nil {
		return nil, err
	}

	pages := make(pageSet, len(assets.PageTemplates))
	for _, name := range assets.PageTemplates {
		content, err := loader.LoadTemplate(name)
		if err != nil {
			return nil, err
		}
		tmpl, err := template.New(name).Funcs(funcs).Parse(layout)
		if err != nil {
			return nil, fmt.Errorf("%w: layout: %v", ErrTemplate, err)
		}
		if _, err := tmpl.Parse(content); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplate, name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}

func (p pageSet) render(name string, data *page) ([]byte, error) {
	tmpl, ok := p[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown page %q", ErrTemplate, name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, assets.TemplateLayout, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplate, name, err)
	}
	return buf.Bytes(), nil
}

// formatters resolves the configured date patterns once.
type formatters struct {
	date    *dateutil.Formatter
	clock   *dateutil.Formatter
	updated *dateutil.Formatter
}

func newFormatters(d config.DashboardConfig) (formatters, error) {
	var f formatters
	var err error
	if f.date, err = dateutil.NewFormatter(d.DateFormat); err != nil {
		return f, fmt.Errorf("dateFormat: %w", err)
	}
	if f.clock, err = dateutil.NewFormatter(d.TimeFormat); err != nil {
		return f, fmt.Errorf("timeFormat: %w", err)
	}
	if f.updated, err = dateutil.NewFormatter(d.UpdatedFormat); err != nil {
		return f, fmt.Errorf("updatedFormat: %w", err)
	}
	return f, nil
}

func (f formatters) funcMap() template.FuncMap {
	return template.FuncMap{
		"typeBadge":     dashboard.TypeBadgeClass,
		"statusClass":   dashboard.StatusClass,
		"categoryBadge": dashboard.CategoryBadgeClass,
		"statusIcon":    dashboard.StatusIcon,
		"date":          f.date.Format,
		"clock":         f.clock.Format,
		"datetime":      f.updated.Format,
		"rfc3339":       func(t time.Time) string { return t.Format(time.RFC3339) },
		"percent":       func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
		"confidence":    func(v float64) string { return fmt.Sprintf("%.0f%%", v*100) },
	}
}
