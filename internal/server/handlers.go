package server

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/alnah/mission-control/internal/config"
	"github.com/alnah/mission-control/internal/dashboard"
)

// Tab keys.
const (
	tabActivity    = "activity"
	tabCalendar    = "calendar"
	tabNewsletters = "newsletters"
	tabFacts       = "facts"
	tabExplainers  = "explainers"
)

type activityView struct {
	Query      string
	Activities []dashboard.Activity
}

type calendarView struct {
	Week      []dashboard.Day
	Recurring []dashboard.RecurringTask
	OneTime   []dashboard.OneTimeTask
}

type newslettersView struct {
	Newsletters  []config.Newsletter
	ArtifactsURL string
}

type factsView struct {
	Stats   dashboard.ClaimStats
	Claims  []dashboard.Claim
	Filter  string
	Filters []string
}

type explainerView struct {
	Explainer dashboard.Explainer
	HTML      template.HTML
	PDF       bool // download link shown
}

func (s *Server) tabs(active string) []tab {
	tabs := []tab{
		{Label: "📋 Activity", Href: "/", Active: active == tabActivity},
		{Label: "📅 Calendar", Href: "/calendar", Active: active == tabCalendar},
		{Label: "📰 Newsletters", Href: "/newsletters", Active: active == tabNewsletters},
		{Label: "🔍 Fact Checker", Href: "/facts", Active: active == tabFacts},
	}
	for _, e := range s.site.Embeds {
		tabs = append(tabs, tab{Label: e.Title, Href: "/embeds/" + e.ID, Active: active == "embed:"+e.ID})
	}
	return append(tabs, tab{Label: "📚 Explainers", Href: "/explainers", Active: active == tabExplainers})
}

func (s *Server) newPage(ds *dashboard.Dataset, active, title string, data any) *page {
	updated := s.now()
	if ds != nil && !ds.LoadedAt.IsZero() {
		updated = ds.LoadedAt
	}
	return &page{
		Title:     s.site.Title,
		Subtitle:  s.site.Subtitle,
		Assistant: s.site.Assistant,
		BlogURL:   s.site.BlogURL,
		PageTitle: title,
		Tabs:      s.tabs(active),
		Updated:   s.dates.updated.Format(updated),
		Data:      data,
	}
}

// renderPage executes a page template into a buffer first so a template
// error never leaves a half-written response.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, name string, p *page) {
	body, err := s.pages.render(name, p)
	if err != nil {
		s.logger.Error("rendering page", "page", name, "error", err, "path", r.URL.Path)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request, msg string) {
	s.renderPage(w, r, http.StatusNotFound, "notfound", s.newPage(s.data.Snapshot(), "", "Not found", msg))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleCSS(content func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=300")
		_, _ = w.Write([]byte(content()))
	}
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	ds := s.data.Snapshot()
	query := r.URL.Query().Get("q")
	view := activityView{
		Query:      query,
		Activities: dashboard.FilterActivities(ds.Activities, query),
	}
	s.renderPage(w, r, http.StatusOK, "activity", s.newPage(ds, tabActivity, "Activity", view))
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	ds := s.data.Snapshot()
	view := calendarView{
		Week:      dashboard.WeekDays(s.now()),
		Recurring: ds.Schedule.Recurring,
		OneTime:   dashboard.UpcomingOneTime(ds.Schedule.OneTime, UpcomingLimit),
	}
	s.renderPage(w, r, http.StatusOK, "calendar", s.newPage(ds, tabCalendar, "Calendar", view))
}

func (s *Server) handleNewsletters(w http.ResponseWriter, r *http.Request) {
	ds := s.data.Snapshot()
	view := newslettersView{
		Newsletters:  s.site.Newsletters,
		ArtifactsURL: s.site.ArtifactsURL,
	}
	s.renderPage(w, r, http.StatusOK, "newsletters", s.newPage(ds, tabNewsletters, "Newsletters", view))
}

func (s *Server) handleFacts(w http.ResponseWriter, r *http.Request) {
	ds := s.data.Snapshot()
	filter := claimFilter(r)
	view := factsView{
		Stats:   dashboard.ComputeClaimStats(ds.Claims),
		Claims:  dashboard.FilterClaims(ds.Claims, filter),
		Filter:  filter,
		Filters: dashboard.ClaimFilters,
	}
	s.renderPage(w, r, http.StatusOK, "facts", s.newPage(ds, tabFacts, "Fact Checker", view))
}

// claimFilter reads ?status=, falling back to "all" for unknown values.
func claimFilter(r *http.Request) string {
	status := r.URL.Query().Get("status")
	if !slices.Contains(dashboard.ClaimFilters, status) {
		return "all"
	}
	return status
}

func (s *Server) handleEmbed(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	embed, ok := s.site.FindEmbed(id)
	if !ok {
		s.notFound(w, r, "No dashboard named "+id)
		return
	}
	s.renderPage(w, r, http.StatusOK, "embed", s.newPage(s.data.Snapshot(), "embed:"+id, embed.Title, embed))
}

func (s *Server) handleExplainers(w http.ResponseWriter, r *http.Request) {
	ds := s.data.Snapshot()
	s.renderPage(w, r, http.StatusOK, "explainers", s.newPage(ds, tabExplainers, "Explainers", ds.Explainers))
}

func (s *Server) handleExplainer(w http.ResponseWriter, r *http.Request) {
	ds := s.data.Snapshot()
	e, html, err := s.renderExplainer(r, ds, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, dashboard.ErrExplainerNotFound) {
			s.notFound(w, r, "No explainer named "+chi.URLParam(r, "id"))
			return
		}
		s.logger.Error("rendering explainer", "id", e.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	view := explainerView{
		Explainer: e,
		HTML:      template.HTML(html), // #nosec G203 -- explainers are trusted, developer-authored content
		PDF:       s.pdf != nil,
	}
	s.renderPage(w, r, http.StatusOK, "explainer", s.newPage(ds, tabExplainers, e.Title, view))
}

// handleExplainerPDF serves an explainer as a PDF download.
func (s *Server) handleExplainerPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.pdf == nil {
		s.notFound(w, r, "PDF export is disabled")
		return
	}
	e, err := s.findExplainer(s.data.Snapshot(), id)
	if err != nil {
		s.notFound(w, r, "No explainer named "+id)
		return
	}

	pdf, err := s.pdf.ExportPDF(r.Context(), e)
	if err != nil {
		s.logger.Error("exporting explainer", "id", e.ID, "error", err)
		http.Error(w, "PDF export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", e.ID+".pdf"))
	_, _ = w.Write(pdf)
}

// findExplainer looks up id. Ids that could never name a file are
// reported as not found.
func (s *Server) findExplainer(ds *dashboard.Dataset, id string) (dashboard.Explainer, error) {
	if !dashboard.ValidExplainerID(id) {
		return dashboard.Explainer{}, dashboard.ErrExplainerNotFound
	}
	return ds.FindExplainer(id)
}

// renderExplainer looks up id and converts its markdown.
func (s *Server) renderExplainer(r *http.Request, ds *dashboard.Dataset, id string) (dashboard.Explainer, string, error) {
	e, err := s.findExplainer(ds, id)
	if err != nil {
		return e, "", err
	}
	if s.renderer == nil {
		return e, "", ErrNoRenderer
	}
	html, err := s.renderer.RenderFragment(r.Context(), e.Content)
	if err != nil {
		return e, "", err
	}
	return e, html, nil
}
