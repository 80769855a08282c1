package server

// Notes:
// - handlers are exercised through httptest against the embedded templates,
//   with a MapFS dataset and the fragment formatter as renderer
// - the clock is fixed to Thursday 2026-02-19 so the calendar week is stable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/alnah/mission-control/internal/assets"
	"github.com/alnah/mission-control/internal/config"
	"github.com/alnah/mission-control/internal/dashboard"
	"github.com/alnah/mission-control/internal/pipeline"
)

var fixedNow = time.Date(2026, time.February, 19, 15, 0, 0, 0, time.UTC)

const (
	fixtureActivities = `[
  {"id":"a1","timestamp":"2026-02-19T08:00:00Z","type":"email","action":"Sent Morning Digest","description":"news roundup","status":"completed"},
  {"id":"a2","timestamp":"2026-02-19T09:30:00Z","type":"search","action":"Research","description":"NIST agent standards","status":"failed"}
]`
	fixtureSchedule = `{
  "recurring":[{"id":"r1","name":"Inbox triage","schedule":"Weekdays 9:00 AM","type":"email","source":"cron"}],
  "oneTime":[{"id":"o1","name":"Renew certificate","scheduledFor":"2026-02-20T10:00:00Z","type":"system","description":"TLS renewal"}]
}`
	fixtureClaims = `[
  {"id":"c1","claim":"The sky is blue","source":{"type":"ai_response","timestamp":"2026-02-18T10:00:00Z","context":"chat"},
   "extraction":{"checkworthiness":0.9,"category":"statistic"},
   "verification":{"status":"verified","confidence":0.95,"sources":[{"url":"https://example.com/sky","excerpt":"blue","agrees":true}],"explanation":"Rayleigh","verifiedAt":"2026-02-18T11:00:00Z"}},
  {"id":"c2","claim":"The moon is cheese","source":{"type":"article","timestamp":"2026-02-18T10:00:00Z","context":"blog"},
   "extraction":{"checkworthiness":0.7,"category":"other"},
   "verification":{"status":"disputed","confidence":0.8,"sources":[],"explanation":"It is rock","verifiedAt":"2026-02-19T12:00:00Z"}}
]`
	fixtureExplainer = "---\ntitle: Sessions\ndescription: How sessions work\nicon: \"💬\"\n---\n## Overview\n\nA **session** is a conversation.\n"
)

type fragmentRenderer struct{}

func (fragmentRenderer) RenderFragment(_ context.Context, md string) (string, error) {
	return pipeline.FormatFragment(md, pipeline.FragmentOptions{}), nil
}

type failingRenderer struct{}

func (failingRenderer) RenderFragment(context.Context, string) (string, error) {
	return "", errors.New("boom")
}

func fixtureFS(withClaims bool) fstest.MapFS {
	fsys := fstest.MapFS{
		dashboard.ActivitiesFile: {Data: []byte(fixtureActivities)},
		dashboard.ScheduleFile:   {Data: []byte(fixtureSchedule)},
		"explainers/sessions.md": {Data: []byte(fixtureExplainer)},
	}
	if withClaims {
		fsys[dashboard.ClaimsFile] = &fstest.MapFile{Data: []byte(fixtureClaims)}
	}
	return fsys
}

func newTestServer(t *testing.T, withClaims bool, renderer FragmentRenderer) *Server {
	t.Helper()

	store, err := dashboard.NewStoreFS(fixtureFS(withClaims), discard())
	if err != nil {
		t.Fatalf("NewStoreFS: %v", err)
	}
	srv, err := New(Options{
		Data:         store,
		Renderer:     renderer,
		Dashboard:    config.DefaultConfig().Dashboard,
		HighlightCSS: ".chroma { color: red }",
		Logger:       discard(),
		Now:          func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, base, rel, content string) {
	t.Helper()

	path := filepath.Join(base, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

// ---------------------------------------------------------------------------
// TestNew - Construction
// ---------------------------------------------------------------------------

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{}); !errors.Is(err, ErrNoData) {
		t.Errorf("error = %v, want ErrNoData", err)
	}

	store, err := dashboard.NewStoreFS(fixtureFS(false), discard())
	if err != nil {
		t.Fatal(err)
	}
	bad := config.DefaultConfig().Dashboard
	bad.TimeFormat = "[oops"
	if _, err := New(Options{Data: store, Dashboard: bad}); err == nil {
		t.Error("expected error for invalid time format")
	}
}

func TestNew_CustomTemplateError(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeFile(t, base, "templates/activity.html", `{{define "content"}}{{.Data.Query}`)

	resolver, err := assets.NewResolver(base)
	if err != nil {
		t.Fatal(err)
	}
	store, err := dashboard.NewStoreFS(fixtureFS(false), discard())
	if err != nil {
		t.Fatal(err)
	}
	_, err = New(Options{Data: store, Dashboard: config.DefaultConfig().Dashboard, Loader: resolver})
	if !errors.Is(err, ErrTemplate) {
		t.Errorf("error = %v, want ErrTemplate", err)
	}
}

// ---------------------------------------------------------------------------
// TestPages - Server-rendered tabs
// ---------------------------------------------------------------------------

func TestPages(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, true, fragmentRenderer{})

	tests := []struct {
		name       string
		target     string
		wantStatus int
		contains   []string
		excludes   []string
	}{
		{
			name:       "activity",
			target:     "/",
			wantStatus: http.StatusOK,
			contains: []string{
				"Mission Control", "Sent Morning Digest", "Research",
				"tone-blue", "status-failed", "Feb 19, 2026 8:00 AM",
				`class="tab active" href="/"`,
			},
		},
		{
			name:       "activity search",
			target:     "/?q=nist",
			wantStatus: http.StatusOK,
			contains:   []string{"Research", `value="nist"`},
			excludes:   []string{"Sent Morning Digest"},
		},
		{
			name:       "activity no match",
			target:     "/?q=zzz",
			wantStatus: http.StatusOK,
			contains:   []string{"No activities match"},
		},
		{
			name:       "calendar",
			target:     "/calendar",
			wantStatus: http.StatusOK,
			contains: []string{
				"Inbox triage", "Weekdays 9:00 AM", "Renew certificate",
				`class="day today"`, "Feb 20, 2026",
			},
		},
		{
			name:       "newsletters",
			target:     "/newsletters",
			wantStatus: http.StatusOK,
			contains: []string{
				"Morning Digest - February 19, 2026",
				"https://bob.newspackstaging.com/artifacts/wapuu-run/",
				"View all artifacts",
			},
		},
		{
			name:       "facts",
			target:     "/facts",
			wantStatus: http.StatusOK,
			contains: []string{
				"The sky is blue", "The moon is cheese", "50.0%",
				"Confidence 95%", "Last verified: Feb 19, 2026 12:00 PM",
				`class="filter active" href="/facts?status=all"`,
			},
		},
		{
			name:       "facts filtered",
			target:     "/facts?status=disputed",
			wantStatus: http.StatusOK,
			contains:   []string{"The moon is cheese", `class="filter active" href="/facts?status=disputed"`},
			excludes:   []string{"The sky is blue"},
		},
		{
			name:       "facts unknown filter",
			target:     "/facts?status=bogus",
			wantStatus: http.StatusOK,
			contains:   []string{"The sky is blue", "The moon is cheese"},
		},
		{
			name:       "embed",
			target:     "/embeds/model-arena",
			wantStatus: http.StatusOK,
			contains:   []string{`src="https://model-arena-eta.vercel.app/"`, "Model Arena"},
		},
		{
			name:       "unknown embed",
			target:     "/embeds/nope",
			wantStatus: http.StatusNotFound,
			contains:   []string{"No dashboard named nope"},
		},
		{
			name:       "explainer index",
			target:     "/explainers",
			wantStatus: http.StatusOK,
			contains:   []string{`href="/explainers/sessions"`, "How sessions work", "💬"},
		},
		{
			name:       "explainer",
			target:     "/explainers/sessions",
			wantStatus: http.StatusOK,
			contains:   []string{"<h2>Overview</h2>", "<strong>session</strong>"},
		},
		{
			name:       "unknown explainer",
			target:     "/explainers/missing",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid explainer id",
			target:     "/explainers/Bad.Name",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unknown route",
			target:     "/nowhere",
			wantStatus: http.StatusNotFound,
			contains:   []string{"Back to Mission Control"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr := get(t, srv, tt.target)
			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("Content-Type = %q", ct)
			}
			body := rr.Body.String()
			for _, want := range tt.contains {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q", want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(body, unwanted) {
					t.Errorf("body contains %q", unwanted)
				}
			}
		})
	}
}

func TestFactsPage_Empty(t *testing.T) {
	t.Parallel()

	body := get(t, newTestServer(t, false, fragmentRenderer{}), "/facts").Body.String()
	for _, want := range []string{"No claims tracked yet", "Waiting for first claim...", "—"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestExplainerPage_RenderError(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, false, failingRenderer{})
	if rr := get(t, srv, "/explainers/sessions"); rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
	if rr := get(t, srv, "/api/explainers/sessions"); rr.Code != http.StatusInternalServerError {
		t.Errorf("api status = %d, want 500", rr.Code)
	}
}

func TestExplainerPage_NoRenderer(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, false, nil)
	if rr := get(t, srv, "/explainers/sessions"); rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
}

// ---------------------------------------------------------------------------
// TestExplainerPDF - PDF download route
// ---------------------------------------------------------------------------

type stubExporter struct {
	got dashboard.Explainer
	err error
}

func (s *stubExporter) ExportPDF(_ context.Context, e dashboard.Explainer) ([]byte, error) {
	s.got = e
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-1.7 " + e.ID), nil
}

func newPDFServer(t *testing.T, exporter PDFExporter) *Server {
	t.Helper()

	store, err := dashboard.NewStoreFS(fixtureFS(false), discard())
	if err != nil {
		t.Fatalf("NewStoreFS: %v", err)
	}
	srv, err := New(Options{
		Data:      store,
		Renderer:  fragmentRenderer{},
		PDF:       exporter,
		Dashboard: config.DefaultConfig().Dashboard,
		Logger:    discard(),
		Now:       func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func TestExplainerPDF(t *testing.T) {
	t.Parallel()

	exporter := &stubExporter{}
	srv := newPDFServer(t, exporter)

	rr := get(t, srv, "/explainers/sessions/pdf")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); cd != `attachment; filename="sessions.pdf"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if rr.Body.String() != "%PDF-1.7 sessions" {
		t.Errorf("body = %q", rr.Body.String())
	}
	if exporter.got.Title != "Sessions" {
		t.Errorf("exported explainer = %+v, want Sessions", exporter.got)
	}

	page := get(t, srv, "/explainers/sessions")
	if !strings.Contains(page.Body.String(), `href="/explainers/sessions/pdf"`) {
		t.Error("explainer page should link the PDF download")
	}
}

func TestExplainerPDF_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		exporter PDFExporter
		target   string
		want     int
	}{
		{"disabled", nil, "/explainers/sessions/pdf", http.StatusNotFound},
		{"unknown explainer", &stubExporter{}, "/explainers/nope/pdf", http.StatusNotFound},
		{"invalid id", &stubExporter{}, "/explainers/..%2Fetc/pdf", http.StatusNotFound},
		{"export failure", &stubExporter{err: errors.New("no chrome")}, "/explainers/sessions/pdf", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := newPDFServer(t, tt.exporter)
			if rr := get(t, srv, tt.target); rr.Code != tt.want {
				t.Errorf("GET %s status = %d, want %d", tt.target, rr.Code, tt.want)
			}
		})
	}
}

func TestExplainerPage_NoPDFLink(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, false, fragmentRenderer{})
	if strings.Contains(get(t, srv, "/explainers/sessions").Body.String(), "/pdf") {
		t.Error("PDF link should be hidden without an exporter")
	}
}

// ---------------------------------------------------------------------------
// TestAPI - JSON endpoints
// ---------------------------------------------------------------------------

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding %q: %v", rr.Body.String(), err)
	}
	return v
}

func TestAPI(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, true, fragmentRenderer{})

	t.Run("activities", func(t *testing.T) {
		t.Parallel()

		all := decode[[]map[string]any](t, get(t, srv, "/api/activities"))
		if len(all) != 2 {
			t.Errorf("got %d activities, want 2", len(all))
		}
		filtered := decode[[]map[string]any](t, get(t, srv, "/api/activities?q=digest"))
		if len(filtered) != 1 || filtered[0]["id"] != "a1" {
			t.Errorf("filtered = %v", filtered)
		}
	})

	t.Run("schedule", func(t *testing.T) {
		t.Parallel()

		got := decode[map[string][]map[string]any](t, get(t, srv, "/api/schedule"))
		if len(got["recurring"]) != 1 || len(got["oneTime"]) != 1 {
			t.Errorf("schedule = %v", got)
		}
	})

	t.Run("claims", func(t *testing.T) {
		t.Parallel()

		got := decode[claimsResponse](t, get(t, srv, "/api/claims?status=verified"))
		if got.Stats.TotalClaims != 2 || got.Stats.HallucinationRate != 50 {
			t.Errorf("stats = %+v", got.Stats)
		}
		if len(got.Claims) != 1 || got.Claims[0].ID != "c1" {
			t.Errorf("claims = %+v", got.Claims)
		}
	})

	t.Run("explainers", func(t *testing.T) {
		t.Parallel()

		rr := get(t, srv, "/api/explainers")
		got := decode[[]map[string]any](t, rr)
		if len(got) != 1 || got[0]["id"] != "sessions" || got[0]["title"] != "Sessions" {
			t.Errorf("explainers = %v", got)
		}
		if _, ok := got[0]["content"]; ok {
			t.Error("explainer list exposes content")
		}
	})

	t.Run("explainer", func(t *testing.T) {
		t.Parallel()

		got := decode[map[string]any](t, get(t, srv, "/api/explainers/sessions"))
		html, _ := got["html"].(string)
		if !strings.HasPrefix(html, "<h2>Overview</h2>") {
			t.Errorf("html = %q", html)
		}
	})

	t.Run("explainer not found", func(t *testing.T) {
		t.Parallel()

		rr := get(t, srv, "/api/explainers/missing")
		if rr.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rr.Code)
		}
		if got := decode[errorResponse](t, rr); !strings.Contains(got.Error, "missing") {
			t.Errorf("error = %q", got.Error)
		}
	})

	t.Run("unknown endpoint", func(t *testing.T) {
		t.Parallel()

		rr := get(t, srv, "/api/nope")
		if rr.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rr.Code)
		}
		decode[errorResponse](t, rr)
	})
}

func TestStaticAndHealth(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, false, fragmentRenderer{})

	tests := []struct {
		target   string
		wantType string
		contains string
	}{
		{"/healthz", "text/plain; charset=utf-8", "ok"},
		{"/static/style.css", "text/css; charset=utf-8", ".tone-blue"},
		{"/static/highlight.css", "text/css; charset=utf-8", ".chroma"},
	}

	for _, tt := range tests {
		rr := get(t, srv, tt.target)
		if rr.Code != http.StatusOK {
			t.Errorf("%s: status = %d", tt.target, rr.Code)
		}
		if ct := rr.Header().Get("Content-Type"); ct != tt.wantType {
			t.Errorf("%s: Content-Type = %q, want %q", tt.target, ct, tt.wantType)
		}
		if !strings.Contains(rr.Body.String(), tt.contains) {
			t.Errorf("%s: body missing %q", tt.target, tt.contains)
		}
	}
}

// ---------------------------------------------------------------------------
// TestServe - Lifecycle
// ---------------------------------------------------------------------------

func TestServe_Shutdown(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, false, fragmentRenderer{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln, RunOptions{ReadTimeout: time.Second, WriteTimeout: time.Second}) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(ShutdownGrace + time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestRun_AddressInUse(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = ln.Close() }()

	srv := newTestServer(t, false, fragmentRenderer{})
	err = srv.Run(context.Background(), RunOptions{Addr: ln.Addr().String()})
	if !errors.Is(err, ErrListen) {
		t.Errorf("error = %v, want ErrListen", err)
	}
}

// ---------------------------------------------------------------------------
// TestMiddleware - Request logging and panic recovery
// ---------------------------------------------------------------------------

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	srv := newTestServer(t, false, fragmentRenderer{})
	srv.logger = logger
	srv.router = srv.routes()

	get(t, srv, "/embeds/nope")

	out := buf.String()
	for _, want := range []string{"msg=\"http request\"", "method=GET", "path=/embeds/nope", "status=404", "request_id="} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q in %q", want, out)
		}
	}
}

func TestRecoverer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := recoverer(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	rr := get(t, h, "/")
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
	if !strings.Contains(buf.String(), "kaboom") || !strings.Contains(buf.String(), "stack=") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestStatusRecorder_DefaultStatus(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	rec := &statusRecorder{ResponseWriter: rr, status: http.StatusTeapot}
	_, _ = rec.Write([]byte("hi"))
	rec.WriteHeader(http.StatusNotFound)

	if rec.status != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.status)
	}
}
