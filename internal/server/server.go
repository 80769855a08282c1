// Package server serves the Mission Control dashboard: server-rendered tabs
// and a JSON API over the current dataset snapshot.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/mission-control/internal/assets"
	"github.com/alnah/mission-control/internal/config"
	"github.com/alnah/mission-control/internal/dashboard"
)

// ShutdownGrace bounds how long Run waits for in-flight requests.
const ShutdownGrace = 5 * time.Second

// UpcomingLimit is the number of one-time tasks shown on the calendar.
const UpcomingLimit = 10

// DataSource provides the current dataset.
type DataSource interface {
	Snapshot() *dashboard.Dataset
}

// FragmentRenderer converts explainer markdown to an HTML fragment.
type FragmentRenderer interface {
	RenderFragment(ctx context.Context, markdown string) (string, error)
}

// PDFExporter prints an explainer as a standalone PDF.
type PDFExporter interface {
	ExportPDF(ctx context.Context, e dashboard.Explainer) ([]byte, error)
}

// Options configures New. Loader defaults to the embedded assets and
// Logger to slog.Default(). Without PDF the download route answers 404.
type Options struct {
	Data         DataSource
	Renderer     FragmentRenderer
	PDF          PDFExporter
	Dashboard    config.DashboardConfig
	Loader       assets.Loader
	HighlightCSS string
	Logger       *slog.Logger
	Now          func() time.Time
}

// Server is the dashboard HTTP handler.
type Server struct {
	data      DataSource
	renderer  FragmentRenderer
	pdf       PDFExporter
	site      config.DashboardConfig
	pages     pageSet
	style     string
	highlight string
	dates     formatters
	logger    *slog.Logger
	now       func() time.Time
	router    chi.Router
}

// New parses the page templates and builds the router.
func New(opts Options) (*Server, error) {
	if opts.Data == nil {
		return nil, ErrNoData
	}
	if opts.Loader == nil {
		opts.Loader = assets.NewEmbeddedLoader()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	dates, err := newFormatters(opts.Dashboard)
	if err != nil {
		return nil, err
	}
	pages, err := loadPages(opts.Loader, dates.funcMap())
	if err != nil {
		return nil, err
	}
	style, err := opts.Loader.LoadStyle(assets.StyleDashboard)
	if err != nil {
		return nil, err
	}

	s := &Server{
		data:      opts.Data,
		renderer:  opts.Renderer,
		pdf:       opts.PDF,
		site:      opts.Dashboard,
		pages:     pages,
		style:     style,
		highlight: opts.HighlightCSS,
		dates:     dates,
		logger:    opts.Logger,
		now:       opts.Now,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(recoverer(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Get("/static/style.css", s.handleCSS(func() string { return s.style }))
	r.Get("/static/highlight.css", s.handleCSS(func() string { return s.highlight }))

	r.Get("/", s.handleActivity)
	r.Get("/calendar", s.handleCalendar)
	r.Get("/newsletters", s.handleNewsletters)
	r.Get("/facts", s.handleFacts)
	r.Get("/embeds/{id}", s.handleEmbed)
	r.Get("/explainers", s.handleExplainers)
	r.Get("/explainers/{id}", s.handleExplainer)
	r.Get("/explainers/{id}/pdf", s.handleExplainerPDF)

	r.Route("/api", func(r chi.Router) {
		r.Get("/activities", s.apiActivities)
		r.Get("/schedule", s.apiSchedule)
		r.Get("/claims", s.apiClaims)
		r.Get("/explainers", s.apiExplainers)
		r.Get("/explainers/{id}", s.apiExplainer)
		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusNotFound, "not found")
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.notFound(w, r, "The page you are looking for does not exist")
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// RunOptions configures Run.
type RunOptions struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Run listens on opts.Addr and serves until ctx is cancelled, then shuts
// down gracefully within ShutdownGrace.
func (s *Server) Run(ctx context.Context, opts RunOptions) error {
	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrListen, opts.Addr, err)
	}
	return s.Serve(ctx, ln, opts)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener, opts RunOptions) error {
	srv := &http.Server{
		Handler:           s,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadTimeout,
		WriteTimeout:      opts.WriteTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("dashboard listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownGrace)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
