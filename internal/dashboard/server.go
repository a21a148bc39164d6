// Package dashboard serves the data-exploration page.
//
// Every request re-runs the whole page: the session's widget values and the
// cached upload go through BuildView, and the result is executed against a
// single template. Inputs post back to small handlers that only update the
// session and redirect to the page.
package dashboard

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/charts"
	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/loader"
	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/logging"
	"github.com/DavidCumaru/INFNET-DEV-FRONT-STREAMLIT-TP3/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	cookieName   = "turismo_session"
	downloadName = "dados_filtrados.csv"
	version      = "1.0.0"
)

// Options configures the dashboard.
type Options struct {
	MaxUploadBytes int64
	MaxDisplayRows int
	Charts         charts.Options
	DefaultTheme   session.Theme
	SessionTTL     time.Duration
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		MaxUploadBytes: 200 << 20,
		MaxDisplayRows: 1000,
		Charts:         charts.DefaultOptions(),
		DefaultTheme:   session.Theme{Background: "#FFFFFF", Text: "#000000"},
		SessionTTL:     2 * time.Hour,
	}
}

// Server is the dashboard's HTTP handler plus the state it renders from.
type Server struct {
	opt      Options
	cache    *loader.Cache
	sessions *session.Store
	page     *template.Template
	mux      *http.ServeMux
	started  time.Time
}

var templateFuncs = template.FuncMap{
	"formatNumber": func(f float64) string {
		return fmt.Sprintf("%.4g", f)
	},
}

// New builds a Server that loads uploads through cache.
func New(cache *loader.Cache, opt Options) (*Server, error) {
	page, err := template.New("page.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s := &Server{
		opt:      opt,
		cache:    cache,
		sessions: session.NewStore(opt.DefaultTheme, opt.SessionTTL),
		page:     page,
		mux:      http.NewServeMux(),
		started:  time.Now(),
	}
	s.mux.HandleFunc("GET /{$}", s.indexHandler)
	s.mux.HandleFunc("POST /upload", s.uploadHandler)
	s.mux.HandleFunc("POST /update", s.updateHandler)
	s.mux.HandleFunc("POST /theme", s.themeHandler)
	s.mux.HandleFunc("GET /download", s.downloadHandler)
	s.mux.HandleFunc("GET /chart.png", s.chartHandler)
	s.mux.HandleFunc("GET /healthz", s.healthHandler)
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.mux.ServeHTTP(w, r)
	logging.Debugf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go s.sessions.Janitor(ctx, time.Minute, func(n int) {
		logging.Debugf("pruned %d idle session(s)", n)
	})

	errc := make(chan error, 1)
	go func() {
		logging.Infof("dashboard listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logging.Infof("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
