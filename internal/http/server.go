// Package http serves the visualizations dashboard: the page, the figure
// endpoints plotly.js draws from, the XLSX export and health probes.
package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"ledgerviz/internal/chart"
	applog "ledgerviz/internal/log"
	"ledgerviz/internal/middleware/ratelimit"
	"ledgerviz/internal/middleware/security"
	"ledgerviz/internal/middleware/trace"
	"ledgerviz/internal/services"
	appweb "ledgerviz/web"
)

// Visualizer is the render side the handlers depend on.
type Visualizer interface {
	CashFlow(ctx context.Context) (chart.CashFlowView, error)
	Heatmap(ctx context.Context) (chart.HeatmapView, error)
	Report(ctx context.Context) (services.Report, error)
	Ready(ctx context.Context) error
}

type Options struct {
	ConvertURL string
	Logger     *applog.Logger
	// ExportsPerMinute caps workbook downloads per client.
	ExportsPerMinute int
	TrustedProxies   []string
}

type Server struct {
	http.Server
	templates  *template.Template
	viz        Visualizer
	convertURL string
	logger     *applog.Logger
	limiter    *ratelimit.Limiter
	started    time.Time

	shutdownOnce sync.Once
}

func NewServer(addr string, viz Visualizer, opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = applog.FromContext(context.Background())
	}
	if opts.ConvertURL == "" {
		opts.ConvertURL = "/"
	}
	logger := opts.Logger.WithComponent(applog.ComponentHTTP)

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	clientIP, err := security.NewClientIP(opts.TrustedProxies...)
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("mount static assets: %w", err)
	}

	s := &Server{
		templates:  t,
		viz:        viz,
		convertURL: opts.ConvertURL,
		logger:     logger,
		limiter:    ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.ExportsPerMinute}),
		started:    time.Now(),
	}

	mux := http.NewServeMux()
	mux.Handle("GET /static/", security.StaticAssets(3600)(http.StripPrefix("/static/", http.FileServerFS(static))))
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/cashflow", s.handleCashFlow)
	mux.HandleFunc("GET /api/heatmap", s.handleHeatmap)
	mux.Handle("GET /export/report.xlsx", s.limiter.Middleware(clientIP.Extract)(http.HandlerFunc(s.handleExport)))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	tracer := trace.NewMiddleware(logger, clientIP.Extract)
	s.Server = http.Server{
		Addr:              addr,
		Handler:           security.Headers(security.DefaultHeadersConfig())(tracer.Middleware(mux)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Shutdown stops background goroutines before draining connections.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(s.limiter.Stop)
	return s.Server.Shutdown(ctx)
}
