package server

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	httptrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/net/http"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	apiv2 "github.com/hashicorp-forge/catalog/internal/api/v2"
	"github.com/hashicorp-forge/catalog/internal/cmd/base"
	"github.com/hashicorp-forge/catalog/internal/server"
)

type Command struct {
	*base.Command

	flagAddr   string
	flagConfig string

	// ctx is the parent of the signal context, context.Background() if nil.
	ctx context.Context

	// listening, if set, is called once the server accepts connections.
	listening func(addr net.Addr)
}

func (c *Command) Synopsis() string {
	return "Run the catalog API server"
}

func (c *Command) Help() string {
	return `Usage: catalog server [options]

  This command runs the catalog HTTP API. Products and projects are served at
  /api/v2/products/{uuid-or-slug} and /api/v2/projects/{uuid-or-slug}.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(
		flag.NewFlagSet("server", flag.ContinueOnError))

	f.StringVar(
		&c.flagAddr, "addr", "",
		"Address to bind to for listening. Overrides the config file.",
	)
	f.StringVar(
		&c.flagConfig, "config", "",
		"Path to catalog config file. Defaults to a local SQLite database.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	cfg, err := c.LoadConfig(c.flagConfig)
	if err != nil {
		ui.Error(fmt.Sprintf("error parsing config file: %v", err))
		return 1
	}
	if c.flagAddr != "" {
		cfg.Server.Addr = c.flagAddr
	}
	log := cfg.NewLogger("catalog")

	db, err := c.OpenDatabase(cfg, log.Named("database"))
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	sqlDB, err := db.DB()
	if err != nil {
		ui.Error(fmt.Sprintf("error getting underlying SQL DB: %v", err))
		return 1
	}
	defer sqlDB.Close()

	srv := server.Server{
		Config: cfg,
		DB:     db,
		Logger: log,
	}

	handler := newHandler(srv)
	if cfg.Datadog.Enabled {
		tracer.Start(
			tracer.WithService(cfg.Datadog.Service),
			tracer.WithEnv(cfg.Datadog.Env),
		)
		defer tracer.Stop()
		log.Info("datadog tracing enabled", "service", cfg.Datadog.Service)
	}

	parent := c.ctx
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := c.serve(ctx, httpServer, log, cfg.ShutdownTimeout()); err != nil {
		ui.Error(err.Error())
		return 1
	}

	return 0
}

// serve runs httpServer until ctx is done, then shuts it down gracefully.
func (c *Command) serve(
	ctx context.Context,
	httpServer *http.Server,
	log hclog.Logger,
	shutdownTimeout time.Duration,
) error {
	ln, err := net.Listen("tcp", httpServer.Addr)
	if err != nil {
		return fmt.Errorf("error listening on %s: %w", httpServer.Addr, err)
	}
	log.Info("listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()
	if c.listening != nil {
		c.listening(ln.Addr())
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error running server: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	return nil
}

// newHandler returns the API handler, wrapped for tracing when Datadog is
// enabled.
func newHandler(srv server.Server) http.Handler {
	var h http.Handler = apiv2.NewMux(srv)
	if srv.Config.Datadog.Enabled {
		h = httptrace.WrapHandler(h, srv.Config.Datadog.Service, "catalog.api")
	}
	return logRequests(h, srv.Logger)
}

// statusRecorder captures the response status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log hclog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
