package main

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	httpadapter "svw.info/sudogen/internal/adapters/http"
	"svw.info/sudogen/internal/adapters/ws"
	"svw.info/sudogen/internal/config"
	"svw.info/sudogen/internal/generator"
	"svw.info/sudogen/internal/infrastructure/storage"
	"svw.info/sudogen/internal/ports"
	"svw.info/sudogen/internal/pregen"
	"svw.info/sudogen/internal/solver"
	"svw.info/sudogen/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and websocket API server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if logLevel == "info" && cfg.LogLevel != "" {
			configureLogging(cfg.LogLevel)
		}
		return serve(cmd.Context(), cfg)
	},
}

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Hijack passes through to the underlying writer so the websocket
// upgrade on /ws/play still works behind the logging middleware.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	if w.status == 0 {
		w.status = http.StatusSwitchingProtocols
	}
	return hj.Hijack()
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// requestLogger logs method, path, status, bytes, and duration per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		logrus.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"status": sw.status,
			"bytes":  sw.bytes,
			"dur":    time.Since(start).Round(time.Millisecond),
		}).Info("http")
	})
}

func serve(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = os.MkdirAll(cfg.DataDir, 0o755)

	// Stores: Redis and Postgres when configured, in-memory otherwise.
	var games ports.GameStore = storage.NewMemoryGames()
	if cfg.RedisURL != "" {
		rg := storage.NewRedisGames(cfg.RedisURL, storage.DefaultGameTTL)
		if err := rg.Ping(ctx); err != nil {
			return err
		}
		defer rg.Close()
		games = rg
		logrus.Info("game sessions in redis")
	}
	var scores ports.ScoreStore = storage.NewMemoryScores()
	if cfg.DatabaseURL != "" {
		pg, err := storage.NewPostgresScores(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pg.Close()
		scores = pg
		logrus.Info("leaderboard in postgres")
	}

	engine := generator.New()
	uc := usecase.NewService(
		engine,
		solver.NewBacktrackingSolver(),
		games,
		scores,
		storage.NewFS(cfg.DataDir),
	)

	if cfg.PregenDepth > 0 {
		pool := pregen.New(engine, cfg.PregenDepth)
		pool.Start()
		defer pool.Stop()
		uc.Warm = pool
	}

	mux := http.NewServeMux()
	httpadapter.New(uc).Register(mux)
	ws.New(uc).Register(mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           requestLogger(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{"addr": cfg.Addr, "data": cfg.DataDir}).Info("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
