package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/ratelimit"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	"github.com/BruksfildServices01/salon-scheduler/internal/storage"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	if err := run(cfg, logg); err != nil {
		logg.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *slog.Logger) error {
	db, err := dbpkg.NewDB(cfg, logg)
	if err != nil {
		return err
	}

	if err := validators.RegisterBindings(); err != nil {
		return err
	}

	// ------------------------------
	// Metrics
	// ------------------------------
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	// ------------------------------
	// Rate limiting
	// ------------------------------
	var limiter ratelimit.Limiter
	if cfg.RedisURL != "" {
		rl, err := ratelimit.NewRedisLimiter(cfg.RedisURL, "salon:ratelimit", cfg.LoginRatePerMinute, time.Minute)
		if err != nil {
			return err
		}
		defer rl.Close()
		if err := rl.Ping(context.Background()); err != nil {
			logg.Warn("redis unreachable, rate limiting fails open", "error", err)
		}
		limiter = rl
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.LoginRatePerMinute)
	}

	// ------------------------------
	// Payments
	// ------------------------------
	var gateway payment.Gateway
	if cfg.MercadoPagoAccessToken != "" {
		mp, err := payment.NewMercadoPago(cfg.MercadoPagoAccessToken)
		if err != nil {
			return err
		}
		gateway = mp
	} else {
		logg.Info("payments disabled, MERCADOPAGO_ACCESS_TOKEN not set")
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Log:      logg,
		Registry: reg,
		Metrics:  collector,
		Limiter:  limiter,
		Uploader: storage.FromConfig(cfg),
		Gateway:  gateway,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logg.Info("server running", "addr", cfg.Addr(), "s3", cfg.S3.Enabled(), "redis", cfg.RedisURL != "")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
