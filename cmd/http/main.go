package main

import (
	"context"
	"expvar"
	"log"
	"runtime"
	"time"

	"github.com/meetzone/meetzone/internal/infrastructure/configs"
	"github.com/meetzone/meetzone/internal/infrastructure/directory"
	"github.com/meetzone/meetzone/internal/infrastructure/logging"
	"github.com/meetzone/meetzone/internal/infrastructure/metrics"
	"github.com/meetzone/meetzone/internal/infrastructure/ratelimiter"
	"github.com/meetzone/meetzone/internal/infrastructure/repository"
	"github.com/meetzone/meetzone/internal/infrastructure/tracing"
	"github.com/meetzone/meetzone/internal/infrastructure/ws"
	"github.com/meetzone/meetzone/internal/presentation/api"
	"github.com/meetzone/meetzone/internal/presentation/handler/countries"
	"github.com/meetzone/meetzone/internal/presentation/handler/health"
	"github.com/meetzone/meetzone/internal/presentation/handler/schedules"
	"github.com/meetzone/meetzone/internal/presentation/handler/worldclock"
)

const (
	serviceName = "meetzone-api"
)

func main() {
	tracerCfg := tracing.NewDefaultConfig(serviceName)

	sh, err := tracing.InitTracer(tracerCfg)
	if err != nil {
		log.Fatalf("Failed to initialize the tracer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer sh(ctx)

	logger := logging.NewLogger(logging.NewDefaultConfig())

	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	m := metrics.New()

	directoryService := directory.NewService(cfg.Directory, logger, m.DirectoryFallback)
	scheduleRepository := repository.NewScheduleRepository(cfg.ScheduleStore.Capacity, cfg.ScheduleStore.IdleExpiry)

	// The feed ticks over a fixed snapshot; a restart refreshes it.
	bootCtx, bootCancel := context.WithTimeout(ctx, 30*time.Second)
	clockCountries := directoryService.ListCountries(bootCtx)
	bootCancel()

	wsCore := ws.NewCore(clockCountries, cfg.WorldClock.TickInterval, logger, m.FeedClients)
	go wsCore.Run(ctx)

	schedulesHandler := schedules.NewHandler(scheduleRepository, directoryService)
	countriesHandler := countries.NewHandler(directoryService)
	worldClockHandler := worldclock.NewHandler(directoryService, wsCore, logger)
	healthHandler := health.NewHandler()

	rl := ratelimiter.New(ratelimiter.Options{
		MaxRatePerSecond: cfg.RateLimiter.MaxRatePerSecond,
		MaxBurst:         cfg.RateLimiter.MaxBurst,
		CacheTTL:         cfg.RateLimiter.CacheTTL,
		SourceHeaderKey:  cfg.RateLimiter.SourceHeaderKey,
	})

	app := api.NewApplication(*cfg, *schedulesHandler, *countriesHandler, *worldClockHandler, *healthHandler, logger, rl, m)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	if err := app.Run(mux); err != nil {
		logger.Fatalf("server error: %v", err)
	}
}
