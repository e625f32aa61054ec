package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/meetzone/meetzone/internal/infrastructure/configs"
	"github.com/meetzone/meetzone/internal/infrastructure/logging"
	"github.com/meetzone/meetzone/internal/infrastructure/metrics"
	"github.com/meetzone/meetzone/internal/infrastructure/ratelimiter"
	countriesHandler "github.com/meetzone/meetzone/internal/presentation/handler/countries"
	healthHandler "github.com/meetzone/meetzone/internal/presentation/handler/health"
	schedulesHandler "github.com/meetzone/meetzone/internal/presentation/handler/schedules"
	worldclockHandler "github.com/meetzone/meetzone/internal/presentation/handler/worldclock"
)

type Application struct {
	config            configs.Config
	schedulesHandler  schedulesHandler.Handler
	countriesHandler  countriesHandler.Handler
	worldClockHandler worldclockHandler.Handler
	healthHandler     healthHandler.Handler
	logger            logging.Logger
	ratelimiter       ratelimiter.Limiter
	metrics           *metrics.Metrics
}

func NewApplication(
	config configs.Config,
	schedulesHandler schedulesHandler.Handler,
	countriesHandler countriesHandler.Handler,
	worldClockHandler worldclockHandler.Handler,
	healthHandler healthHandler.Handler,
	logger logging.Logger,
	ratelimiter ratelimiter.Limiter,
	metrics *metrics.Metrics,
) *Application {
	return &Application{
		config:            config,
		schedulesHandler:  schedulesHandler,
		countriesHandler:  countriesHandler,
		worldClockHandler: worldClockHandler,
		healthHandler:     healthHandler,
		logger:            logger,
		ratelimiter:       ratelimiter,
		metrics:           metrics,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(app.enableCors)
	r.Use(app.loggerMiddleware)
	r.Use(app.metricsMiddleware)

	r.Route("/api", func(r chi.Router) {
		// The websocket feed stays outside the timeout and rate-limit
		// middleware; both assume short request/response cycles.
		r.Get("/worldclock/live", app.worldClockHandler.LiveHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))
			r.Use(app.rateLimiterMiddleware)

			r.Route("/schedules", func(r chi.Router) {
				r.Post("/", app.schedulesHandler.CreateScheduleHandler)
				r.Get("/{scheduleId}", app.schedulesHandler.GetScheduleHandler)
				r.Put("/{scheduleId}/draft", app.schedulesHandler.UpdateDraftHandler)
				r.Post("/{scheduleId}/participants", app.schedulesHandler.AddParticipantHandler)
				r.Delete("/{scheduleId}/participants/{participantId}", app.schedulesHandler.RemoveParticipantHandler)
				r.Post("/{scheduleId}/submit", app.schedulesHandler.SubmitHandler)
			})

			r.Route("/countries", func(r chi.Router) {
				r.Get("/", app.countriesHandler.ListCountriesHandler)
				r.Get("/search", app.countriesHandler.SearchCountriesHandler)
				r.Get("/{code}", app.countriesHandler.GetCountryHandler)
			})

			r.Route("/worldclock", func(r chi.Router) {
				r.Get("/", app.worldClockHandler.SnapshotHandler)
				r.Get("/{region}/{city}", app.worldClockHandler.ZoneHandler)
			})

			r.Get("/health", app.healthHandler.GetHealth)
			r.Get("/healthz", app.healthHandler.GetHealth)
			r.Get("/ready", app.healthHandler.GetHealth)
			r.Get("/live", app.healthHandler.GetHealth)
		})
	})

	r.Handle("/metrics", app.metrics.Handler())

	return r
}

func (app *Application) Run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", app.config.HTTP.Host, app.config.HTTP.Port),
		Handler:      mux,
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Info(logging.General, logging.Shutdown, "signal caught", map[logging.ExtraKey]any{
			"signal": s.String(),
		})

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Info(logging.General, logging.Startup, "server has started", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Info(logging.General, logging.Shutdown, "server has stopped", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	return nil
}
