package setup

import (
	"context"
	"time"

	"github.com/itchan-dev/roadboard/backend/internal/handler"
	"github.com/itchan-dev/roadboard/backend/internal/restaurant"
	"github.com/itchan-dev/roadboard/backend/internal/service"
	"github.com/itchan-dev/roadboard/backend/internal/storage/pg"
	"github.com/itchan-dev/roadboard/shared/config"
	"github.com/itchan-dev/roadboard/shared/jwt"
	"github.com/itchan-dev/roadboard/shared/markdown"
	mw "github.com/itchan-dev/roadboard/shared/middleware"
	"github.com/itchan-dev/roadboard/shared/middleware/ratelimiter"
)

const limiterSweepInterval = 10 * time.Minute

// Dependencies holds everything the router and main need.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *mw.Auth
	WriteLimiter   *ratelimiter.KeyedLimiter
	ReadLimiter    *ratelimiter.KeyedLimiter
	Config         *config.Config
}

// Close releases the pool and background goroutines.
func (d *Dependencies) Close() {
	d.WriteLimiter.Stop()
	d.ReadLimiter.Stop()
	d.Storage.Cleanup()
}

// SetupDependencies connects to the database, migrates it and wires the services.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	restaurants := restaurant.New(cfg.Public.RestaurantService.BaseURL, cfg.Public.RestaurantService.Timeout)
	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	board := service.NewBoard(storage, storage, storage, restaurants, markdown.New(), service.Options{
		EnrichConcurrency: cfg.Public.EnrichConcurrency,
	})

	writeLimiter := ratelimiter.PerMinute(cfg.Public.WritesPerMinute)
	writeLimiter.StartJanitor(limiterSweepInterval)
	readLimiter := ratelimiter.PerMinute(cfg.Public.ReadsPerMinute)
	readLimiter.StartJanitor(limiterSweepInterval)

	return &Dependencies{
		Storage:        storage,
		Handler:        handler.New(board, storage, cfg),
		Jwt:            jwtService,
		AuthMiddleware: mw.NewAuth(jwtService),
		WriteLimiter:   writeLimiter,
		ReadLimiter:    readLimiter,
		Config:         cfg,
	}, nil
}
