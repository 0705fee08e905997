package handler

import (
	"context"

	"github.com/itchan-dev/roadboard/backend/internal/service"
	"github.com/itchan-dev/roadboard/shared/config"
)

// HealthChecker reports whether the store can serve requests.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	board  service.BoardService
	health HealthChecker
	cfg    *config.Config
}

func New(board service.BoardService, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{
		board:  board,
		health: health,
		cfg:    cfg,
	}
}
