package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/roadboard/shared/domain"
	mw "github.com/itchan-dev/roadboard/shared/middleware"
)

type MockBoardService struct {
	MockCreate         func(ctx context.Context, ownerId domain.UserId, draft domain.BoardDraft, info []domain.CourseInfo) (*domain.EnrichedBoard, error)
	MockUpdate         func(ctx context.Context, ownerId domain.UserId, boardId domain.BoardId, draft domain.BoardDraft, info []domain.CourseInfo) (*domain.EnrichedBoard, error)
	MockFetch          func(ctx context.Context, boardId domain.BoardId) (*domain.EnrichedBoard, error)
	MockFindByUser     func(ctx context.Context, userId domain.UserId) ([]domain.EnrichedBoard, error)
	MockFindByLikes    func(ctx context.Context, userId domain.UserId) ([]domain.EnrichedBoard, error)
	MockFindByCriteria func(ctx context.Context, filter domain.BoardFilter) ([]domain.EnrichedBoard, error)
	MockDelete         func(ctx context.Context, requesterId domain.UserId, boardId domain.BoardId) (domain.DeleteResult, error)
	MockToggleLike     func(ctx context.Context, userId domain.UserId, boardId domain.BoardId) (bool, int, error)
}

func (m *MockBoardService) Create(ctx context.Context, ownerId domain.UserId, draft domain.BoardDraft, info []domain.CourseInfo) (*domain.EnrichedBoard, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, ownerId, draft, info)
	}
	return &domain.EnrichedBoard{}, nil
}

func (m *MockBoardService) Update(ctx context.Context, ownerId domain.UserId, boardId domain.BoardId, draft domain.BoardDraft, info []domain.CourseInfo) (*domain.EnrichedBoard, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, ownerId, boardId, draft, info)
	}
	return &domain.EnrichedBoard{}, nil
}

func (m *MockBoardService) Fetch(ctx context.Context, boardId domain.BoardId) (*domain.EnrichedBoard, error) {
	if m.MockFetch != nil {
		return m.MockFetch(ctx, boardId)
	}
	return &domain.EnrichedBoard{}, nil
}

func (m *MockBoardService) FindByUser(ctx context.Context, userId domain.UserId) ([]domain.EnrichedBoard, error) {
	if m.MockFindByUser != nil {
		return m.MockFindByUser(ctx, userId)
	}
	return nil, nil
}

func (m *MockBoardService) FindByLikes(ctx context.Context, userId domain.UserId) ([]domain.EnrichedBoard, error) {
	if m.MockFindByLikes != nil {
		return m.MockFindByLikes(ctx, userId)
	}
	return nil, nil
}

func (m *MockBoardService) FindByCriteria(ctx context.Context, filter domain.BoardFilter) ([]domain.EnrichedBoard, error) {
	if m.MockFindByCriteria != nil {
		return m.MockFindByCriteria(ctx, filter)
	}
	return nil, nil
}

func (m *MockBoardService) Delete(ctx context.Context, requesterId domain.UserId, boardId domain.BoardId) (domain.DeleteResult, error) {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, requesterId, boardId)
	}
	return domain.Deleted, nil
}

func (m *MockBoardService) ToggleLike(ctx context.Context, userId domain.UserId, boardId domain.BoardId) (bool, int, error) {
	if m.MockToggleLike != nil {
		return m.MockToggleLike(ctx, userId, boardId)
	}
	return true, 1, nil
}

const testUserId domain.UserId = 42

func createRequest(t *testing.T, method, url string, body []byte) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, url, bytes.NewBuffer(body))
}

// setupBoardRouter mounts the board handlers the way the real router does,
// with a fixed user standing in for the auth middleware on private routes.
func setupBoardRouter(service *MockBoardService) *chi.Mux {
	h := &Handler{board: service}
	router := chi.NewRouter()

	router.Get("/v1/boards", h.GetBoards)
	router.Get("/v1/boards/{board}", h.GetBoard)

	router.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				user := &domain.User{Id: testUserId, Nickname: "walker"}
				ctx := context.WithValue(r.Context(), mw.UserClaimsKey, user)
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		})
		r.Post("/v1/boards", h.CreateBoard)
		r.Put("/v1/boards/{board}", h.UpdateBoard)
		r.Delete("/v1/boards/{board}", h.DeleteBoard)
		r.Post("/v1/boards/{board}/like", h.ToggleLike)
		r.Get("/v1/me/boards", h.GetMyBoards)
		r.Get("/v1/me/likes", h.GetMyLikes)
	})

	// same handlers without a user in context
	router.Post("/anon/boards", h.CreateBoard)
	router.Get("/anon/me/boards", h.GetMyBoards)

	return router
}
