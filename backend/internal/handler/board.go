package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/itchan-dev/roadboard/shared/api"
	"github.com/itchan-dev/roadboard/shared/domain"
	mw "github.com/itchan-dev/roadboard/shared/middleware"
	"github.com/itchan-dev/roadboard/shared/utils"
)

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.CreateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board, err := h.board.Create(r.Context(), user.Id, body.Draft(), body.Info)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.BoardResponse{EnrichedBoard: *board})
}

func (h *Handler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	boardId := chi.URLParam(r, "board")

	var body api.UpdateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board, err := h.board.Update(r.Context(), user.Id, boardId, body.Draft(), body.Info)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.BoardResponse{EnrichedBoard: *board})
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	boardId := chi.URLParam(r, "board")

	board, err := h.board.Fetch(r.Context(), boardId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.BoardResponse{EnrichedBoard: *board})
}

// DeleteBoard answers 200 for every outcome; the result field tells them apart.
func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	boardId := chi.URLParam(r, "board")

	result, err := h.board.Delete(r.Context(), user.Id, boardId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.DeleteBoardResponse{Result: result, Message: result.Message()})
}

// GetBoards lists boards matching the start_point/end_point query parameters.
// Both are optional; with neither every board is returned.
func (h *Handler) GetBoards(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.BoardFilter{
		StartPoint: query.Get("start_point"),
		EndPoint:   query.Get("end_point"),
	}

	boards, err := h.board.FindByCriteria(r.Context(), filter)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeBoardList(w, boards)
}

func (h *Handler) GetMyBoards(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	boards, err := h.board.FindByUser(r.Context(), user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeBoardList(w, boards)
}

func (h *Handler) GetMyLikes(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	boards, err := h.board.FindByLikes(r.Context(), user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeBoardList(w, boards)
}

func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}
	boardId := chi.URLParam(r, "board")

	liked, count, err := h.board.ToggleLike(r.Context(), user.Id, boardId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, api.ToggleLikeResponse{Liked: liked, Like: count})
}

func writeBoardList(w http.ResponseWriter, boards []domain.EnrichedBoard) {
	if boards == nil {
		boards = []domain.EnrichedBoard{}
	}
	utils.WriteJSON(w, http.StatusOK, api.BoardListResponse{Boards: boards})
}
