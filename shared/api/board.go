package api

import (
	"github.com/itchan-dev/roadboard/shared/domain"
)

// Request DTOs

// CreateBoardRequest carries the board fields and the course stops in route order.
// Title blankness is checked by the service after trimming.
type CreateBoardRequest struct {
	Title      string              `json:"title"`
	Course     string              `json:"course"`
	BoardImg   string              `json:"boardImg"`
	StartPoint string              `json:"startPoint"`
	EndPoint   string              `json:"endPoint"`
	Info       []domain.CourseInfo `json:"info" validate:"required,dive"`
}

func (r CreateBoardRequest) Draft() domain.BoardDraft {
	return domain.BoardDraft{
		Title:      r.Title,
		Course:     r.Course,
		BoardImg:   r.BoardImg,
		StartPoint: r.StartPoint,
		EndPoint:   r.EndPoint,
	}
}

type UpdateBoardRequest struct {
	CreateBoardRequest
}

// Response DTOs

type BoardResponse struct {
	domain.EnrichedBoard
}

type BoardListResponse struct {
	Boards []domain.EnrichedBoard `json:"boards"`
}

type DeleteBoardResponse struct {
	Result  domain.DeleteResult `json:"result"`
	Message string              `json:"message"`
}

type ToggleLikeResponse struct {
	Liked bool `json:"liked"`
	Like  int  `json:"like"`
}
