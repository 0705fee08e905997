package service

import (
	"slices"

	"github.com/itchan-dev/roadboard/shared/domain"
)

// SortByCreatedDesc orders boards newest first. Boards created at the same
// instant keep their relative order.
func SortByCreatedDesc(boards []domain.EnrichedBoard) {
	slices.SortStableFunc(boards, func(a, b domain.EnrichedBoard) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
