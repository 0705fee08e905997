package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/itchan-dev/roadboard/shared/domain"
	internal_errors "github.com/itchan-dev/roadboard/shared/errors"
	shared_pg "github.com/itchan-dev/roadboard/shared/storage/pg"
)

// ToggleLike flips the like of userId on boardId and returns the new state
// together with the board's like counter.
func (s *Storage) ToggleLike(ctx context.Context, userId domain.UserId, boardId domain.BoardId) (bool, int, error) {
	if _, err := uuid.Parse(boardId); err != nil {
		return false, 0, fmt.Errorf("%w: board %s", internal_errors.NotFound, boardId)
	}

	var (
		liked bool
		count int
	)
	err := shared_pg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		// row lock serialises concurrent toggles on the same board
		err := tx.QueryRowContext(ctx, "SELECT like_count FROM boards WHERE id = $1 FOR UPDATE", boardId).Scan(&count)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: board %s", internal_errors.NotFound, boardId)
		}
		if err != nil {
			return fmt.Errorf("failed to lock board: %w", err)
		}

		res, err := tx.ExecContext(ctx, "DELETE FROM likes WHERE user_id = $1 AND board_id = $2", userId, boardId)
		if err != nil {
			return fmt.Errorf("failed to delete like: %w", err)
		}
		removed, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}

		delta := -1
		if removed == 0 {
			if _, err := tx.ExecContext(ctx, "INSERT INTO likes (user_id, board_id) VALUES ($1, $2)", userId, boardId); err != nil {
				return fmt.Errorf("failed to insert like: %w", err)
			}
			delta = 1
			liked = true
		}

		err = tx.QueryRowContext(ctx,
			"UPDATE boards SET like_count = GREATEST(like_count + $2, 0) WHERE id = $1 RETURNING like_count",
			boardId, delta).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to update like counter: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}
