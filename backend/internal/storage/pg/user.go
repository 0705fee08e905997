package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/itchan-dev/roadboard/shared/domain"
	internal_errors "github.com/itchan-dev/roadboard/shared/errors"
	shared_pg "github.com/itchan-dev/roadboard/shared/storage/pg"
)

// GetUser resolves a user with owned boards (creation order) and likes.
func (s *Storage) GetUser(ctx context.Context, id domain.UserId) (*domain.User, error) {
	var user domain.User
	err := shared_pg.WithTxOptions(ctx, s.db, shared_pg.ReadSnapshot, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, "SELECT id, nickname, created_at FROM users WHERE id = $1", id).
			Scan(&user.Id, &user.Nickname, &user.CreatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: user %d", internal_errors.NotFound, id)
		}
		if err != nil {
			return fmt.Errorf("failed to query user: %w", err)
		}

		if user.Boards, err = ownedBoards(ctx, tx, id); err != nil {
			return err
		}
		user.Likes, err = likedBoards(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func ownedBoards(ctx context.Context, q shared_pg.Querier, userId domain.UserId) ([]domain.BoardRef, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, created_at FROM boards WHERE owner_id = $1 ORDER BY created_at, id", userId)
	if err != nil {
		return nil, fmt.Errorf("failed to query owned boards: %w", err)
	}
	defer rows.Close()

	refs := []domain.BoardRef{}
	for rows.Next() {
		var ref domain.BoardRef
		if err := rows.Scan(&ref.Id, &ref.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan owned board: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return refs, nil
}

func likedBoards(ctx context.Context, q shared_pg.Querier, userId domain.UserId) ([]domain.Like, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT board_id, created_at FROM likes WHERE user_id = $1 ORDER BY created_at, board_id", userId)
	if err != nil {
		return nil, fmt.Errorf("failed to query likes: %w", err)
	}
	defer rows.Close()

	likes := []domain.Like{}
	for rows.Next() {
		var l domain.Like
		if err := rows.Scan(&l.BoardId, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan like: %w", err)
		}
		likes = append(likes, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return likes, nil
}
