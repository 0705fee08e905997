package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/itchan-dev/roadboard/shared/domain"
	internal_errors "github.com/itchan-dev/roadboard/shared/errors"
	shared_pg "github.com/itchan-dev/roadboard/shared/storage/pg"
	"github.com/lib/pq"
)

const boardColumns = "b.id, b.owner_id, b.title, b.course, b.board_img, b.start_point, b.end_point, b.like_count, b.created_at"

// GetBoard loads one board and the requested relations in a single snapshot.
func (s *Storage) GetBoard(ctx context.Context, id domain.BoardId, rel domain.BoardRelations) (*domain.Board, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: board %s", internal_errors.NotFound, id)
	}

	var boards []domain.Board
	err := shared_pg.WithTxOptions(ctx, s.db, shared_pg.ReadSnapshot, func(tx *sql.Tx) error {
		var err error
		boards, err = s.queryBoards(ctx, tx, "b.id = $1", []any{id}, rel)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(boards) == 0 {
		return nil, fmt.Errorf("%w: board %s", internal_errors.NotFound, id)
	}
	return &boards[0], nil
}

// ListBoards returns matching boards newest first.
func (s *Storage) ListBoards(ctx context.Context, filter domain.BoardFilter, rel domain.BoardRelations) ([]domain.Board, error) {
	if filter.Ids != nil && len(filter.Ids) == 0 {
		return []domain.Board{}, nil
	}

	var (
		conds []string
		args  []any
	)
	if filter.Ids != nil {
		ids := make([]string, 0, len(filter.Ids))
		for _, id := range filter.Ids {
			if _, err := uuid.Parse(id); err == nil {
				ids = append(ids, id)
			}
		}
		args = append(args, pq.Array(ids))
		conds = append(conds, fmt.Sprintf("b.id = ANY($%d::uuid[])", len(args)))
	}
	if filter.OwnerId != nil {
		args = append(args, *filter.OwnerId)
		conds = append(conds, fmt.Sprintf("b.owner_id = $%d", len(args)))
	}
	if filter.StartPoint != "" {
		args = append(args, filter.StartPoint)
		conds = append(conds, fmt.Sprintf("b.start_point = $%d", len(args)))
	}
	if filter.EndPoint != "" {
		args = append(args, filter.EndPoint)
		conds = append(conds, fmt.Sprintf("b.end_point = $%d", len(args)))
	}
	where := "TRUE"
	if len(conds) > 0 {
		where = strings.Join(conds, " AND ")
	}

	var boards []domain.Board
	err := shared_pg.WithTxOptions(ctx, s.db, shared_pg.ReadSnapshot, func(tx *sql.Tx) error {
		var err error
		boards, err = s.queryBoards(ctx, tx, where, args, rel)
		return err
	})
	if err != nil {
		return nil, err
	}
	return boards, nil
}

// queryBoards runs the board select and attaches relations. where is built
// from fixed fragments only; values always travel as args.
func (s *Storage) queryBoards(ctx context.Context, q shared_pg.Querier, where string, args []any, rel domain.BoardRelations) ([]domain.Board, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT "+boardColumns+" FROM boards b WHERE "+where+" ORDER BY b.created_at DESC, b.id",
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query boards: %w", err)
	}
	defer rows.Close()

	boards := []domain.Board{}
	ownerIds := []domain.UserId{}
	for rows.Next() {
		var (
			b       domain.Board
			ownerId domain.UserId
		)
		if err := rows.Scan(&b.Id, &ownerId, &b.Title, &b.Course, &b.BoardImg, &b.StartPoint, &b.EndPoint, &b.Like, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan board row: %w", err)
		}
		boards = append(boards, b)
		ownerIds = append(ownerIds, ownerId)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	rows.Close()

	if len(boards) == 0 {
		return boards, nil
	}
	if err := s.attachRelations(ctx, q, boards, ownerIds, rel); err != nil {
		return nil, err
	}
	return boards, nil
}

func (s *Storage) SaveBoard(ctx context.Context, ownerId domain.UserId, draft domain.BoardDraft) (*domain.Board, error) {
	b := domain.Board{
		BoardMetadata: domain.BoardMetadata{
			Id:         uuid.NewString(),
			Title:      draft.Title,
			Course:     draft.Course,
			BoardImg:   draft.BoardImg,
			StartPoint: draft.StartPoint,
			EndPoint:   draft.EndPoint,
		},
		Entries:  []domain.PersonalMapEntry{},
		Comments: []domain.Comment{},
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO boards (id, owner_id, title, course, board_img, start_point, end_point)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING like_count, created_at`,
		b.Id, ownerId, b.Title, b.Course, b.BoardImg, b.StartPoint, b.EndPoint,
	).Scan(&b.Like, &b.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return nil, fmt.Errorf("%w: user %d", internal_errors.NotFound, ownerId)
		}
		return nil, fmt.Errorf("failed to insert board: %w", err)
	}
	return &b, nil
}

// UpdateBoard replaces the locally owned board fields. Entries are untouched.
func (s *Storage) UpdateBoard(ctx context.Context, id domain.BoardId, draft domain.BoardDraft) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: board %s", internal_errors.NotFound, id)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE boards
		SET title = $2, course = $3, board_img = $4, start_point = $5, end_point = $6
		WHERE id = $1`,
		id, draft.Title, draft.Course, draft.BoardImg, draft.StartPoint, draft.EndPoint)
	if err != nil {
		return fmt.Errorf("failed to update board: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: board %s", internal_errors.NotFound, id)
	}
	return nil
}

// DeleteBoard removes the board and its entries together. Zero affected rows
// means the board was already gone.
func (s *Storage) DeleteBoard(ctx context.Context, id domain.BoardId) (int64, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, nil
	}
	var affected int64
	err := shared_pg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		// entries first; the FK cascade would cover them as well
		if _, err := tx.ExecContext(ctx, "DELETE FROM personal_map_entries WHERE board_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete board entries: %w", err)
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM boards WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete board: %w", err)
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}
