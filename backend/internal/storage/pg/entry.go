package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/itchan-dev/roadboard/shared/domain"
	internal_errors "github.com/itchan-dev/roadboard/shared/errors"
	"github.com/lib/pq"
)

// SavePersonalMapEntry inserts one entry. Entries of a board come back in
// the order they were saved.
func (s *Storage) SavePersonalMapEntry(ctx context.Context, entry domain.PersonalMapEntry) (*domain.PersonalMapEntry, error) {
	entry.Id = uuid.NewString()
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO personal_map_entries
			(id, board_id, restaurant_id, restaurant_name, address, lat, lng, img_url, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`,
		entry.Id, entry.BoardId, entry.RestaurantId, entry.RestaurantName, entry.Address,
		entry.Location.Lat, entry.Location.Lng, entry.ImgUrl, entry.Description,
	).Scan(&entry.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && (pqErr.Code == "23503" || pqErr.Code == "22P02") {
			return nil, fmt.Errorf("%w: board %s", internal_errors.NotFound, entry.BoardId)
		}
		return nil, fmt.Errorf("failed to insert personal map entry: %w", err)
	}
	return &entry, nil
}

// DeletePersonalMapEntries deletes the given entries in one statement and
// reports how many rows were removed.
func (s *Storage) DeletePersonalMapEntries(ctx context.Context, ids []domain.EntryId) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM personal_map_entries WHERE id = ANY($1::uuid[])", pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("failed to delete personal map entries: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}
