package pg

import (
	"context"
	"fmt"

	"github.com/itchan-dev/roadboard/shared/domain"
	shared_pg "github.com/itchan-dev/roadboard/shared/storage/pg"
	"github.com/lib/pq"
)

// attachRelations fills the requested relations of boards with one query per
// relation. ownerIds[i] is the owner of boards[i].
func (s *Storage) attachRelations(ctx context.Context, q shared_pg.Querier, boards []domain.Board, ownerIds []domain.UserId, rel domain.BoardRelations) error {
	boardIds := make([]string, len(boards))
	for i := range boards {
		boardIds[i] = boards[i].Id
	}

	if rel.Owner {
		owners, err := loadUsers(ctx, q, ownerIds)
		if err != nil {
			return err
		}
		for i := range boards {
			if u, ok := owners[ownerIds[i]]; ok {
				owner := u
				boards[i].Owner = &owner
			}
		}
	}

	if rel.Entries {
		entries, err := loadEntries(ctx, q, boardIds)
		if err != nil {
			return err
		}
		for i := range boards {
			boards[i].Entries = entries[boards[i].Id]
			if boards[i].Entries == nil {
				boards[i].Entries = []domain.PersonalMapEntry{}
			}
		}
	}

	if rel.Comments {
		comments, err := loadComments(ctx, q, boardIds)
		if err != nil {
			return err
		}
		for i := range boards {
			boards[i].Comments = comments[boards[i].Id]
			if boards[i].Comments == nil {
				boards[i].Comments = []domain.Comment{}
			}
		}
	}
	return nil
}

func loadUsers(ctx context.Context, q shared_pg.Querier, ids []domain.UserId) (map[domain.UserId]domain.User, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, nickname, created_at FROM users WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make(map[domain.UserId]domain.User, len(ids))
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.Id, &u.Nickname, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users[u.Id] = u
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return users, nil
}

// loadEntries keeps insertion order, which is the submitted course order.
func loadEntries(ctx context.Context, q shared_pg.Querier, boardIds []string) (map[domain.BoardId][]domain.PersonalMapEntry, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, board_id, restaurant_id, restaurant_name, address, lat, lng, img_url, description, created_at
		FROM personal_map_entries
		WHERE board_id = ANY($1::uuid[])
		ORDER BY board_id, seq`,
		pq.Array(boardIds))
	if err != nil {
		return nil, fmt.Errorf("failed to query personal map entries: %w", err)
	}
	defer rows.Close()

	entries := make(map[domain.BoardId][]domain.PersonalMapEntry)
	for rows.Next() {
		var e domain.PersonalMapEntry
		if err := rows.Scan(&e.Id, &e.BoardId, &e.RestaurantId, &e.RestaurantName, &e.Address,
			&e.Location.Lat, &e.Location.Lng, &e.ImgUrl, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan personal map entry row: %w", err)
		}
		entries[e.BoardId] = append(entries[e.BoardId], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return entries, nil
}

// loadComments returns comment threads oldest first, each with its replies.
func loadComments(ctx context.Context, q shared_pg.Querier, boardIds []string) (map[domain.BoardId][]domain.Comment, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT c.id, c.board_id, c.content, c.created_at, u.id, u.nickname, u.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.board_id = ANY($1::uuid[])
		ORDER BY c.board_id, c.created_at, c.id`,
		pq.Array(boardIds))
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	type position struct {
		board domain.BoardId
		index int
	}
	comments := make(map[domain.BoardId][]domain.Comment)
	byId := make(map[domain.CommentId]position)
	var commentIds []string
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.Id, &c.BoardId, &c.Content, &c.CreatedAt, &c.Author.Id, &c.Author.Nickname, &c.Author.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		c.Replies = []domain.Reply{}
		byId[c.Id] = position{c.BoardId, len(comments[c.BoardId])}
		comments[c.BoardId] = append(comments[c.BoardId], c)
		commentIds = append(commentIds, c.Id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	rows.Close()
	if len(commentIds) == 0 {
		return comments, nil
	}

	replyRows, err := q.QueryContext(ctx, `
		SELECT r.id, r.comment_id, r.content, r.created_at, u.id, u.nickname, u.created_at
		FROM replies r
		JOIN users u ON u.id = r.author_id
		WHERE r.comment_id = ANY($1::uuid[])
		ORDER BY r.created_at, r.id`,
		pq.Array(commentIds))
	if err != nil {
		return nil, fmt.Errorf("failed to query replies: %w", err)
	}
	defer replyRows.Close()

	for replyRows.Next() {
		var r domain.Reply
		if err := replyRows.Scan(&r.Id, &r.CommentId, &r.Content, &r.CreatedAt, &r.Author.Id, &r.Author.Nickname, &r.Author.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reply row: %w", err)
		}
		pos, ok := byId[r.CommentId]
		if !ok {
			continue
		}
		c := &comments[pos.board][pos.index]
		c.Replies = append(c.Replies, r)
	}
	if err := replyRows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return comments, nil
}
