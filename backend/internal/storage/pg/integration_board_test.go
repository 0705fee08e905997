package pg

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/itchan-dev/roadboard/backend/internal/service"
	"github.com/itchan-dev/roadboard/shared/domain"
	internal_errors "github.com/itchan-dev/roadboard/shared/errors"
	"github.com/itchan-dev/roadboard/shared/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBoard(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	owner := createUser(t, "owner")
	commenter := createUser(t, "commenter")
	board := createBoard(t, owner, "Seoul Trip", "Seoul", "Busan", time.Now().UTC().Truncate(time.Second))

	createEntry(t, board.Id, "r1", "A")
	createEntry(t, board.Id, "r2", "B")
	createEntry(t, board.Id, "r3", "C")

	commentId := uuid.NewString()
	_, err := storage.db.Exec("INSERT INTO comments (id, board_id, author_id, content) VALUES ($1, $2, $3, $4)", commentId, board.Id, commenter, "nice route")
	require.NoError(t, err)
	_, err = storage.db.Exec("INSERT INTO replies (id, comment_id, author_id, content) VALUES ($1, $2, $3, $4)", uuid.NewString(), commentId, owner, "thanks")
	require.NoError(t, err)

	t.Run("all relations", func(t *testing.T) {
		got, err := storage.GetBoard(ctx, board.Id, domain.AllRelations)
		require.NoError(t, err)

		assert.Equal(t, "Seoul Trip", got.Title)
		assert.Equal(t, "Seoul", got.StartPoint)
		require.NotNil(t, got.Owner)
		assert.Equal(t, owner, got.Owner.Id)
		assert.Equal(t, "owner", got.Owner.Nickname)

		require.Len(t, got.Entries, 3)
		assert.Equal(t, []string{"r1", "r2", "r3"}, []string{got.Entries[0].RestaurantId, got.Entries[1].RestaurantId, got.Entries[2].RestaurantId})
		assert.Equal(t, domain.Location{Lat: 37.5, Lng: 127.0}, got.Entries[0].Location)

		require.Len(t, got.Comments, 1)
		assert.Equal(t, "nice route", got.Comments[0].Content)
		assert.Equal(t, commenter, got.Comments[0].Author.Id)
		require.Len(t, got.Comments[0].Replies, 1)
		assert.Equal(t, "thanks", got.Comments[0].Replies[0].Content)
		assert.Equal(t, owner, got.Comments[0].Replies[0].Author.Id)
	})

	t.Run("no relations", func(t *testing.T) {
		got, err := storage.GetBoard(ctx, board.Id, domain.BoardRelations{})
		require.NoError(t, err)
		assert.Nil(t, got.Owner)
		assert.Nil(t, got.Entries)
		assert.Nil(t, got.Comments)
	})

	t.Run("missing board", func(t *testing.T) {
		_, err := storage.GetBoard(ctx, uuid.NewString(), domain.AllRelations)
		assert.ErrorIs(t, err, internal_errors.NotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := storage.GetBoard(ctx, "not-a-uuid", domain.AllRelations)
		assert.ErrorIs(t, err, internal_errors.NotFound)
	})
}

func TestListBoards(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	owner := createUser(t, "lister")
	other := createUser(t, "other")
	base := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	oldest := createBoard(t, owner, "oldest", "Jeju", "Jeju", base)
	middle := createBoard(t, owner, "middle", "Jeju", "Seogwipo", base.Add(time.Hour))
	newest := createBoard(t, owner, "newest", "Jeju", "Jeju", base.Add(2*time.Hour))
	foreign := createBoard(t, other, "foreign", "Jeju", "Jeju", base.Add(3*time.Hour))
	createEntry(t, middle.Id, "r9", "Z")

	ids := func(boards []domain.Board) []string {
		out := make([]string, len(boards))
		for i, b := range boards {
			out[i] = b.Id
		}
		return out
	}

	t.Run("by owner newest first", func(t *testing.T) {
		got, err := storage.ListBoards(ctx, domain.BoardFilter{OwnerId: &owner}, domain.AllRelations)
		require.NoError(t, err)
		assert.Equal(t, []string{newest.Id, middle.Id, oldest.Id}, ids(got))
		assert.Len(t, got[1].Entries, 1)
		assert.Empty(t, got[0].Entries)
		require.NotNil(t, got[0].Owner)
		assert.Equal(t, owner, got[0].Owner.Id)
	})

	t.Run("by route", func(t *testing.T) {
		got, err := storage.ListBoards(ctx, domain.BoardFilter{StartPoint: "Jeju", EndPoint: "Seogwipo"}, domain.BoardRelations{})
		require.NoError(t, err)
		assert.Equal(t, []string{middle.Id}, ids(got))
	})

	t.Run("by route and owner", func(t *testing.T) {
		got, err := storage.ListBoards(ctx, domain.BoardFilter{OwnerId: &other, StartPoint: "Jeju"}, domain.BoardRelations{})
		require.NoError(t, err)
		assert.Equal(t, []string{foreign.Id}, ids(got))
	})

	t.Run("by ids skips malformed", func(t *testing.T) {
		got, err := storage.ListBoards(ctx, domain.BoardFilter{Ids: []string{oldest.Id, "bogus", foreign.Id}}, domain.BoardRelations{})
		require.NoError(t, err)
		assert.Equal(t, []string{foreign.Id, oldest.Id}, ids(got))
	})

	t.Run("empty ids match nothing", func(t *testing.T) {
		got, err := storage.ListBoards(ctx, domain.BoardFilter{Ids: []string{}}, domain.BoardRelations{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("no match", func(t *testing.T) {
		got, err := storage.ListBoards(ctx, domain.BoardFilter{StartPoint: "Nowhere"}, domain.AllRelations)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestUpdateBoard(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	owner := createUser(t, "updater")
	board := createBoard(t, owner, "before", "Seoul", "Incheon", time.Now().UTC())
	createEntry(t, board.Id, "r1", "A")

	err := storage.UpdateBoard(ctx, board.Id, domain.BoardDraft{Title: "after", Course: "new", BoardImg: "img.png", StartPoint: "Seoul", EndPoint: "Suwon"})
	require.NoError(t, err)

	got, err := storage.GetBoard(ctx, board.Id, domain.AllRelations)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, "Suwon", got.EndPoint)
	assert.Equal(t, "img.png", got.BoardImg)
	assert.Len(t, got.Entries, 1, "entries are not touched by a board update")

	err = storage.UpdateBoard(ctx, uuid.NewString(), domain.BoardDraft{Title: "x", StartPoint: "a", EndPoint: "b"})
	assert.ErrorIs(t, err, internal_errors.NotFound)
}

func TestDeleteBoard(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	owner := createUser(t, "deleter")
	board := createBoard(t, owner, "doomed", "Seoul", "Busan", time.Now().UTC())
	createEntry(t, board.Id, "r1", "A")
	createEntry(t, board.Id, "r2", "B")

	affected, err := storage.DeleteBoard(ctx, board.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.Equal(t, 0, countEntries(t, board.Id))

	affected, err = storage.DeleteBoard(ctx, board.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	affected, err = storage.DeleteBoard(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestSaveBoardUnknownOwner(t *testing.T) {
	requireDB(t)
	_, err := storage.SaveBoard(context.Background(), 987654321, domain.BoardDraft{Title: "t", StartPoint: "a", EndPoint: "b"})
	assert.ErrorIs(t, err, internal_errors.NotFound)
}

// unusedRestaurants fails the test if deleting reaches the restaurant service.
type unusedRestaurants struct{ t *testing.T }

func (u unusedRestaurants) FetchByIds(ctx context.Context, ids []domain.RestaurantId) ([]domain.RestaurantDetail, error) {
	u.t.Error("delete must not call the restaurant service")
	return nil, nil
}

func (u unusedRestaurants) FetchByCourse(ctx context.Context, info []domain.CourseInfo) ([]domain.RestaurantDetail, error) {
	u.t.Error("delete must not call the restaurant service")
	return nil, nil
}

func TestDeleteSameBoardTwice(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	owner := createUser(t, "twice")
	board := createBoard(t, owner, "short lived", "Seoul", "Busan", time.Now().UTC())
	createEntry(t, board.Id, "r1", "A")

	svc := service.NewBoard(storage, storage, storage, unusedRestaurants{t}, markdown.New(), service.Options{})

	first, err := svc.Delete(ctx, owner, board.Id)
	require.NoError(t, err)
	assert.Equal(t, domain.Deleted, first)

	// ownership is read from the live boards table, so a deleted board is no
	// longer owned by anyone
	second, err := svc.Delete(ctx, owner, board.Id)
	require.NoError(t, err)
	assert.Equal(t, domain.NoPermission, second)
	assert.Equal(t, 0, countEntries(t, board.Id))
}
