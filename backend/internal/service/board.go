package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/itchan-dev/roadboard/shared/domain"
	internal_errors "github.com/itchan-dev/roadboard/shared/errors"
	"github.com/itchan-dev/roadboard/shared/logger"
	"golang.org/x/sync/errgroup"
)

const defaultEnrichConcurrency = 4

// to mock service in tests
type BoardService interface {
	Create(ctx context.Context, ownerId domain.UserId, draft domain.BoardDraft, info []domain.CourseInfo) (*domain.EnrichedBoard, error)
	Update(ctx context.Context, ownerId domain.UserId, boardId domain.BoardId, draft domain.BoardDraft, info []domain.CourseInfo) (*domain.EnrichedBoard, error)
	Fetch(ctx context.Context, boardId domain.BoardId) (*domain.EnrichedBoard, error)
	FindByUser(ctx context.Context, userId domain.UserId) ([]domain.EnrichedBoard, error)
	FindByLikes(ctx context.Context, userId domain.UserId) ([]domain.EnrichedBoard, error)
	FindByCriteria(ctx context.Context, filter domain.BoardFilter) ([]domain.EnrichedBoard, error)
	Delete(ctx context.Context, requesterId domain.UserId, boardId domain.BoardId) (domain.DeleteResult, error)
	ToggleLike(ctx context.Context, userId domain.UserId, boardId domain.BoardId) (bool, int, error)
}

type BoardStorage interface {
	GetBoard(ctx context.Context, id domain.BoardId, rel domain.BoardRelations) (*domain.Board, error)
	ListBoards(ctx context.Context, filter domain.BoardFilter, rel domain.BoardRelations) ([]domain.Board, error)
	SaveBoard(ctx context.Context, ownerId domain.UserId, draft domain.BoardDraft) (*domain.Board, error)
	UpdateBoard(ctx context.Context, id domain.BoardId, draft domain.BoardDraft) error
	DeleteBoard(ctx context.Context, id domain.BoardId) (int64, error)
	ToggleLike(ctx context.Context, userId domain.UserId, boardId domain.BoardId) (bool, int, error)
}

// EntryStorage has no transaction boundary: a failed batch delete is not undone.
type EntryStorage interface {
	SavePersonalMapEntry(ctx context.Context, entry domain.PersonalMapEntry) (*domain.PersonalMapEntry, error)
	DeletePersonalMapEntries(ctx context.Context, ids []domain.EntryId) (int64, error)
}

type UserStorage interface {
	GetUser(ctx context.Context, id domain.UserId) (*domain.User, error)
}

// RestaurantClient returns details in request order.
type RestaurantClient interface {
	FetchByIds(ctx context.Context, ids []domain.RestaurantId) ([]domain.RestaurantDetail, error)
	FetchByCourse(ctx context.Context, info []domain.CourseInfo) ([]domain.RestaurantDetail, error)
}

type TextProcessor interface {
	RenderCourse(text string) (string, error)
	Plain(text string) string
}

type Options struct {
	// max concurrent restaurant calls while enriching a list
	EnrichConcurrency int
}

type Board struct {
	boards      BoardStorage
	entries     EntryStorage
	users       UserStorage
	restaurants RestaurantClient
	text        TextProcessor
	opts        Options
	log         *slog.Logger
}

func NewBoard(boards BoardStorage, entries EntryStorage, users UserStorage, restaurants RestaurantClient, text TextProcessor, opts Options) BoardService {
	if opts.EnrichConcurrency <= 0 {
		opts.EnrichConcurrency = defaultEnrichConcurrency
	}
	return &Board{
		boards:      boards,
		entries:     entries,
		users:       users,
		restaurants: restaurants,
		text:        text,
		opts:        opts,
		log:         logger.Component("board_service"),
	}
}

// Create stores the board, resolves the course against the restaurant
// service and stores one entry per stop. The board row is not removed when
// enrichment fails afterwards.
func (b *Board) Create(ctx context.Context, ownerId domain.UserId, draft domain.BoardDraft, info []domain.CourseInfo) (*domain.EnrichedBoard, error) {
	draft = b.cleanDraft(draft)
	if err := validateDraft(draft); err != nil {
		return nil, err
	}
	info = b.cleanCourse(info)

	owner, err := b.users.GetUser(ctx, ownerId)
	if err != nil {
		return nil, err
	}

	board, err := b.boards.SaveBoard(ctx, ownerId, draft)
	if err != nil {
		return nil, err
	}
	board.Owner = owner

	entries, err := b.persistCourse(ctx, board.Id, info)
	if err != nil {
		b.log.Warn("board saved without entries", "board_id", board.Id, "error", err)
		return nil, err
	}

	b.log.Info("board created", "board_id", board.Id, "owner_id", ownerId, "entries", len(entries))
	return b.view(board, entries), nil
}

// Update replaces the board fields and all of its entries. Entries are
// deleted before the new ones are resolved, so a failure in between leaves
// the board with no entries.
func (b *Board) Update(ctx context.Context, ownerId domain.UserId, boardId domain.BoardId, draft domain.BoardDraft, info []domain.CourseInfo) (*domain.EnrichedBoard, error) {
	board, err := b.boards.GetBoard(ctx, boardId, domain.AllRelations)
	if err != nil {
		return nil, err
	}
	if board.Owner == nil || board.Owner.Id != ownerId {
		return nil, fmt.Errorf("%w: board %s", internal_errors.NotOwner, boardId)
	}

	draft = b.cleanDraft(draft)
	if err := validateDraft(draft); err != nil {
		return nil, err
	}
	info = b.cleanCourse(info)

	if err := b.boards.UpdateBoard(ctx, boardId, draft); err != nil {
		return nil, updateFailed(err)
	}
	board.Title, board.Course, board.BoardImg = draft.Title, draft.Course, draft.BoardImg
	board.StartPoint, board.EndPoint = draft.StartPoint, draft.EndPoint

	ids := make([]domain.EntryId, len(board.Entries))
	for i, e := range board.Entries {
		ids[i] = e.Id
	}
	deleted, err := b.entries.DeletePersonalMapEntries(ctx, ids)
	if err != nil {
		return nil, updateFailed(err)
	}
	if deleted != int64(len(ids)) {
		b.log.Warn("partial entry delete", "board_id", boardId, "deleted", deleted, "expected", len(ids))
		return nil, internal_errors.WithDetail(internal_errors.UpdateFailed, "deleted %d of %d entries", deleted, len(ids))
	}

	entries, err := b.persistCourse(ctx, boardId, info)
	if err != nil {
		b.log.Warn("board left without entries", "board_id", boardId, "error", err)
		return nil, updateFailed(err)
	}

	b.log.Info("board updated", "board_id", boardId, "entries", len(entries))
	return b.view(board, entries), nil
}

// Fetch returns the board with every stored entry merged with its live
// restaurant record.
func (b *Board) Fetch(ctx context.Context, boardId domain.BoardId) (*domain.EnrichedBoard, error) {
	board, err := b.boards.GetBoard(ctx, boardId, domain.AllRelations)
	if err != nil {
		return nil, err
	}
	return b.enrich(ctx, board)
}

// FindByUser lists the boards of userId. An empty list is NoResults.
func (b *Board) FindByUser(ctx context.Context, userId domain.UserId) ([]domain.EnrichedBoard, error) {
	boards, err := b.boards.ListBoards(ctx, domain.BoardFilter{OwnerId: &userId}, domain.AllRelations)
	if err != nil {
		return nil, err
	}
	if len(boards) == 0 {
		return nil, fmt.Errorf("%w: user %d has no boards", internal_errors.NoResults, userId)
	}
	return b.enrichAll(ctx, boards)
}

// FindByLikes lists the boards userId liked. An empty list is NoResults.
func (b *Board) FindByLikes(ctx context.Context, userId domain.UserId) ([]domain.EnrichedBoard, error) {
	user, err := b.users.GetUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	ids := make([]domain.BoardId, len(user.Likes))
	for i, l := range user.Likes {
		ids[i] = l.BoardId
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: user %d has no liked boards", internal_errors.NoResults, userId)
	}

	boards, err := b.boards.ListBoards(ctx, domain.BoardFilter{Ids: ids}, domain.AllRelations)
	if err != nil {
		return nil, err
	}
	if len(boards) == 0 {
		return nil, fmt.Errorf("%w: user %d has no liked boards", internal_errors.NoResults, userId)
	}
	return b.enrichAll(ctx, boards)
}

// FindByCriteria searches by route. No match is an empty list, not an error.
func (b *Board) FindByCriteria(ctx context.Context, filter domain.BoardFilter) ([]domain.EnrichedBoard, error) {
	boards, err := b.boards.ListBoards(ctx, filter, domain.AllRelations)
	if err != nil {
		return nil, err
	}
	if len(boards) == 0 {
		return []domain.EnrichedBoard{}, nil
	}
	return b.enrichAll(ctx, boards)
}

// Delete reports a missing permission as a result rather than an error.
func (b *Board) Delete(ctx context.Context, requesterId domain.UserId, boardId domain.BoardId) (domain.DeleteResult, error) {
	user, err := b.users.GetUser(ctx, requesterId)
	if err != nil {
		return "", err
	}
	if !user.OwnsBoard(boardId) {
		b.log.Info("delete refused", "board_id", boardId, "requester_id", requesterId)
		return domain.NoPermission, nil
	}

	affected, err := b.boards.DeleteBoard(ctx, boardId)
	if err != nil {
		return "", err
	}
	if affected == 0 {
		return domain.AlreadyDeleted, nil
	}
	b.log.Info("board deleted", "board_id", boardId)
	return domain.Deleted, nil
}

func (b *Board) ToggleLike(ctx context.Context, userId domain.UserId, boardId domain.BoardId) (bool, int, error) {
	if _, err := b.users.GetUser(ctx, userId); err != nil {
		return false, 0, err
	}
	return b.boards.ToggleLike(ctx, userId, boardId)
}

// persistCourse resolves info against the restaurant service and stores the
// merged entries in course order. Remote-only fields are kept on the
// returned entries and never reach storage.
func (b *Board) persistCourse(ctx context.Context, boardId domain.BoardId, info []domain.CourseInfo) ([]domain.EnrichedEntry, error) {
	details, err := b.restaurants.FetchByCourse(ctx, info)
	if err != nil {
		return nil, err
	}
	if len(details) != len(info) {
		return nil, fmt.Errorf("%w: sent %d course stops, got %d restaurants", internal_errors.EnrichmentMismatch, len(info), len(details))
	}

	entries := make([]domain.EnrichedEntry, len(info))
	for i := range info {
		merged := domain.MergeCourseInfo(details[i], info[i])
		merged.BoardId = boardId
		saved, err := b.entries.SavePersonalMapEntry(ctx, merged.Stored())
		if err != nil {
			return nil, err
		}
		merged.PersonalMapEntry = *saved
		entries[i] = merged
	}
	return entries, nil
}

// enrich never writes; a length mismatch fails before anything is merged.
func (b *Board) enrich(ctx context.Context, board *domain.Board) (*domain.EnrichedBoard, error) {
	ids := make([]domain.RestaurantId, len(board.Entries))
	for i, e := range board.Entries {
		ids[i] = e.RestaurantId
	}

	details, err := b.restaurants.FetchByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(details) != len(board.Entries) {
		return nil, fmt.Errorf("%w: board %s has %d entries, got %d restaurants", internal_errors.EnrichmentMismatch, board.Id, len(board.Entries), len(details))
	}

	entries := make([]domain.EnrichedEntry, len(board.Entries))
	for i, stored := range board.Entries {
		entries[i] = domain.MergeStored(details[i], stored)
	}
	return b.view(board, entries), nil
}

// enrichAll enriches boards concurrently, at most EnrichConcurrency at a
// time. The first failure cancels the calls that have not finished yet.
func (b *Board) enrichAll(ctx context.Context, boards []domain.Board) ([]domain.EnrichedBoard, error) {
	out := make([]domain.EnrichedBoard, len(boards))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.EnrichConcurrency)
	for i := range boards {
		g.Go(func() error {
			enriched, err := b.enrich(gctx, &boards[i])
			if err != nil {
				return err
			}
			out[i] = *enriched
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	SortByCreatedDesc(out)
	return out, nil
}

func (b *Board) view(board *domain.Board, entries []domain.EnrichedEntry) *domain.EnrichedBoard {
	courseHTML, err := b.text.RenderCourse(board.Course)
	if err != nil {
		b.log.Warn("course render failed", "board_id", board.Id, "error", err)
	}
	comments := board.Comments
	if comments == nil {
		comments = []domain.Comment{}
	}
	return &domain.EnrichedBoard{
		BoardMetadata: board.BoardMetadata,
		CourseHTML:    courseHTML,
		Owner:         board.Owner,
		Entries:       entries,
		Comments:      comments,
	}
}

func (b *Board) cleanDraft(draft domain.BoardDraft) domain.BoardDraft {
	return domain.BoardDraft{
		Title:      b.text.Plain(draft.Title),
		Course:     strings.TrimSpace(draft.Course),
		BoardImg:   strings.TrimSpace(draft.BoardImg),
		StartPoint: b.text.Plain(draft.StartPoint),
		EndPoint:   b.text.Plain(draft.EndPoint),
	}
}

func (b *Board) cleanCourse(info []domain.CourseInfo) []domain.CourseInfo {
	out := make([]domain.CourseInfo, len(info))
	for i, c := range info {
		c.RestaurantName = b.text.Plain(c.RestaurantName)
		c.Address = b.text.Plain(c.Address)
		c.Description = b.text.Plain(c.Description)
		c.ImgUrl = strings.TrimSpace(c.ImgUrl)
		out[i] = c
	}
	return out
}

// validateDraft runs before anything is written.
func validateDraft(draft domain.BoardDraft) error {
	if draft.StartPoint == "" || draft.EndPoint == "" {
		return internal_errors.WithDetail(internal_errors.ValidationFailed, "start and end point are required")
	}
	if draft.Title == "" {
		return internal_errors.WithDetail(internal_errors.ValidationFailed, "title is required")
	}
	return nil
}

// updateFailed keeps both the UpdateFailed status and the cause inspectable.
// A cause outside the error taxonomy turns it into an internal error at the
// handler.
func updateFailed(cause error) error {
	return fmt.Errorf("%w: %w", internal_errors.UpdateFailed, cause)
}
