package service

import (
	"context"

	"github.com/itchan-dev/roadboard/shared/domain"
)

// MockBoardStorage mocks the BoardStorage interface.
type MockBoardStorage struct {
	getBoardFunc    func(ctx context.Context, id domain.BoardId, rel domain.BoardRelations) (*domain.Board, error)
	listBoardsFunc  func(ctx context.Context, filter domain.BoardFilter, rel domain.BoardRelations) ([]domain.Board, error)
	saveBoardFunc   func(ctx context.Context, ownerId domain.UserId, draft domain.BoardDraft) (*domain.Board, error)
	updateBoardFunc func(ctx context.Context, id domain.BoardId, draft domain.BoardDraft) error
	deleteBoardFunc func(ctx context.Context, id domain.BoardId) (int64, error)
	toggleLikeFunc  func(ctx context.Context, userId domain.UserId, boardId domain.BoardId) (bool, int, error)
}

func (m *MockBoardStorage) GetBoard(ctx context.Context, id domain.BoardId, rel domain.BoardRelations) (*domain.Board, error) {
	if m.getBoardFunc != nil {
		return m.getBoardFunc(ctx, id, rel)
	}
	return nil, nil
}

func (m *MockBoardStorage) ListBoards(ctx context.Context, filter domain.BoardFilter, rel domain.BoardRelations) ([]domain.Board, error) {
	if m.listBoardsFunc != nil {
		return m.listBoardsFunc(ctx, filter, rel)
	}
	return nil, nil
}

func (m *MockBoardStorage) SaveBoard(ctx context.Context, ownerId domain.UserId, draft domain.BoardDraft) (*domain.Board, error) {
	if m.saveBoardFunc != nil {
		return m.saveBoardFunc(ctx, ownerId, draft)
	}
	return nil, nil
}

func (m *MockBoardStorage) UpdateBoard(ctx context.Context, id domain.BoardId, draft domain.BoardDraft) error {
	if m.updateBoardFunc != nil {
		return m.updateBoardFunc(ctx, id, draft)
	}
	return nil
}

func (m *MockBoardStorage) DeleteBoard(ctx context.Context, id domain.BoardId) (int64, error) {
	if m.deleteBoardFunc != nil {
		return m.deleteBoardFunc(ctx, id)
	}
	return 0, nil
}

func (m *MockBoardStorage) ToggleLike(ctx context.Context, userId domain.UserId, boardId domain.BoardId) (bool, int, error) {
	if m.toggleLikeFunc != nil {
		return m.toggleLikeFunc(ctx, userId, boardId)
	}
	return false, 0, nil
}

// MockEntryStorage mocks the EntryStorage interface.
type MockEntryStorage struct {
	saveFunc   func(ctx context.Context, entry domain.PersonalMapEntry) (*domain.PersonalMapEntry, error)
	deleteFunc func(ctx context.Context, ids []domain.EntryId) (int64, error)
}

func (m *MockEntryStorage) SavePersonalMapEntry(ctx context.Context, entry domain.PersonalMapEntry) (*domain.PersonalMapEntry, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, entry)
	}
	return &entry, nil
}

func (m *MockEntryStorage) DeletePersonalMapEntries(ctx context.Context, ids []domain.EntryId) (int64, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, ids)
	}
	return int64(len(ids)), nil
}

// MockUserStorage mocks the UserStorage interface.
type MockUserStorage struct {
	getUserFunc func(ctx context.Context, id domain.UserId) (*domain.User, error)
}

func (m *MockUserStorage) GetUser(ctx context.Context, id domain.UserId) (*domain.User, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(ctx, id)
	}
	return &domain.User{Id: id}, nil
}

// MockRestaurantClient mocks the RestaurantClient interface.
type MockRestaurantClient struct {
	fetchByIdsFunc    func(ctx context.Context, ids []domain.RestaurantId) ([]domain.RestaurantDetail, error)
	fetchByCourseFunc func(ctx context.Context, info []domain.CourseInfo) ([]domain.RestaurantDetail, error)
}

func (m *MockRestaurantClient) FetchByIds(ctx context.Context, ids []domain.RestaurantId) ([]domain.RestaurantDetail, error) {
	if m.fetchByIdsFunc != nil {
		return m.fetchByIdsFunc(ctx, ids)
	}
	return []domain.RestaurantDetail{}, nil
}

func (m *MockRestaurantClient) FetchByCourse(ctx context.Context, info []domain.CourseInfo) ([]domain.RestaurantDetail, error) {
	if m.fetchByCourseFunc != nil {
		return m.fetchByCourseFunc(ctx, info)
	}
	return []domain.RestaurantDetail{}, nil
}
