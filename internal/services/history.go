package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Kvng-HackSOC/mediadev/internal/logger"
	"github.com/Kvng-HackSOC/mediadev/internal/models"
)

// ErrHistoryNotFound is returned when a history record does not exist
// or belongs to another user.
var ErrHistoryNotFound = errors.New("search history record not found")

const (
	defaultHistoryPageSize = 20
	maxHistoryPageSize     = 100
)

// HistoryReader lists persisted search-history rows.
type HistoryReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.SearchHistoryDB, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// HistoryRemover deletes search-history rows scoped to their owner.
type HistoryRemover interface {
	DeleteByID(ctx context.Context, userID, id uuid.UUID) (int64, error)
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// HistoryService exposes a user's search history. Every operation is
// scoped to the calling user; rows owned by others are invisible.
type HistoryService struct {
	reader  HistoryReader
	remover HistoryRemover
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(reader HistoryReader, remover HistoryRemover) *HistoryService {
	return &HistoryService{
		reader:  reader,
		remover: remover,
	}
}

// List returns one page of the user's history, newest first, along with
// the total row count.
func (svc *HistoryService) List(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.SearchHistoryDB, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultHistoryPageSize
	}
	if pageSize > maxHistoryPageSize {
		pageSize = maxHistoryPageSize
	}

	items, err := svc.reader.ListByUser(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		logger.Log.Errorw("failed to list search history", "user_id", userID, "err", err)
		return nil, 0, err
	}

	total, err := svc.reader.CountByUser(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to count search history", "user_id", userID, "err", err)
		return nil, 0, err
	}

	return items, total, nil
}

// Delete removes one record owned by the user.
func (svc *HistoryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	deleted, err := svc.remover.DeleteByID(ctx, userID, id)
	if err != nil {
		logger.Log.Errorw("failed to delete search history record", "user_id", userID, "id", id, "err", err)
		return err
	}
	if deleted == 0 {
		return ErrHistoryNotFound
	}
	return nil
}

// Clear removes all of the user's records and returns how many were
// deleted.
func (svc *HistoryService) Clear(ctx context.Context, userID uuid.UUID) (int64, error) {
	deleted, err := svc.remover.DeleteAllByUser(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to clear search history", "user_id", userID, "err", err)
		return 0, err
	}
	return deleted, nil
}
