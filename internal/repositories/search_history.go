package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Kvng-HackSOC/mediadev/internal/logger"
	"github.com/Kvng-HackSOC/mediadev/internal/models"
)

type SearchHistoryReadRepository struct {
	db *sqlx.DB
}

func NewSearchHistoryReadRepository(db *sqlx.DB) *SearchHistoryReadRepository {
	return &SearchHistoryReadRepository{db: db}
}

// ListByUser returns the user's history, newest first.
func (r *SearchHistoryReadRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.SearchHistoryDB, error) {
	const query = `
		SELECT id, user_id, query, filters, media_type, result_count, created_at, updated_at
		FROM search_histories
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	items := []models.SearchHistoryDB{}
	err := r.db.SelectContext(ctx, &items, query, userID, limit, offset)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, limit, offset},
		"result", len(items),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return items, nil
}

// CountByUser returns the user's total history size.
func (r *SearchHistoryReadRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM search_histories
		WHERE user_id = $1
	`

	var count int64
	err := r.db.GetContext(ctx, &count, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", count,
		"error", err,
	)

	return count, err
}

type SearchHistoryWriteRepository struct {
	db *sqlx.DB
}

func NewSearchHistoryWriteRepository(db *sqlx.DB) *SearchHistoryWriteRepository {
	return &SearchHistoryWriteRepository{db: db}
}

// Save inserts a history row for a completed authenticated search.
func (r *SearchHistoryWriteRepository) Save(ctx context.Context, h *models.SearchHistoryDB) error {
	const query = `
		INSERT INTO search_histories (id, user_id, query, filters, media_type, result_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	args := []any{h.ID, h.UserID, h.Query, h.Filters, h.MediaType, h.ResultCount}

	_, err := r.db.ExecContext(ctx, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{h.ID, h.UserID, h.Query, h.MediaType, h.ResultCount},
		"error", err,
	)

	return err
}

// DeleteByID deletes one history row scoped to its owner and reports
// how many rows matched. Zero means the row does not exist or belongs
// to another user.
func (r *SearchHistoryWriteRepository) DeleteByID(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	const query = `
		DELETE FROM search_histories
		WHERE id = $1 AND user_id = $2
	`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, userID},
		"result", rowsAffected,
		"error", err,
	)

	return rowsAffected, err
}

// DeleteAllByUser clears the user's history and reports the number of
// deleted rows.
func (r *SearchHistoryWriteRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `
		DELETE FROM search_histories
		WHERE user_id = $1
	`

	res, err := r.db.ExecContext(ctx, query, userID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", rowsAffected,
		"error", err,
	)

	return rowsAffected, err
}
