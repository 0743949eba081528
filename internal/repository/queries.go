package repository

import (
	"context"
	"fmt"

	"github.com/platefinder/api/internal/entity"
)

const defaultQueryListLimit = 100

// QueriesRepository stores the audit trail of recommendation requests.
type QueriesRepository interface {
	Record(ctx context.Context, query entity.RecommendationQuery) error
	List(ctx context.Context, limit int) ([]entity.RecommendationQuery, error)
}

// PGXQueriesRepository implements QueriesRepository with pgx.
type PGXQueriesRepository struct {
	db DB
}

// NewPGXQueriesRepository instantiates a queries repository.
func NewPGXQueriesRepository(db DB) *PGXQueriesRepository {
	return &PGXQueriesRepository{db: db}
}

// Record appends one audit row. Only request parameters and the result count
// are stored; generated restaurant records never touch the database.
func (r *PGXQueriesRepository) Record(ctx context.Context, query entity.RecommendationQuery) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO recommendation_queries (user_id, latitude, longitude, category, price, distance, result_count)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, query.UserID, query.Latitude, query.Longitude, query.Category, query.Price, query.Distance, query.ResultCount)
	if err != nil {
		return fmt.Errorf("insert recommendation query: %w", err)
	}
	return nil
}

// List returns the most recent audit rows, newest first.
func (r *PGXQueriesRepository) List(ctx context.Context, limit int) ([]entity.RecommendationQuery, error) {
	if limit <= 0 || limit > defaultQueryListLimit {
		limit = defaultQueryListLimit
	}

	rows, err := r.db.Query(ctx, `
        SELECT id, user_id, latitude, longitude, category, price, distance, result_count, created_at
        FROM recommendation_queries
        ORDER BY created_at DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("list recommendation queries: %w", err)
	}
	defer rows.Close()

	var queries []entity.RecommendationQuery
	for rows.Next() {
		var query entity.RecommendationQuery
		if err := rows.Scan(&query.ID, &query.UserID, &query.Latitude, &query.Longitude, &query.Category, &query.Price, &query.Distance, &query.ResultCount, &query.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recommendation query row: %w", err)
		}
		queries = append(queries, query)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recommendation queries: %w", err)
	}
	return queries, nil
}
