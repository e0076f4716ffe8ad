package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rudenman/Bank-REST/internal/models"
)

// CreateCardRequest persists a new block/close request.
func (r *Repository) CreateCardRequest(ctx context.Context, req *models.CardRequest) error {
	query := `
		INSERT INTO bank.card_requests (card_id, user_id, request_type, status, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		req.CardID, req.UserID, req.RequestType, req.Status).
		Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create card request: %w", err)
	}
	return nil
}

// FindCardRequestByID retrieves a request by id.
func (r *Repository) FindCardRequestByID(ctx context.Context, requestID int64) (*models.CardRequest, error) {
	req := &models.CardRequest{}
	query := `
		SELECT id, card_id, user_id, request_type, status, created_at
		FROM bank.card_requests
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, requestID).
		Scan(&req.ID, &req.CardID, &req.UserID, &req.RequestType, &req.Status, &req.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: card request", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find card request: %w", err)
	}
	return req, nil
}

// FindCardRequestsByUser returns all requests submitted by the user in
// creation order, regardless of status.
func (r *Repository) FindCardRequestsByUser(ctx context.Context, userID int64) ([]*models.CardRequest, error) {
	query := `
		SELECT id, card_id, user_id, request_type, status, created_at
		FROM bank.card_requests
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list card requests: %w", err)
	}
	defer rows.Close()
	return collectRequests(rows)
}

// ListCardRequests returns all requests ordered by id (admin path).
func (r *Repository) ListCardRequests(ctx context.Context) ([]*models.CardRequest, error) {
	query := `
		SELECT id, card_id, user_id, request_type, status, created_at
		FROM bank.card_requests
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list card requests: %w", err)
	}
	defer rows.Close()
	return collectRequests(rows)
}

func collectRequests(rows *sql.Rows) ([]*models.CardRequest, error) {
	var requests []*models.CardRequest
	for rows.Next() {
		req := &models.CardRequest{}
		if err := rows.Scan(&req.ID, &req.CardID, &req.UserID,
			&req.RequestType, &req.Status, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan card request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// SetCardRequestStatus overwrites a request's status.
func (r *Repository) SetCardRequestStatus(ctx context.Context, requestID int64, status models.CardRequestStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bank.card_requests SET status = $1 WHERE id = $2`, status, requestID)
	if err != nil {
		return fmt.Errorf("failed to update card request status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: card request", models.ErrNotFound)
	}
	return nil
}
