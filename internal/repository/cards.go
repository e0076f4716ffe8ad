package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rudenman/Bank-REST/internal/models"
)

const cardColumns = `c.id, c.user_id, u.username, c.card_number, c.expiry_date, c.status, c.balance, c.created_at`

func scanCard(row interface{ Scan(...any) error }) (*models.Card, error) {
	card := &models.Card{}
	err := row.Scan(&card.ID, &card.UserID, &card.OwnerUsername, &card.CardNumber,
		&card.ExpiryDate, &card.Status, &card.Balance, &card.CreatedAt)
	if err != nil {
		return nil, err
	}
	return card, nil
}

// CreateCard inserts a new card. A collision on the encrypted card number's
// UNIQUE constraint is reported as models.ErrDuplicatePan so the caller can
// retry with a fresh number.
func (r *Repository) CreateCard(ctx context.Context, card *models.Card) error {
	query := `
		INSERT INTO bank.cards (user_id, card_number, expiry_date, status, balance, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		card.UserID, card.CardNumber, card.ExpiryDate, card.Status, card.Balance).
		Scan(&card.ID, &card.CreatedAt)
	if isUniqueViolation(err) {
		return models.ErrDuplicatePan
	}
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

// ExistsCardWithNumber reports whether a card with the given encrypted
// number is already stored.
func (r *Repository) ExistsCardWithNumber(ctx context.Context, encrypted string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM bank.cards WHERE card_number = $1)`, encrypted).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check card number: %w", err)
	}
	return exists, nil
}

// FindCardByID retrieves a card regardless of owner (admin paths).
func (r *Repository) FindCardByID(ctx context.Context, cardID int64) (*models.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM bank.cards c JOIN bank.users u ON u.id = c.user_id
		WHERE c.id = $1`
	card, err := scanCard(r.db.QueryRowContext(ctx, query, cardID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: card", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find card: %w", err)
	}
	return card, nil
}

// FindCardByIDAndOwner retrieves a card only if it belongs to the given
// user. A card owned by someone else is indistinguishable from a missing
// one.
func (r *Repository) FindCardByIDAndOwner(ctx context.Context, cardID, userID int64) (*models.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM bank.cards c JOIN bank.users u ON u.id = c.user_id
		WHERE c.id = $1 AND c.user_id = $2`
	card, err := scanCard(r.db.QueryRowContext(ctx, query, cardID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: card", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find card: %w", err)
	}
	return card, nil
}

// FindCardsByOwner returns a stable-ordered page of the owner's cards.
func (r *Repository) FindCardsByOwner(ctx context.Context, userID int64, limit, offset int) ([]*models.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM bank.cards c JOIN bank.users u ON u.id = c.user_id
		WHERE c.user_id = $1
		ORDER BY c.id
		LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()
	return collectCards(rows)
}

// ListCards returns all cards ordered by id (admin path).
func (r *Repository) ListCards(ctx context.Context) ([]*models.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM bank.cards c JOIN bank.users u ON u.id = c.user_id
		ORDER BY c.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()
	return collectCards(rows)
}

func collectCards(rows *sql.Rows) ([]*models.Card, error) {
	var cards []*models.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

// TopUpCard atomically increments a card's balance. The increment happens
// in SQL so concurrent top-ups never lose updates.
func (r *Repository) TopUpCard(ctx context.Context, cardID, amount int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bank.cards SET balance = balance + $1 WHERE id = $2`, amount, cardID)
	if err != nil {
		return fmt.Errorf("failed to top up card: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: card", models.ErrNotFound)
	}
	return nil
}

// SetCardStatus overwrites a card's status.
func (r *Repository) SetCardStatus(ctx context.Context, cardID int64, status models.CardStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bank.cards SET status = $1 WHERE id = $2`, status, cardID)
	if err != nil {
		return fmt.Errorf("failed to update card status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: card", models.ErrNotFound)
	}
	return nil
}

// DeleteCard removes a card entirely.
func (r *Repository) DeleteCard(ctx context.Context, cardID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bank.cards WHERE id = $1`, cardID)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: card", models.ErrNotFound)
	}
	return nil
}

// TransferFunds moves amount between two cards as one transaction. Row locks
// are taken in ascending card-ID order to avoid deadlocks between opposing
// transfers, and sufficiency is re-checked under the lock, so no lost update
// or partial application is observable.
func (r *Repository) TransferFunds(ctx context.Context, fromCardID, toCardID, amount int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	firstID, secondID := fromCardID, toCardID
	if firstID > secondID {
		firstID, secondID = secondID, firstID
	}

	balances := make(map[int64]int64, 2)
	for _, id := range []int64{firstID, secondID} {
		var balance int64
		err := tx.QueryRowContext(ctx,
			`SELECT balance FROM bank.cards WHERE id = $1 FOR UPDATE`, id).
			Scan(&balance)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: card", models.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to lock card %d: %w", id, err)
		}
		balances[id] = balance
	}

	if balances[fromCardID] < amount {
		return fmt.Errorf("%w: balance %d, requested %d",
			models.ErrInsufficientFunds, balances[fromCardID], amount)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE bank.cards SET balance = balance - $1 WHERE id = $2`, amount, fromCardID); err != nil {
		return fmt.Errorf("failed to debit card: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE bank.cards SET balance = balance + $1 WHERE id = $2`, amount, toCardID); err != nil {
		return fmt.Errorf("failed to credit card: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transfer: %w", err)
	}
	return nil
}

// MarkExpiredCards transitions every card whose expiry date has passed and
// which is not already expired into EXPIRED, returning the affected count.
// Re-running with nothing newly expired affects zero rows.
func (r *Repository) MarkExpiredCards(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bank.cards
		SET status = $1
		WHERE expiry_date < CURRENT_DATE AND status <> $1`, models.CardExpired)
	if err != nil {
		return 0, fmt.Errorf("failed to mark expired cards: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}
