package newsletterservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kvitkodev/melomane/internal/common"
)

var ErrDuplicateEmail = errors.New("email is already subscribed")

func newSubscriberModel(db *sql.DB) *SubscriberModel {
	return &SubscriberModel{db: db}
}

// upsert inserts a new subscriber or reactivates a previously unsubscribed
// one. An email that is already actively subscribed yields ErrDuplicateEmail.
func (m *SubscriberModel) upsert(ctx context.Context, email string) (*Subscriber, error) {
	query := `
		INSERT INTO newsletter_subscribers (email)
		VALUES ($1)
		ON CONFLICT (email) DO UPDATE
		SET is_active = true, unsubscribed_at = NULL, subscribed_at = now()
		WHERE newsletter_subscribers.is_active = false
		RETURNING id, email, is_active, subscribed_at`

	var s Subscriber
	err := m.db.QueryRowContext(ctx, query, email).Scan(&s.ID, &s.Email, &s.IsActive, &s.SubscribedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrDuplicateEmail
		default:
			return nil, err
		}
	}

	return &s, nil
}

func (m *SubscriberModel) deactivate(ctx context.Context, email string) error {
	query := `
		UPDATE newsletter_subscribers
		SET is_active = false, unsubscribed_at = now()
		WHERE email = $1 AND is_active = true`

	res, err := m.db.ExecContext(ctx, query, email)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return common.ErrRecordNotFound
	}

	return nil
}
