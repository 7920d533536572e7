package newsletterservice

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/kvitkodev/melomane/internal/common"
)

func NewNewsletterService(db *sql.DB, mb common.MessageProducer) *NewsletterService {
	return &NewsletterService{m: newSubscriberModel(db), mb: mb}
}

// Subscribe adds the email to the newsletter list, reactivating it when it
// unsubscribed before, and announces the new subscriber on the broker so the
// mail service can send the welcome email.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (*Subscriber, error) {
	v := common.NewValidator()
	validateEmail(v, email)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	subscriber, err := s.m.upsert(ctx, email)
	if err != nil {
		return nil, err
	}

	msg, err := json.Marshal(struct {
		Email string
	}{
		Email: subscriber.Email,
	})
	if err != nil {
		return nil, err
	}

	err = s.mb.Publish(ctx, msg, common.SubscriberCreatedKey, common.NewsletterExchange)
	if err != nil {
		return nil, err
	}

	return subscriber, nil
}

// Unsubscribe deactivates the subscription and stamps the unsubscribe time.
func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	v := common.NewValidator()
	validateEmail(v, email)
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.deactivate(ctx, email)
}
