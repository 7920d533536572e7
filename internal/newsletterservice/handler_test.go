package newsletterservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kvitkodev/melomane/internal/common"
)

type recordingProducer struct {
	published [][]byte
	keys      []common.BindingKey
}

func (p *recordingProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	p.published = append(p.published, msg)
	p.keys = append(p.keys, key)
	return nil
}

func setupTestEnvironment(t *testing.T) (*NewsletterService, *recordingProducer) {
	db := common.TestDB("file://../../migrations", t)
	producer := &recordingProducer{}

	return NewNewsletterService(db, producer), producer
}

func TestSubscribe(t *testing.T) {
	s, producer := setupTestEnvironment(t)

	ctx := context.Background()

	t.Run("new subscriber", func(t *testing.T) {
		subscriber, err := s.Subscribe(ctx, "fan@example.com")
		assert.NoError(t, err)
		assert.True(t, subscriber.IsActive)
		assert.Equal(t, "fan@example.com", subscriber.Email)

		if assert.Len(t, producer.published, 1) {
			assert.Equal(t, common.SubscriberCreatedKey, producer.keys[0])
			assert.JSONEq(t, `{"Email": "fan@example.com"}`, string(producer.published[0]))
		}
	})

	t.Run("already subscribed", func(t *testing.T) {
		_, err := s.Subscribe(ctx, "fan@example.com")
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("reactivates after unsubscribe", func(t *testing.T) {
		assert.NoError(t, s.Unsubscribe(ctx, "fan@example.com"))

		subscriber, err := s.Subscribe(ctx, "fan@example.com")
		assert.NoError(t, err)
		assert.True(t, subscriber.IsActive)
		assert.Nil(t, subscriber.UnsubscribedAt)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := s.Subscribe(ctx, "not-an-email")
		assert.Equal(t, common.ValidationError{Errors: map[string]string{"email": "must be a valid email address"}}, err)
	})
}

func TestUnsubscribe(t *testing.T) {
	s, _ := setupTestEnvironment(t)

	ctx := context.Background()

	_, err := s.Subscribe(ctx, "leaver@example.com")
	assert.NoError(t, err)

	assert.NoError(t, s.Unsubscribe(ctx, "leaver@example.com"))

	t.Run("already unsubscribed", func(t *testing.T) {
		assert.ErrorIs(t, s.Unsubscribe(ctx, "leaver@example.com"), common.ErrRecordNotFound)
	})

	t.Run("unknown email", func(t *testing.T) {
		assert.ErrorIs(t, s.Unsubscribe(ctx, "stranger@example.com"), common.ErrRecordNotFound)
	})
}
