package newsletterservice

import (
	"database/sql"
	"time"

	"github.com/kvitkodev/melomane/internal/common"
)

type Subscriber struct {
	ID             int        `json:"id"`
	Email          string     `json:"email"`
	IsActive       bool       `json:"is_active"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
}

type SubscriberModel struct {
	db *sql.DB
}

type NewsletterService struct {
	m  *SubscriberModel
	mb common.MessageProducer
}
