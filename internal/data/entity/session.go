package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is an opaque bearer token issued at login.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	UserAgent *string    `db:"user_agent"`
	IPAddress *string    `db:"ip_address"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

func NewSession(userID uuid.UUID, now time.Time, ttl time.Duration) *Session {
	return &Session{
		BaseSimple: NewBaseSimple(now),
		UserID:     userID,
		Token:      uuid.New(),
		ExpiresAt:  now.Add(ttl),
	}
}

// Active reports whether the session can still authenticate at now.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
