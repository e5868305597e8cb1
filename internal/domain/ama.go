package domain

import (
	"time"

	"github.com/google/uuid"
)

// AMA is one Ask-Me-Anything session: a host-owned event that attendees
// submit questions to via its public slug.
type AMA struct {
	ID             uuid.UUID
	HostID         uuid.UUID
	Title          string
	Description    *string
	Slug           string
	IsActive       bool
	AllowAnonymous bool
	CreatedAt      time.Time
}
