package report

import (
	"time"

	"github.com/google/uuid"
)

// Report is a user complaint about a listing. Reports are the audit trail
// moderators work from; rejecting a listing deletes the listing row but the
// reports against it are kept.
type Report struct {
	ID         uuid.UUID
	ListingID  uuid.UUID
	ReporterID uuid.UUID
	Reason     string
	CreatedAt  time.Time
}
