package verification

import "context"

// Store is the keyed store for live one-time codes. Implementations must
// make Put a last-write-wins overwrite per subject and must not mutate a
// stored code on a failed verification: Consume is the only operation that
// removes a code before expiry.
type Store interface {
	// Put stores the code, replacing any live code for the same subject.
	Put(ctx context.Context, c *Code) error
	// Get returns the live code for the subject, or ErrCodeNotFound.
	Get(ctx context.Context, subject string) (*Code, error)
	// Consume removes the code for the subject. Missing entries are not an
	// error so the operation is safe to retry.
	Consume(ctx context.Context, subject string) error
}
