package verification

import "time"

// Code is a one-time verification code issued against a subject (a phone
// number or an email address). At most one live code exists per subject;
// issuing a new one overwrites the previous.
type Code struct {
	Subject   string
	Code      string
	ExpiresAt time.Time
	// IsNewUser records whether a successful verification should register
	// a new account rather than log in an existing one.
	IsNewUser bool
}

// IsExpired reports whether the code is past its expiry at the given time.
func (c *Code) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
