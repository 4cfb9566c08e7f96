package email

import "context"

// Sender delivers a plain-text email to one recipient. *SESClient satisfies it.
type Sender interface {
	Send(ctx context.Context, recipient, subject, body string) error
}
