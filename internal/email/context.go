package email

import (
	"context"
	"time"
)

func newEmailContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	// A digest already built should still go out if the job context ends.
	parent = context.WithoutCancel(parent)
	return context.WithTimeout(parent, timeout)
}
