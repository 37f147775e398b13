package mock

import (
	"context"

	"github.com/legiblehq/legible"
)

var _ legible.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of legible.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
