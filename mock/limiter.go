package mock

import (
	"context"

	"github.com/carewatch/regrag"
)

var _ regrag.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of regrag.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
