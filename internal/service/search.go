package service

import (
	"context"
	"time"

	"github.com/bep/debounce"
)

// DefaultSearchDelay is how long typing must pause before a search fires.
const DefaultSearchDelay = 500 * time.Millisecond

// Searcher coalesces search input into at most one StartSearch per pause
// in typing. Every SetQuery cancels the previously scheduled search and
// reschedules; only the most recent query survives the delay.
type Searcher struct {
	svc       *Service
	ctx       context.Context
	debounced func(func())
}

// NewSearcher creates a Searcher. The context is captured for the
// deferred StartSearch calls; cancel it to silence any pending search.
func NewSearcher(ctx context.Context, svc *Service, delay time.Duration) *Searcher {
	if delay <= 0 {
		delay = DefaultSearchDelay
	}
	return &Searcher{
		svc:       svc,
		ctx:       ctx,
		debounced: debounce.New(delay),
	}
}

// SetQuery records the current input and schedules a search for when
// typing pauses.
func (s *Searcher) SetQuery(q string) {
	s.svc.SetSearchText(q)
	s.debounced(func() {
		if s.ctx.Err() != nil {
			return
		}
		s.svc.StartSearch(s.ctx)
	})
}
