package scheduling

import (
	"sync"
	"time"

	"eventscrm/internal/domain"
	"eventscrm/internal/domain/models"
)

// DefaultDebounce matches the form's date-field settle window.
const DefaultDebounce = 500 * time.Millisecond

// CheckResult carries the outcome of one availability check.
type CheckResult struct {
	Range     DateRange
	Status    domain.AvailabilityStatus
	Conflicts []models.Conflict
	Err       error
}

// CheckFunc performs the actual availability lookup.
type CheckFunc func(r DateRange) CheckResult

// Checker debounces availability checks and keeps them single-flight:
// scheduling a new range cancels a pending timer, and the result of an
// already in-flight check is dropped once a newer one has been scheduled.
// Results are delivered on the checker's goroutine.
type Checker struct {
	mu      sync.Mutex
	delay   time.Duration
	check   CheckFunc
	deliver func(CheckResult)
	timer   *time.Timer
	gen     uint64
}

// NewChecker builds a checker with the given debounce delay; delay <= 0 uses
// DefaultDebounce.
func NewChecker(delay time.Duration, check CheckFunc, deliver func(CheckResult)) *Checker {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Checker{delay: delay, check: check, deliver: deliver}
}

// Schedule queues a check for the range, superseding any pending or
// in-flight one.
func (c *Checker) Schedule(r DateRange) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	gen := c.gen
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, func() {
		c.run(gen, r)
	})
}

// Cancel drops any pending or in-flight check without delivering a result.
func (c *Checker) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Checker) run(gen uint64, r DateRange) {
	c.mu.Lock()
	stale := gen != c.gen
	c.mu.Unlock()
	if stale {
		return
	}

	res := c.check(r)
	res.Range = r

	// Re-check: the lookup may have been superseded while in flight.
	c.mu.Lock()
	stale = gen != c.gen
	c.mu.Unlock()
	if stale || c.deliver == nil {
		return
	}
	c.deliver(res)
}
