package pipeline

import "time"

// domainLimiter paces fetches per host: consecutive requests to the same
// domain are separated by at least delay; different domains never wait on
// each other. It is owned by a single Processor and touched by one
// goroutine, so no locking is needed.
type domainLimiter struct {
	delay   time.Duration
	lastHit map[string]time.Time
	now     func() time.Time
	sleep   func(time.Duration)
}

func newDomainLimiter(delay time.Duration, now func() time.Time, sleep func(time.Duration)) *domainLimiter {
	return &domainLimiter{
		delay:   delay,
		lastHit: make(map[string]time.Time),
		now:     now,
		sleep:   sleep,
	}
}

// Wait blocks until the per-domain delay since the last recorded fetch of
// this domain has elapsed.
func (l *domainLimiter) Wait(domain string) {
	if domain == "" {
		return
	}
	prev, ok := l.lastHit[domain]
	if !ok {
		return
	}
	if remaining := l.delay - l.now().Sub(prev); remaining > 0 {
		l.sleep(remaining)
	}
}

// Record stamps the domain's last-fetch time. Called after every attempt,
// success or not, so pacing reflects real request timing.
func (l *domainLimiter) Record(domain string) {
	if domain == "" {
		return
	}
	l.lastHit[domain] = l.now()
}
