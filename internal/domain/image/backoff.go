package image

import "time"

// BackoffPolicy controls retries around a flaky operation. Delay maps the
// just-failed attempt number (1-based) to the pause before the next try.
// Sleep is injectable so tests don't wait.
type BackoffPolicy struct {
	MaxAttempts int
	Delay       func(attempt int) time.Duration
	Sleep       func(time.Duration)
}

// LinearBackoff matches the site's historical fetch behaviour: up to three
// attempts with 3s, then 6s between them.
func LinearBackoff() BackoffPolicy {
	return BackoffPolicy{
		MaxAttempts: 3,
		Delay:       func(attempt int) time.Duration { return time.Duration(attempt) * 3 * time.Second },
		Sleep:       time.Sleep,
	}
}

// Retry runs fn until it succeeds or attempts are exhausted, returning the
// last error.
func (p BackoffPolicy) Retry(fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt < attempts && p.Delay != nil {
			d := p.Delay(attempt)
			if d > 0 && p.Sleep != nil {
				p.Sleep(d)
			}
		}
	}
	return err
}
