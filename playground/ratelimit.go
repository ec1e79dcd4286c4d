package playground

import (
	"time"
)

// enforceSubmitRateLimit sleeps through a soft overrun of the submit rate
// limit and refuses outright when the required delay exceeds the configured
// maximum.
func (app *App) enforceSubmitRateLimit() error {
	if app.Settings.DisableRateLimits {
		return nil
	}

	now := time.Now()
	rsrv := app.submitLimiter.ReserveN(now, 1)
	delay := rsrv.DelayFrom(now)
	maxDelay := time.Duration(app.Settings.MaxRateLimitDelayMs) * time.Millisecond
	if delay > maxDelay {
		rsrv.CancelAt(now)
		app.logf("ratelimit: submit hard rate limit exceeded (refusing to sleep for %d ms)", delay.Milliseconds())
		return ErrTooManyRequests
	}
	if delay > 0 {
		app.logf("ratelimit: submit soft rate limit exceeded (delay %d ms)", delay.Milliseconds())
		time.Sleep(delay)
	}
	return nil
}
