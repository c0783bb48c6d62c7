package session

import "time"

// Config holds session manager configuration.
type Config struct {
	// TTL is the session time-to-live (idle timeout, sliding).
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	// TouchInterval is the minimum time between sliding-expiry updates.
	// Zero disables throttling and every lookup extends the session.
	TouchInterval time.Duration `env:"SESSION_TOUCH_INTERVAL" envDefault:"5m"`
	// SweepInterval is how often the background sweep removes expired
	// sessions. Expiry is also checked lazily on lookup, so a stalled
	// sweep never lets an expired session authenticate.
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"60s"`
}
