package cache

const defaultMaxSize = 1024

type settings struct {
	maxSize int
}

// Option configures a Cache.
type Option func(*settings)

// WithMaxSize sets the maximum number of entries to keep in memory.
// If maxSize > 0: bounded mode with oldest-first eviction.
// If maxSize <= 0: unbounded mode (no eviction).
func WithMaxSize(maxSize int) Option {
	return func(s *settings) {
		s.maxSize = maxSize
	}
}
