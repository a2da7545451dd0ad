package ports

import "context"

// SequenceRepository hands out gapless-enough daily sequence numbers for
// business order ids. Next must be safe under concurrent callers: two
// simultaneous orders on the same day never receive the same value.
type SequenceRepository interface {
	// Next atomically increments and returns the counter for the given date
	// key (YYYYMMDD). The first call of a day returns 1.
	Next(ctx context.Context, dateKey string) (int, error)
}
