package listing

import "math/rand"

// Reveal sizing for the unfiltered landing listing: show InitialReveal items,
// grow by RevealStep on each "load more" until the whole set is visible.
const (
	InitialReveal = 9
	RevealStep    = 6
)

// Shuffle performs a uniform in-place Fisher-Yates shuffle of n elements via
// the provided swap function. The randomness source is injected so listings
// can be made reproducible under test; pass rand.NewSource(time.Now().
// UnixNano()) in production paths.
func Shuffle(n int, src rand.Source, swap func(i, j int)) {
	if n < 2 || src == nil {
		return
	}
	rng := rand.New(src)
	rng.Shuffle(n, swap)
}

// Window clamps a requested reveal size against the total result count.
// It returns the number of items to display and whether more remain. A
// requested size at or beyond total is terminal: everything is shown and the
// "load more" control goes away.
func Window(total, requested int) (shown int, hasMore bool) {
	if total <= 0 {
		return 0, false
	}
	if requested <= 0 {
		requested = InitialReveal
	}
	if requested >= total {
		return total, false
	}
	return requested, true
}

// Next returns the reveal size after one "load more" action. Already-terminal
// windows are unchanged.
func Next(total, current int) int {
	if current >= total {
		return total
	}
	next := current + RevealStep
	if next > total {
		return total
	}
	return next
}
