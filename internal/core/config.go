package core

import "time"

// ResolveSeed returns seed, or a time-based seed when seed is zero.
func ResolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}
