package util

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// Source is the random stream a battle draws every roll from.
// *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}

// NewSeed returns a seed read from crypto/rand, falling back to 1 when the
// system source is unavailable.
func NewSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 1
	}
	return int64(binary.LittleEndian.Uint64(b[:]) >> 1)
}

// Percent draws a d100 roll and reports whether it fell under pct.
// The roll is drawn even when pct is 0 or 100.
func Percent(src Source, pct int) bool {
	return src.Intn(100) < pct
}

// Between draws an int in [lo, hi].
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}
