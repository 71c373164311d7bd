package common

import (
	"errors"
	"fmt"
	"math"
)

const (
	BaseWidth  = 1280
	BaseHeight = 720
	TileSize   = 32

	// DefaultTPS is used whenever the host reports no measured tick rate yet.
	DefaultTPS = 60
)

var (
	// ErrInvalidArgument is the root of every argument validation error in
	// the gameplay packages.
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvertedRange   = fmt.Errorf("%w: max cannot be smaller than min", ErrInvalidArgument)
	ErrNegativeSize    = fmt.Errorf("%w: size must not be negative", ErrInvalidArgument)
)

type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// ForceRange clamps value into [min, max]. An inverted range is rejected
// and value is returned untouched.
func ForceRange[T Number](value, min, max T) (T, error) {
	if max < min {
		return value, fmt.Errorf("%w (min: %v max: %v)", ErrInvertedRange, min, max)
	}
	if value < min {
		return min, nil
	}
	if value > max {
		return max, nil
	}
	return value, nil
}

// IntMoveTowards steps current towards target by at most speed.
func IntMoveTowards(current, target, speed int) int {
	switch {
	case current < target:
		if current+speed > target {
			return target
		}
		return current + speed
	case current > target:
		if current-speed < target {
			return target
		}
		return current - speed
	}
	return current
}

// MoveTowards is the float version of IntMoveTowards.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// UseAsTimer counts *t down to zero by dt and reports whether it got there.
func UseAsTimer(t *float64, dt float64) bool {
	if t == nil {
		return false
	}
	*t = MoveTowards(*t, 0, dt)
	return math.Abs(*t) < math.SmallestNonzeroFloat64
}

// IsWithinRange reports whether v lies strictly between start and end.
// When start > end the range wraps, so anything outside [end, start] counts.
// When start == end only v == start counts.
func IsWithinRange(v, start, end float64) bool {
	switch {
	case start < end:
		return v > start && v < end
	case start > end:
		return v < start || v > end
	default:
		return v == start
	}
}

// IsNearZero reports whether v is within float epsilon of zero.
func IsNearZero(v float64) bool {
	return math.Abs(v) < math.SmallestNonzeroFloat64
}

// Resize returns a copy of data with exactly size elements, truncating or
// padding with zero values.
func Resize[T any](data []T, size int) ([]T, error) {
	if size < 0 {
		return data, ErrNegativeSize
	}
	out := make([]T, size)
	copy(out, data)
	return out, nil
}

// DividingPoint returns the index-th of sections equally spaced points on
// the segment from (x0, y0) to (x1, y1).
func DividingPoint(x0, y0, x1, y1 float64, sections, index int) (float64, float64) {
	if sections <= 0 {
		return x0, y0
	}
	t := float64(index) / float64(sections)
	return x0 + (x1-x0)*t, y0 + (y1-y0)*t
}

// LevelTag is the short label shown above a level name on the world map.
func LevelTag(world, level int) string {
	switch {
	case level > 0 && level <= 3:
		return fmt.Sprintf("Level %d", level+(world-1)*3)
	case level == 4:
		return "High Voltage Challenge!"
	case level == 5:
		return "BOSS BATTLE"
	}
	return ""
}
