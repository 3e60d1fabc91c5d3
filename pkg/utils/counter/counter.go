// The package counter defines a minimalistic Float counter
package counter

import (
	"sync/atomic"
)

const defaultScale float64 = 1000000

// Float is a struct for a floating point counter. The value of the counter is
// counter.Load() / scale.
type Float struct {
	scale   float64
	counter atomic.Int64
}

// NewFloatCounter() returns a new Float counter with the default scale factor
// (six decimal digits).
func NewFloatCounter() *Float {
	return NewFloatCounterWithScale(defaultScale)
}

// NewFloatCounterWithScale() returns a new Float counter with the specified
// scale factor, which controls precision. Larger scales overflow sooner.
func NewFloatCounterWithScale(scale float64) *Float {
	if scale <= 0 {
		scale = defaultScale
	}
	return &Float{scale: scale}
}

// Add() increases the counter by delta and returns the current value.
func (c *Float) Add(delta float64) float64 {
	if c == nil {
		return 0
	}

	incr := c.toInt(delta)
	return float64(c.counter.Add(incr)) / c.scale
}

// Load() returns the current value.
func (c *Float) Load() float64 {
	if c == nil {
		return 0
	}
	return float64(c.counter.Load()) / c.scale
}

// Store() overwrites the current value to val.
func (c *Float) Store(val float64) {
	if c == nil {
		return
	}
	c.counter.Store(c.toInt(val))
}

// toInt() rounds val*scale to the nearest integer, half away from zero.
func (c *Float) toInt(val float64) int64 {
	scaled := val * c.scale
	if scaled < 0 {
		return int64(scaled - 0.5)
	}
	return int64(scaled + 0.5)
}
