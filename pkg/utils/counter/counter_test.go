package counter

import (
	"math"
	"sync"
	"testing"
)

func TestFloat(t *testing.T) {
	c := NewFloatCounter()
	c.Add(1.5)
	c.Add(0.25)
	c.Add(-0.75)

	if val := c.Load(); math.Abs(val-1.0) > 1e-9 {
		t.Errorf("Load(): expected %v, got %v", 1.0, val)
	}

	c.Store(42.125)
	if val := c.Load(); val != 42.125 {
		t.Errorf("Store(): expected %v, got %v", 42.125, val)
	}
}

func TestFloatNil(t *testing.T) {
	var c *Float
	c.Store(3)
	if c.Add(1) != 0 || c.Load() != 0 {
		t.Errorf("nil Float: expected zero values")
	}
}

func TestFloatScale(t *testing.T) {
	c := NewFloatCounterWithScale(1)
	c.Add(2.4)
	c.Add(2.6)
	if val := c.Load(); val != 5 {
		t.Errorf("Load(): expected %v, got %v", 5, val)
	}
}

func TestFloatConcurrent(t *testing.T) {
	c := NewFloatCounter()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				c.Add(0.5)
			}
		}()
	}
	wg.Wait()

	if val := c.Load(); val != 4000 {
		t.Errorf("Load(): expected %v, got %v", 4000, val)
	}
}
