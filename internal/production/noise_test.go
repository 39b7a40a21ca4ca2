package production

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedNoise_Deterministic(t *testing.T) {
	n := NewKeyedNoise(42, DefaultNoiseStdDev)
	m := time.Date(2012, 7, 1, 0, 0, 0, 0, time.UTC)

	first := n.Multiplier(3, m)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, n.Multiplier(3, m))
	}

	other := NewKeyedNoise(43, DefaultNoiseStdDev)
	assert.NotEqual(t, first, other.Multiplier(3, m))
}

func TestKeyedNoise_Bounded(t *testing.T) {
	n := NewKeyedNoise(7, DefaultNoiseStdDev)
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	var sum float64
	count := 0
	for field := int64(1); field <= 20; field++ {
		for i := 0; i < 120; i++ {
			v := n.Multiplier(field, start.AddDate(0, i, 0))
			if v < 1-3*DefaultNoiseStdDev || v > 1+3*DefaultNoiseStdDev {
				t.Fatalf("multiplier %v outside 3 sigma", v)
			}
			sum += v
			count++
		}
	}

	// 2400 draws: the mean should sit close to 1.
	assert.InDelta(t, 1.0, sum/float64(count), 0.005)
}

func TestKeyedNoise_ZeroStdDev(t *testing.T) {
	n := KeyedNoise{Seed: 1}
	assert.Equal(t, 1.0, n.Multiplier(1, time.Now()))
}

func TestNoNoise(t *testing.T) {
	assert.Equal(t, 1.0, NoNoise{}.Multiplier(9, time.Now()))
}
