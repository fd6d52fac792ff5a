// Package builder contains unit tests for the configuration primitives
// (builderConfig and BuilderOption).
package builder

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRNGOptions verifies defaults, seeding reproducibility and panics on nil.
func TestRNGOptions(t *testing.T) {
	t.Parallel()

	assert.Nil(t, newBuilderConfig().rng, "default config has no RNG")

	a := newBuilderConfig(WithSeed(7))
	b := newBuilderConfig(WithSeed(7))
	require.NotNil(t, a.rng)
	assert.Equal(t, a.rng.Int63(), b.rng.Int63(), "same seed yields same stream")

	r := rand.New(rand.NewSource(1))
	assert.Same(t, r, newBuilderConfig(WithSeed(3), WithRand(r)).rng, "last option wins")

	assert.Panics(t, func() { WithRand(nil) })
}

func TestClockFallback(t *testing.T) {
	t.Parallel()

	cfg := newBuilderConfig().withClockFallback()
	assert.NotNil(t, cfg.rng)

	r := rand.New(rand.NewSource(1))
	assert.Same(t, r, newBuilderConfig(WithRand(r)).withClockFallback().rng, "explicit RNG is kept")
}

func TestSampleDistinct(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(11))
	pool := []int{0, 0, 0, 1, 2, 2, 3}
	seen := map[int]struct{}{}

	for i := 0; i < 100; i++ {
		got := sampleDistinct(rng, pool, 4, seen, nil)
		require.Len(t, got, 4)
		assert.ElementsMatch(t, []int{0, 1, 2, 3}, got)
	}
}
