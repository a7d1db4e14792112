package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/randutil"
)

func TestDeckHasFiftyTwoUniqueCards(t *testing.T) {
	t.Parallel()

	d := NewDeck(randutil.New(1))
	require.Equal(t, 52, d.Remaining())

	cards, err := d.Deal(52)
	require.NoError(t, err)

	seen := NewCardSet(cards)
	assert.Equal(t, 52, seen.Len())
	assert.Equal(t, 0, d.Remaining())

	_, err = d.Draw()
	assert.ErrorIs(t, err, ErrDeckExhausted)
	assert.ErrorIs(t, d.Burn(), ErrDeckExhausted)
}

func TestDeckDeterministicWithSeed(t *testing.T) {
	t.Parallel()

	a, err := NewDeck(randutil.New(42)).Deal(10)
	require.NoError(t, err)
	b, err := NewDeck(randutil.New(42)).Deal(10)
	require.NoError(t, err)
	c, err := NewDeck(randutil.New(43)).Deal(10)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestDeckBurnAndReset(t *testing.T) {
	t.Parallel()

	d := NewDeck(randutil.New(7))
	require.NoError(t, d.Burn())
	_, err := d.Deal(3)
	require.NoError(t, err)
	assert.Equal(t, 48, d.Remaining())

	d.Reset()
	assert.Equal(t, 52, d.Remaining())
}

func TestDealDoesNotAliasDeck(t *testing.T) {
	t.Parallel()

	d := NewDeck(randutil.New(3))
	first, err := d.Deal(2)
	require.NoError(t, err)
	saved := append([]Card(nil), first...)

	d.Reset()
	assert.Equal(t, saved, first)
}

func TestStackedDeck(t *testing.T) {
	t.Parallel()

	top := MustParseCards("As Ks Qs Js Ts")
	d, err := NewStackedDeck(randutil.New(9), top...)
	require.NoError(t, err)

	got, err := d.Deal(5)
	require.NoError(t, err)
	assert.Equal(t, top, got)

	rest, err := d.Deal(47)
	require.NoError(t, err)
	assert.Equal(t, 52, NewCardSet(append(got, rest...)).Len())

	_, err = NewStackedDeck(randutil.New(9), MustParseCards("As As")...)
	assert.ErrorIs(t, err, ErrInvalidHand)
}

func TestShuffleIsRoughlyUniform(t *testing.T) {
	t.Parallel()

	// Position of the ace of spades after many shuffles should spread over all slots
	rng := randutil.New(11)
	var hits [52]int
	target := NewCard(Ace, Spades)
	for range 5200 {
		d := NewDeck(rng)
		for i := range 52 {
			c, _ := d.Draw()
			if c == target {
				hits[i]++
				break
			}
		}
	}
	for i, h := range hits {
		assert.Greater(t, h, 40, "slot %d under-represented", i)
		assert.Less(t, h, 180, "slot %d over-represented", i)
	}
}
