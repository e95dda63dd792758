package pitch

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPitch(t *testing.T, name string) *Pitch {
	t.Helper()
	p, ok := StandardCatalog().Get(name)
	require.True(t, ok, name)
	return &p
}

func TestGuessDirectional(t *testing.T) {
	cases := []struct {
		seed     string
		measured float64
		want     string
	}{
		{"C2", 874.0, "A5"},
		{"B5", 874.0, "A5"},
		{"A2", 880.0, "A5"},
		{"A4", 440.0, "A4"},
		{"A4", 262.0, "C4"},
		{"C4", 329.0, "E4"},
		{"G9", 28.0, "A0"},
		{"A0", 15000.0, "A#9"},
	}

	c := StandardCatalog()
	for _, tc := range cases {
		t.Run(tc.seed+"->"+tc.want, func(t *testing.T) {
			p, err := c.Guess(tc.measured, seedPitch(t, tc.seed))
			require.NoError(t, err)
			assert.Equal(t, tc.want, p.Name)
			assert.Equal(t, tc.measured, p.Measured)
		})
	}
}

func TestGuessExactReferenceIsIdentity(t *testing.T) {
	c := StandardCatalog()
	for i := 0; i < c.Len(); i++ {
		ref := c.At(i)
		p, err := c.Guess(ref.Frequency, &ref)
		require.NoError(t, err, ref.Name)
		assert.Equal(t, ref.Name, p.Name)
		assert.Zero(t, p.Cents)
	}
}

func TestGuessDefaultsToA4Seed(t *testing.T) {
	p, err := StandardCatalog().Guess(445, nil)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("A4", p.Name)
	assert.Equal(440.0, p.Frequency)
	assert.InDelta(19.56, p.Cents, 0.01)

	p, err = StandardCatalog().Guess(445, &Silence)
	require.NoError(t, err)
	assert.Equal("A4", p.Name)
}

func TestGuessOutOfRange(t *testing.T) {
	c := StandardCatalog()

	_, err := c.Guess(20, nil)
	assert.True(t, errors.Is(err, ErrUnresolvablePitch))

	_, err = c.Guess(20000, seedPitch(t, "C8"))
	assert.True(t, errors.Is(err, ErrUnresolvablePitch))
}

func TestGuessUnknownSeed(t *testing.T) {
	_, err := StandardCatalog().Guess(440, &Pitch{Name: "H2"})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnresolvablePitch))
}

func TestCents(t *testing.T) {
	assert := assert.New(t)
	assert.InDelta(1200, Cents(880, 440), 1e-9)
	assert.InDelta(-100, Cents(440, 466.1637615), 1e-3)
	assert.Zero(Cents(0, 440))
}
