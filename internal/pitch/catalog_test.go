package pitch

import (
	"testing"

	"github.com/0xlemi/phinote/internal/tuning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogMatchesTuningTable(t *testing.T) {
	c := StandardCatalog()
	table := tuning.Standard()

	require.Equal(t, len(table), c.Len())
	for name, want := range table {
		p, ok := c.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, want, p.Frequency, name)
	}
}

func TestCatalogSpotChecks(t *testing.T) {
	c := StandardCatalog()
	for name, want := range map[string]float64{
		"A0": 27.5,
		"A1": 55.0,
		"A2": 110.0,
		"A3": 220.0,
		"A4": 440.0,
		"A5": 880.0,
		"A6": 1760.0,
		"A7": 3520.0,
	} {
		p, ok := c.Get(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, p.Frequency, name)
	}
}

func TestCatalogOrderAndMIDI(t *testing.T) {
	assert := assert.New(t)
	c := StandardCatalog()

	assert.Equal("A0", c.At(0).Name)
	assert.Equal(21, c.At(0).MIDI)
	assert.Equal("B9", c.At(c.Len()-1).Name)

	a4, _ := c.Get("A4")
	assert.Equal(69, a4.MIDI)
	c4, _ := c.Get("C4")
	assert.Equal(60, c4.MIDI)

	for i := 1; i < c.Len(); i++ {
		assert.Less(c.At(i-1).Frequency, c.At(i).Frequency)
		assert.Equal(c.At(i-1).MIDI+1, c.At(i).MIDI)
	}
}

func TestCatalogGetMissing(t *testing.T) {
	_, ok := StandardCatalog().Get("H4")
	assert.False(t, ok)
	_, ok = StandardCatalog().Get(SilenceName)
	assert.False(t, ok)
}

func TestNewCatalogSkipsMissingNames(t *testing.T) {
	c := NewCatalog(map[string]float64{"A4": 440, "C5": 523.251, "C0": 16.35})

	assert := assert.New(t)
	assert.Equal(2, c.Len(), "C0 is below A0")
	assert.Equal("A4", c.At(0).Name)
	assert.Equal("C5", c.At(1).Name)
}

func collect(w *Walk) []string {
	var names []string
	for {
		p, ok := w.Next()
		if !ok {
			return names
		}
		names = append(names, p.Name)
	}
}

func TestForwardWalk(t *testing.T) {
	w, ok := StandardCatalog().Forward("G#9")
	require.True(t, ok)
	assert.Equal(t, []string{"G#9", "A9", "A#9", "B9"}, collect(w))

	// exhausted walks stay exhausted
	_, ok = w.Next()
	assert.False(t, ok)
}

func TestBackwardWalk(t *testing.T) {
	w, ok := StandardCatalog().Backward("C1")
	require.True(t, ok)
	assert.Equal(t, []string{"C1", "B0", "A#0", "A0"}, collect(w))
}

func TestWalksAreMonotonic(t *testing.T) {
	c := StandardCatalog()

	fwd, _ := c.Forward("A4")
	prev, _ := fwd.Next()
	assert.Equal(t, "A4", prev.Name)
	for p, ok := fwd.Next(); ok; p, ok = fwd.Next() {
		assert.Greater(t, p.Frequency, prev.Frequency)
		prev = p
	}

	bwd, _ := c.Backward("A4")
	prev, _ = bwd.Next()
	assert.Equal(t, "A4", prev.Name)
	for p, ok := bwd.Next(); ok; p, ok = bwd.Next() {
		assert.Less(t, p.Frequency, prev.Frequency)
		prev = p
	}
}

func TestWalkFromBoundaryYieldsOnlyStart(t *testing.T) {
	w, ok := StandardCatalog().Forward("B9")
	require.True(t, ok, "present name is found even with nothing after it")
	assert.Equal(t, []string{"B9"}, collect(w))
}

func TestWalkMissingName(t *testing.T) {
	w, ok := StandardCatalog().Forward("test5_fake")
	assert.False(t, ok)
	assert.Nil(t, w)

	w, ok = StandardCatalog().Backward("test5_fake")
	assert.False(t, ok)
	assert.Nil(t, w)
}
