package pitch

import (
	"math"

	"github.com/pkg/errors"
)

// DefaultSeed is the pitch the resolver starts from when there is no
// previous guess.
const DefaultSeed = "A4"

// Guess resolves a measured frequency to the nearest catalog pitch.
//
// The search starts at seed (A4 when nil) and walks toward the measured
// frequency until two neighbouring entries bracket it, so consecutive frames
// of a melody usually resolve after a few steps. The closer entry of the
// bracket wins; on an exact tie the one nearer the seed is kept. When the
// walk reaches the end of the catalog first, ErrUnresolvablePitch is
// returned.
func (c *Catalog) Guess(measured float64, seed *Pitch) (Pitch, error) {
	name := DefaultSeed
	if seed != nil && !seed.IsSilence() {
		name = seed.Name
	}
	start, ok := c.Get(name)
	if !ok {
		return Pitch{}, errors.Errorf("seed pitch %q is not in the catalog", name)
	}

	var (
		walk     *Walk
		brackets func(cur Pitch) bool
	)
	if measured < start.Frequency {
		walk, _ = c.Backward(start.Name)
		brackets = func(cur Pitch) bool { return measured >= cur.Frequency }
	} else {
		walk, _ = c.Forward(start.Name)
		brackets = func(cur Pitch) bool { return measured <= cur.Frequency }
	}

	prev, _ := walk.Next()
	if prev.Frequency == measured {
		return prev.resolved(measured), nil
	}

	for {
		cur, ok := walk.Next()
		if !ok {
			return Pitch{}, errors.Wrapf(ErrUnresolvablePitch, "%.3f Hz", measured)
		}
		if brackets(cur) {
			return closest(measured, prev, cur).resolved(measured), nil
		}
		prev = cur
	}
}

// closest returns whichever of near and far is closer to measured, keeping
// near on a tie.
func closest(measured float64, near, far Pitch) Pitch {
	if math.Abs(far.Frequency-measured) < math.Abs(near.Frequency-measured) {
		return far
	}
	return near
}
