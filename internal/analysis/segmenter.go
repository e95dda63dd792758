package analysis

import (
	"github.com/0xlemi/phinote/internal/pitch"
	"github.com/pkg/errors"
)

// ErrEmptyFrameSequence is returned when there are no frames to segment.
var ErrEmptyFrameSequence = errors.New("no frames to segment")

// Segment merges runs of consecutive frames with the same pitch name into
// notes. Frame i covers [i*frameDuration, (i+1)*frameDuration).
func Segment(frames []pitch.Pitch, frameDuration float64) ([]NoteEvent, error) {
	if len(frames) == 0 {
		return nil, errors.WithStack(ErrEmptyFrameSequence)
	}

	var notes []NoteEvent
	current := NoteEvent{Pitch: frames[0], Start: 0}

	for i := 1; i < len(frames); i++ {
		if frames[i].Same(current.Pitch) {
			continue
		}
		cursor := float64(i) * frameDuration
		current.End = cursor
		notes = append(notes, current)
		current = NoteEvent{Pitch: frames[i], Start: cursor}
	}

	current.End = float64(len(frames)) * frameDuration
	notes = append(notes, current)

	return notes, nil
}
