package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func at(d float64) time.Time {
	return t0.Add(time.Duration(d * float64(time.Second)))
}

func move(tr *Tracker, x, y int, secs float64) bool {
	return tr.OnPointerMoved(PointerEvent{Position: Position{X: x, Y: y}, Timestamp: at(secs)})
}

func TestTracker_QualifyingDwellCommitsOnMoveAway(t *testing.T) {
	tr := NewTracker(time.Second)

	assert.False(t, move(tr, 0, 0, 0))
	assert.False(t, move(tr, 0, 0, 1.2))

	_, ok := tr.SavedPosition()
	require.False(t, ok, "nothing should be saved before the pointer leaves")

	assert.True(t, move(tr, 5, 5, 1.3))

	saved, ok := tr.SavedPosition()
	require.True(t, ok)
	assert.Equal(t, Position{X: 0, Y: 0}, saved)
}

func TestTracker_DwellTimedFromArrival(t *testing.T) {
	tr := NewTracker(time.Second)

	move(tr, 3, 3, 0)
	move(tr, 3, 3, 0.5)
	// One second since the pointer arrived, only half a second since the
	// first repeated sample.
	assert.True(t, move(tr, 4, 4, 1.0))

	saved, ok := tr.SavedPosition()
	require.True(t, ok)
	assert.Equal(t, Position{X: 3, Y: 3}, saved)
}

func TestTracker_ShortDwellSavesNothing(t *testing.T) {
	tr := NewTracker(time.Second)

	move(tr, 0, 0, 0)
	move(tr, 0, 0, 0.5)
	assert.False(t, move(tr, 5, 5, 0.6))

	_, ok := tr.SavedPosition()
	assert.False(t, ok)
}

func TestTracker_NoCommitWithoutMoveAway(t *testing.T) {
	tr := NewTracker(time.Second)

	move(tr, 10, 10, 0)
	for i := 1; i <= 50; i++ {
		assert.False(t, move(tr, 10, 10, float64(i)*0.1))
	}

	_, ok := tr.SavedPosition()
	assert.False(t, ok)
}

func TestTracker_LongDwellCommitsOnce(t *testing.T) {
	tr := NewTracker(time.Second)

	move(tr, 3, 4, 0)
	commits := 0
	for i := 1; i <= 30; i++ {
		if move(tr, 3, 4, float64(i)*0.1) {
			commits++
		}
	}
	if move(tr, 9, 9, 3.1) {
		commits++
	}
	// Moving on without dwelling must not re-save the old run.
	if move(tr, 12, 12, 3.2) {
		commits++
	}
	if move(tr, 15, 15, 3.3) {
		commits++
	}

	assert.Equal(t, 1, commits)
	saved, ok := tr.SavedPosition()
	require.True(t, ok)
	assert.Equal(t, Position{X: 3, Y: 4}, saved)
}

func TestTracker_ShortDwellKeepsPreviousSave(t *testing.T) {
	tr := NewTracker(time.Second)

	move(tr, 1, 1, 0)
	move(tr, 1, 1, 1.5)
	require.True(t, move(tr, 2, 2, 1.6))

	move(tr, 2, 2, 1.9)
	assert.False(t, move(tr, 7, 7, 2.0))

	saved, ok := tr.SavedPosition()
	require.True(t, ok)
	assert.Equal(t, Position{X: 1, Y: 1}, saved)
}

func TestTracker_LaterDwellReplacesSave(t *testing.T) {
	tr := NewTracker(time.Second)

	move(tr, 1, 1, 0)
	move(tr, 1, 1, 1.0)
	require.True(t, move(tr, 2, 2, 1.1))

	move(tr, 2, 2, 2.0)
	require.True(t, move(tr, 8, 8, 2.2))

	saved, ok := tr.SavedPosition()
	require.True(t, ok)
	assert.Equal(t, Position{X: 2, Y: 2}, saved)
}

func TestTracker_BackwardsClockTreatedAsMovement(t *testing.T) {
	tr := NewTracker(time.Second)

	move(tr, 0, 0, 10)
	move(tr, 0, 0, 12)
	assert.False(t, move(tr, 1, 1, 0))

	_, ok := tr.SavedPosition()
	assert.False(t, ok)
}

func TestTracker_SetThreshold(t *testing.T) {
	tr := NewTracker(0)
	assert.Equal(t, DefaultStillThreshold, tr.Threshold())

	tr.SetThreshold(-time.Second)
	assert.Equal(t, DefaultStillThreshold, tr.Threshold())

	tr.SetThreshold(300 * time.Millisecond)
	move(tr, 4, 4, 0)
	move(tr, 4, 4, 0.2)
	assert.True(t, move(tr, 5, 5, 0.4))
}

func TestTracker_CommitProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		threshold := time.Duration(rapid.IntRange(1, 5000).Draw(rt, "thresholdMs")) * time.Millisecond
		p := Position{
			X: rapid.IntRange(-4000, 4000).Draw(rt, "px"),
			Y: rapid.IntRange(-4000, 4000).Draw(rt, "py"),
		}
		q := Position{X: p.X + rapid.IntRange(1, 50).Draw(rt, "dx"), Y: p.Y}
		holdMs := rapid.IntRange(1, 15000).Draw(rt, "holdMs")
		samples := rapid.IntRange(1, 20).Draw(rt, "samples")

		tr := NewTracker(threshold)
		tr.OnPointerMoved(PointerEvent{Position: p, Timestamp: t0})
		for i := 1; i <= samples; i++ {
			ts := t0.Add(time.Duration(holdMs*i/(samples+1)) * time.Millisecond)
			require.False(rt, tr.OnPointerMoved(PointerEvent{Position: p, Timestamp: ts}))
			_, ok := tr.SavedPosition()
			require.False(rt, ok, "saved before the move-away")
		}

		hold := time.Duration(holdMs) * time.Millisecond
		committed := tr.OnPointerMoved(PointerEvent{Position: q, Timestamp: t0.Add(hold)})
		saved, ok := tr.SavedPosition()
		if hold >= threshold {
			require.True(rt, committed)
			require.True(rt, ok)
			require.Equal(rt, p, saved)
		} else {
			require.False(rt, committed)
			require.False(rt, ok)
		}
	})
}

func TestTracker_AtMostOneCommitPerRunProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tr := NewTracker(time.Second)
		steps := rapid.SliceOfN(rapid.IntRange(0, 3), 1, 200).Draw(rt, "steps")

		now := t0
		pos := Position{}
		stillSeen := false
		for i, step := range steps {
			now = now.Add(time.Duration(rapid.IntRange(1, 800).Draw(rt, "gapMs")) * time.Millisecond)
			// step 0 keeps the pointer still, anything else nudges it.
			if step != 0 {
				pos = Position{X: pos.X + step, Y: pos.Y}
			}
			committed := tr.OnPointerMoved(PointerEvent{Position: pos, Timestamp: now})
			if committed {
				require.NotZero(rt, step, "commit on a still sample at step %d", i)
				require.True(rt, stillSeen, "commit without a dwell at step %d", i)
			}
			switch {
			case step != 0:
				stillSeen = false
			case i > 0:
				stillSeen = true
			}
		}
	})
}
