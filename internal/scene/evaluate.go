package scene

import (
	"math"

	"github.com/vovakirdan/fallscene/internal/core"
)

// Motion constants, world units.
const (
	YStart = 5.0  // Height at which an item appears
	YEnd   = -5.5 // Items below this height are gone

	fallScale = 2.5 // fallSpeed -> world units per second
	spinScale = 0.5 // rotationSpeed -> radians per second
)

// FrameState is the evaluated state of one record at one frame.
type FrameState struct {
	Visible  bool
	X, Y     float64
	Rotation float64
}

// EvaluateRecord computes where a record is at the given frame. Motion is a
// function of the time elapsed since spawn only, so no earlier frame is needed.
func EvaluateRecord(s SpawnRecord, frame, fps int, fallSpeed, xRange float64) FrameState {
	dtFrames := frame - s.SpawnFrame
	if dtFrames < 0 || fps <= 0 {
		return FrameState{}
	}
	tSec := float64(dtFrames) / float64(fps)

	// Products are converted explicitly so they are rounded before the
	// add; a fused multiply-add would make results architecture dependent.
	y := YStart - float64(fallSpeed*tSec*fallScale)
	if y < YEnd {
		return FrameState{}
	}

	x := core.ClampF(s.X0+float64(s.Drift*tSec), -xRange, xRange)
	return FrameState{
		Visible:  true,
		X:        x,
		Y:        y,
		Rotation: s.RotationSpeed * tSec * spinScale,
	}
}

// Evaluate returns one state per record of the plan, in plan order.
func Evaluate(plan Plan, frame, fps int, fallSpeed float64) []FrameState {
	states := make([]FrameState, len(plan.Records))
	for i, rec := range plan.Records {
		states[i] = EvaluateRecord(rec, frame, fps, fallSpeed, plan.Key.XRange)
	}
	return states
}

// VisibleFrames returns the first and last frame at which an item spawned at
// spawnFrame is visible. last is math.MaxInt when the item never leaves, and
// last < first when it is never visible.
func VisibleFrames(spawnFrame, fps int, fallSpeed float64) (first, last int) {
	if fps <= 0 {
		return spawnFrame, spawnFrame - 1
	}
	if fallSpeed <= 0 {
		return spawnFrame, math.MaxInt
	}

	visible := func(frame int) bool {
		return EvaluateRecord(SpawnRecord{SpawnFrame: spawnFrame}, frame, fps, fallSpeed, 0).Visible
	}

	// Closed-form estimate, then settle on the exact predicate.
	exitSec := (YStart - YEnd) / (fallSpeed * fallScale)
	last = spawnFrame + int(math.Floor(exitSec*float64(fps)))
	for last > spawnFrame && !visible(last) {
		last--
	}
	for visible(last + 1) {
		last++
	}
	return spawnFrame, last
}
