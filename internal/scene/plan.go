package scene

import (
	"math"
	"sort"
)

// Spawn distribution parameters.
const (
	spawnJitter   = 0.3 // Full width of the timeline jitter (+/-0.15)
	maxDriftSpeed = 0.2 // World units per second
)

// SpawnRecord holds the motion parameters of one falling item.
type SpawnRecord struct {
	SpawnFrame    int     // First frame at which the item is visible
	X0            float64 // Initial horizontal position, world units
	RotationSpeed float64 // Signed, radians per second before the spin factor
	Drift         float64 // Signed horizontal drift, world units per second
}

// PlanKey identifies a plan. Equal keys always produce equal plans.
type PlanKey struct {
	Seed        uint32
	SpawnCount  int
	TotalFrames int
	XRange      float64
}

// Plan is the ordered, immutable set of spawn records for one render.
// Records are sorted by SpawnFrame; ties keep generation order.
// A Plan may be shared read-only between any number of goroutines.
type Plan struct {
	Key     PlanKey
	Records []SpawnRecord
}

// Len returns the number of records.
func (p Plan) Len() int {
	return len(p.Records)
}

// NewPlan generates the spawn plan for the given inputs.
//
// Slots are spread evenly over the timeline and jittered by up to 15% of it.
// A single generator stream is consumed four draws per slot in the fixed order
// jitter, x0, rotation speed, drift. totalFrames below 1 is treated as 1 and a
// non-positive spawnCount yields an empty plan.
func NewPlan(seed uint32, spawnCount, totalFrames int, xRange float64) Plan {
	key := PlanKey{Seed: seed, SpawnCount: spawnCount, TotalFrames: totalFrames, XRange: xRange}
	if spawnCount <= 0 {
		return Plan{Key: key, Records: []SpawnRecord{}}
	}
	frames := max(totalFrames, 1)

	rng := NewXorShift32(seed)
	records := make([]SpawnRecord, 0, spawnCount)
	for i := 0; i < spawnCount; i++ {
		t := float64(i) / float64(spawnCount)
		jitter := float64((rng.Float() - 0.5) * spawnJitter)
		spawnFrame := int(math.Floor((t + jitter) * float64(frames)))

		records = append(records, SpawnRecord{
			SpawnFrame:    clampFrame(spawnFrame, frames-1),
			X0:            signed(rng.Float()) * xRange,
			RotationSpeed: signed(rng.Float()) * math.Pi,
			Drift:         signed(rng.Float()) * maxDriftSpeed,
		})
	}

	sort.SliceStable(records, func(a, b int) bool {
		return records[a].SpawnFrame < records[b].SpawnFrame
	})

	return Plan{Key: key, Records: records}
}

// NewPlanForKey is NewPlan taking its inputs from a key.
func NewPlanForKey(key PlanKey) Plan {
	return NewPlan(key.Seed, key.SpawnCount, key.TotalFrames, key.XRange)
}

// signed maps a draw from [0, 1] to [-1, 1]. The explicit conversion rounds
// the product before the subtraction so no architecture fuses it into an FMA.
func signed(u float64) float64 {
	return float64(u*2) - 1
}

func clampFrame(frame, last int) int {
	if frame < 0 {
		return 0
	}
	if frame > last {
		return last
	}
	return frame
}
