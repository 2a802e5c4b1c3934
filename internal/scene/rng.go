// Package scene implements the deterministic falling-items simulation: a seeded
// spawn plan, per-frame kinematics evaluated from absolute elapsed time, and the
// viewport/camera math that maps world units onto an output frame.
//
// Every function here is pure. A frame can be evaluated without having
// evaluated any earlier frame, in any order, from any goroutine.
package scene

// XorShift32 is a 32-bit xorshift generator. All arithmetic wraps at 32 bits,
// which keeps the output stream identical to other runtimes that honor
// unsigned 32-bit wraparound.
//
// A zero seed yields zero forever. This is preserved on purpose: plans built
// from seed 0 are a documented degenerate case where every slot draws the
// same values.
type XorShift32 struct {
	state uint32
}

// NewXorShift32 creates a generator with the given seed.
func NewXorShift32(seed uint32) *XorShift32 {
	return &XorShift32{state: seed}
}

// SeedFrom converts a configuration seed to generator state the same way an
// unsigned 32-bit shift of the value would.
func SeedFrom(seed int64) uint32 {
	return uint32(seed)
}

// Next advances the generator and returns the new state.
func (r *XorShift32) Next() uint32 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 17
	r.state ^= r.state << 5
	return r.state
}

// Float advances the generator and returns state / 0xFFFFFFFF.
// The result lies in [0, 1]; 1 is only reached by the all-ones state.
func (r *XorShift32) Float() float64 {
	return float64(r.Next()) / 0xFFFFFFFF
}
