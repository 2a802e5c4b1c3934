package scene

import (
	"math"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// xRange720p is the spawn range of a 1280x720 frame with itemScale 1.2.
func xRange720p(t *testing.T) float64 {
	t.Helper()
	g, err := ComputeGeometry(1280, 720, 1.2)
	if err != nil {
		t.Fatalf("ComputeGeometry() error = %v", err)
	}
	return g.XRange
}

func TestPlanDeterminism(t *testing.T) {
	xr := xRange720p(t)

	a := NewPlan(42, 80, 300, xr)
	b := NewPlan(42, 80, 300, xr)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("NewPlan() not deterministic (-first +second):\n%s", diff)
	}

	c := NewPlan(43, 80, 300, xr)
	if cmp.Equal(a.Records, c.Records) {
		t.Error("different seeds produced identical plans")
	}
}

func TestPlanGoldenFingerprint(t *testing.T) {
	xr := xRange720p(t)

	tests := []struct {
		name        string
		seed        uint32
		count       int
		fingerprint string
	}{
		{"default composition", 42, 80, "ea69fb54af05f56709c69f42973414f82f33d4f8906ab7f0a83612e3eb91e829"},
		{"single slot", 42, 1, "c50a2c93459d9b35026c9d80dbe4a9f6964366d0a5405fefe2a718773fe2ba5b"},
		{"zero seed", 0, 5, "111a83156372c66b0c8a19f3da77bf3c2630992766db3dc9fdfe5dd4bf128eef"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Fingerprint(NewPlan(tc.seed, tc.count, 300, xr))
			if got != tc.fingerprint {
				t.Errorf("Fingerprint() = %s, expected %s", got, tc.fingerprint)
			}
		})
	}
}

func TestPlanOrdering(t *testing.T) {
	p := NewPlan(42, 80, 300, xRange720p(t))

	if p.Len() != 80 {
		t.Fatalf("Len() = %d, expected 80", p.Len())
	}
	first, last := p.Records[0], p.Records[p.Len()-1]
	if first.SpawnFrame > last.SpawnFrame {
		t.Errorf("first SpawnFrame %d > last SpawnFrame %d", first.SpawnFrame, last.SpawnFrame)
	}
	if !sort.SliceIsSorted(p.Records, func(i, j int) bool {
		return p.Records[i].SpawnFrame < p.Records[j].SpawnFrame
	}) {
		t.Error("records are not sorted by SpawnFrame")
	}
	if first.SpawnFrame != 0 || last.SpawnFrame != 299 {
		t.Errorf("SpawnFrame range = [%d, %d], expected [0, 299]", first.SpawnFrame, last.SpawnFrame)
	}
}

// referencePlan regenerates a plan slot by slot without sorting, then applies
// a stable sort, to pin the tie-breaking rule.
func referencePlan(seed uint32, count, frames int, xRange float64) []SpawnRecord {
	rng := NewXorShift32(seed)
	out := make([]SpawnRecord, count)
	for i := range out {
		t := float64(i) / float64(count)
		jitter := float64((rng.Float() - 0.5) * 0.3)
		sf := int(math.Floor((t + jitter) * float64(frames)))
		out[i] = SpawnRecord{
			SpawnFrame:    min(max(sf, 0), frames-1),
			X0:            (float64(rng.Float()*2) - 1) * xRange,
			RotationSpeed: (float64(rng.Float()*2) - 1) * math.Pi,
			Drift:         (float64(rng.Float()*2) - 1) * 0.2,
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].SpawnFrame < out[b].SpawnFrame })
	return out
}

func TestPlanStableTies(t *testing.T) {
	xr := xRange720p(t)

	// 500 slots over 20 frames forces many equal spawn frames.
	for _, seed := range []uint32{1, 42, 999_999} {
		got := NewPlan(seed, 500, 20, xr).Records
		want := referencePlan(seed, 500, 20, xr)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("seed %d: plan differs from stable reference (-want +got):\n%s", seed, diff)
		}
	}
}

func TestPlanBounds(t *testing.T) {
	xr := xRange720p(t)

	for _, seed := range []uint32{1, 7, 42, 1000, 65537, 1_000_000} {
		for _, frames := range []int{1, 2, 30, 300} {
			p := NewPlan(seed, 500, frames, xr)
			for i, r := range p.Records {
				if r.SpawnFrame < 0 || r.SpawnFrame > frames-1 {
					t.Fatalf("seed %d frames %d record %d: SpawnFrame %d out of range", seed, frames, i, r.SpawnFrame)
				}
				if math.Abs(r.X0) > xr {
					t.Fatalf("seed %d record %d: |X0| = %f > %f", seed, i, math.Abs(r.X0), xr)
				}
				if math.Abs(r.RotationSpeed) > math.Pi {
					t.Fatalf("seed %d record %d: |RotationSpeed| = %f > pi", seed, i, math.Abs(r.RotationSpeed))
				}
				if math.Abs(r.Drift) > 0.2 {
					t.Fatalf("seed %d record %d: |Drift| = %f > 0.2", seed, i, math.Abs(r.Drift))
				}
			}
		}
	}
}

func TestPlanSingleSlotScenario(t *testing.T) {
	xr := xRange720p(t)

	// The four draws of slot 0, in order: jitter, x0, rotation speed, drift.
	rng := NewXorShift32(42)
	draws := [4]float64{rng.Float(), rng.Float(), rng.Float(), rng.Float()}
	states := [4]uint32{11355432, 2836018348, 476557059, 3648046016}
	for i, s := range states {
		if want := float64(s) / 0xFFFFFFFF; draws[i] != want {
			t.Fatalf("draw %d = %v, expected %v", i, draws[i], want)
		}
	}

	p := NewPlan(42, 1, 300, xr)
	if p.Len() != 1 {
		t.Fatalf("Len() = %d, expected 1", p.Len())
	}
	r := p.Records[0]

	jitter := (draws[0] - 0.5) * 0.3
	wantFrame := min(max(int(math.Floor(jitter*300)), 0), 299)
	if r.SpawnFrame != wantFrame || r.SpawnFrame != 0 {
		t.Errorf("SpawnFrame = %d, expected %d (clamped to 0)", r.SpawnFrame, wantFrame)
	}
	if want := (draws[1]*2 - 1) * xr; r.X0 != want {
		t.Errorf("X0 = %v, expected %v", r.X0, want)
	}
	if want := (draws[2]*2 - 1) * math.Pi; r.RotationSpeed != want {
		t.Errorf("RotationSpeed = %v, expected %v", r.RotationSpeed, want)
	}
	if want := (draws[3]*2 - 1) * 0.2; r.Drift != want {
		t.Errorf("Drift = %v, expected %v", r.Drift, want)
	}

	if math.Abs(r.X0-2.657616338654281) > 1e-12 {
		t.Errorf("X0 = %v, expected ~2.6576", r.X0)
	}
	if math.Abs(r.RotationSpeed-(-2.4444287160139853)) > 1e-12 {
		t.Errorf("RotationSpeed = %v, expected ~-2.4444", r.RotationSpeed)
	}
	if math.Abs(r.Drift-0.1397507608727903) > 1e-12 {
		t.Errorf("Drift = %v, expected ~0.13975", r.Drift)
	}
}

func TestPlanZeroSeedIsDegenerate(t *testing.T) {
	xr := xRange720p(t)
	p := NewPlan(0, 10, 300, xr)

	for i, r := range p.Records {
		if r.X0 != -xr || r.RotationSpeed != -math.Pi || r.Drift != -0.2 {
			t.Errorf("record %d = %+v, expected every slot at (-xRange, -pi, -0.2)", i, r)
		}
	}
}

func TestPlanEdgeInputs(t *testing.T) {
	t.Run("zero frames treated as one", func(t *testing.T) {
		p := NewPlan(42, 25, 0, 1)
		if p.Len() != 25 {
			t.Fatalf("Len() = %d, expected 25", p.Len())
		}
		for i, r := range p.Records {
			if r.SpawnFrame != 0 {
				t.Errorf("record %d SpawnFrame = %d, expected 0", i, r.SpawnFrame)
			}
		}
		if p.Key.TotalFrames != 0 {
			t.Errorf("Key.TotalFrames = %d, expected the caller's 0", p.Key.TotalFrames)
		}
	})

	t.Run("zero spawn count", func(t *testing.T) {
		p := NewPlan(42, 0, 300, 1)
		if p.Len() != 0 || p.Records == nil {
			t.Errorf("NewPlan(count=0) = %+v, expected empty non-nil records", p)
		}
	})

	t.Run("zero range pins x", func(t *testing.T) {
		p := NewPlan(42, 50, 300, 0)
		for i, r := range p.Records {
			if r.X0 != 0 {
				t.Errorf("record %d X0 = %v, expected 0", i, r.X0)
			}
		}
	})
}

func TestNewPlanForKey(t *testing.T) {
	key := PlanKey{Seed: 7, SpawnCount: 12, TotalFrames: 90, XRange: 3}
	if diff := cmp.Diff(NewPlan(7, 12, 90, 3), NewPlanForKey(key)); diff != "" {
		t.Errorf("NewPlanForKey() mismatch (-want +got):\n%s", diff)
	}
}

func TestFingerprintSensitivity(t *testing.T) {
	p := NewPlan(42, 10, 300, 4)
	base := Fingerprint(p)

	mutated := Plan{Key: p.Key, Records: append([]SpawnRecord(nil), p.Records...)}
	mutated.Records[3].Drift = math.Nextafter(mutated.Records[3].Drift, 1)
	if Fingerprint(mutated) == base {
		t.Error("Fingerprint() ignored a one-ulp change")
	}

	if Fingerprint(Plan{}) == Fingerprint(Plan{Records: []SpawnRecord{{}}}) {
		t.Error("Fingerprint() should distinguish empty plan from one zero record")
	}
}
