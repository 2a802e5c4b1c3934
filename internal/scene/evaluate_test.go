package scene

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEvaluateVisibilityWindow(t *testing.T) {
	rec := SpawnRecord{SpawnFrame: 0}
	const fps, fallSpeed = 30, 1.4

	// y(t) = 5 - 1.4*t*2.5 reaches -5.5 at t = 3s, i.e. frame 90.
	tExit := (YStart - YEnd) / (fallSpeed * 2.5)
	if math.Abs(tExit-3) > eps {
		t.Fatalf("tExit = %f, expected 3", tExit)
	}

	tests := []struct {
		frame   int
		visible bool
	}{
		{-1, false},
		{0, true},
		{1, true},
		{45, true},
		{89, true},
		{90, true}, // y = -5.499999999999998 stays on screen
		{91, false},
		{300, false},
	}

	for _, tc := range tests {
		st := EvaluateRecord(rec, tc.frame, fps, fallSpeed, 5)
		if st.Visible != tc.visible {
			t.Errorf("frame %d: Visible = %v, expected %v (y=%f)", tc.frame, st.Visible, tc.visible, st.Y)
		}
	}

	first, last := VisibleFrames(0, fps, fallSpeed)
	if first != 0 || last != 90 {
		t.Errorf("VisibleFrames(0, 30, 1.4) = (%d, %d), expected (0, 90)", first, last)
	}
}

func TestVisibleFramesMatchesPredicate(t *testing.T) {
	for _, fallSpeed := range []float64{0.01, 0.37, 1, 1.4, 2.5, 10} {
		for _, fps := range []int{1, 24, 30, 60} {
			first, last := VisibleFrames(17, fps, fallSpeed)
			rec := SpawnRecord{SpawnFrame: 17}
			if !EvaluateRecord(rec, first, fps, fallSpeed, 0).Visible {
				t.Errorf("speed %v fps %d: first frame %d not visible", fallSpeed, fps, first)
			}
			if !EvaluateRecord(rec, last, fps, fallSpeed, 0).Visible {
				t.Errorf("speed %v fps %d: last frame %d not visible", fallSpeed, fps, last)
			}
			if EvaluateRecord(rec, last+1, fps, fallSpeed, 0).Visible {
				t.Errorf("speed %v fps %d: frame %d after last still visible", fallSpeed, fps, last+1)
			}
		}
	}

	if _, last := VisibleFrames(0, 30, 0); last != math.MaxInt {
		t.Errorf("VisibleFrames() with zero speed last = %d, expected MaxInt", last)
	}
	if first, last := VisibleFrames(5, 0, 1); last >= first {
		t.Errorf("VisibleFrames() with zero fps = (%d, %d), expected empty window", first, last)
	}
}

func TestEvaluateRecordKinematics(t *testing.T) {
	rec := SpawnRecord{SpawnFrame: 10, X0: 1, RotationSpeed: 2, Drift: 0.1}

	st := EvaluateRecord(rec, 40, 30, 1, 5)
	if !st.Visible {
		t.Fatal("expected record to be visible one second after spawn")
	}
	if !almostEqual(st.Y, 5-2.5) {
		t.Errorf("Y = %f, expected 2.5", st.Y)
	}
	if !almostEqual(st.X, 1.1) {
		t.Errorf("X = %f, expected 1.1", st.X)
	}
	if !almostEqual(st.Rotation, 1) {
		t.Errorf("Rotation = %f, expected 1", st.Rotation)
	}

	atSpawn := EvaluateRecord(rec, 10, 30, 1, 5)
	if !atSpawn.Visible || atSpawn.Y != YStart || atSpawn.X != 1 || atSpawn.Rotation != 0 {
		t.Errorf("state at spawn = %+v, expected visible at (1, 5) with no rotation", atSpawn)
	}
}

func TestEvaluateRecordClampsX(t *testing.T) {
	const xr = 4.0
	tests := []struct {
		name string
		rec  SpawnRecord
	}{
		{"right edge drifting right", SpawnRecord{X0: xr - 0.01, Drift: 50}},
		{"left edge drifting left", SpawnRecord{X0: -xr + 0.01, Drift: -50}},
		{"outside range", SpawnRecord{X0: 100, Drift: 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for frame := 0; frame < 3000; frame += 7 {
				st := EvaluateRecord(tc.rec, frame, 30, 0.01, xr)
				if !st.Visible {
					continue
				}
				if st.X < -xr || st.X > xr {
					t.Fatalf("frame %d: X = %f outside [-%f, %f]", frame, st.X, xr, xr)
				}
			}
		})
	}
}

func TestEvaluateNoFrameRate(t *testing.T) {
	st := EvaluateRecord(SpawnRecord{}, 0, 0, 1, 1)
	if st.Visible {
		t.Errorf("EvaluateRecord() with fps 0 = %+v, expected invisible", st)
	}
}

func TestEvaluateFrameOrderIndependence(t *testing.T) {
	g, err := ComputeGeometry(1280, 720, 1.2)
	if err != nil {
		t.Fatalf("ComputeGeometry() error = %v", err)
	}
	p := NewPlan(42, 80, 300, g.XRange)

	var sequential []FrameState
	for frame := 0; frame <= 250; frame++ {
		sequential = Evaluate(p, frame, 30, 1.4)
	}
	direct := Evaluate(p, 250, 30, 1.4)

	if diff := cmp.Diff(sequential, direct); diff != "" {
		t.Errorf("frame 250 depends on evaluation history (-sequential +direct):\n%s", diff)
	}
	if len(direct) != p.Len() {
		t.Errorf("Evaluate() returned %d states, expected %d", len(direct), p.Len())
	}
}

func TestEvaluateShuffledConcurrent(t *testing.T) {
	p := NewPlan(7, 120, 240, 6)
	want := make([][]FrameState, 240)
	for frame := range want {
		want[frame] = Evaluate(p, frame, 24, 2)
	}

	order := rand.New(rand.NewSource(1)).Perm(240)
	got := make([][]FrameState, 240)
	var wg sync.WaitGroup
	for _, frame := range order {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[frame] = Evaluate(p, frame, 24, 2)
		}()
	}
	wg.Wait()

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("shuffled concurrent evaluation differs (-ordered +shuffled):\n%s", diff)
	}
}
