package scene

import "testing"

func TestXorShift32ReferenceSequence(t *testing.T) {
	// Reference xorshift32 (13, 17, 5) states for seed 42.
	expected := []uint32{11355432, 2836018348, 476557059, 3648046016, 3759983556, 1441438134, 3713466840, 2431644334}

	rng := NewXorShift32(42)
	for i, want := range expected {
		if got := rng.Next(); got != want {
			t.Fatalf("Next() #%d = %d, expected %d", i, got, want)
		}
	}
}

func TestXorShift32Float(t *testing.T) {
	rng := NewXorShift32(42)
	if got, want := rng.Float(), float64(11355432)/0xFFFFFFFF; got != want {
		t.Errorf("Float() = %v, expected %v", got, want)
	}

	rng = NewXorShift32(123456)
	for i := 0; i < 10000; i++ {
		f := rng.Float()
		if f < 0 || f > 1 {
			t.Fatalf("Float() = %v out of [0, 1] at draw %d", f, i)
		}
	}
}

func TestXorShift32ZeroSeedIsFixedPoint(t *testing.T) {
	rng := NewXorShift32(0)
	for i := 0; i < 16; i++ {
		if got := rng.Float(); got != 0 {
			t.Fatalf("Float() with seed 0 = %v at draw %d, expected 0", got, i)
		}
	}
}

func TestXorShift32Determinism(t *testing.T) {
	a := NewXorShift32(987654)
	b := NewXorShift32(987654)
	for i := 0; i < 1000; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("streams diverged at draw %d: %d != %d", i, x, y)
		}
	}
}

func TestSeedFrom(t *testing.T) {
	tests := []struct {
		seed     int64
		expected uint32
	}{
		{0, 0},
		{42, 42},
		{1_000_000, 1_000_000},
		{-1, 0xFFFFFFFF},
		{1 << 32, 0},
	}

	for _, tc := range tests {
		if got := SeedFrom(tc.seed); got != tc.expected {
			t.Errorf("SeedFrom(%d) = %d, expected %d", tc.seed, got, tc.expected)
		}
	}
}
