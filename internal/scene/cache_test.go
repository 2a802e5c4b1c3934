package scene

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPlanCacheHitsAndMisses(t *testing.T) {
	c := NewPlanCache(4)
	key := PlanKey{Seed: 42, SpawnCount: 80, TotalFrames: 300, XRange: 8}

	first := c.Get(key)
	second := c.Get(key)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached plan differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(NewPlanForKey(key), first); diff != "" {
		t.Errorf("cached plan differs from fresh plan (-fresh +cached):\n%s", diff)
	}

	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats() = (%d, %d), expected (1, 1)", hits, misses)
	}

	c.Get(PlanKey{Seed: 42, SpawnCount: 80, TotalFrames: 300, XRange: 8.5})
	if _, misses = c.Stats(); misses != 2 {
		t.Errorf("different xRange should miss, misses = %d", misses)
	}
}

func TestPlanCacheLimit(t *testing.T) {
	c := NewPlanCache(3)
	for seed := uint32(1); seed <= 3; seed++ {
		c.Get(PlanKey{Seed: seed, SpawnCount: 5, TotalFrames: 30, XRange: 1})
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", c.Len())
	}

	c.Get(PlanKey{Seed: 4, SpawnCount: 5, TotalFrames: 30, XRange: 1})
	if c.Len() != 1 {
		t.Errorf("Len() after overflow = %d, expected 1", c.Len())
	}

	if NewPlanCache(0).limit != DefaultPlanCacheSize {
		t.Error("NewPlanCache(0) should use DefaultPlanCacheSize")
	}
}

func TestPlanCacheConcurrent(t *testing.T) {
	c := NewPlanCache(8)
	key := PlanKey{Seed: 99, SpawnCount: 200, TotalFrames: 600, XRange: 7}
	want := NewPlanForKey(key)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := c.Get(key); Fingerprint(got) != Fingerprint(want) {
				t.Error("concurrent Get() returned a different plan")
			}
		}()
	}
	wg.Wait()

	hits, misses := c.Stats()
	if misses != 1 || hits != 31 {
		t.Errorf("Stats() = (%d, %d), expected (31, 1)", hits, misses)
	}
}
