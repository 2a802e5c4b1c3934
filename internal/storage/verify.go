package storage

import (
	"github.com/vovakirdan/fallscene/internal/scene"
)

// Verification compares a stored plan against a fresh plan for the same key.
type Verification struct {
	Entry       RenderEntry
	Recorded    string // Fingerprint saved with the render
	Stored      string // Fingerprint of the stored plan records
	Regenerated string // Fingerprint of a plan regenerated from the inputs
}

// OK reports whether all three fingerprints agree.
func (v Verification) OK() bool {
	return v.Recorded == v.Stored && v.Stored == v.Regenerated
}

// Verify regenerates the plan of a stored render and checks it is bit-identical.
func (s *Store) Verify(id string) (*Verification, error) {
	plan, err := s.StoredPlan(id)
	if err != nil {
		return nil, err
	}
	e, err := s.Render(id)
	if err != nil {
		return nil, err
	}

	return &Verification{
		Entry:       *e,
		Recorded:    e.Fingerprint,
		Stored:      scene.Fingerprint(plan),
		Regenerated: scene.Fingerprint(scene.NewPlanForKey(e.Key())),
	}, nil
}
