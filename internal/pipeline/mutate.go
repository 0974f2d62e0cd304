// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"

	"github.com/pdiddy/extract-geometry/internal/host"
	"github.com/pdiddy/extract-geometry/pkg/types"
)

// stripper removes everything that alters an element's boundary: openings,
// hosted instances, and joins with neighbours. It only runs inside the
// sandbox; every change it makes is rolled back.
type stripper struct {
	model   host.Model
	variant variant
	targets []host.Element
	diags   *types.Diagnostics

	deleted map[types.ElementID]bool
}

func (s *stripper) run() error {
	s.deleted = make(map[types.ElementID]bool)

	// Hosted instances are resolved before any deletion so that cascades
	// cannot hide them.
	hosted, err := s.hostedOnTargets()
	if err != nil {
		return err
	}

	openings, err := s.model.CollectOpenings()
	if err != nil {
		return fmt.Errorf("collecting openings: %w", err)
	}
	for _, op := range openings {
		if err := s.delete(op.ID, fmt.Sprintf("%s %q", op.Category, op.Name)); err != nil {
			return err
		}
	}
	for _, h := range hosted {
		if err := s.delete(h.ID, fmt.Sprintf("%s %q", h.Category, h.Name)); err != nil {
			return err
		}
	}

	if s.variant.joinable {
		for _, el := range s.targets {
			if err := s.model.DisallowJoins(el.ID); err != nil {
				s.diags.Add(types.JoinWarning, el.ID, "unable to disallow joins on %q: %v", el.Name, err)
			}
		}
	}
	return nil
}

func (s *stripper) hostedOnTargets() ([]host.Element, error) {
	instances, err := s.model.CollectHostedInstances()
	if err != nil {
		return nil, fmt.Errorf("collecting hosted instances: %w", err)
	}
	target := make(map[types.ElementID]bool, len(s.targets))
	for _, el := range s.targets {
		target[el.ID] = true
	}
	var out []host.Element
	for _, inst := range instances {
		if target[inst.HostID] {
			out = append(out, inst)
		}
	}
	return out, nil
}

// delete removes one element. An element already taken out by an earlier
// cascade is skipped; a declined deletion is a DeletionWarning.
func (s *stripper) delete(id types.ElementID, label string) error {
	if s.deleted[id] {
		return nil
	}
	ids, err := s.model.DeleteElement(id)
	if err != nil {
		return fmt.Errorf("deleting %s (id %d): %w", label, id, err)
	}
	if len(ids) == 0 {
		s.diags.Add(types.DeletionWarning, id, "unable to delete %s (id %d)", label, id)
		return nil
	}
	for _, d := range ids {
		s.deleted[d] = true
	}
	return nil
}
