// Package reputation maps community interactions to point deltas and applies
// them to user accounts. The policy itself is a pure table with no I/O.
package reputation

import "github.com/emilythestrangee/devflow/backend/internal/models"

// Delta is the pair of point changes produced by one interaction: one for the
// user performing it and one for the author of the target content.
type Delta struct {
	Performer int
	Author    int
}

// Inverse flips both signs. Retracting a vote applies the inverse of the cast
// delta; there is no separate retraction row in the table.
func (d Delta) Inverse() Delta {
	return Delta{Performer: -d.Performer, Author: -d.Author}
}

// IsZero reports whether the delta changes nothing.
func (d Delta) IsZero() bool {
	return d.Performer == 0 && d.Author == 0
}

// ComputeDelta returns the point deltas for a single interaction. Actions not
// in the table (view, bookmark, edit, search) score zero.
func ComputeDelta(action models.InteractionAction, targetType models.TargetType) Delta {
	switch action {
	case models.ActionUpvote:
		return Delta{Performer: 2, Author: 5}
	case models.ActionDownvote:
		return Delta{Performer: -1, Author: -2}
	case models.ActionPost:
		if targetType == models.TargetQuestion {
			return Delta{Author: 5}
		}
		return Delta{Author: 10}
	case models.ActionDelete:
		if targetType == models.TargetQuestion {
			return Delta{Author: -5}
		}
		return Delta{Author: -10}
	}
	return Delta{}
}
