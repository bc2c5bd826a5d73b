// Package votes implements the voting core: the coordinator that keeps the
// vote ledger, the denormalized counters on questions/answers, and the
// reputation side effects consistent with each other.
package votes

import (
	"errors"

	"gorm.io/gorm"

	"github.com/emilythestrangee/devflow/backend/internal/apperrors"
	"github.com/emilythestrangee/devflow/backend/internal/interactions"
	"github.com/emilythestrangee/devflow/backend/internal/models"
)

// Coordinator orchestrates the read-modify-write sequence for a vote inside
// one transaction. Reputation and the interaction log are updated by the
// recorder after commit, never inside the transaction.
type Coordinator struct {
	db       *gorm.DB
	recorder *interactions.Recorder
}

func NewCoordinator(db *gorm.DB, recorder *interactions.Recorder) *Coordinator {
	return &Coordinator{db: db, recorder: recorder}
}

// CastVoteInput identifies the target and the requested stance.
type CastVoteInput struct {
	TargetID   int               `json:"target_id" binding:"required"`
	TargetType models.TargetType `json:"target_type" binding:"required"`
	VoteType   models.VoteType   `json:"vote_type" binding:"required"`
}

// VoteState is what a voter currently has on a target. The two flags are
// mutually exclusive.
type VoteState struct {
	HasUpvoted   bool `json:"has_upvoted"`
	HasDownvoted bool `json:"has_downvoted"`
}

func validateTarget(targetID int, targetType models.TargetType) error {
	if targetID <= 0 {
		return &apperrors.ValidationError{Field: "target_id", Reason: "must be a positive id"}
	}
	if !targetType.Valid() {
		return &apperrors.ValidationError{Field: "target_type", Reason: "must be question or answer"}
	}
	return nil
}

// CastVote records the voter's stance on the target. The three transitions:
//
//   - no existing vote: create it, counter +1
//   - existing vote, same stance: retract it, counter -1
//   - existing vote, other stance: flip it, new counter +1, old counter -1
//
// All ledger and counter writes for a call happen in one transaction; either
// everything commits or nothing is visible. Returns the voter's state after
// the call.
func (c *Coordinator) CastVote(in CastVoteInput, voterID int) (VoteState, error) {
	if voterID <= 0 {
		return VoteState{}, apperrors.ErrUnauthorized
	}
	if err := validateTarget(in.TargetID, in.TargetType); err != nil {
		return VoteState{}, err
	}
	if !in.VoteType.Valid() {
		return VoteState{}, &apperrors.ValidationError{Field: "vote_type", Reason: "must be upvote or downvote"}
	}

	action := models.ActionUpvote
	if in.VoteType == models.VoteDown {
		action = models.ActionDownvote
	}

	var (
		state  VoteState
		events []interactions.Event
	)

	err := c.db.Transaction(func(tx *gorm.DB) error {
		authorID, err := lockTargetAuthor(tx, in.TargetID, in.TargetType)
		if err != nil {
			return err
		}

		base := interactions.Event{
			TargetID:    in.TargetID,
			TargetType:  in.TargetType,
			PerformerID: voterID,
			AuthorID:    authorID,
		}

		var existing models.Vote
		err = tx.Where("user_id = ? AND target_id = ? AND target_type = ?",
			voterID, in.TargetID, in.TargetType).First(&existing).Error

		switch {
		case err == nil && existing.VoteType == in.VoteType:
			// Same stance again: retraction.
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if err := applyCounterDelta(tx, in.TargetID, in.TargetType, in.VoteType, -1); err != nil {
				return err
			}
			retract := base
			retract.Action = action
			retract.Retraction = true
			events = []interactions.Event{retract}

		case err == nil:
			// Opposite stance: flip in place, adjust both counters.
			oldStance := existing.VoteType
			if err := tx.Model(&existing).Update("vote_type", in.VoteType).Error; err != nil {
				return err
			}
			if err := applyCounterDelta(tx, in.TargetID, in.TargetType, in.VoteType, 1); err != nil {
				return err
			}
			if err := applyCounterDelta(tx, in.TargetID, in.TargetType, oldStance, -1); err != nil {
				return err
			}
			undo := base
			undo.Action = models.ActionUpvote
			if oldStance == models.VoteDown {
				undo.Action = models.ActionDownvote
			}
			undo.Retraction = true
			undo.SkipLog = true
			forward := base
			forward.Action = action
			events = []interactions.Event{undo, forward}
			state = stateFor(in.VoteType)

		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.Vote{
				UserID:     voterID,
				TargetID:   in.TargetID,
				TargetType: in.TargetType,
				VoteType:   in.VoteType,
			}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			if err := applyCounterDelta(tx, in.TargetID, in.TargetType, in.VoteType, 1); err != nil {
				return err
			}
			forward := base
			forward.Action = action
			events = []interactions.Event{forward}
			state = stateFor(in.VoteType)

		default:
			return err
		}

		return nil
	})
	if err != nil {
		return VoteState{}, translateTxError(err)
	}

	for _, e := range events {
		c.recorder.Enqueue(e)
	}
	return state, nil
}

// HasVoted reports the voter's current stance on the target. Read-only.
func (c *Coordinator) HasVoted(targetID int, targetType models.TargetType, voterID int) (VoteState, error) {
	if voterID <= 0 {
		return VoteState{}, apperrors.ErrUnauthorized
	}
	if err := validateTarget(targetID, targetType); err != nil {
		return VoteState{}, err
	}

	var vote models.Vote
	err := c.db.Where("user_id = ? AND target_id = ? AND target_type = ?",
		voterID, targetID, targetType).First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return VoteState{}, nil
	}
	if err != nil {
		return VoteState{}, err
	}
	return stateFor(vote.VoteType), nil
}

func stateFor(v models.VoteType) VoteState {
	return VoteState{
		HasUpvoted:   v == models.VoteUp,
		HasDownvoted: v == models.VoteDown,
	}
}

// translateTxError keeps the typed taxonomy: client errors pass through,
// duplicate-key races become conflicts, anything else failed to commit.
func translateTxError(err error) error {
	if apperrors.IsClientError(err) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrConflict
	}
	return &apperrors.TransactionError{Err: err}
}
