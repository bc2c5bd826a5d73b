// Package interactions writes the audit trail and propagates reputation
// deltas. Events are processed by a background worker after the primary
// transaction has committed; a failure here is logged and never surfaces to
// the request that produced the event.
package interactions

import (
	"log"
	"sync"

	"gorm.io/gorm"

	"github.com/emilythestrangee/devflow/backend/internal/models"
	"github.com/emilythestrangee/devflow/backend/internal/reputation"
)

// Event describes one committed user action.
type Event struct {
	Action     models.InteractionAction
	TargetID   int
	TargetType models.TargetType

	// PerformerID is the acting user; AuthorID owns the target content.
	PerformerID int
	AuthorID    int

	// Retraction applies the inverse of the action's reputation delta
	// (vote toggled off, or the undo half of a stance switch).
	Retraction bool

	// SkipLog suppresses the audit row for reputation-only adjustments.
	// A stance switch logs one interaction but applies two deltas.
	SkipLog bool
}

const queueSize = 256

// Recorder owns the event queue and the worker goroutine draining it.
type Recorder struct {
	db      *gorm.DB
	events  chan Event
	pending sync.WaitGroup
	done    chan struct{}
}

// NewRecorder starts the background worker.
func NewRecorder(db *gorm.DB) *Recorder {
	r := &Recorder{
		db:     db,
		events: make(chan Event, queueSize),
		done:   make(chan struct{}),
	}
	go r.run()
	return r
}

// Enqueue schedules an event for recording. It never blocks the caller: if
// the queue is full the event is dropped with a warning.
func (r *Recorder) Enqueue(e Event) {
	r.pending.Add(1)
	select {
	case r.events <- e:
	default:
		r.pending.Done()
		log.Printf("interactions: queue full, dropping %s event for %s %d", e.Action, e.TargetType, e.TargetID)
	}
}

// Flush blocks until every event enqueued so far has been processed.
// Intended for tests and shutdown paths; callers must not enqueue
// concurrently with Flush.
func (r *Recorder) Flush() {
	r.pending.Wait()
}

// Close drains the queue and stops the worker. Safe to call once.
func (r *Recorder) Close() {
	close(r.events)
	<-r.done
}

func (r *Recorder) run() {
	defer close(r.done)
	for e := range r.events {
		if err := r.record(e); err != nil {
			log.Printf("interactions: failed to record %s event for %s %d: %v", e.Action, e.TargetType, e.TargetID, err)
		}
		r.pending.Done()
	}
}

// record writes the audit row and the reputation deltas in one transaction of
// its own, independent of whatever transaction produced the event.
func (r *Recorder) record(e Event) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if !e.SkipLog {
			row := models.Interaction{
				UserID:     e.PerformerID,
				Action:     e.Action,
				TargetID:   e.TargetID,
				TargetType: e.TargetType,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		delta := reputation.ComputeDelta(e.Action, e.TargetType)
		if e.Retraction {
			delta = delta.Inverse()
		}
		return reputation.Apply(tx, e.PerformerID, e.AuthorID, delta)
	})
}
