package interactions_test

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emilythestrangee/devflow/backend/internal/interactions"
	"github.com/emilythestrangee/devflow/backend/internal/models"
)

var testDBSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:interactions_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Interaction{}))
	return db
}

func newRecorder(t *testing.T, db *gorm.DB) *interactions.Recorder {
	t.Helper()
	r := interactions.NewRecorder(db)
	t.Cleanup(r.Close)
	return r
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com", Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func userReputation(t *testing.T, db *gorm.DB, id int) int {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	return user.Reputation
}

func interactionCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Interaction{}).Count(&count).Error)
	return count
}

func TestRecorder_UpvoteEvent(t *testing.T) {
	db := newTestDB(t)
	recorder := newRecorder(t, db)
	voter := createUser(t, db, "voter")
	author := createUser(t, db, "author")

	recorder.Enqueue(interactions.Event{
		Action:      models.ActionUpvote,
		TargetID:    42,
		TargetType:  models.TargetQuestion,
		PerformerID: voter.ID,
		AuthorID:    author.ID,
	})
	recorder.Flush()

	assert.Equal(t, 2, userReputation(t, db, voter.ID))
	assert.Equal(t, 5, userReputation(t, db, author.ID))

	var row models.Interaction
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, voter.ID, row.UserID)
	assert.Equal(t, models.ActionUpvote, row.Action)
	assert.Equal(t, 42, row.TargetID)
	assert.Equal(t, models.TargetQuestion, row.TargetType)
}

func TestRecorder_RetractionInvertsDelta(t *testing.T) {
	db := newTestDB(t)
	recorder := newRecorder(t, db)
	voter := createUser(t, db, "voter")
	author := createUser(t, db, "author")

	recorder.Enqueue(interactions.Event{
		Action:      models.ActionUpvote,
		TargetID:    7,
		TargetType:  models.TargetAnswer,
		PerformerID: voter.ID,
		AuthorID:    author.ID,
	})
	recorder.Enqueue(interactions.Event{
		Action:      models.ActionUpvote,
		TargetID:    7,
		TargetType:  models.TargetAnswer,
		PerformerID: voter.ID,
		AuthorID:    author.ID,
		Retraction:  true,
	})
	recorder.Flush()

	assert.Equal(t, 0, userReputation(t, db, voter.ID))
	assert.Equal(t, 0, userReputation(t, db, author.ID))
	assert.EqualValues(t, 2, interactionCount(t, db))
}

func TestRecorder_SkipLogAppliesDeltaOnly(t *testing.T) {
	db := newTestDB(t)
	recorder := newRecorder(t, db)
	voter := createUser(t, db, "voter")
	author := createUser(t, db, "author")

	recorder.Enqueue(interactions.Event{
		Action:      models.ActionDownvote,
		TargetID:    7,
		TargetType:  models.TargetQuestion,
		PerformerID: voter.ID,
		AuthorID:    author.ID,
		SkipLog:     true,
	})
	recorder.Flush()

	assert.EqualValues(t, 0, interactionCount(t, db))
	assert.Equal(t, -1, userReputation(t, db, voter.ID))
	assert.Equal(t, -2, userReputation(t, db, author.ID))
}

func TestRecorder_SelfPostScoresOnce(t *testing.T) {
	db := newTestDB(t)
	recorder := newRecorder(t, db)
	author := createUser(t, db, "author")

	recorder.Enqueue(interactions.Event{
		Action:      models.ActionPost,
		TargetID:    1,
		TargetType:  models.TargetAnswer,
		PerformerID: author.ID,
		AuthorID:    author.ID,
	})
	recorder.Flush()

	assert.Equal(t, 10, userReputation(t, db, author.ID))
}

func TestRecorder_ViewLogsWithoutReputation(t *testing.T) {
	db := newTestDB(t)
	recorder := newRecorder(t, db)
	viewer := createUser(t, db, "viewer")
	author := createUser(t, db, "author")

	recorder.Enqueue(interactions.Event{
		Action:      models.ActionView,
		TargetID:    3,
		TargetType:  models.TargetQuestion,
		PerformerID: viewer.ID,
		AuthorID:    author.ID,
	})
	recorder.Flush()

	assert.EqualValues(t, 1, interactionCount(t, db))
	assert.Equal(t, 0, userReputation(t, db, viewer.ID))
	assert.Equal(t, 0, userReputation(t, db, author.ID))
}

func TestRecorder_FailureIsSwallowed(t *testing.T) {
	db := newTestDB(t)
	recorder := newRecorder(t, db)
	voter := createUser(t, db, "voter")
	author := createUser(t, db, "author")

	// With the audit table gone the worker's transaction fails. The error
	// must stay inside the recorder.
	require.NoError(t, db.Migrator().DropTable(&models.Interaction{}))

	recorder.Enqueue(interactions.Event{
		Action:      models.ActionUpvote,
		TargetID:    1,
		TargetType:  models.TargetQuestion,
		PerformerID: voter.ID,
		AuthorID:    author.ID,
	})
	recorder.Flush()

	// The failed transaction rolled back the reputation delta too.
	assert.Equal(t, 0, userReputation(t, db, voter.ID))
	assert.Equal(t, 0, userReputation(t, db, author.ID))

	// The recorder keeps working for later events.
	require.NoError(t, db.AutoMigrate(&models.Interaction{}))
	recorder.Enqueue(interactions.Event{
		Action:      models.ActionUpvote,
		TargetID:    1,
		TargetType:  models.TargetQuestion,
		PerformerID: voter.ID,
		AuthorID:    author.ID,
	})
	recorder.Flush()

	assert.Equal(t, 2, userReputation(t, db, voter.ID))
	assert.Equal(t, 5, userReputation(t, db, author.ID))
}
