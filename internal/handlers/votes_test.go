package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emilythestrangee/devflow/backend/internal/handlers"
	"github.com/emilythestrangee/devflow/backend/internal/interactions"
	"github.com/emilythestrangee/devflow/backend/internal/models"
)

var testDBSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.Answer{},
		&models.Vote{},
		&models.Interaction{},
		&models.Collection{},
	))
	return db
}

// newTestRouter mounts the vote routes behind a stub auth middleware that
// trusts the X-Test-User header, bypassing JWT handling.
func newTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := interactions.NewRecorder(db)
	t.Cleanup(recorder.Close)
	handler := handlers.NewHandler(db, recorder, []byte("test-secret"))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if raw := c.GetHeader("X-Test-User"); raw != "" {
			var id int
			fmt.Sscanf(raw, "%d", &id)
			c.Set("user_id", id)
		}
		c.Next()
	})
	r.POST("/api/votes", handler.Vote.CastVote)
	r.GET("/api/votes/state", handler.Vote.GetVoteState)
	return r
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com", Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createQuestion(t *testing.T, db *gorm.DB, authorID int) *models.Question {
	t.Helper()
	q := models.Question{Title: "t", Content: "c", AuthorID: authorID}
	require.NoError(t, db.Create(&q).Error)
	return &q
}

func doRequest(r *gin.Engine, method, path, body string, userID int) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req.Header.Set("X-Test-User", fmt.Sprintf("%d", userID))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCastVoteEndpoint(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	author := createUser(t, db, "author")
	voter := createUser(t, db, "voter")
	q := createQuestion(t, db, author.ID)

	body := fmt.Sprintf(`{"target_id": %d, "target_type": "question", "vote_type": "upvote"}`, q.ID)
	w := doRequest(r, http.MethodPost, "/api/votes", body, voter.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"has_upvoted":true`)
	assert.Contains(t, w.Body.String(), `"has_downvoted":false`)

	var reloaded models.Question
	require.NoError(t, db.First(&reloaded, q.ID).Error)
	assert.Equal(t, 1, reloaded.Upvotes)
}

func TestCastVoteEndpoint_Unauthenticated(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	w := doRequest(r, http.MethodPost, "/api/votes",
		`{"target_id": 1, "target_type": "question", "vote_type": "upvote"}`, 0)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCastVoteEndpoint_BadBody(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	voter := createUser(t, db, "voter")

	w := doRequest(r, http.MethodPost, "/api/votes", `{"target_id": 1}`, voter.ID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCastVoteEndpoint_MissingTarget(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	voter := createUser(t, db, "voter")

	w := doRequest(r, http.MethodPost, "/api/votes",
		`{"target_id": 9999, "target_type": "question", "vote_type": "upvote"}`, voter.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetVoteStateEndpoint(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)
	author := createUser(t, db, "author")
	voter := createUser(t, db, "voter")
	q := createQuestion(t, db, author.ID)

	body := fmt.Sprintf(`{"target_id": %d, "target_type": "question", "vote_type": "downvote"}`, q.ID)
	w := doRequest(r, http.MethodPost, "/api/votes", body, voter.ID)
	require.Equal(t, http.StatusOK, w.Code)

	path := fmt.Sprintf("/api/votes/state?target_id=%d&target_type=question", q.ID)
	w = doRequest(r, http.MethodGet, path, "", voter.ID)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"has_downvoted":true`)

	// Another user sees no vote of their own.
	w = doRequest(r, http.MethodGet, path, "", author.ID)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"has_downvoted":false`)

	w = doRequest(r, http.MethodGet, "/api/votes/state?target_id=abc&target_type=question", "", voter.ID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
