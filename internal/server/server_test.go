package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/frencon/backend/internal/config"
	"github.com/frencon/backend/internal/database"
	"github.com/frencon/backend/internal/models"
)

type testDB struct {
	db *gorm.DB
}

func (t *testDB) Health() map[string]string { return map[string]string{"status": "up"} }
func (t *testDB) Close() error              { return nil }
func (t *testDB) DB() *gorm.DB              { return t.db }

var _ database.Service = (*testDB)(nil)

func setupServer(t *testing.T) (http.Handler, *gorm.DB, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:  "test-secret",
		ServerPort: "0",
		BlogDir:    t.TempDir(),
	}
	return New(cfg, &testDB{db: db}).Handler, db, cfg
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// registerUser registers a user and returns the session token and user id.
func registerUser(t *testing.T, handler http.Handler, email, name string) (string, string) {
	t.Helper()

	w := doJSON(t, handler, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    email,
		"password": "password123",
		"name":     name,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp models.AuthResponse
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

type tableResponse struct {
	GameType string   `json:"gameType"`
	Columns  []string `json:"columns"`
	Voters   []struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
		Editable    bool   `json:"editable"`
	} `json:"voters"`
	Rows []struct {
		Nominee     map[string]any `json:"nominee"`
		VotesByUser map[string]int `json:"votesByUser"`
		Total       int            `json:"total"`
		CanDelete   bool           `json:"canDelete"`
	} `json:"rows"`
}

func createBoardGame(t *testing.T, handler http.Handler, token, title, weight string) string {
	t.Helper()

	w := doJSON(t, handler, http.MethodPost, "/api/nominations/boardGame", token, gin.H{
		"title":  title,
		"weight": weight,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var game models.BoardGame
	decode(t, w, &game)
	require.NotEmpty(t, game.ID)
	return game.ID
}

func setVote(t *testing.T, handler http.Handler, token, gameID string, score int) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(t, handler, http.MethodPut,
		fmt.Sprintf("/api/nominations/boardGame/%s/vote", gameID), token, gin.H{"vote": score})
}

func getTable(t *testing.T, handler http.Handler, token, query string) tableResponse {
	t.Helper()

	w := doJSON(t, handler, http.MethodGet, "/api/nominations/boardGame/table"+query, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var table tableResponse
	decode(t, w, &table)
	return table
}

func TestRegisterSetsSessionCookie(t *testing.T) {
	handler, _, _ := setupServer(t)

	w := doJSON(t, handler, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
		"name":     "Alice",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	var session *http.Cookie
	for _, c := range cookies {
		if c.Name == "__session" {
			session = c
		}
	}
	require.NotNil(t, session, "expected a __session cookie")
	assert.True(t, session.HttpOnly)
	assert.NotEmpty(t, session.Value)
	assert.Equal(t, http.SameSiteLaxMode, session.SameSite)

	// The cookie alone authenticates.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(session)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	handler, _, _ := setupServer(t)
	registerUser(t, handler, "alice@example.com", "Alice")

	w := doJSON(t, handler, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, handler, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeRequiresSession(t *testing.T) {
	handler, _, _ := setupServer(t)

	w := doJSON(t, handler, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, userID := registerUser(t, handler, "alice@example.com", "Alice")
	w = doJSON(t, handler, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me models.AuthUser
	decode(t, w, &me)
	assert.Equal(t, userID, me.ID)
	assert.Equal(t, "Alice", me.DisplayName)
}

func TestCreateNomineeValidation(t *testing.T) {
	handler, _, _ := setupServer(t)
	token, _ := registerUser(t, handler, "alice@example.com", "Alice")

	w := doJSON(t, handler, http.MethodPost, "/api/nominations/boardGame", token, gin.H{"weight": "light"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, handler, http.MethodPost, "/api/nominations/boardGame", "", gin.H{"title": "Catan"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, handler, http.MethodPost, "/api/nominations/cardGame", token, gin.H{"title": "Catan"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVoteWriteAndRoundTrip(t *testing.T) {
	handler, _, _ := setupServer(t)
	aliceToken, aliceID := registerUser(t, handler, "alice@example.com", "Alice")
	gameID := createBoardGame(t, handler, aliceToken, "Catan", "light")

	// Anonymous and out-of-range writes are rejected.
	assert.Equal(t, http.StatusUnauthorized, setVote(t, handler, "", gameID, 2).Code)
	assert.Equal(t, http.StatusBadRequest, setVote(t, handler, aliceToken, gameID, 3).Code)

	require.Equal(t, http.StatusOK, setVote(t, handler, aliceToken, gameID, 2).Code)

	table := getTable(t, handler, aliceToken, "")
	require.Len(t, table.Rows, 1)
	assert.Equal(t, 2, table.Rows[0].Total)
	assert.Equal(t, 2, table.Rows[0].VotesByUser[aliceID])

	// Writing the same score again must not double-count.
	require.Equal(t, http.StatusOK, setVote(t, handler, aliceToken, gameID, 2).Code)
	table = getTable(t, handler, aliceToken, "")
	assert.Equal(t, 2, table.Rows[0].Total)

	// A score of zero is a legitimate write, not a missing field.
	require.Equal(t, http.StatusOK, setVote(t, handler, aliceToken, gameID, 0).Code)
	table = getTable(t, handler, aliceToken, "")
	assert.Equal(t, 0, table.Rows[0].Total)
}

func TestTableScenarioCatan(t *testing.T) {
	handler, _, _ := setupServer(t)
	aliceToken, aliceID := registerUser(t, handler, "alice@example.com", "Alice")
	bobToken, bobID := registerUser(t, handler, "bob@example.com", "Bob")
	carolToken, carolID := registerUser(t, handler, "carol@example.com", "Carol")

	gameID := createBoardGame(t, handler, aliceToken, "Catan", "light")
	require.Equal(t, http.StatusOK, setVote(t, handler, aliceToken, gameID, 2).Code)
	require.Equal(t, http.StatusOK, setVote(t, handler, bobToken, gameID, 1).Code)

	table := getTable(t, handler, carolToken, "")
	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, 3, row.Total)
	assert.Equal(t, map[string]int{aliceID: 2, bobID: 1, carolID: 0}, row.VotesByUser)

	editable := map[string]bool{}
	for _, v := range table.Voters {
		editable[v.ID] = v.Editable
	}
	assert.True(t, editable[carolID])
	assert.False(t, editable[aliceID])
	assert.False(t, editable[bobID])

	// Carol raises her vote: total 3 → 5, other cells untouched.
	require.Equal(t, http.StatusOK, setVote(t, handler, carolToken, gameID, 2).Code)
	table = getTable(t, handler, carolToken, "")
	row = table.Rows[0]
	assert.Equal(t, 5, row.Total)
	assert.Equal(t, 2, row.VotesByUser[aliceID])
	assert.Equal(t, 1, row.VotesByUser[bobID])
	assert.Equal(t, 2, row.VotesByUser[carolID])
}

func TestTableSortingAndFiltering(t *testing.T) {
	handler, _, _ := setupServer(t)
	aliceToken, _ := registerUser(t, handler, "alice@example.com", "Alice")

	catan := createBoardGame(t, handler, aliceToken, "Catan", "light")
	createBoardGame(t, handler, aliceToken, "Root", "heavy")
	wingspan := createBoardGame(t, handler, aliceToken, "Wingspan", "medium")

	require.Equal(t, http.StatusOK, setVote(t, handler, aliceToken, catan, 1).Code)
	require.Equal(t, http.StatusOK, setVote(t, handler, aliceToken, wingspan, 2).Code)

	// Default: total descending.
	table := getTable(t, handler, aliceToken, "")
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "Wingspan", table.Rows[0].Nominee["title"])
	assert.Equal(t, "Catan", table.Rows[1].Nominee["title"])

	// Title ascending.
	table = getTable(t, handler, aliceToken, "?sort=title&dir=asc")
	assert.Equal(t, "Catan", table.Rows[0].Nominee["title"])
	assert.Equal(t, "Root", table.Rows[1].Nominee["title"])
	assert.Equal(t, "Wingspan", table.Rows[2].Nominee["title"])

	// Exact weight filter.
	table = getTable(t, handler, aliceToken, "?weight=heavy")
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Root", table.Rows[0].Nominee["title"])

	// Substring title filter combined with a non-matching weight → empty.
	table = getTable(t, handler, aliceToken, "?title=wing&weight=heavy")
	assert.Empty(t, table.Rows)
}

func TestTableAnonymousViewerReadOnly(t *testing.T) {
	handler, _, _ := setupServer(t)
	aliceToken, _ := registerUser(t, handler, "alice@example.com", "Alice")
	gameID := createBoardGame(t, handler, aliceToken, "Catan", "light")
	require.Equal(t, http.StatusOK, setVote(t, handler, aliceToken, gameID, 2).Code)

	table := getTable(t, handler, "", "")
	require.Len(t, table.Rows, 1)
	assert.False(t, table.Rows[0].CanDelete)
	for _, v := range table.Voters {
		assert.False(t, v.Editable)
	}
}

func TestDeleteNomineeAuthorizationAndOrphanedVotes(t *testing.T) {
	handler, db, _ := setupServer(t)
	aliceToken, _ := registerUser(t, handler, "alice@example.com", "Alice")
	bobToken, _ := registerUser(t, handler, "bob@example.com", "Bob")

	gameID := createBoardGame(t, handler, aliceToken, "Catan", "light")
	require.Equal(t, http.StatusOK, setVote(t, handler, bobToken, gameID, 2).Code)

	w := doJSON(t, handler, http.MethodDelete, "/api/nominations/boardGame/"+gameID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, handler, http.MethodDelete, "/api/nominations/boardGame/"+gameID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, handler, http.MethodDelete, "/api/nominations/boardGame/"+gameID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	table := getTable(t, handler, aliceToken, "")
	assert.Empty(t, table.Rows)

	// The vote record is orphaned, not cleaned up.
	var count int64
	require.NoError(t, db.Model(&models.Vote{}).Where("game_id = ?", gameID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTTRPGAndRoundtableVariants(t *testing.T) {
	handler, _, _ := setupServer(t)
	token, _ := registerUser(t, handler, "alice@example.com", "Alice")

	w := doJSON(t, handler, http.MethodPost, "/api/nominations/ttrpg", token, gin.H{
		"title":    "Blades in the Dark",
		"vibe":     "heists",
		"style":    "story",
		"category": "campaign",
		"gms":      []string{"Alice"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, handler, http.MethodPost, "/api/nominations/roundtableIdea", token, gin.H{
		"topic": "Teaching heavy games",
		"notes": "How do we onboard new players?",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, handler, http.MethodGet, "/api/nominations/ttrpg/table?style=story", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ttrpgTable tableResponse
	decode(t, w, &ttrpgTable)
	require.Len(t, ttrpgTable.Rows, 1)
	assert.Equal(t, "Blades in the Dark", ttrpgTable.Rows[0].Nominee["title"])

	w = doJSON(t, handler, http.MethodGet, "/api/nominations/roundtableIdea/table", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ideaTable tableResponse
	decode(t, w, &ideaTable)
	require.Len(t, ideaTable.Rows, 1)
	assert.Equal(t, "Teaching heavy games", ideaTable.Rows[0].Nominee["topic"])
}

func TestMerchAndVideos(t *testing.T) {
	handler, _, _ := setupServer(t)
	token, _ := registerUser(t, handler, "alice@example.com", "Alice")

	w := doJSON(t, handler, http.MethodPost, "/api/merch", "", gin.H{"item": "T-shirt"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, handler, http.MethodPost, "/api/merch", token, gin.H{
		"item":        "T-shirt",
		"description": "Con logo on the front",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var idea models.MerchIdea
	decode(t, w, &idea)
	assert.Equal(t, "Alice", idea.SuggestedBy)

	w = doJSON(t, handler, http.MethodPost, "/api/videos", token, gin.H{
		"title": "Recap 2025",
		"url":   "https://youtube.com/watch?v=abc123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, handler, http.MethodGet, "/api/videos", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var videos []models.Video
	decode(t, w, &videos)
	require.Len(t, videos, 1)
	assert.Equal(t, "Recap 2025", videos[0].Title)
}

func TestProfileUpdateChangesVoterHeader(t *testing.T) {
	handler, _, _ := setupServer(t)
	token, userID := registerUser(t, handler, "alice@example.com", "Alice")
	gameID := createBoardGame(t, handler, token, "Catan", "light")
	require.Equal(t, http.StatusOK, setVote(t, handler, token, gameID, 1).Code)

	w := doJSON(t, handler, http.MethodPut, "/api/profile", token, gin.H{"name": "Alice B"})
	require.Equal(t, http.StatusOK, w.Code)

	table := getTable(t, handler, token, "")
	require.Len(t, table.Voters, 1)
	assert.Equal(t, userID, table.Voters[0].ID)
	assert.Equal(t, "Alice B", table.Voters[0].DisplayName)
}

func TestBlogEndpoints(t *testing.T) {
	handler, _, cfg := setupServer(t)

	post := `---
title: Welcome to FrenCon
description: First post
pubDate: 2026-01-15
author: Alice
---

# Hello

See you at the con.
`
	require.NoError(t, os.WriteFile(filepath.Join(cfg.BlogDir, "welcome.md"), []byte(post), 0o644))

	w := doJSON(t, handler, http.MethodGet, "/api/blog", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var posts []map[string]any
	decode(t, w, &posts)
	require.Len(t, posts, 1)
	assert.Equal(t, "Welcome to FrenCon", posts[0]["title"])

	w = doJSON(t, handler, http.MethodGet, "/api/blog/welcome", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var single map[string]any
	decode(t, w, &single)
	content, _ := single["content"].(string)
	assert.True(t, strings.Contains(content, "<h1"), "expected rendered HTML, got %q", content)

	w = doJSON(t, handler, http.MethodGet, "/api/blog/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWebsocketStreamsTableSnapshots(t *testing.T) {
	handler, _, _ := setupServer(t)
	token, aliceID := registerUser(t, handler, "alice@example.com", "Alice")
	gameID := createBoardGame(t, handler, token, "Catan", "light")

	srv := httptest.NewServer(handler)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/boardGame"
	header := http.Header{"Authorization": []string{"Bearer " + token}}
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	if resp != nil {
		defer resp.Body.Close()
	}
	defer conn.Close()

	readTable := func() tableResponse {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var msg struct {
			Type string        `json:"type"`
			Data tableResponse `json:"data"`
		}
		require.NoError(t, conn.ReadJSON(&msg))
		require.Equal(t, "table", msg.Type)
		return msg.Data
	}

	initial := readTable()
	require.Len(t, initial.Rows, 1)
	assert.Equal(t, 0, initial.Rows[0].Total)

	require.Equal(t, http.StatusOK, setVote(t, handler, token, gameID, 2).Code)

	updated := readTable()
	require.Len(t, updated.Rows, 1)
	assert.Equal(t, 2, updated.Rows[0].Total)
	assert.Equal(t, 2, updated.Rows[0].VotesByUser[aliceID])
}
