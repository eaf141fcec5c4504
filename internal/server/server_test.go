package server

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/config"
	"github.com/jgvaught118/nfl-frenzy-backend/internal/models"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer() *Server {
	cfg := &config.Config{
		Season:      2025,
		DoubleWeeks: "13,17",
		JWTSecret:   "test_secret",
	}
	return NewServer(cfg, nil, nil, nil)
}

func requestWithWeek(week string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("week", week)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestWeekParam(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"1", 1, true},
		{"18", 18, true},
		{"0", 0, false},
		{"19", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		week, ok := weekParam(requestWithWeek(tt.raw))
		assert.Equal(t, tt.ok, ok, "week=%s", tt.raw)
		if tt.ok {
			assert.Equal(t, tt.want, week)
		}
	}
}

func TestRequireAdmin(t *testing.T) {
	s := testServer()

	reached := false
	handler := s.requireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	issue := func(isAdmin bool) *http.Request {
		token, _, err := s.tokenAuth.Encode(map[string]interface{}{
			"user_id":  int64(7),
			"is_admin": isAdmin,
			"exp":      time.Now().Add(time.Hour).Unix(),
		})
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		return r.WithContext(jwtauth.NewContext(r.Context(), token, nil))
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, issue(false))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, reached)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, issue(true))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
}

func TestSubmitPickRejectsUnrecognizedTeam(t *testing.T) {
	// Rejected before any storage access, so no database is needed
	s := testServer()

	token, _, err := s.tokenAuth.Encode(map[string]interface{}{
		"user_id": int64(7),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	body := strings.NewReader(`{"week": 3, "team": "Narnia Lions"}`)
	r := httptest.NewRequest(http.MethodPost, "/v1/picks/submit", body)
	r = r.WithContext(jwtauth.NewContext(r.Context(), token, nil))

	w := httptest.NewRecorder()
	s.handleSubmitPick(w, r)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Narnia Lions")
}

func TestUserIDFromContext(t *testing.T) {
	s := testServer()

	token, _, err := s.tokenAuth.Encode(map[string]interface{}{
		"user_id": int64(42),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(jwtauth.NewContext(r.Context(), token, nil))

	id, ok := userIDFromContext(r)
	require.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestGameResponseNullHandling(t *testing.T) {
	g := models.Game{
		ID:       1,
		Season:   2025,
		Week:     3,
		HomeTeam: "Buffalo Bills",
		AwayTeam: "Miami Dolphins",
		Favorite: sql.NullString{String: "Buffalo Bills", Valid: true},
	}

	resp := toGameResponse(&g)
	require.NotNil(t, resp.Favorite)
	assert.Equal(t, "Buffalo Bills", *resp.Favorite)
	assert.Nil(t, resp.KickoffAt)
	assert.Nil(t, resp.HomeScore)
	assert.Nil(t, resp.Spread)
}
