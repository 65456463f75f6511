// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-vote/election"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/roster"
	"github.com/danielhkuo/quickly-vote/testutil"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	db := testutil.SetupTestDB(t)
	clock := testutil.NewFakeClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	svc := election.NewService(db, clock, nil)

	return NewRouter(svc, roster.New(db), testutil.GetTestConfig())
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "quickly-vote API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	mux := newTestMux(t)

	// Test that routes respond (handler is invoked)
	// 400, 401, 404 and 409 are all valid responses depending on handler logic
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"GET", "/status"},
		{"GET", "/candidates"},

		{"POST", "/voter/login"},
		{"GET", "/voter/me"},
		{"GET", "/voter/candidates"},
		{"POST", "/voter/vote"},

		{"GET", "/admin/config"},
		{"PUT", "/admin/schedule"},
		{"PUT", "/admin/title"},
		{"GET", "/admin/dashboard"},
		{"GET", "/admin/tally"},
		{"POST", "/admin/reset"},
		{"GET", "/admin/history"},
		{"GET", "/admin/history/some-id"},
		{"POST", "/admin/history/save"},
		{"POST", "/admin/participants"},
		{"POST", "/admin/participants/bulk"},
		{"DELETE", "/admin/participants/P1"},
		{"POST", "/admin/candidates"},
		{"DELETE", "/admin/candidates/c1"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestAdminRoutesRequireKey(t *testing.T) {
	mux := newTestMux(t)

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/admin/config"},
		{"GET", "/admin/dashboard"},
		{"POST", "/admin/reset"},
		{"GET", "/admin/history"},
		{"DELETE", "/admin/candidates/c1"},
	}

	for _, tc := range paths {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := testutil.MakeRequest(tc.method, tc.path, nil, map[string]string{"X-Admin-Key": "wrong"})
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			testutil.AssertStatus(t, w, http.StatusUnauthorized)
		})
	}
}

func TestVoterRoutesRequireToken(t *testing.T) {
	mux := newTestMux(t)

	for _, path := range []string{"/voter/me", "/voter/candidates"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
			testutil.AssertStatus(t, w, http.StatusUnauthorized)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestMux(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},         // Only GET is defined
		{"DELETE", "/admin/config"}, // Only GET is defined
		{"GET", "/voter/vote"},      // Only POST is defined
		{"PUT", "/admin/reset"},     // Only POST is defined
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	mux := newTestMux(t)
	cfg := testutil.GetTestConfig()
	admin := testutil.AdminHeaders(cfg)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/admin/participants", models.AddParticipantRequest{ID: "P-42"}, admin))
	testutil.AssertStatus(t, w, http.StatusCreated)

	// {id} should reach the handler intact
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("DELETE", "/admin/participants/P-42", nil, admin))
	testutil.AssertStatus(t, w, http.StatusNoContent)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/admin/history/missing", nil, admin))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestStatusUnconfigured(t *testing.T) {
	mux := newTestMux(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/status", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var status models.Status
	testutil.AssertJSON(t, w, &status)
	if status.Phase != models.PhaseUnconfigured || status.IsActive {
		t.Errorf("Expected unconfigured, inactive status, got %+v", status)
	}
}
