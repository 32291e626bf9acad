package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/pricofy/football-api/internal/domain"
)

func TestCreateMatch(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		putErr     error
		wantStatus int
	}{
		{
			name:       "valid",
			body:       `{"matchId":1,"teamNameA":"Red Lions","teamNameB":"Blue Hawks","description":"Cup final."}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "without description",
			body:       `{"matchId":2,"teamNameA":"Red Lions","teamNameB":"Blue Hawks"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing team",
			body:       `{"matchId":3,"teamNameA":"Red Lions"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "zero id",
			body:       `{"matchId":0,"teamNameA":"A","teamNameB":"B"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "string id",
			body:       `{"matchId":"4","teamNameA":"A","teamNameB":"B"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field",
			body:       `{"matchId":5,"teamNameA":"A","teamNameB":"B","score":"2-1"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "two values",
			body:       `{"matchId":6,"teamNameA":"A","teamNameB":"B"}{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "team name too long",
			body:       `{"matchId":7,"teamNameA":"` + strings.Repeat("x", 101) + `","teamNameB":"B"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "store failure",
			body:       `{"matchId":8,"teamNameA":"A","teamNameB":"B"}`,
			putErr:     errors.New("table not found"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSpyStore()
			s.putErr = tt.putErr
			_, srv := newTestHandler(s, &fakeTranslator{})

			rec := do(t, srv, http.MethodPost, "/matches", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if got := rec.Header().Get("Content-Type"); got != "application/json" {
				t.Errorf("Content-Type = %q", got)
			}
			if tt.wantStatus == http.StatusBadRequest && s.Calls() != 0 {
				t.Errorf("invalid body should not reach the store, got %d calls", s.Calls())
			}
		})
	}
}

func TestCreateMatch_OverwritesExisting(t *testing.T) {
	s := newSpyStore()
	seed(t, s.Memory, domain.Match{MatchID: 1, TeamNameA: "Old", TeamNameB: "Names", Translations: map[string]string{"fr": "x"}})
	_, srv := newTestHandler(s, &fakeTranslator{})

	rec := do(t, srv, http.MethodPost, "/matches", `{"matchId":1,"teamNameA":"New","teamNameB":"Names"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	m, err := s.Memory.GetMatch(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetMatch: %v", err)
	}
	if m.TeamNameA != "New" || m.Translations != nil {
		t.Errorf("record was not replaced: %+v", m)
	}
}

func TestListMatches(t *testing.T) {
	s := newSpyStore()
	_, srv := newTestHandler(s, &fakeTranslator{})

	rec := do(t, srv, http.MethodGet, "/matches", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"data":[]}` {
		t.Errorf("empty list body = %s", body)
	}

	seed(t, s.Memory,
		domain.Match{MatchID: 2, TeamNames: []string{"C", "D"}},
		domain.Match{MatchID: 1, TeamNames: []string{"A", "B"}},
	)
	rec = do(t, srv, http.MethodGet, "/matches", "")
	got := decode[struct {
		Data []domain.Match `json:"data"`
	}](t, rec)
	if len(got.Data) != 2 {
		t.Fatalf("got %d matches, want 2", len(got.Data))
	}
}

func TestGetMatch(t *testing.T) {
	s := newSpyStore()
	seed(t, s.Memory, domain.Match{MatchID: 10, TeamNameA: "A", TeamNameB: "B"})
	_, srv := newTestHandler(s, &fakeTranslator{})

	tests := []struct {
		target     string
		wantStatus int
	}{
		{"/matches/10", http.StatusOK},
		{"/matches/11", http.StatusNotFound},
		{"/matches/ten", http.StatusBadRequest},
		{"/matches/-1", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, tt.target, "")
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestGetMatchesByTeam(t *testing.T) {
	s := newSpyStore()
	seed(t, s.Memory,
		domain.Match{MatchID: 1, TeamNameA: "Red Lions", TeamNameB: "Green Owls", TeamNames: []string{"Red Lions", "Green Owls"}},
		domain.Match{MatchID: 2, TeamNameA: "Blue Hawks", TeamNameB: "Green Owls", TeamNames: []string{"Blue Hawks", "Green Owls"}},
		domain.Match{MatchID: 3, TeamNameA: "Red Stars", TeamNameB: "Blue Hawks", TeamNames: []string{"Red Stars", "Blue Hawks"}},
	)
	_, srv := newTestHandler(s, &fakeTranslator{})

	tests := []struct {
		name    string
		query   string
		wantIDs []int
	}{
		{"substring", "teamNameA=Red", []int{1, 3}},
		{"both filters anded", "teamNameA=Red&teamNameB=Hawks", []int{3}},
		{"no filter", "", []int{1, 2, 3}},
		{"no match", "teamNameA=Purple", []int{}},
		{"case sensitive", "teamNameA=red", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, "/matches/by-team?"+tt.query, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			got := decode[struct {
				Data []domain.Match `json:"data"`
			}](t, rec)
			if len(got.Data) != len(tt.wantIDs) {
				t.Fatalf("got %d matches, want %v", len(got.Data), tt.wantIDs)
			}
			for i, m := range got.Data {
				if m.MatchID != tt.wantIDs[i] {
					t.Errorf("match %d id = %d, want %d", i, m.MatchID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestGetMatchesByTeam_InvalidQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"unknown parameter", "team=Red"},
		{"repeated parameter", "teamNameA=Red&teamNameA=Blue"},
		{"too long", "teamNameA=" + strings.Repeat("r", 101)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSpyStore()
			_, srv := newTestHandler(s, &fakeTranslator{})

			rec := do(t, srv, http.MethodGet, "/matches/by-team?"+tt.query, "")
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			body := decode[struct {
				Message string            `json:"message"`
				Schema  map[string]string `json:"schema"`
			}](t, rec)
			if body.Schema["teamNameA"] == "" || body.Schema["teamNameB"] == "" {
				t.Errorf("schema missing from response: %+v", body)
			}
			if s.Calls() != 0 {
				t.Errorf("store calls = %d, want 0", s.Calls())
			}
		})
	}
}

func TestUpdateMatch_NarrowsTeamNames(t *testing.T) {
	s := newSpyStore()
	seed(t, s.Memory, domain.Match{
		MatchID:   5,
		TeamName:  "A",
		TeamNameA: "A",
		TeamNameB: "B",
		TeamNames: []string{"A", "B"},
	})
	_, srv := newTestHandler(s, &fakeTranslator{})

	rec := do(t, srv, http.MethodPut, "/matches/5/A", `{"teamNameA":"Z"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decode[map[string]string](t, rec)
	if body["message"] != "Match updated successfully" {
		t.Errorf("message = %q", body["message"])
	}

	m, err := s.Memory.GetMatch(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetMatch: %v", err)
	}
	if len(m.TeamNames) != 1 || m.TeamNames[0] != "Z" {
		t.Errorf("teamNames = %v, want [Z]", m.TeamNames)
	}
	if m.TeamNameB != "B" {
		t.Errorf("teamNameB = %q, should be untouched", m.TeamNameB)
	}
}

func TestUpdateMatch_Description(t *testing.T) {
	s := newSpyStore()
	seed(t, s.Memory, domain.Match{MatchID: 6, TeamNames: []string{"A", "B"}, Description: "old"})
	_, srv := newTestHandler(s, &fakeTranslator{})

	rec := do(t, srv, http.MethodPut, "/matches/6/A", `{"description":"new"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	m, _ := s.Memory.GetMatch(context.Background(), 6)
	if m.Description != "new" {
		t.Errorf("description = %q, want new", m.Description)
	}
	if len(m.TeamNames) != 2 {
		t.Errorf("teamNames should be untouched, got %v", m.TeamNames)
	}
}

func TestUpdateMatch_BadInput(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
	}{
		{"empty object", "/matches/1/A", `{}`},
		{"null fields", "/matches/1/A", `{"description":null}`},
		{"empty body", "/matches/1/A", ``},
		{"malformed", "/matches/1/A", `{"description":`},
		{"unknown field", "/matches/1/A", `{"matchId":2}`},
		{"empty description", "/matches/1/A", `{"description":""}`},
		{"non-numeric id", "/matches/x/A", `{"description":"d"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSpyStore()
			_, srv := newTestHandler(s, &fakeTranslator{})

			rec := do(t, srv, http.MethodPut, tt.target, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
			if s.Calls() != 0 {
				t.Errorf("store calls = %d, want 0", s.Calls())
			}
		})
	}
}
