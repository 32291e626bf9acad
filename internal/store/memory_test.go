package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/pricofy/football-api/internal/domain"
)

func seedMemory(t *testing.T) *Memory {
	t.Helper()
	s := NewMemory()
	ctx := context.Background()
	for _, n := range []domain.NewMatch{
		{MatchID: 1, TeamNameA: "Red Lions", TeamNameB: "Black Tiger", Description: "An intense football game held in Dublin."},
		{MatchID: 2, TeamNameA: "Blue Hawks", TeamNameB: "Manchester United", Description: "Opening match of the campus tournament."},
	} {
		if err := s.PutMatch(ctx, n.Match(time.Now())); err != nil {
			t.Fatalf("PutMatch() unexpected error: %v", err)
		}
	}
	return s
}

func TestMemoryGetMatch(t *testing.T) {
	s := seedMemory(t)

	m, err := s.GetMatch(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetMatch() unexpected error: %v", err)
	}
	if m.TeamNameA != "Blue Hawks" {
		t.Errorf("TeamNameA = %q, want Blue Hawks", m.TeamNameA)
	}

	if _, err := s.GetMatch(context.Background(), 99); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetMatch(99) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryGetMatch_ReturnsCopy(t *testing.T) {
	s := seedMemory(t)
	ctx := context.Background()

	m, _ := s.GetMatch(ctx, 1)
	m.TeamNames[0] = "mutated"

	again, _ := s.GetMatch(ctx, 1)
	if again.TeamNames[0] != "Red Lions" {
		t.Errorf("stored record was mutated through a returned copy: %v", again.TeamNames)
	}
}

func TestMemoryPutMatch_Overwrites(t *testing.T) {
	s := seedMemory(t)
	ctx := context.Background()

	replacement := domain.NewMatch{MatchID: 1, TeamNameA: "X", TeamNameB: "Y"}.Match(time.Now())
	if err := s.PutMatch(ctx, replacement); err != nil {
		t.Fatalf("PutMatch() unexpected error: %v", err)
	}

	m, _ := s.GetMatch(ctx, 1)
	if m.TeamNameA != "X" || m.Description != "" {
		t.Errorf("duplicate create should overwrite, got %+v", m)
	}
}

func TestMemoryFindByTeams(t *testing.T) {
	s := seedMemory(t)

	tests := []struct {
		name   string
		filter domain.TeamFilter
		want   []int
	}{
		{"no filter", domain.TeamFilter{}, []int{1, 2}},
		{"substring", domain.TeamFilter{TeamNameA: "Red"}, []int{1}},
		{"and combination", domain.TeamFilter{TeamNameA: "Blue", TeamNameB: "United"}, []int{2}},
		{"no hit", domain.TeamFilter{TeamNameA: "Red", TeamNameB: "Hawks"}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.FindByTeams(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("FindByTeams() unexpected error: %v", err)
			}
			ids := []int{}
			for _, m := range got {
				ids = append(ids, m.MatchID)
			}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("FindByTeams() ids = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestMemoryUpdateMatch(t *testing.T) {
	s := seedMemory(t)
	ctx := context.Background()

	name := "Green Owls"
	if err := s.UpdateMatch(ctx, domain.MatchKey{MatchID: 1, TeamName: "Red Lions"}, domain.MatchUpdate{TeamNameA: &name}); err != nil {
		t.Fatalf("UpdateMatch() unexpected error: %v", err)
	}

	m, _ := s.GetMatch(ctx, 1)
	if !reflect.DeepEqual(m.TeamNames, []string{"Green Owls"}) {
		t.Errorf("TeamNames = %v, want [Green Owls]", m.TeamNames)
	}
	if m.TeamNameB != "Black Tiger" {
		t.Errorf("TeamNameB = %q, should be untouched", m.TeamNameB)
	}

	if err := s.UpdateMatch(ctx, domain.MatchKey{MatchID: 1}, domain.MatchUpdate{}); !errors.Is(err, domain.ErrEmptyUpdate) {
		t.Errorf("empty update error = %v, want ErrEmptyUpdate", err)
	}
}

func TestMemoryPutTranslation_WriteOnce(t *testing.T) {
	s := seedMemory(t)
	ctx := context.Background()

	if err := s.PutTranslation(ctx, domain.MatchKey{MatchID: 1}, "fr", "premier"); err != nil {
		t.Fatalf("PutTranslation() unexpected error: %v", err)
	}
	if err := s.PutTranslation(ctx, domain.MatchKey{MatchID: 1}, "fr", "second"); !errors.Is(err, domain.ErrTranslationExists) {
		t.Errorf("second PutTranslation() error = %v, want ErrTranslationExists", err)
	}

	m, _ := s.GetMatch(ctx, 1)
	if m.Translations["fr"] != "premier" {
		t.Errorf("translation was overwritten: %q", m.Translations["fr"])
	}
	if len(m.Translations) != 1 {
		t.Errorf("Translations = %v, want only fr", m.Translations)
	}
}
