package tennis

import (
	"errors"
	"testing"

	"github.com/courtdata/flashfeed/internal/feedtext"
)

func strPtr(s string) *string { return &s }

func setGames(t *testing.T, m *Match, p1, p2 []string) {
	t.Helper()
	for i := range p1 {
		err := m.SetScoreSets(i+1, ScoreSet{Games: strPtr(p1[i])}, ScoreSet{Games: strPtr(p2[i])})
		if err != nil {
			t.Fatalf("set scores for set %d: %v", i+1, err)
		}
	}
}

func TestRecomputeSetTally(t *testing.T) {
	t.Parallel()

	m := NewMatch("m1")
	setGames(t, m, []string{"6", "4", "6"}, []string{"4", "6", "3"})

	ties, err := m.RecomputeSetTally()
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if len(ties) != 0 {
		t.Fatalf("unexpected ties: %v", ties)
	}
	if m.P1SetWins != 2 || m.P2SetWins != 1 {
		t.Fatalf("unexpected tally: %d-%d", m.P1SetWins, m.P2SetWins)
	}
}

func TestRecomputeSetTally_Idempotent(t *testing.T) {
	t.Parallel()

	m := NewMatch("m1")
	setGames(t, m, []string{"6", "6"}, []string{"3", "4"})

	for i := 0; i < 3; i++ {
		if _, err := m.RecomputeSetTally(); err != nil {
			t.Fatalf("recompute run %d failed: %v", i, err)
		}
	}
	if m.P1SetWins != 2 || m.P2SetWins != 0 {
		t.Fatalf("tally drifted across reruns: %d-%d", m.P1SetWins, m.P2SetWins)
	}
}

func TestRecomputeSetTally_TieAwardsNeither(t *testing.T) {
	t.Parallel()

	m := NewMatch("m1")
	setGames(t, m, []string{"6", "5"}, []string{"3", "5"})

	ties, err := m.RecomputeSetTally()
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if len(ties) != 1 || ties[0] != 2 {
		t.Fatalf("unexpected ties: %v", ties)
	}
	if m.P1SetWins != 1 || m.P2SetWins != 0 {
		t.Fatalf("unexpected tally: %d-%d", m.P1SetWins, m.P2SetWins)
	}
}

func TestRecomputeSetTally_SkipsAbsentSets(t *testing.T) {
	t.Parallel()

	m := NewMatch("m1")
	if err := m.SetScoreSets(1, ScoreSet{Games: strPtr("6")}, ScoreSet{}); err != nil {
		t.Fatalf("set scores: %v", err)
	}

	ties, err := m.RecomputeSetTally()
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if len(ties) != 0 || m.P1SetWins != 0 || m.P2SetWins != 0 {
		t.Fatalf("half-present set should be skipped, got %d-%d ties=%v",
			m.P1SetWins, m.P2SetWins, ties)
	}
}

func TestRecomputeSetTally_NonNumericGames(t *testing.T) {
	t.Parallel()

	m := NewMatch("m1")
	setGames(t, m, []string{"six"}, []string{"4"})

	if _, err := m.RecomputeSetTally(); !errors.Is(err, feedtext.ErrInvalidNumericFormat) {
		t.Fatalf("expected ErrInvalidNumericFormat, got %v", err)
	}
}

func TestSetScoreSets_OutOfRange(t *testing.T) {
	t.Parallel()

	m := NewMatch("m1")
	if err := m.SetScoreSets(0, ScoreSet{}, ScoreSet{}); !errors.Is(err, ErrInvalidSetNumber) {
		t.Fatalf("expected ErrInvalidSetNumber for set 0, got %v", err)
	}
	if err := m.SetScoreSets(6, ScoreSet{}, ScoreSet{}); !errors.Is(err, ErrInvalidSetNumber) {
		t.Fatalf("expected ErrInvalidSetNumber for set 6, got %v", err)
	}
}

func TestNewMatchDefaults(t *testing.T) {
	t.Parallel()

	m := NewMatch("m1")
	if m.Status != StatusScheduled {
		t.Fatalf("unexpected default status: %s", m.Status)
	}
	if m.Winner != WinnerNone {
		t.Fatalf("unexpected default winner: %s", m.Winner)
	}
	if m.HomeAwayP1 == nil || m.Over == nil || m.CorrectScore == nil {
		t.Fatalf("odds collections must be allocated")
	}
}

func TestWinnerString(t *testing.T) {
	t.Parallel()

	if WinnerNone.String() != "-1" || WinnerPlayer1.String() != "1" || WinnerPlayer2.String() != "2" {
		t.Fatalf("unexpected winner strings: %s %s %s",
			WinnerNone, WinnerPlayer1, WinnerPlayer2)
	}
}
