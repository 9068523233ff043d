package decoder

import (
	"errors"
	"testing"

	"github.com/courtdata/flashfeed/internal/domain/tennis"
	"github.com/courtdata/flashfeed/internal/feedtext"
)

// Three-set match: 7-6(7-3), 4-6, 6-3 with per-set and total durations.
const scorePayload = "AA÷Kx3ou23b¬BA÷7¬DA÷7¬BB÷6¬DB÷3¬RC÷52" +
	"¬~BC÷4¬BD÷6¬RD÷38" +
	"¬~BE÷6¬BF÷3¬RE÷45" +
	"¬~RB÷135¬~A1÷¬"

func TestScoreDecoder_Finished(t *testing.T) {
	t.Parallel()

	m := tennis.NewMatch("Kx3ou23b")
	m.Status = tennis.StatusFinished

	if err := NewScoreDecoder(nil).Apply(m, scorePayload); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if !m.P1Sets[0].Played() || *m.P1Sets[0].Games != "7" {
		t.Fatalf("unexpected p1 set 1: %+v", m.P1Sets[0])
	}
	if m.P1Sets[0].Tiebreak == nil || *m.P1Sets[0].Tiebreak != "7" {
		t.Fatalf("unexpected p1 set 1 tiebreak: %+v", m.P1Sets[0])
	}
	if m.P2Sets[0].Tiebreak == nil || *m.P2Sets[0].Tiebreak != "3" {
		t.Fatalf("unexpected p2 set 1 tiebreak: %+v", m.P2Sets[0])
	}
	if *m.P1Sets[1].Games != "4" || *m.P2Sets[1].Games != "6" {
		t.Fatalf("unexpected set 2: %+v %+v", m.P1Sets[1], m.P2Sets[1])
	}
	if *m.P1Sets[2].Games != "6" || *m.P2Sets[2].Games != "3" {
		t.Fatalf("unexpected set 3: %+v %+v", m.P1Sets[2], m.P2Sets[2])
	}
	if m.P1Sets[3].Played() || m.P2Sets[3].Played() {
		t.Fatalf("set 4 must stay absent")
	}

	if *m.P1Sets[0].Duration != "52" || *m.P1Sets[1].Duration != "38" || *m.P1Sets[2].Duration != "45" {
		t.Fatalf("unexpected set durations: %+v", m.P1Sets)
	}
	if m.GlobalDuration != "135" {
		t.Fatalf("unexpected global duration: %s", m.GlobalDuration)
	}

	if m.P1SetWins != 2 || m.P2SetWins != 1 {
		t.Fatalf("unexpected tally: %d-%d", m.P1SetWins, m.P2SetWins)
	}
}

func TestScoreDecoder_SkipsNonPlayedStatuses(t *testing.T) {
	t.Parallel()

	for _, status := range []tennis.Status{
		tennis.StatusScheduled, tennis.StatusWalkover, tennis.StatusAwarded,
	} {
		m := tennis.NewMatch("Kx3ou23b")
		m.Status = status

		// The payload is garbage on purpose; it must never be parsed.
		if err := NewScoreDecoder(nil).Apply(m, "not a score feed"); err != nil {
			t.Fatalf("status %s: apply failed: %v", status, err)
		}
		if m.P1Sets[0].Played() || m.P1SetWins != 0 {
			t.Fatalf("status %s: match must stay untouched", status)
		}
	}
}

func TestScoreDecoder_RetiredTruncatedFeed(t *testing.T) {
	t.Parallel()

	m := tennis.NewMatch("Kx3ou23b")
	m.Status = tennis.StatusRetired

	// Retirement after one set: later sets, tiebreaks and durations are gone.
	payload := "AA÷Kx3ou23b¬BA÷6¬BB÷3¬~A1÷¬"
	if err := NewScoreDecoder(nil).Apply(m, payload); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if *m.P1Sets[0].Games != "6" || *m.P2Sets[0].Games != "3" {
		t.Fatalf("unexpected set 1: %+v %+v", m.P1Sets[0], m.P2Sets[0])
	}
	if m.P1SetWins != 1 || m.P2SetWins != 0 {
		t.Fatalf("unexpected tally: %d-%d", m.P1SetWins, m.P2SetWins)
	}
}

func TestScoreDecoder_RetiredMayLackEverything(t *testing.T) {
	t.Parallel()

	m := tennis.NewMatch("Kx3ou23b")
	m.Status = tennis.StatusRetired

	if err := NewScoreDecoder(nil).Apply(m, "AA÷Kx3ou23b¬~A1÷¬"); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if m.P1Sets[0].Played() || m.P1SetWins != 0 || m.P2SetWins != 0 {
		t.Fatalf("empty retired feed must decode to no sets")
	}
}

func TestScoreDecoder_FinishedRequiresFirstSet(t *testing.T) {
	t.Parallel()

	m := tennis.NewMatch("Kx3ou23b")
	m.Status = tennis.StatusFinished

	err := NewScoreDecoder(nil).Apply(m, "AA÷Kx3ou23b¬~A1÷¬")
	if !errors.Is(err, feedtext.ErrMalformedSegment) {
		t.Fatalf("expected ErrMalformedSegment, got %v", err)
	}
}

func TestScoreDecoder_NonNumericGames(t *testing.T) {
	t.Parallel()

	m := tennis.NewMatch("Kx3ou23b")
	m.Status = tennis.StatusFinished

	payload := "AA÷Kx3ou23b¬BA÷six¬BB÷3¬~A1÷¬"
	err := NewScoreDecoder(nil).Apply(m, payload)
	if !errors.Is(err, feedtext.ErrInvalidNumericFormat) {
		t.Fatalf("expected ErrInvalidNumericFormat, got %v", err)
	}
}
