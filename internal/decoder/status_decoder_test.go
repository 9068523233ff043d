package decoder

import (
	"errors"
	"testing"

	"github.com/courtdata/flashfeed/internal/domain/tennis"
	"github.com/courtdata/flashfeed/internal/feedtext"
)

func TestStatusDecoder_FinishedWithWinner(t *testing.T) {
	t.Parallel()

	m := tennis.NewMatch("Kx3ou23b")
	payload := "AA÷Kx3ou23b¬DB÷3¬DD÷0¬DJ÷H¬AZ÷1¬"

	if err := NewStatusDecoder(nil).Apply(m, payload); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if m.Status != tennis.StatusFinished {
		t.Fatalf("unexpected status: %s", m.Status)
	}
	if m.Winner != tennis.WinnerPlayer1 {
		t.Fatalf("unexpected winner: %s", m.Winner)
	}
}

func TestStatusDecoder_AwayWinner(t *testing.T) {
	t.Parallel()

	m := tennis.NewMatch("Kx3ou23b")
	payload := "AA÷Kx3ou23b¬DB÷8¬DD÷0¬DJ÷A¬AZ÷1¬"

	if err := NewStatusDecoder(nil).Apply(m, payload); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if m.Status != tennis.StatusRetired || m.Winner != tennis.WinnerPlayer2 {
		t.Fatalf("unexpected decode: %s %s", m.Status, m.Winner)
	}
}

func TestStatusDecoder_NoWinnerYet(t *testing.T) {
	t.Parallel()

	m := tennis.NewMatch("Kx3ou23b")
	payload := "AA÷Kx3ou23b¬DB÷1¬DD÷0¬"

	if err := NewStatusDecoder(nil).Apply(m, payload); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if m.Status != tennis.StatusScheduled || m.Winner != tennis.WinnerNone {
		t.Fatalf("unexpected decode: %s %s", m.Status, m.Winner)
	}
}

func TestStatusDecoder_UnknownStatusCode(t *testing.T) {
	t.Parallel()

	m := tennis.NewMatch("Kx3ou23b")
	err := NewStatusDecoder(nil).Apply(m, "AA÷Kx3ou23b¬DB÷77¬DD÷0¬")
	if !errors.Is(err, ErrUnknownCode) {
		t.Fatalf("expected ErrUnknownCode, got %v", err)
	}
}

func TestStatusDecoder_MissingStatusField(t *testing.T) {
	t.Parallel()

	m := tennis.NewMatch("Kx3ou23b")
	err := NewStatusDecoder(nil).Apply(m, "AA÷Kx3ou23b¬")
	if !errors.Is(err, feedtext.ErrMalformedSegment) {
		t.Fatalf("expected ErrMalformedSegment, got %v", err)
	}
}
