package feedtext

import (
	"errors"
	"testing"
)

func TestExtract_SingleMatch(t *testing.T) {
	t.Parallel()

	pat := MustPattern(`¬WU÷([^¬÷]+)¬AZ÷`)
	got, err := Extract("¬PX÷pl1¬WU÷alcaraz-carlos¬AZ÷1¬", pat)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if got != "alcaraz-carlos" {
		t.Fatalf("unexpected value: %q", got)
	}
}

func TestExtract_ZeroMatches(t *testing.T) {
	t.Parallel()

	pat := MustPattern(`¬WU÷([^¬÷]+)¬AZ÷`)
	_, err := Extract("¬PX÷pl1¬", pat)
	if !errors.Is(err, ErrMalformedSegment) {
		t.Fatalf("expected ErrMalformedSegment, got %v", err)
	}
}

func TestExtract_MultipleMatches(t *testing.T) {
	t.Parallel()

	pat := MustPattern(`¬WU÷([^¬÷]+)¬AZ÷`)
	_, err := Extract("¬WU÷a¬AZ÷1¬WU÷b¬AZ÷2¬", pat)
	if !errors.Is(err, ErrMalformedSegment) {
		t.Fatalf("expected ErrMalformedSegment, got %v", err)
	}
}

func TestExtractOptional_Absent(t *testing.T) {
	t.Parallel()

	pat := MustPattern(`¬ER÷([^¬÷]+)¬RW÷`)
	got, ok, err := ExtractOptional("¬AD÷123¬ADE÷", pat)
	if err != nil {
		t.Fatalf("extract optional failed: %v", err)
	}
	if ok || got != "" {
		t.Fatalf("expected absent field, got %q ok=%v", got, ok)
	}
}

func TestExtractOptional_MultipleStillFails(t *testing.T) {
	t.Parallel()

	pat := MustPattern(`¬ER÷([^¬÷]+)¬RW÷`)
	_, _, err := ExtractOptional("¬ER÷a¬RW÷¬ER÷b¬RW÷", pat)
	if !errors.Is(err, ErrMalformedSegment) {
		t.Fatalf("expected ErrMalformedSegment, got %v", err)
	}
}

func TestExtractYear(t *testing.T) {
	t.Parallel()

	year, err := ExtractYear("ATP Acapulco 2024")
	if err != nil {
		t.Fatalf("extract year failed: %v", err)
	}
	if year != "2024" {
		t.Fatalf("unexpected year: %q", year)
	}

	if _, err := ExtractYear("ATP Acapulco"); !errors.Is(err, ErrMalformedSegment) {
		t.Fatalf("expected ErrMalformedSegment, got %v", err)
	}
}
