package decoder

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/courtdata/flashfeed/internal/domain/tennis"
)

// Closed vocabularies mapping provider-internal codes to domain enumerations.
// Reverse-engineered from the feed; every table fails fast on a miss except
// the winner lookup, where absence is the valid "no winner yet" state.

var roundCodes = map[string]tennis.Round{
	"Final":             tennis.RoundFinal,
	"Semi-finals":       tennis.RoundSemiFinals,
	"3rd place":         tennis.RoundRobin,
	"Quarter-finals":    tennis.RoundQuarterFinals,
	"1/8-finals":        tennis.RoundOf8,
	"1/16-finals":       tennis.RoundOf16,
	"1/32-finals":       tennis.RoundOf32,
	"1/64-finals":       tennis.RoundOf64,
	"Qualifying Finals": tennis.RoundQualifying,
}

var statusCodes = map[string]tennis.Status{
	"1":  tennis.StatusScheduled,
	"3":  tennis.StatusFinished,
	"8":  tennis.StatusRetired,
	"9":  tennis.StatusWalkover,
	"54": tennis.StatusAwarded,
}

var winnerCodes = map[string]tennis.Winner{
	"H": tennis.WinnerPlayer1,
	"A": tennis.WinnerPlayer2,
}

var bookmakerIDs = map[string]string{
	"160": "Unibet",
	"129": "Bwin",
	"398": "Netbet",
	"141": "Betclic",
	"484": "Parions-Sport",
	"264": "Winamax",
}

func NormalizeRound(code string) (tennis.Round, error) {
	if r, ok := roundCodes[code]; ok {
		return r, nil
	}
	return "", errors.Wrapf(ErrUnknownCode, "round %q", code)
}

func NormalizeStatus(code string) (tennis.Status, error) {
	if s, ok := statusCodes[code]; ok {
		return s, nil
	}
	return "", errors.Wrapf(ErrUnknownCode, "status %q", code)
}

// NormalizeWinner is always optional: any code outside the table, including
// the empty string, resolves to no winner.
func NormalizeWinner(code string) tennis.Winner {
	if w, ok := winnerCodes[code]; ok {
		return w
	}
	return tennis.WinnerNone
}

func NormalizeSurface(raw string) (tennis.Surface, error) {
	switch s := tennis.Surface(strings.ToLower(strings.TrimSpace(raw))); s {
	case tennis.SurfaceHard, tennis.SurfaceClay, tennis.SurfaceGrass, tennis.SurfaceCarpet:
		return s, nil
	default:
		return "", errors.Wrapf(ErrUnknownCode, "surface %q", raw)
	}
}

func NormalizeBookmaker(id string) (string, error) {
	if name, ok := bookmakerIDs[id]; ok {
		return name, nil
	}
	return "", errors.Wrapf(ErrUnknownCode, "bookmaker id %q", id)
}
