package decoder

import (
	"github.com/courtdata/flashfeed/internal/domain/tennis"
	"github.com/courtdata/flashfeed/internal/feedtext"
	"github.com/courtdata/flashfeed/internal/platform/logging"
)

var (
	patStatusID = feedtext.MustPattern(`¬DB÷([^¬÷]+)¬DD÷`)
	patWinnerID = feedtext.MustPattern(`¬DJ÷([^¬÷]+)¬AZ÷`)
)

// StatusDecoder resolves a match's lifecycle status and winner from its
// status feed.
type StatusDecoder struct {
	log *logging.Logger
}

func NewStatusDecoder(log *logging.Logger) *StatusDecoder {
	if log == nil {
		log = logging.NewNop()
	}
	return &StatusDecoder{log: log}
}

// Apply sets m.Status and m.Winner from the status payload. The status code
// is mandatory and closed-vocabulary; the winner field is optional, its
// absence is the valid pre-resolution state.
func (d *StatusDecoder) Apply(m *tennis.Match, payload string) error {
	code, err := feedtext.Extract(payload, patStatusID)
	if err != nil {
		return err
	}
	status, err := NormalizeStatus(code)
	if err != nil {
		return err
	}

	winnerCode, _, err := feedtext.ExtractOptional(payload, patWinnerID)
	if err != nil {
		return err
	}

	m.Status = status
	m.Winner = NormalizeWinner(winnerCode)

	d.log.Debug("status decoded", "match_id", m.ID, "status", status, "winner", m.Winner)
	return nil
}
