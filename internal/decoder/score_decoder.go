package decoder

import (
	"github.com/courtdata/flashfeed/internal/domain/tennis"
	"github.com/courtdata/flashfeed/internal/feedtext"
	"github.com/courtdata/flashfeed/internal/platform/logging"
)

// Field patterns of the score feed. Close codes vary with what follows a set
// block in the stream (tiebreak, duration, next set, end marker), hence the
// alternations; the capture itself is always sentinel-free.
type scoreField struct {
	pat      feedtext.FieldPattern
	optional bool
}

var p1GamesFields = [5]scoreField{
	{feedtext.MustPattern(`¬BA÷([^¬÷]+)¬(?:BB|DA|~BD)÷`), false},
	{feedtext.MustPattern(`¬~BC÷([^¬÷]+)¬(?:BD|DC|~BF)÷`), true},
	{feedtext.MustPattern(`¬~BE÷([^¬÷]+)¬(?:BF|DE|~BH)÷`), true},
	{feedtext.MustPattern(`¬~BG÷([^¬÷]+)¬(?:BH|DG|~BJ)÷`), true},
	{feedtext.MustPattern(`¬~BI÷([^¬÷]+)¬(?:BJ|DI|~A1)÷`), true},
}

var p2GamesFields = [5]scoreField{
	{feedtext.MustPattern(`¬BB÷([^¬÷]+)¬(?:RC|DB|~BC|BA|~A1)÷`), false},
	{feedtext.MustPattern(`¬BD÷([^¬÷]+)¬(?:RD|DD|~BE|~BC|~A1)÷`), true},
	{feedtext.MustPattern(`¬BF÷([^¬÷]+)¬(?:RE|DF|~BG|~BE|~A1)÷`), true},
	{feedtext.MustPattern(`¬BH÷([^¬÷]+)¬(?:RF|DH|~BI|~BG|~A1)÷`), true},
	{feedtext.MustPattern(`¬BJ÷([^¬÷]+)¬(?:RG|DJ|~BI|~A1)÷`), true},
}

var p1TiebreakFields = [5]feedtext.FieldPattern{
	feedtext.MustPattern(`¬DA÷([^¬÷]+)¬BB÷`),
	feedtext.MustPattern(`¬DC÷([^¬÷]+)¬BD÷`),
	feedtext.MustPattern(`¬DE÷([^¬÷]+)¬BF÷`),
	feedtext.MustPattern(`¬DG÷([^¬÷]+)¬BH÷`),
	feedtext.MustPattern(`¬DI÷([^¬÷]+)¬BJ÷`),
}

var p2TiebreakFields = [5]feedtext.FieldPattern{
	feedtext.MustPattern(`¬DB÷([^¬÷]+)¬RC÷`),
	feedtext.MustPattern(`¬DD÷([^¬÷]+)¬RD÷`),
	feedtext.MustPattern(`¬DF÷([^¬÷]+)¬RE÷`),
	feedtext.MustPattern(`¬DH÷([^¬÷]+)¬RF÷`),
	feedtext.MustPattern(`¬DJ÷([^¬÷]+)¬RG÷`),
}

var patGlobalDuration = feedtext.MustPattern(`¬~RB÷([^¬÷]+)¬~(?:MIT|PSPH|PSPA|A1)÷`)

var setDurationFields = [5]feedtext.FieldPattern{
	feedtext.MustPattern(`¬RC÷([^¬÷]+)¬~(?:BC|RB)÷`),
	feedtext.MustPattern(`¬RD÷([^¬÷]+)¬~(?:BE|RB)÷`),
	feedtext.MustPattern(`¬RE÷([^¬÷]+)¬~(?:BG|RB)÷`),
	feedtext.MustPattern(`¬RF÷([^¬÷]+)¬~(?:BI|RB)÷`),
	feedtext.MustPattern(`¬RG÷([^¬÷]+)¬~RB÷`),
}

// ScoreDecoder reconstructs per-set score progressions from one match's score
// feed and derives the set-win tally.
type ScoreDecoder struct {
	log *logging.Logger
}

func NewScoreDecoder(log *logging.Logger) *ScoreDecoder {
	if log == nil {
		log = logging.NewNop()
	}
	return &ScoreDecoder{log: log}
}

// Apply decodes the score payload onto m. Only finished and retired matches
// carry scores; for a retired match every field is treated as optional since
// the feed truncates at the retirement point. Scheduled, walkover and
// awarded matches return untouched.
func (d *ScoreDecoder) Apply(m *tennis.Match, payload string) error {
	switch m.Status {
	case tennis.StatusFinished, tennis.StatusRetired:
	default:
		return nil
	}
	log := d.log.Session("score_decoder", "match_id", m.ID)

	// Retired matches may lack even the first set.
	allOptional := m.Status == tennis.StatusRetired

	p1Games, err := extractGames(payload, p1GamesFields, allOptional)
	if err != nil {
		return err
	}
	p2Games, err := extractGames(payload, p2GamesFields, allOptional)
	if err != nil {
		return err
	}

	p1Tiebreaks, err := extractOptionalSeries(payload, p1TiebreakFields[:])
	if err != nil {
		return err
	}
	p2Tiebreaks, err := extractOptionalSeries(payload, p2TiebreakFields[:])
	if err != nil {
		return err
	}

	durations, err := extractOptionalSeries(payload, setDurationFields[:])
	if err != nil {
		return err
	}
	global, ok, err := feedtext.ExtractOptional(payload, patGlobalDuration)
	if err != nil {
		return err
	}
	if ok {
		m.GlobalDuration = global
	}

	for i := 0; i < 5; i++ {
		p1 := tennis.ScoreSet{Games: p1Games[i], Tiebreak: p1Tiebreaks[i], Duration: durations[i]}
		p2 := tennis.ScoreSet{Games: p2Games[i], Tiebreak: p2Tiebreaks[i], Duration: durations[i]}
		if err := m.SetScoreSets(i+1, p1, p2); err != nil {
			return err
		}
	}

	ties, err := m.RecomputeSetTally()
	if err != nil {
		return err
	}
	for _, set := range ties {
		log.Warn("tied games count, set awarded to neither player", "set", set)
	}

	log.Debug("score decoded",
		"p1_sets", m.P1SetWins, "p2_sets", m.P2SetWins, "duration", m.GlobalDuration)
	return nil
}

func extractGames(payload string, fields [5]scoreField, allOptional bool) ([5]*string, error) {
	var out [5]*string
	for i, f := range fields {
		if f.optional || allOptional {
			v, ok, err := feedtext.ExtractOptional(payload, f.pat)
			if err != nil {
				return out, err
			}
			if ok {
				out[i] = &v
			}
			continue
		}
		v, err := feedtext.Extract(payload, f.pat)
		if err != nil {
			return out, err
		}
		out[i] = &v
	}
	return out, nil
}

func extractOptionalSeries(payload string, pats []feedtext.FieldPattern) ([5]*string, error) {
	var out [5]*string
	for i, pat := range pats {
		v, ok, err := feedtext.ExtractOptional(payload, pat)
		if err != nil {
			return out, err
		}
		if ok {
			out[i] = &v
		}
	}
	return out, nil
}
