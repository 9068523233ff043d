package tennis

import (
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/courtdata/flashfeed/internal/feedtext"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusFinished  Status = "finished"
	StatusRetired   Status = "retired"
	StatusWalkover  Status = "walkover"
	StatusAwarded   Status = "awarded"
)

type Winner int

const (
	WinnerNone    Winner = -1
	WinnerPlayer1 Winner = 1
	WinnerPlayer2 Winner = 2
)

type Surface string

const (
	SurfaceHard   Surface = "hard"
	SurfaceClay   Surface = "clay"
	SurfaceGrass  Surface = "grass"
	SurfaceCarpet Surface = "carpet"
)

type Round string

const (
	RoundFinal         Round = "final"
	RoundSemiFinals    Round = "semi_finals"
	RoundRobin         Round = "robin"
	RoundQuarterFinals Round = "quarter_finals"
	RoundOf8           Round = "round_of_8"
	RoundOf16          Round = "round_of_16"
	RoundOf32          Round = "round_of_32"
	RoundOf64          Round = "round_of_64"
	RoundQualifying    Round = "qualif"

	// RoundNone marks matches outside the play-off bracket; segments with no
	// round field at all map here.
	RoundNone Round = "not_play_off"
)

var ErrInvalidSetNumber = errors.New("set number out of range 1..5")

// Match is one decoded tennis match. It is built once per feed pass and
// append-only afterwards: sets and odds attach incrementally as the score and
// odds sub-feeds are decoded, nothing mutates after flattening.
type Match struct {
	ID        string
	Timestamp string // raw unix epoch, as vended
	Date      string // human form, 2006-01-02 15:04:05

	Round   Round
	Surface Surface // known only once the tournament header was decoded

	Player1 Player
	Player2 Player

	OddsLink   string
	StatsLink  string
	ScoreLink  string
	StatusLink string

	Status Status
	Winner Winner

	GlobalDuration string

	// Per-set results, slot i holds set i+1. Indexed access only; slots 4-5
	// stay zero-valued for best-of-three matches.
	P1Sets [5]ScoreSet
	P2Sets [5]ScoreSet

	P1SetWins int
	P2SetWins int

	HomeAwayP1   []HomeAwayOdds
	HomeAwayP2   []HomeAwayOdds
	Over         []OverUnderOdds
	Under        []OverUnderOdds
	CorrectScore []CorrectScoreOdds
}

// NewMatch allocates a match with its own empty odds collections and the
// not-yet-resolved defaults (scheduled, no winner).
func NewMatch(id string) *Match {
	return &Match{
		ID:           id,
		Status:       StatusScheduled,
		Winner:       WinnerNone,
		HomeAwayP1:   []HomeAwayOdds{},
		HomeAwayP2:   []HomeAwayOdds{},
		Over:         []OverUnderOdds{},
		Under:        []OverUnderOdds{},
		CorrectScore: []CorrectScoreOdds{},
	}
}

// SetScoreSets stores both players' results for set n (1-based).
func (m *Match) SetScoreSets(n int, p1, p2 ScoreSet) error {
	if n < 1 || n > 5 {
		return errors.Wrapf(ErrInvalidSetNumber, "set %d", n)
	}
	m.P1Sets[n-1] = p1
	m.P2Sets[n-1] = p2
	return nil
}

// RecomputeSetTally rebuilds the set-win tally from the stored games scores.
// The tally is reset first so a re-run is idempotent. Sets where either games
// score is absent are skipped; equal games counts award neither side and are
// reported in ties (1-based set numbers) for the caller to log.
func (m *Match) RecomputeSetTally() (ties []int, err error) {
	m.P1SetWins = 0
	m.P2SetWins = 0

	for i := 0; i < 5; i++ {
		g1 := m.P1Sets[i].Games
		g2 := m.P2Sets[i].Games
		if g1 == nil || g2 == nil {
			continue
		}

		p1, err := strconv.Atoi(*g1)
		if err != nil {
			return nil, errors.Wrapf(feedtext.ErrInvalidNumericFormat,
				"set %d player 1 games %q", i+1, *g1)
		}
		p2, err := strconv.Atoi(*g2)
		if err != nil {
			return nil, errors.Wrapf(feedtext.ErrInvalidNumericFormat,
				"set %d player 2 games %q", i+1, *g2)
		}

		switch {
		case p1 > p2:
			m.P1SetWins++
		case p2 > p1:
			m.P2SetWins++
		default:
			ties = append(ties, i+1)
		}
	}

	return ties, nil
}

// AppendHomeAway records one bookmaker's home-away line, one record per side.
func (m *Match) AppendHomeAway(p1, p2 HomeAwayOdds) {
	m.HomeAwayP1 = append(m.HomeAwayP1, p1)
	m.HomeAwayP2 = append(m.HomeAwayP2, p2)
}

// AppendOverUnder records the over and under lines of one bookmaker-threshold
// pair.
func (m *Match) AppendOverUnder(over, under OverUnderOdds) {
	m.Over = append(m.Over, over)
	m.Under = append(m.Under, under)
}

func (m *Match) AppendCorrectScore(cs CorrectScoreOdds) {
	m.CorrectScore = append(m.CorrectScore, cs)
}

func (w Winner) String() string { return strconv.Itoa(int(w)) }
