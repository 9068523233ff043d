package decoder

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/courtdata/flashfeed/internal/domain/tennis"
	"github.com/courtdata/flashfeed/internal/feedtext"
	"github.com/courtdata/flashfeed/internal/platform/logging"
)

// Match segments in a results feed start at ~AA÷; the text before the first
// one is the tournament-level header carrying the surface type.
const matchSentinel = "~AA÷"

const dateLayout = "2006-01-02 15:04:05"

var (
	patTournamentHeader = feedtext.MustPattern(`¬~ZA÷([^¬÷]+)¬ZEE÷`)
	patMatchID          = feedtext.MustPattern(`([^¬÷]+)¬AD÷`)
	patMatchDate        = feedtext.MustPattern(`¬AD÷([^¬÷]+)¬ADE÷`)
	patRound            = feedtext.MustPattern(`¬ER÷([^¬÷]+)¬RW÷`)
	patPlayer1Name      = feedtext.MustPattern(`¬WU÷([^¬÷]+)¬(?:AS|GRA|AZ)÷`)
	patPlayer2Name      = feedtext.MustPattern(`¬WV÷([^¬÷]+)¬(?:AS|GRB|AZ)÷`)
	patPlayer1Nat       = feedtext.MustPattern(`¬FU÷([^¬÷]+)¬CY÷`)
	patPlayer2Nat       = feedtext.MustPattern(`¬FV÷([^¬÷]+)¬(?:AH|OB|WB|BB)÷`)
	patPlayer1ID        = feedtext.MustPattern(`¬PX÷([^¬÷]+)¬WU÷`)
	patPlayer2ID        = feedtext.MustPattern(`¬PY÷([^¬÷]+)¬WV÷`)
)

// Provider-side records that are structurally broken at the source and can
// never decode. Skipped by exact id match.
var deniedMatchIDs = map[string]struct{}{
	"EV2zgEbq": {},
	"6H7IaZrg": {},
	"0v7Mbgba": {},
}

// LinkChecker probes a synthesized URL; only a 404 is a failure, 401/403
// count as reachable.
type LinkChecker interface {
	CheckURL(ctx context.Context, url string) (string, error)
}

// LinkBases are the URL templates the per-match sub-feed links are derived
// from by id substitution.
type LinkBases struct {
	PlayerBase string
	OddsBase   string
	StatsBase  string
	ScoreBase  string
	StatusBase string
}

func DefaultLinkBases() LinkBases {
	return LinkBases{
		PlayerBase: "https://www.flashscore.com/player/",
		OddsBase:   "https://2.flashscore.ninja/2/x/feed/df_od_1_",
		StatsBase:  "https://2.flashscore.ninja/2/x/feed/df_st_1_",
		ScoreBase:  "https://2.flashscore.ninja/2/x/feed/df_sur_1_",
		StatusBase: "https://2.flashscore.ninja/2/x/feed/dc_1_",
	}
}

// MatchDecoder turns one tournament edition's results feed into match
// records. It holds no state between Decode calls; independent editions may
// be decoded in parallel as long as each call owns its Tournament.
type MatchDecoder struct {
	bases   LinkBases
	checker LinkChecker
	log     *logging.Logger
}

func NewMatchDecoder(bases LinkBases, checker LinkChecker, log *logging.Logger) *MatchDecoder {
	if log == nil {
		log = logging.NewNop()
	}
	return &MatchDecoder{bases: bases, checker: checker, log: log}
}

// Decode extracts all matches embedded in the results payload. The surface
// type comes from the header segment and applies to every match of the
// edition; a header failure aborts the whole batch since every downstream
// record would carry a wrong surface. A failure inside one match segment
// skips that segment only.
func (d *MatchDecoder) Decode(ctx context.Context, payload string) (tennis.Surface, []*tennis.Match, error) {
	log := d.log.Session("match_decoder")

	segments := feedtext.Segments(payload, matchSentinel)
	header, segments := segments[0], segments[1:]

	surface, err := d.decodeSurface(header)
	if err != nil {
		return "", nil, err
	}
	log.Debug("results feed segmented", "segments", len(segments), "surface", surface)

	matches := make([]*tennis.Match, 0, len(segments))
	for _, segment := range segments {
		m, err := d.decodeSegment(ctx, segment)
		if err != nil {
			log.ErrorContext(ctx, "match segment skipped", "error", err, "segment", segment)
			continue
		}
		if m == nil {
			continue // denylisted
		}
		m.Surface = surface
		matches = append(matches, m)
	}

	return surface, matches, nil
}

// decodeSurface reads the surface type out of the tournament header: the
// token after the last ", " of the ZA group, e.g. "ATP Acapulco, Mexico,
// Hard".
func (d *MatchDecoder) decodeSurface(header string) (tennis.Surface, error) {
	part, err := feedtext.Extract(header, patTournamentHeader)
	if err != nil {
		return "", err
	}

	idx := strings.LastIndex(part, ", ")
	if idx < 0 {
		return "", errors.Wrapf(feedtext.ErrMalformedSegment,
			"tournament header %q has no surface delimiter", part)
	}

	return NormalizeSurface(part[idx+2:])
}

func (d *MatchDecoder) decodeSegment(ctx context.Context, segment string) (*tennis.Match, error) {
	id, err := feedtext.Extract(segment, patMatchID)
	if err != nil {
		return nil, err
	}
	if _, denied := deniedMatchIDs[id]; denied {
		d.log.Debug("denylisted match skipped", "match_id", id)
		return nil, nil
	}

	rawDate, err := feedtext.Extract(segment, patMatchDate)
	if err != nil {
		return nil, err
	}
	epoch, err := strconv.ParseInt(rawDate, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(feedtext.ErrInvalidNumericFormat, "match date %q", rawDate)
	}

	round, err := d.decodeRound(segment)
	if err != nil {
		return nil, err
	}

	p1, err := d.decodePlayer(ctx, segment, patPlayer1ID, patPlayer1Name, patPlayer1Nat)
	if err != nil {
		return nil, err
	}
	p2, err := d.decodePlayer(ctx, segment, patPlayer2ID, patPlayer2Name, patPlayer2Nat)
	if err != nil {
		return nil, err
	}

	m := tennis.NewMatch(id)
	m.Timestamp = rawDate
	m.Date = time.Unix(epoch, 0).UTC().Format(dateLayout)
	m.Round = round
	m.Player1 = p1
	m.Player2 = p2

	if m.OddsLink, err = d.checkLink(ctx, d.bases.OddsBase+id+"/"); err != nil {
		return nil, err
	}
	if m.StatsLink, err = d.checkLink(ctx, d.bases.StatsBase+id+"/"); err != nil {
		return nil, err
	}
	if m.ScoreLink, err = d.checkLink(ctx, d.bases.ScoreBase+id+"/"); err != nil {
		return nil, err
	}
	if m.StatusLink, err = d.checkLink(ctx, d.bases.StatusBase+id+"/"); err != nil {
		return nil, err
	}

	return m, nil
}

// decodeRound distinguishes an absent round field (a regular-season match,
// mapped to RoundNone) from an unrecognized round code, which is a hard
// failure: the round vocabulary is closed.
func (d *MatchDecoder) decodeRound(segment string) (tennis.Round, error) {
	code, ok, err := feedtext.ExtractOptional(segment, patRound)
	if err != nil {
		return "", err
	}
	if !ok {
		return tennis.RoundNone, nil
	}
	return NormalizeRound(code)
}

func (d *MatchDecoder) decodePlayer(ctx context.Context, segment string, idPat, namePat, natPat feedtext.FieldPattern) (tennis.Player, error) {
	id, err := feedtext.Extract(segment, idPat)
	if err != nil {
		return tennis.Player{}, err
	}
	name, err := feedtext.Extract(segment, namePat)
	if err != nil {
		return tennis.Player{}, err
	}
	nat, err := feedtext.Extract(segment, natPat)
	if err != nil {
		return tennis.Player{}, err
	}

	link, err := d.checkLink(ctx, d.bases.PlayerBase+name+"/"+id+"/")
	if err != nil {
		return tennis.Player{}, err
	}

	return tennis.Player{ID: id, Name: name, Nationality: nat, ProfileLink: link}, nil
}

func (d *MatchDecoder) checkLink(ctx context.Context, url string) (string, error) {
	if d.checker == nil {
		return url, nil
	}
	return d.checker.CheckURL(ctx, url)
}
