package decoder

import (
	"github.com/cockroachdb/errors"

	"github.com/courtdata/flashfeed/internal/domain/tennis"
	"github.com/courtdata/flashfeed/internal/feedtext"
	"github.com/courtdata/flashfeed/internal/platform/logging"
)

// Structural boundaries of the odds feed, outermost first: market, variant,
// threshold group (over-under and correct-score only), bookmaker.
const (
	marketSentinel    = "~OA÷"
	variantSentinel   = "~OB÷"
	thresholdSentinel = "~OCT÷"
	bookmakerSentinel = "~OE÷"
)

var (
	patBetType        = feedtext.MustPattern(`¬OAU÷([^¬÷]+)¬OAI÷`)
	patBetVariant     = feedtext.MustPattern(`([^¬÷]+)¬OBU÷`)
	patThresholdType  = feedtext.MustPattern(`([^¬÷]+)¬OC÷`)
	patThresholdValue = feedtext.MustPattern(`¬OC÷([^¬÷]+)(?:¬LY÷|¬LZ÷)`)
	patBookmakerID    = feedtext.MustPattern(`([^¬÷]+)¬OD÷`)
	patOddsFirst      = feedtext.MustPattern(`¬XB÷([^¬÷]+)¬XC÷`)
	patOddsSecond     = feedtext.MustPattern(`¬XC÷([^¬÷]+)¬OG÷`)
)

// Markets the feed vends but this pipeline does not model. Recognized so an
// actually unknown market type still fails loudly.
var ignoredBetTypes = map[string]struct{}{
	"odd-even":       {},
	"asian-handicap": {},
}

// OddsDecoder decomposes one match's odds feed across the three supported
// market taxonomies, appending onto the owning match's collections.
// Appends accumulate: re-applying a payload adds rows rather than replacing.
type OddsDecoder struct {
	log *logging.Logger
}

func NewOddsDecoder(log *logging.Logger) *OddsDecoder {
	if log == nil {
		log = logging.NewNop()
	}
	return &OddsDecoder{log: log}
}

// Apply decodes every market of the payload onto m. An unknown market type
// or an unknown bookmaker id aborts the whole odds decode, both indicate
// vocabulary drift that would corrupt every downstream record. A field
// failure inside one bookmaker block skips that block only.
func (d *OddsDecoder) Apply(m *tennis.Match, payload string) error {
	log := d.log.Session("odds_decoder", "match_id", m.ID)

	for _, market := range feedtext.Blocks(payload, marketSentinel) {
		betType, err := feedtext.Extract(market, patBetType)
		if err != nil {
			return err
		}
		if _, skip := ignoredBetTypes[betType]; skip {
			log.Debug("ignored market type", "bet_type", betType)
			continue
		}

		for _, variant := range feedtext.Blocks(market, variantSentinel) {
			label, err := feedtext.Extract(variant, patBetVariant)
			if err != nil {
				return err
			}

			switch betType {
			case "home-away":
				err = d.applyHomeAway(log, m, variant, label)
			case "over-under":
				err = d.applyOverUnder(log, m, variant, label)
			case "correct-score":
				err = d.applyCorrectScore(log, m, variant)
			default:
				err = errors.Wrapf(ErrUnsupportedMarketType, "bet type %q", betType)
			}
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (d *OddsDecoder) applyHomeAway(log *logging.Logger, m *tennis.Match, variant, label string) error {
	for _, block := range feedtext.Blocks(variant, bookmakerSentinel) {
		bookmaker, err := d.bookmakerName(block)
		if err != nil {
			return err
		}

		p1Open, p1Close, p2Open, p2Close, err := pairedOdds(block)
		if err != nil {
			log.Error("home-away bookmaker block skipped",
				"bookmaker", bookmaker, "variant", label, "error", err)
			continue
		}

		m.AppendHomeAway(
			tennis.HomeAwayOdds{Variant: label, Bookmaker: bookmaker, Open: p1Open, Close: p1Close},
			tennis.HomeAwayOdds{Variant: label, Bookmaker: bookmaker, Open: p2Open, Close: p2Close},
		)
	}
	return nil
}

func (d *OddsDecoder) applyOverUnder(log *logging.Logger, m *tennis.Match, variant, label string) error {
	for _, group := range feedtext.Blocks(variant, thresholdSentinel) {
		thresholdType, err := feedtext.Extract(group, patThresholdType)
		if err != nil {
			log.Error("over-under threshold group skipped", "variant", label, "error", err)
			continue
		}
		thresholdValue, err := feedtext.Extract(group, patThresholdValue)
		if err != nil {
			log.Error("over-under threshold group skipped", "variant", label, "error", err)
			continue
		}

		for _, block := range feedtext.Blocks(group, bookmakerSentinel) {
			bookmaker, err := d.bookmakerName(block)
			if err != nil {
				return err
			}

			overOpen, overClose, underOpen, underClose, err := pairedOdds(block)
			if err != nil {
				log.Error("over-under bookmaker block skipped",
					"bookmaker", bookmaker, "variant", label, "error", err)
				continue
			}

			base := tennis.OverUnderOdds{
				Variant:        label,
				ThresholdType:  thresholdType,
				ThresholdValue: thresholdValue,
				Bookmaker:      bookmaker,
			}
			over := base
			over.Open, over.Close = overOpen, overClose
			under := base
			under.Open, under.Close = underOpen, underClose
			m.AppendOverUnder(over, under)
		}
	}
	return nil
}

func (d *OddsDecoder) applyCorrectScore(log *logging.Logger, m *tennis.Match, variant string) error {
	for _, group := range feedtext.Blocks(variant, thresholdSentinel) {
		// The threshold slot carries the predicted score label here.
		score, err := feedtext.Extract(group, patThresholdValue)
		if err != nil {
			log.Error("correct-score group skipped", "error", err)
			continue
		}

		for _, block := range feedtext.Blocks(group, bookmakerSentinel) {
			bookmaker, err := d.bookmakerName(block)
			if err != nil {
				return err
			}

			raw, err := feedtext.Extract(block, patOddsSecond)
			if err != nil {
				log.Error("correct-score bookmaker block skipped",
					"bookmaker", bookmaker, "error", err)
				continue
			}
			opening, closing, err := feedtext.SplitOddsPair(raw)
			if err != nil {
				log.Error("correct-score bookmaker block skipped",
					"bookmaker", bookmaker, "error", err)
				continue
			}

			m.AppendCorrectScore(tennis.CorrectScoreOdds{
				Score: score, Bookmaker: bookmaker, Open: opening, Close: closing,
			})
		}
	}
	return nil
}

func (d *OddsDecoder) bookmakerName(block string) (string, error) {
	id, err := feedtext.Extract(block, patBookmakerID)
	if err != nil {
		return "", err
	}
	return NormalizeBookmaker(id)
}

// pairedOdds reads the two-sided odds field of a bookmaker block and
// decomposes each raw value into its opening/closing pair.
func pairedOdds(block string) (firstOpen, firstClose, secondOpen, secondClose string, err error) {
	rawFirst, err := feedtext.Extract(block, patOddsFirst)
	if err != nil {
		return "", "", "", "", err
	}
	rawSecond, err := feedtext.Extract(block, patOddsSecond)
	if err != nil {
		return "", "", "", "", err
	}

	firstOpen, firstClose, err = feedtext.SplitOddsPair(rawFirst)
	if err != nil {
		return "", "", "", "", err
	}
	secondOpen, secondClose, err = feedtext.SplitOddsPair(rawSecond)
	if err != nil {
		return "", "", "", "", err
	}
	return firstOpen, firstClose, secondOpen, secondClose, nil
}
