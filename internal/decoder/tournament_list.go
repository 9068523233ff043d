package decoder

import (
	"context"

	"github.com/courtdata/flashfeed/internal/domain/tennis"
	"github.com/courtdata/flashfeed/internal/feedtext"
	"github.com/courtdata/flashfeed/internal/platform/logging"
)

const tournamentSentinel = "~MN÷"

var (
	patTournamentSlug = feedtext.MustPattern(`¬MU÷([^¬÷]+)¬MT÷`)
	patTournamentID   = feedtext.MustPattern(`¬MTI÷([^¬÷]+)¬`)
)

// TournamentListDecoder turns the provider's tournament index feed into
// tournament refs, probing each synthesized archive link.
type TournamentListDecoder struct {
	baseURL string
	checker LinkChecker
	log     *logging.Logger
}

func NewTournamentListDecoder(baseURL string, checker LinkChecker, log *logging.Logger) *TournamentListDecoder {
	if log == nil {
		log = logging.NewNop()
	}
	return &TournamentListDecoder{baseURL: baseURL, checker: checker, log: log}
}

// Decode extracts every tournament's slug and id. A failure in one segment
// (including an unreachable archive link) skips that tournament only.
func (d *TournamentListDecoder) Decode(ctx context.Context, payload string) []tennis.TournamentRef {
	log := d.log.Session("tournament_list")

	var refs []tennis.TournamentRef
	for _, segment := range feedtext.Blocks(payload, tournamentSentinel) {
		slug, err := feedtext.Extract(segment, patTournamentSlug)
		if err != nil {
			log.ErrorContext(ctx, "tournament segment skipped", "error", err)
			continue
		}
		id, err := feedtext.Extract(segment, patTournamentID)
		if err != nil {
			log.ErrorContext(ctx, "tournament segment skipped", "slug", slug, "error", err)
			continue
		}

		archive := d.baseURL + slug + "/archive/"
		if d.checker != nil {
			archive, err = d.checker.CheckURL(ctx, archive)
			if err != nil {
				log.ErrorContext(ctx, "tournament archive unreachable", "slug", slug, "error", err)
				continue
			}
		}

		refs = append(refs, tennis.TournamentRef{ID: id, Slug: slug, ArchiveLink: archive})
	}

	return refs
}
