package usecase

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/courtdata/flashfeed/internal/decoder"
	"github.com/courtdata/flashfeed/internal/domain/tennis"
	"github.com/courtdata/flashfeed/internal/platform/logging"
)

const (
	defaultArchiveBaseURL  = "https://www.flashscore.com/tennis/atp-singles/"
	defaultIngestionWorkers = 4
)

type IngestionConfig struct {
	// TournamentIndexURL is the feed listing every tournament of the tour.
	TournamentIndexURL string
	ArchiveBaseURL     string
	LinkBases          decoder.LinkBases
	Workers            int
}

type IngestionResult struct {
	Tournaments    []*tennis.Tournament
	EditionCount   int
	MatchCount     int
	FailedEditions int
}

// IngestionService walks the tournament index, every tournament's archive and
// every edition's results feed, producing fully decoded tournaments.
type IngestionService struct {
	client   FeedClient
	logger   *logging.Logger
	indexURL string
	workers  int

	tournaments *decoder.TournamentListDecoder
	matches     *decoder.MatchDecoder
	statuses    *decoder.StatusDecoder
	scores      *decoder.ScoreDecoder
	odds        *decoder.OddsDecoder
}

func NewIngestionService(client FeedClient, cfg IngestionConfig, logger *logging.Logger) *IngestionService {
	if logger == nil {
		logger = logging.NewNop()
	}

	archiveBase := cfg.ArchiveBaseURL
	if archiveBase == "" {
		archiveBase = defaultArchiveBaseURL
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultIngestionWorkers
	}

	return &IngestionService{
		client:      client,
		logger:      logger,
		indexURL:    cfg.TournamentIndexURL,
		workers:     workers,
		tournaments: decoder.NewTournamentListDecoder(archiveBase, client, logger),
		matches:     decoder.NewMatchDecoder(cfg.LinkBases, client, logger),
		statuses:    decoder.NewStatusDecoder(logger),
		scores:      decoder.NewScoreDecoder(logger),
		odds:        decoder.NewOddsDecoder(logger),
	}
}

type editionTask struct {
	ref     tennis.TournamentRef
	edition ArchiveEdition
}

// Ingest runs the full pipeline. A failing tournament or edition is logged
// and skipped; only an unreachable tournament index aborts the run.
func (s *IngestionService) Ingest(ctx context.Context) (IngestionResult, error) {
	payload, err := s.client.FetchText(ctx, s.indexURL)
	if err != nil {
		return IngestionResult{}, crerr.Wrap(err, "fetch tournament index")
	}

	refs := s.tournaments.Decode(ctx, payload)
	s.logger.InfoContext(ctx, "tournament index decoded", "tournaments", len(refs))

	tasks := make([]editionTask, 0, len(refs)*8)
	for _, ref := range refs {
		editions, err := s.client.ArchiveRows(ctx, ref.ArchiveLink)
		if err != nil {
			s.logger.ErrorContext(ctx, "tournament archive skipped", "slug", ref.Slug, "error", err)
			continue
		}
		for _, edition := range editions {
			tasks = append(tasks, editionTask{ref: ref, edition: edition})
		}
	}

	result := IngestionResult{EditionCount: len(tasks)}
	if len(tasks) == 0 {
		return result, nil
	}

	workerCount := s.workers
	if workerCount > len(tasks) {
		workerCount = len(tasks)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return IngestionResult{}, crerr.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	decoded := make(chan *tennis.Tournament, len(tasks))
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, task := range tasks {
		task := task
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			tournament, taskErr := s.ingestEdition(ctx, task.ref, task.edition)
			if taskErr != nil {
				failedCount.Add(1)
				s.logger.ErrorContext(ctx, "edition skipped",
					"slug", task.ref.Slug,
					"year", task.edition.Year,
					"error", taskErr,
				)
				return
			}
			decoded <- tournament
		}); err != nil {
			workers.Done()
			return IngestionResult{}, crerr.Wrap(err, "submit edition to worker pool")
		}
	}

	workers.Wait()
	close(decoded)

	for tournament := range decoded {
		result.Tournaments = append(result.Tournaments, tournament)
		result.MatchCount += len(tournament.Matches)
	}
	result.FailedEditions = int(failedCount.Load())

	sort.SliceStable(result.Tournaments, func(i, j int) bool {
		if result.Tournaments[i].Slug != result.Tournaments[j].Slug {
			return result.Tournaments[i].Slug < result.Tournaments[j].Slug
		}
		return result.Tournaments[i].Year < result.Tournaments[j].Year
	})

	s.logger.InfoContext(ctx, "ingestion finished",
		"tournaments", len(result.Tournaments),
		"matches", result.MatchCount,
		"failed_editions", result.FailedEditions,
	)
	return result, nil
}

func (s *IngestionService) ingestEdition(ctx context.Context, ref tennis.TournamentRef, edition ArchiveEdition) (*tennis.Tournament, error) {
	tournament := tennis.NewTournament(ref)
	tournament.Name = edition.Name
	tournament.Year = edition.Year
	tournament.Link = edition.Link
	tournament.ResultsLink = edition.ResultsLink
	tournament.WinnerName = edition.Winner

	payload, err := s.client.ResultsFeed(ctx, edition.ResultsLink)
	if err != nil {
		return nil, crerr.Wrap(err, "fetch results feed")
	}

	_, matches, err := s.matches.Decode(ctx, payload)
	if err != nil {
		return nil, crerr.Wrap(err, "decode results feed")
	}

	for _, match := range matches {
		if err := s.enrichMatch(ctx, match); err != nil {
			s.logger.ErrorContext(ctx, "match skipped",
				"slug", ref.Slug,
				"year", edition.Year,
				"match_id", match.ID,
				"error", err,
			)
			continue
		}
		tournament.AddMatch(match)
	}

	return tournament, nil
}

// enrichMatch layers the per-match feeds onto a results row. The status feed
// comes first since it gates score decoding.
func (s *IngestionService) enrichMatch(ctx context.Context, m *tennis.Match) error {
	statusPayload, err := s.client.FetchText(ctx, m.StatusLink)
	if err != nil {
		return crerr.Wrap(err, "fetch status feed")
	}
	if err := s.statuses.Apply(m, statusPayload); err != nil {
		return crerr.Wrap(err, "decode status feed")
	}

	if m.Status == tennis.StatusFinished || m.Status == tennis.StatusRetired {
		scorePayload, err := s.client.FetchText(ctx, m.ScoreLink)
		if err != nil {
			return crerr.Wrap(err, "fetch score feed")
		}
		if err := s.scores.Apply(m, scorePayload); err != nil {
			return crerr.Wrap(err, "decode score feed")
		}
	}

	oddsPayload, err := s.client.FetchText(ctx, m.OddsLink)
	if err != nil {
		return crerr.Wrap(err, "fetch odds feed")
	}
	if err := s.odds.Apply(m, oddsPayload); err != nil {
		return crerr.Wrap(err, "decode odds feed")
	}

	return nil
}
