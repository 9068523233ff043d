package usecase

import "context"

// ArchiveEdition is one year's edition of a tournament as listed on its
// archive page. Winner is empty while the edition is still in play.
type ArchiveEdition struct {
	Name        string
	Year        string
	Link        string
	ResultsLink string
	Winner      string
}

// FeedClient is the provider surface the ingestion pipeline depends on.
type FeedClient interface {
	FetchText(ctx context.Context, url string) (string, error)
	CheckURL(ctx context.Context, url string) (string, error)
	ResultsFeed(ctx context.Context, resultsURL string) (string, error)
	ArchiveRows(ctx context.Context, archiveURL string) ([]ArchiveEdition, error)
}
