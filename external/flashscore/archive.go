package flashscore

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/courtdata/flashfeed/internal/feedtext"
	"github.com/courtdata/flashfeed/internal/usecase"
)

const siteBaseURL = "https://www.flashscore.com"

// ArchiveRows fetches a tournament archive page and returns one edition per
// archive row. A malformed row is logged and skipped; an archive page without
// the archive section is an error.
func (c *Client) ArchiveRows(ctx context.Context, archiveURL string) ([]usecase.ArchiveEdition, error) {
	page, err := c.FetchText(ctx, archiveURL)
	if err != nil {
		return nil, crerr.Wrapf(err, "fetch archive page url=%s", archiveURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, crerr.Wrapf(err, "parse archive page url=%s", archiveURL)
	}

	section := doc.Find("section#tournament-page-archiv")
	if section.Length() == 0 {
		return nil, crerr.Newf("archive section not found url=%s", archiveURL)
	}

	var editions []usecase.ArchiveEdition
	section.Find("div.archive__row").Each(func(_ int, row *goquery.Selection) {
		edition, rowErr := c.parseArchiveRow(ctx, row)
		if rowErr != nil {
			c.logger.ErrorContext(ctx, "archive row skipped", "url", archiveURL, "error", rowErr)
			return
		}
		editions = append(editions, edition)
	})

	return editions, nil
}

func (c *Client) parseArchiveRow(ctx context.Context, row *goquery.Selection) (usecase.ArchiveEdition, error) {
	seasonLink := row.Find("div.archive__season a.archive__text--clickable").First()
	if seasonLink.Length() == 0 {
		return usecase.ArchiveEdition{}, crerr.New("season link not found in archive row")
	}

	name := strings.TrimSpace(seasonLink.Text())
	href, ok := seasonLink.Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return usecase.ArchiveEdition{}, crerr.Newf("season link href missing name=%q", name)
	}

	link, err := c.CheckURL(ctx, c.baseURL+href)
	if err != nil {
		return usecase.ArchiveEdition{}, crerr.Wrapf(err, "edition link name=%q", name)
	}

	year, err := feedtext.ExtractYear(name)
	if err != nil {
		return usecase.ArchiveEdition{}, crerr.Wrapf(err, "edition year name=%q", name)
	}

	resultsLink, err := c.CheckURL(ctx, link+"results/")
	if err != nil {
		return usecase.ArchiveEdition{}, crerr.Wrapf(err, "edition results link name=%q", name)
	}

	// The winner is absent for editions still in play.
	winner := strings.TrimSpace(row.Find("div.archive__winner a.archive__text--clickable").First().Text())

	return usecase.ArchiveEdition{
		Name:        name,
		Year:        year,
		Link:        link,
		ResultsLink: resultsLink,
		Winner:      winner,
	}, nil
}
