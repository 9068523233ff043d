package export

import (
	"encoding/csv"
	"io"
	"sort"

	crerr "github.com/cockroachdb/errors"
)

// fixedColumns lead every CSV so the stable identity and score fields keep a
// predictable position regardless of which odds markets a run produced.
var fixedColumns = []string{
	"tournament_id",
	"tournament_slug",
	"tournament_name",
	"tournament_year",
	"match_id",
	"match_date",
	"timestamp",
	"round",
	"surface",
	"player1_name",
	"player1_id",
	"player1_nationality",
	"player1_link",
	"player2_name",
	"player2_id",
	"player2_nationality",
	"player2_link",
	"odds_link",
	"stats_link",
	"score_link",
	"status_link",
	"status",
	"winner",
	"p1_win_sets",
	"p2_win_sets",
	"global_duration",
}

// WriteCSV writes rows with a header built from the union of all row keys.
// Fixed columns come first in their declared order, dynamic columns follow
// sorted, so identical inputs always render identical files.
func WriteCSV(w io.Writer, rows []map[string]string) error {
	header := buildHeader(rows)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return crerr.Wrap(err, "write csv header")
	}

	record := make([]string, len(header))
	for _, row := range rows {
		for i, column := range header {
			record[i] = row[column]
		}
		if err := cw.Write(record); err != nil {
			return crerr.Wrap(err, "write csv row")
		}
	}

	cw.Flush()
	return crerr.Wrap(cw.Error(), "flush csv")
}

func buildHeader(rows []map[string]string) []string {
	fixed := make(map[string]struct{}, len(fixedColumns))
	for _, column := range fixedColumns {
		fixed[column] = struct{}{}
	}

	dynamic := make(map[string]struct{})
	for _, row := range rows {
		for key := range row {
			if _, ok := fixed[key]; ok {
				continue
			}
			dynamic[key] = struct{}{}
		}
	}

	header := make([]string, 0, len(fixedColumns)+len(dynamic))
	header = append(header, fixedColumns...)
	extra := make([]string, 0, len(dynamic))
	for key := range dynamic {
		extra = append(extra, key)
	}
	sort.Strings(extra)
	return append(header, extra...)
}
