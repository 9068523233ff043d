package tennis

// TournamentRef is the minimal identity of a tournament as listed on the
// provider index: enough to locate its archive of yearly editions.
type TournamentRef struct {
	ID          string
	Slug        string
	ArchiveLink string
}

// Tournament is one yearly edition with its decoded matches. It embeds the
// ref rather than extending it; there is no tournament hierarchy.
type Tournament struct {
	TournamentRef

	Name        string
	Year        string
	Link        string
	ResultsLink string
	WinnerName  string

	Matches []*Match
}

// NewTournament allocates an edition with its own empty match list.
func NewTournament(ref TournamentRef) *Tournament {
	return &Tournament{TournamentRef: ref, Matches: []*Match{}}
}

func (t *Tournament) AddMatch(m *Match) {
	t.Matches = append(t.Matches, m)
}

// Rows flattens every match of the edition, each row prefixed with the
// tournament-level fields. An edition without matches yields one bare row so
// the edition itself is not lost from the export.
func (t *Tournament) Rows() []map[string]string {
	base := map[string]string{
		"tournament_id":   t.ID,
		"tournament_slug": t.Slug,
		"tournament_name": t.Name,
		"tournament_year": t.Year,
	}

	if len(t.Matches) == 0 {
		row := make(map[string]string, len(base))
		for k, v := range base {
			row[k] = v
		}
		return []map[string]string{row}
	}

	rows := make([]map[string]string, 0, len(t.Matches))
	for _, m := range t.Matches {
		row := m.Flatten()
		for k, v := range base {
			row[k] = v
		}
		rows = append(rows, row)
	}
	return rows
}
