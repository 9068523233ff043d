package tennis

import "testing"

func buildFlattenFixture(t *testing.T) *Match {
	t.Helper()

	m := NewMatch("Kx3ou23b")
	m.Timestamp = "1709164800"
	m.Date = "2024-02-29 00:00:00"
	m.Round = RoundFinal
	m.Surface = SurfaceHard
	m.Status = StatusFinished
	m.Winner = WinnerPlayer1
	m.GlobalDuration = "125"
	m.Player1 = Player{ID: "pl1", Name: "alcaraz-carlos", Nationality: "Spain", ProfileLink: "p1link"}
	m.Player2 = Player{ID: "pl2", Name: "zverev-alexander", Nationality: "Germany", ProfileLink: "p2link"}

	setGames(t, m, []string{"7", "4", "6"}, []string{"6", "6", "3"})
	if _, err := m.RecomputeSetTally(); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	m.AppendHomeAway(
		HomeAwayOdds{Variant: "full-time", Bookmaker: "Betclic", Open: "1.85", Close: "1.90"},
		HomeAwayOdds{Variant: "full-time", Bookmaker: "Betclic", Open: "2.10", Close: "2.00"},
	)
	m.AppendOverUnder(
		OverUnderOdds{Variant: "full-time", ThresholdType: "Games", ThresholdValue: "21.5", Bookmaker: "Unibet", Open: "1.80", Close: "1.80"},
		OverUnderOdds{Variant: "full-time", ThresholdType: "Games", ThresholdValue: "21.5", Bookmaker: "Unibet", Open: "1.95", Close: "2.05"},
	)
	m.AppendCorrectScore(CorrectScoreOdds{Score: "2:0", Bookmaker: "Bwin", Open: "2.50", Close: "2.50"})

	return m
}

func TestFlatten_FixedKeys(t *testing.T) {
	t.Parallel()

	row := buildFlattenFixture(t).Flatten()

	want := map[string]string{
		"match_id":            "Kx3ou23b",
		"match_date":          "2024-02-29 00:00:00",
		"timestamp":           "1709164800",
		"round":               "final",
		"surface":             "hard",
		"player1_name":        "alcaraz-carlos",
		"player2_id":          "pl2",
		"player1_nationality": "Spain",
		"status":              "finished",
		"winner":              "1",
		"p1_win_sets":         "2",
		"p2_win_sets":         "1",
		"global_duration":     "125",
		"p1_set1_score":       "7",
		"p2_set3_score":       "3",
		"p1_set4_score":       "",
	}
	for key, value := range want {
		if row[key] != value {
			t.Fatalf("key %q: got %q, want %q", key, row[key], value)
		}
	}
}

func TestFlatten_OddsKeys(t *testing.T) {
	t.Parallel()

	row := buildFlattenFixture(t).Flatten()

	want := map[string]string{
		"p1_odd_home_away_Betclic_full-time_start":  "1.85",
		"p1_odd_home_away_Betclic_full-time_end":    "1.90",
		"p2_odd_home_away_Betclic_full-time_start":  "2.10",
		"over_odd_Unibet_full-time_Games_21.5_start": "1.80",
		"under_odd_Unibet_full-time_Games_21.5_end":  "2.05",
		"correct_odd_Bwin_2:0_start":                "2.50",
	}
	for key, value := range want {
		if row[key] != value {
			t.Fatalf("key %q: got %q, want %q", key, row[key], value)
		}
	}
}

func TestFlatten_Deterministic(t *testing.T) {
	t.Parallel()

	m := buildFlattenFixture(t)
	first := m.Flatten()
	second := m.Flatten()

	if len(first) != len(second) {
		t.Fatalf("row size changed between runs: %d vs %d", len(first), len(second))
	}
	for key, value := range first {
		if second[key] != value {
			t.Fatalf("key %q changed between runs: %q vs %q", key, value, second[key])
		}
	}
}

func TestTournamentRows(t *testing.T) {
	t.Parallel()

	tr := NewTournament(TournamentRef{ID: "vDAjRCsI", Slug: "acapulco", ArchiveLink: "alink"})
	tr.Name = "ATP Acapulco 2024"
	tr.Year = "2024"
	tr.AddMatch(buildFlattenFixture(t))

	rows := tr.Rows()
	if len(rows) != 1 {
		t.Fatalf("unexpected row count: %d", len(rows))
	}
	row := rows[0]
	if row["tournament_id"] != "vDAjRCsI" || row["tournament_slug"] != "acapulco" {
		t.Fatalf("tournament fields missing from row: %v", row)
	}
	if row["match_id"] != "Kx3ou23b" {
		t.Fatalf("match fields missing from row")
	}
}

func TestTournamentRows_EmptyEdition(t *testing.T) {
	t.Parallel()

	tr := NewTournament(TournamentRef{ID: "vDAjRCsI", Slug: "acapulco"})
	tr.Year = "2001"

	rows := tr.Rows()
	if len(rows) != 1 {
		t.Fatalf("empty edition must still yield one row, got %d", len(rows))
	}
	if rows[0]["tournament_year"] != "2001" {
		t.Fatalf("unexpected bare row: %v", rows[0])
	}
	if _, ok := rows[0]["match_id"]; ok {
		t.Fatalf("bare row must not carry match fields")
	}
}
