package tennis

import "fmt"

// Flatten projects the match with its nested sets and odds into a single
// field→value row for tabular export. Fixed keys come first; odds keys are
// synthesized from bookmaker and variant, and colliding odds keys (duplicate
// bookmaker rows in one feed) overwrite last-write-wins.
func (m *Match) Flatten() map[string]string {
	row := make(map[string]string, 64)

	row["match_id"] = m.ID
	row["match_date"] = m.Date
	row["timestamp"] = m.Timestamp
	row["round"] = string(m.Round)
	row["surface"] = string(m.Surface)

	row["player1_name"] = m.Player1.Name
	row["player2_name"] = m.Player2.Name
	row["player1_id"] = m.Player1.ID
	row["player2_id"] = m.Player2.ID
	row["player1_nationality"] = m.Player1.Nationality
	row["player2_nationality"] = m.Player2.Nationality
	row["player1_link"] = m.Player1.ProfileLink
	row["player2_link"] = m.Player2.ProfileLink

	row["odds_link"] = m.OddsLink
	row["stats_link"] = m.StatsLink
	row["score_link"] = m.ScoreLink
	row["status_link"] = m.StatusLink
	row["status"] = string(m.Status)
	row["winner"] = m.Winner.String()
	row["p1_win_sets"] = fmt.Sprintf("%d", m.P1SetWins)
	row["p2_win_sets"] = fmt.Sprintf("%d", m.P2SetWins)
	row["global_duration"] = m.GlobalDuration

	flattenSets(row, "p1", m.P1Sets)
	flattenSets(row, "p2", m.P2Sets)

	for _, odd := range m.HomeAwayP1 {
		key := fmt.Sprintf("p1_odd_home_away_%s_%s", odd.Bookmaker, odd.Variant)
		row[key+"_start"] = odd.Open
		row[key+"_end"] = odd.Close
	}
	for _, odd := range m.HomeAwayP2 {
		key := fmt.Sprintf("p2_odd_home_away_%s_%s", odd.Bookmaker, odd.Variant)
		row[key+"_start"] = odd.Open
		row[key+"_end"] = odd.Close
	}

	for _, odd := range m.Over {
		key := overUnderKey("over", odd)
		row[key+"_start"] = odd.Open
		row[key+"_end"] = odd.Close
	}
	for _, odd := range m.Under {
		key := overUnderKey("under", odd)
		row[key+"_start"] = odd.Open
		row[key+"_end"] = odd.Close
	}

	for _, odd := range m.CorrectScore {
		key := fmt.Sprintf("correct_odd_%s_%s", odd.Bookmaker, odd.Score)
		row[key+"_start"] = odd.Open
		row[key+"_end"] = odd.Close
	}

	return row
}

func flattenSets(row map[string]string, prefix string, sets [5]ScoreSet) {
	for i, s := range sets {
		base := fmt.Sprintf("%s_set%d", prefix, i+1)
		row[base+"_score"] = deref(s.Games)
		row[base+"_tiebreak"] = deref(s.Tiebreak)
		row[base+"_duration"] = deref(s.Duration)
	}
}

func overUnderKey(side string, odd OverUnderOdds) string {
	return fmt.Sprintf("%s_odd_%s_%s_%s_%s",
		side, odd.Bookmaker, odd.Variant, odd.ThresholdType, odd.ThresholdValue)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
