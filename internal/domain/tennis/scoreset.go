package tennis

// ScoreSet holds one player's result for one set. All three fields are
// independently absent-or-present; a nil Games means the set was not played.
type ScoreSet struct {
	Games    *string
	Tiebreak *string
	Duration *string
}

func (s ScoreSet) Played() bool { return s.Games != nil }
