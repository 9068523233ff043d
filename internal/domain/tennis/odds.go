package tennis

// Odds values stay strings throughout: the feed vends decimal text and the
// export emits it verbatim, so parsing would only lose formatting.

// HomeAwayOdds is one bookmaker's line on one side of a home-away market.
type HomeAwayOdds struct {
	Variant   string // bet scope, e.g. "full-time", "set-1"
	Bookmaker string
	Open      string
	Close     string
}

// OverUnderOdds is one bookmaker's line for one side of an over-under
// threshold. Two records per bookmaker-threshold pair, one over, one under.
type OverUnderOdds struct {
	Variant        string
	ThresholdType  string // "Games" or "Sets"
	ThresholdValue string
	Bookmaker      string
	Open           string
	Close          string
}

// CorrectScoreOdds is one bookmaker's line on a predicted final score.
type CorrectScoreOdds struct {
	Score     string // e.g. "2:0"
	Bookmaker string
	Open      string
	Close     string
}
