package tennis

// Player is one side of a match. Built once per decode pass, never mutated.
type Player struct {
	ID          string
	Name        string
	Nationality string
	ProfileLink string
}
