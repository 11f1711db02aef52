package scoring

// Side identifies one of the two sides of a match.
type Side int

const (
	// SideNone means "neither side", e.g. no winner yet.
	SideNone Side = 0
	Side1    Side = 1
	Side2    Side = 2
)

// Other returns the opposing side.
func (s Side) Other() Side {
	switch s {
	case Side1:
		return Side2
	case Side2:
		return Side1
	}
	return SideNone
}

// Valid reports whether s is an actual side.
func (s Side) Valid() bool {
	return s == Side1 || s == Side2
}

// idx maps a side to its position in the [2]int score arrays.
func (s Side) idx() int {
	return int(s) - 1
}

// leader returns the side ahead in a two-element tally, or SideNone on a tie.
func leader(tally [2]int) Side {
	switch {
	case tally[0] > tally[1]:
		return Side1
	case tally[1] > tally[0]:
		return Side2
	}
	return SideNone
}

// Variant selects the rule family a match is scored under.
type Variant string

const (
	// VariantTennis scores points into games into sets (tennis, padel, squash English scoring).
	VariantTennis Variant = "TENNIS"
	// VariantPointsRace scores points directly into sets (volleyball-style rally scoring).
	VariantPointsRace Variant = "POINTS_RACE"
)

// TiebreakKind distinguishes a regular set tiebreak from a match tiebreak
// played in place of an entire deciding set.
type TiebreakKind string

const (
	TiebreakNone  TiebreakKind = ""
	TiebreakSet   TiebreakKind = "SET"
	TiebreakMatch TiebreakKind = "MATCH"
)
