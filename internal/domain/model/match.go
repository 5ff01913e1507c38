package model

import (
	types "github.com/okian/kayfabe/internal/domain/types"
)

// Match is a bookable match record. Booking fills the top section; the
// engine fills the output fields exactly once per simulation.
type Match struct {
	ID          types.MatchID
	Competitors []types.CompetitorID
	Type        types.MatchType
	Location    string

	IsTitleMatch bool
	IsMainEvent  bool
	Title        types.TitleID

	// Referee is assigned by the engine when left empty.
	Referee types.RefereeID

	// BookingModifier is an external numeric nudge on the final rating.
	BookingModifier float64

	// Output fields, set by the engine.
	Winner    types.CompetitorID
	Rating    float64
	Finish    types.FinishType
	Simulated bool
}

// Show is an ordered card of matches simulated as one unit.
type Show struct {
	Name     string
	Location string
	Matches  []*Match
}
