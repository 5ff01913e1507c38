package types

// MatchType classifies a bout. The set is closed: unrecognized values fall
// back to the Singles profile and standard risk everywhere they are looked
// up, so new gimmicks degrade gracefully instead of panicking.
type MatchType string

const (
	Singles         MatchType = "singles"
	TagTeam         MatchType = "tag"
	Hardcore        MatchType = "hardcore"
	Cage            MatchType = "cage"
	Aerial          MatchType = "aerial"
	Ladder          MatchType = "ladder"
	TLC             MatchType = "tlc"
	HellInACell     MatchType = "hell_in_a_cell"
	IronMan         MatchType = "iron_man"
	LastManStanding MatchType = "last_man_standing"
	SubmissionMatch MatchType = "submission"
)

// WeightProfile holds the skill multipliers a match type applies when
// computing base performance.
type WeightProfile struct {
	Technical  float64
	Brawling   float64
	Psychology float64
	Aerial     float64
}

var weightProfiles = map[MatchType]WeightProfile{
	Singles:         {Technical: 1.0, Brawling: 1.0, Psychology: 1.0, Aerial: 1.0},
	TagTeam:         {Technical: 0.9, Brawling: 1.0, Psychology: 1.1, Aerial: 1.0},
	Hardcore:        {Technical: 0.6, Brawling: 1.4, Psychology: 0.9, Aerial: 0.8},
	Cage:            {Technical: 0.8, Brawling: 1.3, Psychology: 1.0, Aerial: 0.9},
	Aerial:          {Technical: 0.7, Brawling: 0.8, Psychology: 1.0, Aerial: 1.3},
	Ladder:          {Technical: 0.7, Brawling: 0.9, Psychology: 1.0, Aerial: 1.2},
	TLC:             {Technical: 0.6, Brawling: 1.2, Psychology: 0.9, Aerial: 1.1},
	HellInACell:     {Technical: 0.7, Brawling: 1.3, Psychology: 1.0, Aerial: 0.8},
	IronMan:         {Technical: 1.2, Brawling: 0.9, Psychology: 1.2, Aerial: 0.8},
	LastManStanding: {Technical: 0.7, Brawling: 1.4, Psychology: 1.0, Aerial: 0.7},
	SubmissionMatch: {Technical: 1.3, Brawling: 0.8, Psychology: 1.2, Aerial: 0.6},
}

// Weights returns the skill weight profile for the match type. Unknown
// types get the all-equal Singles profile.
func (t MatchType) Weights() WeightProfile {
	if p, ok := weightProfiles[t]; ok {
		return p
	}
	return weightProfiles[Singles]
}

// advanced-mode injury risk surcharge, percent.
var injuryRisks = map[MatchType]float64{
	Hardcore:        15,
	Ladder:          20,
	Cage:            10,
	TLC:             25,
	HellInACell:     20,
	LastManStanding: 12,
}

// simple-mode surcharges are softer across the board.
var simpleInjuryRisks = map[MatchType]float64{
	Hardcore:        7,
	Ladder:          10,
	Cage:            5,
	TLC:             12,
	HellInACell:     8,
	LastManStanding: 6,
}

// InjuryRisk returns the match-type injury surcharge in percent. Types
// without an entry carry the standard low risk.
func (t MatchType) InjuryRisk(simple bool) float64 {
	if simple {
		if r, ok := simpleInjuryRisks[t]; ok {
			return r
		}
		return 1
	}
	if r, ok := injuryRisks[t]; ok {
		return r
	}
	return 2
}

var fatigueCosts = map[MatchType]float64{
	Hardcore:        20,
	Ladder:          25,
	TLC:             30,
	HellInACell:     25,
	IronMan:         35,
	LastManStanding: 25,
}

// FatigueCost returns the extra post-match fatigue the match type inflicts
// on top of the base accrual.
func (t MatchType) FatigueCost() float64 {
	return fatigueCosts[t]
}

// IsHardcoreClass reports whether the match belongs to the hardcore
// category for referee suitability and finish weighting.
func (t MatchType) IsHardcoreClass() bool {
	switch t {
	case Hardcore, TLC, HellInACell, LastManStanding:
		return true
	default:
		return false
	}
}

// IsHighRisk reports whether the match carries elevated referee incident
// exposure (weapons, heights, enclosed structures).
func (t MatchType) IsHighRisk() bool {
	switch t {
	case Ladder, TLC, HellInACell, Cage, Aerial:
		return true
	default:
		return false
	}
}
