package model

import (
	types "github.com/okian/kayfabe/internal/domain/types"
)

// TraitKind enumerates the performance effects a trait can carry.
// Unknown kinds are ignored during simulation.
type TraitKind string

const (
	TraitCrowdFavourite     TraitKind = "crowd_favourite"
	TraitHardcoreSpecialist TraitKind = "hardcore_specialist"
	TraitSubmissionExpert   TraitKind = "submission_expert"
	TraitBigMatchPerformer  TraitKind = "big_match_performer"
	TraitLazyWorker         TraitKind = "lazy_worker"
	TraitChemistryMaster    TraitKind = "chemistry_master"
)

// Trait maps an identity to a single performance effect.
type Trait struct {
	ID   types.TraitID
	Name string
	Kind TraitKind
}

// Feud is a storyline rivalry. Its heat feeds performance when at least
// two participants share a match.
type Feud struct {
	ID           types.FeudID
	Participants map[types.CompetitorID]struct{}
	Heat         float64
}

// Involves reports whether the competitor is part of the feud.
func (f *Feud) Involves(id types.CompetitorID) bool {
	_, ok := f.Participants[id]
	return ok
}

// TagTeam is a named unit with a fixed chemistry bonus, applied when at
// least two members are booked together.
type TagTeam struct {
	ID        types.TeamID
	Name      string
	Members   []types.CompetitorID
	Chemistry float64
}

// MembersPresent counts how many team members appear in the given set.
func (t *TagTeam) MembersPresent(present map[types.CompetitorID]struct{}) int {
	n := 0
	for _, m := range t.Members {
		if _, ok := present[m]; ok {
			n++
		}
	}
	return n
}

// StaffRole distinguishes the non-wrestling personnel the engine consults.
type StaffRole string

const (
	RoleManager   StaffRole = "manager"
	RoleRoadAgent StaffRole = "road_agent"
	RoleDoctor    StaffRole = "doctor"
)

// Staff is a backstage employee contributing bonuses to simulation:
// managers lift ratings by presence, road agents by psychology influence,
// doctors by shortening recovery.
type Staff struct {
	ID   types.CompetitorID
	Name string
	Role StaffRole

	Charisma            float64
	Mic                 float64
	PsychologyInfluence float64
	Medicine            float64
}
