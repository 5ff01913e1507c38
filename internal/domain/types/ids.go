// Package types contains the closed vocabularies and identifier types
// shared across the simulation engine.
package types

import "github.com/google/uuid"

// CompetitorID identifies a competitor in the roster context.
type CompetitorID string

// RefereeID identifies a referee in the officiating pool.
type RefereeID string

// MatchID identifies a single bookable match record.
type MatchID string

// TraitID identifies a performance trait.
type TraitID string

// FeudID identifies an active storyline feud.
type FeudID string

// TeamID identifies a tag team.
type TeamID string

// TitleID identifies a championship.
type TitleID string

// NewCompetitorID returns a fresh random competitor identity.
func NewCompetitorID() CompetitorID { return CompetitorID(uuid.NewString()) }

// NewRefereeID returns a fresh random referee identity.
func NewRefereeID() RefereeID { return RefereeID(uuid.NewString()) }

// NewMatchID returns a fresh random match identity.
func NewMatchID() MatchID { return MatchID(uuid.NewString()) }

// NewTraitID returns a fresh random trait identity.
func NewTraitID() TraitID { return TraitID(uuid.NewString()) }

// NewFeudID returns a fresh random feud identity.
func NewFeudID() FeudID { return FeudID(uuid.NewString()) }

// NewTeamID returns a fresh random team identity.
func NewTeamID() TeamID { return TeamID(uuid.NewString()) }

// NewTitleID returns a fresh random title identity.
func NewTitleID() TitleID { return TitleID(uuid.NewString()) }

func (id CompetitorID) String() string { return string(id) }
func (id RefereeID) String() string    { return string(id) }
func (id MatchID) String() string      { return string(id) }
func (id TraitID) String() string      { return string(id) }
func (id FeudID) String() string       { return string(id) }
func (id TeamID) String() string       { return string(id) }
func (id TitleID) String() string      { return string(id) }
