package engine

import (
	model "github.com/okian/kayfabe/internal/domain/model"
	perf "github.com/okian/kayfabe/internal/domain/perf"
	referee "github.com/okian/kayfabe/internal/domain/referee"
	types "github.com/okian/kayfabe/internal/domain/types"
)

// matchState is the ephemeral working data of one simulation call. It is
// created on entry, owned by that call alone, and discarded on return;
// nothing in here outlives the call.
type matchState struct {
	match *model.Match
	mc    perf.MatchContext

	// competitors holds the resolved participants in booking order.
	competitors []*model.Competitor
	present     map[types.CompetitorID]struct{}

	scores   map[types.CompetitorID]float64
	momentum map[types.CompetitorID]float64

	ref         *model.Referee
	refFallback bool
	incident    *referee.Incident

	winner types.CompetitorID
	finish types.FinishType
	rating float64

	injuries []InjuryReport
	angle    bool
	warnings []string
}

func newMatchState(m *model.Match, mc perf.MatchContext, competitors []*model.Competitor) *matchState {
	st := &matchState{
		match:       m,
		mc:          mc,
		competitors: competitors,
		present:     make(map[types.CompetitorID]struct{}, len(competitors)),
		scores:      make(map[types.CompetitorID]float64, len(competitors)),
		momentum:    make(map[types.CompetitorID]float64, len(competitors)),
	}
	for _, c := range competitors {
		st.present[c.ID] = struct{}{}
	}
	return st
}

func (st *matchState) warn(msg string) {
	st.warnings = append(st.warnings, msg)
}

// opponents returns every resolved participant except the given one.
func (st *matchState) opponents(id types.CompetitorID) []*model.Competitor {
	out := make([]*model.Competitor, 0, len(st.competitors)-1)
	for _, c := range st.competitors {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}
