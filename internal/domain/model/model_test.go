package model_test

import (
	"testing"

	model "github.com/okian/kayfabe/internal/domain/model"
	types "github.com/okian/kayfabe/internal/domain/types"
	"github.com/smartystreets/goconvey/convey"
)

func TestCompetitorState(t *testing.T) {
	convey.Convey("Given a competitor", t, func() {
		friend := types.NewCompetitorID()
		rival := types.NewCompetitorID()
		trait := types.NewTraitID()

		c := &model.Competitor{
			ID:         types.NewCompetitorID(),
			Name:       "Apex Andino",
			Technical:  80,
			Brawling:   70,
			Aerial:     60,
			Psychology: 75,
			Stamina:    85,
			Toughness:  65,
			Morale:     50,
			Popularity: 60,
			Friends:    map[types.CompetitorID]struct{}{friend: {}},
			Rivals:     map[types.CompetitorID]struct{}{rival: {}},
			Traits:     map[types.TraitID]struct{}{trait: {}},
		}

		convey.Convey("When checking relationships", func() {
			convey.So(c.IsFriend(friend), convey.ShouldBeTrue)
			convey.So(c.IsFriend(rival), convey.ShouldBeFalse)
			convey.So(c.IsRival(rival), convey.ShouldBeTrue)
			convey.So(c.HasTrait(trait), convey.ShouldBeTrue)
			convey.So(c.HasTrait(types.NewTraitID()), convey.ShouldBeFalse)
		})

		convey.Convey("When accruing fatigue beyond the ceiling", func() {
			c.AddFatigue(150)

			convey.So(c.Fatigue, convey.ShouldEqual, 100)
		})

		convey.Convey("When recovering fatigue below the floor", func() {
			c.Fatigue = 10
			c.AddFatigue(-50)

			convey.So(c.Fatigue, convey.ShouldEqual, 0)
		})

		convey.Convey("When morale moves past both bounds", func() {
			c.AdjustMorale(80)
			convey.So(c.Morale, convey.ShouldEqual, 100)

			c.AdjustMorale(-150)
			convey.So(c.Morale, convey.ShouldEqual, 0)
		})

		convey.Convey("When momentum swings past both bounds", func() {
			c.AdjustMomentum(150)
			convey.So(c.Momentum, convey.ShouldEqual, 100)

			c.AdjustMomentum(-300)
			convey.So(c.Momentum, convey.ShouldEqual, -100)
		})

		convey.Convey("When popularity shifts", func() {
			c.AdjustPopularity(45)
			convey.So(c.Popularity, convey.ShouldEqual, 100)
		})

		convey.Convey("When checking injury status", func() {
			convey.So(c.IsInjured(), convey.ShouldBeFalse)

			c.Injury = &model.Injury{Severity: types.SeverityMinor, WeeksRemaining: 2}
			convey.So(c.IsInjured(), convey.ShouldBeTrue)

			c.Injury.WeeksRemaining = 0
			convey.So(c.IsInjured(), convey.ShouldBeFalse)
		})
	})
}

func TestRefereeStats(t *testing.T) {
	convey.Convey("Given referee career stats", t, func() {
		stats := &model.RefereeStats{}

		convey.Convey("When recording finishes", func() {
			stats.RecordFinish(types.Pinfall)
			stats.RecordFinish(types.Pinfall)
			stats.RecordFinish(types.Submission)

			convey.So(stats.FinishCounts[types.Pinfall], convey.ShouldEqual, 2)
			convey.So(stats.FinishCounts[types.Submission], convey.ShouldEqual, 1)
			convey.So(stats.FinishCounts[types.Knockout], convey.ShouldEqual, 0)
		})

		convey.Convey("When the rating window overflows", func() {
			for i := 0; i < 15; i++ {
				stats.PushRating(float64(i * 10))
			}

			convey.Convey("Then only the last ten ratings remain", func() {
				convey.So(len(stats.RecentRatings), convey.ShouldEqual, 10)
				convey.So(stats.RecentRatings[0], convey.ShouldEqual, 50)
				convey.So(stats.AverageRating(), convey.ShouldEqual, 95)
			})

			convey.Convey("Then the career accumulators keep the full history", func() {
				convey.So(stats.RatedMatches, convey.ShouldEqual, 15)
				convey.So(stats.CareerAverageRating(), convey.ShouldEqual, 70)
				convey.So(stats.HighestRating, convey.ShouldEqual, 140)
				convey.So(stats.LowestRating, convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When the window is empty", func() {
			convey.So(stats.AverageRating(), convey.ShouldEqual, 0)
			convey.So(stats.CareerAverageRating(), convey.ShouldEqual, 0)
		})

		convey.Convey("When adding achievements", func() {
			convey.So(stats.AddAchievement("centurion"), convey.ShouldBeTrue)
			convey.So(stats.AddAchievement("centurion"), convey.ShouldBeFalse)
			convey.So(len(stats.Achievements), convey.ShouldEqual, 1)
		})
	})
}

func TestRefereeQuality(t *testing.T) {
	convey.Convey("Given referee quality scoring", t, func() {
		honest := &model.Referee{Experience: 90, Consistency: 90, Corruption: 0}
		crooked := &model.Referee{Experience: 90, Consistency: 90, Corruption: 80}

		convey.Convey("Then corruption should count against quality", func() {
			convey.So(honest.QualityScore(), convey.ShouldEqual, float64(90+90+100)/3)
			convey.So(honest.QualityScore(), convey.ShouldBeGreaterThan, crooked.QualityScore())
		})

		convey.Convey("Then fatigue and reputation should clamp", func() {
			honest.AddFatigue(500)
			convey.So(honest.Fatigue, convey.ShouldEqual, 100)

			honest.AdjustReputation(-500)
			convey.So(honest.Stats.Reputation, convey.ShouldEqual, 0)
		})
	})
}

func TestStorylines(t *testing.T) {
	convey.Convey("Given storyline modifiers", t, func() {
		a := types.NewCompetitorID()
		b := types.NewCompetitorID()
		c := types.NewCompetitorID()

		convey.Convey("When checking feud membership", func() {
			feud := &model.Feud{
				ID:           types.NewFeudID(),
				Participants: map[types.CompetitorID]struct{}{a: {}, b: {}},
				Heat:         70,
			}

			convey.So(feud.Involves(a), convey.ShouldBeTrue)
			convey.So(feud.Involves(c), convey.ShouldBeFalse)
		})

		convey.Convey("When counting tag team members on a card", func() {
			team := &model.TagTeam{
				ID:        types.NewTeamID(),
				Members:   []types.CompetitorID{a, b},
				Chemistry: 8,
			}
			present := map[types.CompetitorID]struct{}{a: {}, c: {}}

			convey.So(team.MembersPresent(present), convey.ShouldEqual, 1)

			present[b] = struct{}{}
			convey.So(team.MembersPresent(present), convey.ShouldEqual, 2)
		})
	})
}
