package injury_test

import (
	"testing"

	"github.com/okian/kayfabe/internal/config"
	injury "github.com/okian/kayfabe/internal/domain/injury"
	model "github.com/okian/kayfabe/internal/domain/model"
	types "github.com/okian/kayfabe/internal/domain/types"
	"github.com/okian/kayfabe/pkg/rng"
	. "github.com/smartystreets/goconvey/convey"
)

func healthyCompetitor() *model.Competitor {
	return &model.Competitor{
		ID:        types.NewCompetitorID(),
		Name:      "iron frame",
		Technical: 80,
		Brawling:  70,
		Aerial:    60,
		Stamina:   85,
		Toughness: 65,
	}
}

func TestInjuryChance(t *testing.T) {
	Convey("Given the injury risk model", t, func() {
		cfg := config.New()
		m := injury.New(cfg, rng.New(1))

		Convey("When a rested, tough competitor works a singles match", func() {
			w := healthyCompetitor()
			chance := m.Chance(w, types.Singles, false)

			Convey("Then the risk should stay in single digits", func() {
				So(chance, ShouldBeLessThan, 5)
				So(chance, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When a fragile, exhausted competitor works a TLC match", func() {
			w := healthyCompetitor()
			w.Toughness = 20
			w.Fatigue = 95
			chance := m.Chance(w, types.TLC, false)

			Convey("Then the risk should exceed fifty percent", func() {
				So(chance, ShouldBeGreaterThan, 50)
			})

			Convey("And the severity bucket should never be minor", func() {
				So(m.Severity(chance), ShouldNotEqual, types.SeverityMinor)
				So(m.Severity(chance), ShouldEqual, types.SeverityMajor)
			})
		})

		Convey("When low stamina multiplies the risk", func() {
			gassed := healthyCompetitor()
			gassed.Stamina = 20
			fresh := healthyCompetitor()

			So(m.Chance(gassed, types.Hardcore, false), ShouldBeGreaterThan, m.Chance(fresh, types.Hardcore, false))
		})

		Convey("When toughness absorbs risk", func() {
			tank := healthyCompetitor()
			tank.Toughness = 95
			glass := healthyCompetitor()
			glass.Toughness = 10

			So(m.Chance(tank, types.Ladder, false), ShouldBeLessThan, m.Chance(glass, types.Ladder, false))
		})

		Convey("When the risk stack would exceed the ceiling", func() {
			w := healthyCompetitor()
			w.Toughness = 0
			w.Fatigue = 100
			w.Stamina = 5

			So(m.Chance(w, types.TLC, false), ShouldEqual, cfg.MaxInjuryChance)
		})

		Convey("When simple mode softens everything", func() {
			w := healthyCompetitor()
			w.Fatigue = 95
			w.Toughness = 20

			So(m.Chance(w, types.TLC, true), ShouldBeLessThan, m.Chance(w, types.TLC, false))
		})
	})
}

func TestSeverityBuckets(t *testing.T) {
	Convey("Given severity bucketing", t, func() {
		cfg := config.New()
		m := injury.New(cfg, rng.New(1))

		Convey("Then buckets should follow the documented thresholds", func() {
			So(m.Severity(5), ShouldEqual, types.SeverityMinor)
			So(m.Severity(9.99), ShouldEqual, types.SeverityMinor)
			So(m.Severity(10), ShouldEqual, types.SeverityModerate)
			So(m.Severity(24.99), ShouldEqual, types.SeverityModerate)
			So(m.Severity(25), ShouldEqual, types.SeverityMajor)
			So(m.Severity(90), ShouldEqual, types.SeverityMajor)
		})

		Convey("Then severity should be monotone in the chance magnitude", func() {
			prev := types.SeverityMinor
			for c := 0.0; c <= 90; c += 0.5 {
				cur := m.Severity(c)
				So(cur, ShouldBeGreaterThanOrEqualTo, prev)
				prev = cur
			}
		})
	})
}

func TestRecoveryWeeks(t *testing.T) {
	Convey("Given recovery rolls", t, func() {
		cfg := config.New()

		Convey("When rolling each severity many times", func() {
			for i := int64(0); i < 100; i++ {
				m := injury.New(cfg, rng.New(i))
				So(m.RecoveryWeeks(types.SeverityMinor, 0), ShouldBeBetweenOrEqual, 1, 4)
				So(m.RecoveryWeeks(types.SeverityModerate, 0), ShouldBeBetweenOrEqual, 4, 12)
				So(m.RecoveryWeeks(types.SeverityMajor, 0), ShouldBeBetweenOrEqual, 13, 52)
			}
		})

		Convey("When a doctor reduces recovery", func() {
			var with, without int
			for i := int64(0); i < 100; i++ {
				with += injury.New(cfg, rng.New(i)).RecoveryWeeks(types.SeverityMajor, 50)
				without += injury.New(cfg, rng.New(i)).RecoveryWeeks(types.SeverityMajor, 0)
			}

			So(with, ShouldBeLessThan, without)
		})

		Convey("When the doctor discount would zero the recovery", func() {
			m := injury.New(cfg, rng.New(1))

			So(m.RecoveryWeeks(types.SeverityMinor, 99), ShouldBeGreaterThanOrEqualTo, 1)
		})
	})
}

func TestEvaluate(t *testing.T) {
	Convey("Given full injury evaluation", t, func() {
		cfg := config.New()

		Convey("When injuries are disabled", func() {
			disabled := config.New()
			disabled.InjuriesEnabled = false
			m := injury.New(disabled, rng.New(1))

			w := healthyCompetitor()
			w.Toughness = 0
			w.Fatigue = 100

			So(m.Evaluate(w, types.TLC, 0, false), ShouldBeNil)
			So(w.Injury, ShouldBeNil)
		})

		Convey("When a high-risk competitor is evaluated many times", func() {
			triggered := 0
			for i := int64(0); i < 500; i++ {
				m := injury.New(cfg, rng.New(i))
				w := healthyCompetitor()
				w.Toughness = 20
				w.Fatigue = 95

				if inj := m.Evaluate(w, types.TLC, 0, false); inj != nil {
					triggered++

					So(inj.Severity, ShouldEqual, types.SeverityMajor)
					So(w.Injury, ShouldNotBeNil)
					So(w.IsInjured(), ShouldBeTrue)
					So(w.Technical, ShouldAlmostEqual, 80*cfg.MajorStatPenalty, 0.0001)
					So(w.Stamina, ShouldAlmostEqual, 85*cfg.MajorStatPenalty, 0.0001)
				}
			}

			Convey("Then the trigger rate should reflect the elevated risk", func() {
				So(triggered, ShouldBeGreaterThan, 150)
			})
		})

		Convey("When the competitor is already on the injury list", func() {
			w := healthyCompetitor()
			w.Toughness = 0
			w.Fatigue = 100
			w.Injury = &model.Injury{Severity: types.SeverityMinor, WeeksRemaining: 2}

			Convey("Then no new roll happens until recovery", func() {
				for i := int64(0); i < 50; i++ {
					m := injury.New(cfg, rng.New(i))
					So(m.Evaluate(w, types.TLC, 0, false), ShouldBeNil)
				}

				So(w.Injury.Severity, ShouldEqual, types.SeverityMinor)
				So(w.Injury.WeeksRemaining, ShouldEqual, 2)
				So(w.Technical, ShouldEqual, 80)
				So(w.Stamina, ShouldEqual, 85)
			})
		})

		Convey("When simple mode triggers an injury", func() {
			found := false
			for i := int64(0); i < 500 && !found; i++ {
				m := injury.New(cfg, rng.New(i))
				w := healthyCompetitor()
				w.Toughness = 0
				w.Fatigue = 100

				if inj := m.Evaluate(w, types.TLC, 0, true); inj != nil {
					found = true

					So(inj.Severity, ShouldEqual, types.SeverityMinor)
					So(inj.WeeksRemaining, ShouldBeBetweenOrEqual, 1, 2)
					So(w.Stamina, ShouldEqual, 82)
					So(w.Technical, ShouldEqual, 80)
				}
			}

			So(found, ShouldBeTrue)
		})
	})
}

func TestAdvanceWeek(t *testing.T) {
	Convey("Given weekly injury countdown", t, func() {
		Convey("When an injured competitor heals over time", func() {
			w := healthyCompetitor()
			w.Injury = &model.Injury{Severity: types.SeverityMinor, WeeksRemaining: 2}

			So(injury.AdvanceWeek(w), ShouldBeFalse)
			So(w.IsInjured(), ShouldBeTrue)

			So(injury.AdvanceWeek(w), ShouldBeTrue)
			So(w.Injury, ShouldBeNil)
		})

		Convey("When a healthy competitor advances", func() {
			w := healthyCompetitor()

			So(injury.AdvanceWeek(w), ShouldBeFalse)
		})
	})
}
