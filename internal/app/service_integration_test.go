package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	service "github.com/okian/kayfabe/internal/app"
	"github.com/okian/kayfabe/internal/config"
	model "github.com/okian/kayfabe/internal/domain/model"
	types "github.com/okian/kayfabe/internal/domain/types"
	"github.com/okian/kayfabe/internal/engine"
	"github.com/okian/kayfabe/pkg/rng"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceBulkSimulation(t *testing.T) {
	Convey("Given a started service and a season of matches", t, func() {
		cfg := config.New()
		rc, cs := testWorld(cfg, 8)
		svc := service.New(cfg, rc,
			service.WithWorkerCount(4),
			service.WithQueueSize(1000),
			service.WithDedupeSize(500),
			service.WithRandomSource(rng.New(21)),
		)
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		const matchCount = 60
		matches := make([]*model.Match, 0, matchCount)
		for i := 0; i < matchCount; i++ {
			a := cs[i%len(cs)]
			b := cs[(i+1)%len(cs)]
			matches = append(matches, singles(a, b))
		}

		Convey("When simulating the batch in simple mode", func() {
			var mu sync.Mutex
			var progress []int
			var final *service.Summary

			summary, err := svc.SimulateBulk(ctx, matches, types.Simple, service.BulkObserver{
				OnProgress: func(completed, total int, res *engine.Result, err error) {
					mu.Lock()
					defer mu.Unlock()
					progress = append(progress, completed)
				},
				OnComplete: func(s service.Summary) {
					mu.Lock()
					defer mu.Unlock()
					final = &s
				},
			})

			Convey("Then every match is simulated exactly once", func() {
				So(err, ShouldBeNil)
				So(summary.Total, ShouldEqual, matchCount)
				So(summary.Simulated, ShouldEqual, matchCount)
				So(summary.Failed, ShouldEqual, 0)
				So(summary.Duplicates, ShouldEqual, 0)
				for _, m := range matches {
					So(m.Simulated, ShouldBeTrue)
				}
			})

			Convey("Then the progress callback fired once per match", func() {
				mu.Lock()
				defer mu.Unlock()
				So(len(progress), ShouldEqual, matchCount)
			})

			Convey("Then the final summary matches the return value", func() {
				mu.Lock()
				defer mu.Unlock()
				So(final, ShouldNotBeNil)
				So(final.Simulated, ShouldEqual, summary.Simulated)
				So(final.AverageRating, ShouldEqual, summary.AverageRating)
			})

			Convey("Then the rating aggregates are coherent", func() {
				So(summary.AverageRating, ShouldBeBetweenOrEqual, 0, 100)
				So(summary.HighestRating, ShouldBeGreaterThanOrEqualTo, summary.AverageRating)
				So(summary.LowestRating, ShouldBeLessThanOrEqualTo, summary.AverageRating)
			})
		})

		Convey("When the same batch is submitted twice", func() {
			first, err := svc.SimulateBulk(ctx, matches, types.Simple, service.BulkObserver{})
			So(err, ShouldBeNil)
			So(first.Simulated, ShouldEqual, matchCount)

			second, err := svc.SimulateBulk(ctx, matches, types.Simple, service.BulkObserver{})

			Convey("Then the replay is all duplicates", func() {
				So(err, ShouldBeNil)
				So(second.Duplicates, ShouldEqual, matchCount)
				So(second.Simulated, ShouldEqual, 0)
			})
		})

		Convey("When the batch mixes fresh and broken matches", func() {
			broken := &model.Match{
				ID:          types.NewMatchID(),
				Competitors: []types.CompetitorID{cs[0].ID},
				Type:        types.Singles,
			}
			batch := append([]*model.Match{broken}, matches[:10]...)

			summary, err := svc.SimulateBulk(ctx, batch, types.Simple, service.BulkObserver{})

			Convey("Then failures are counted without sinking the run", func() {
				So(err, ShouldBeNil)
				So(summary.Simulated, ShouldEqual, 10)
				So(summary.Failed, ShouldEqual, 1)
			})
		})
	})
}

func TestServiceSeasonUpkeep(t *testing.T) {
	Convey("Given a service running several weeks of cards", t, func() {
		cfg := config.New()
		rc, cs := testWorld(cfg, 4)
		svc := service.New(cfg, rc,
			service.WithWorkerCount(2),
			service.WithRandomSource(rng.New(5)),
		)
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When alternating shows and weekly upkeep", func() {
			for week := 0; week < 4; week++ {
				show := &model.Show{
					Name: "weekly tv",
					Matches: []*model.Match{
						singles(cs[0], cs[1]),
						singles(cs[2], cs[3]),
					},
				}
				_, err := svc.SimulateShow(ctx, show, types.Advanced)
				So(err, ShouldBeNil)
				svc.AdvanceWeek()
			}

			Convey("Then records accumulate across the season", func() {
				totalMatches := 0
				for _, c := range cs {
					totalMatches += c.Wins + c.Losses
				}
				So(totalMatches, ShouldEqual, 16)
				for _, c := range cs {
					So(c.MatchesThisWeek, ShouldEqual, 0)
				}
			})

			Convey("Then standings stay internally consistent", func() {
				rows := svc.Standings()
				So(len(rows), ShouldEqual, 4)
				wins := 0
				for _, row := range rows {
					wins += row.Wins
				}
				So(wins, ShouldEqual, 8)
			})
		})
	})
}
