package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	service "github.com/okian/kayfabe/internal/app"
	"github.com/okian/kayfabe/internal/config"
	model "github.com/okian/kayfabe/internal/domain/model"
	types "github.com/okian/kayfabe/internal/domain/types"
	"github.com/okian/kayfabe/internal/engine"
	"github.com/okian/kayfabe/internal/roster"
	"github.com/okian/kayfabe/pkg/logger"
	"github.com/okian/kayfabe/pkg/metrics"
	"github.com/okian/kayfabe/pkg/rng"
)

// Metrics server timeout constants.
const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

func main() {
	var (
		rosterPath = flag.String("roster", "", "Path to a YAML roster file (default: embedded demo roster)")
		weeks      = flag.Int("weeks", 4, "Number of weekly shows to simulate")
		modeFlag   = flag.String("mode", "", "Simulation mode: advanced or simple (default: configured mode)")
		seed       = flag.Int64("seed", 0, "Random seed for reproducible runs (0 = time-seeded)")
		bulk       = flag.Int("bulk", 0, "Additionally run a bulk batch of this many simple-mode matches")
	)
	flag.Parse()

	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	mode := types.ParseMode(cfg.DefaultMode)
	if *modeFlag != "" {
		mode = types.ParseMode(*modeFlag)
	}

	rc, err := loadRoster(cfg, *rosterPath)
	if err != nil {
		os.Stderr.WriteString("failed to load roster: " + err.Error() + "\n")
		return
	}

	opts := []service.Option{service.WithLogger(log)}
	if *seed != 0 {
		opts = append(opts, service.WithRandomSource(rng.New(*seed)))
	}
	svc := service.New(cfg, rc, opts...)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Optional Prometheus endpoint for long runs.
	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
		metricsSrv = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: readHeaderTimeout,
		}
		go func() {
			log.Info(ctx, "serving metrics", logger.String("addr", cfg.MetricsAddr))
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error(ctx, "metrics server failed", logger.Error(err))
			}
		}()
	}

	runSeason(ctx, svc, rc, mode, *weeks)

	if *bulk > 0 {
		runBulk(ctx, svc, rc, *bulk)
	}

	printStandings(svc.Standings())

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
}

// runSeason simulates weekly shows, pairing the card from the current
// standings so rivals at the same level keep meeting.
func runSeason(ctx context.Context, svc *service.Service, rc *roster.Context, mode types.Mode, weeks int) {
	log := logger.Get()

	for week := 1; week <= weeks; week++ {
		if ctx.Err() != nil {
			return
		}

		show := buildCard(rc, fmt.Sprintf("weekly show %d", week))
		res, err := svc.SimulateShow(ctx, show, mode)
		if err != nil {
			log.Error(ctx, "show failed", logger.Int("week", week), logger.Error(err))
			return
		}

		fmt.Printf("\n=== %s (avg %.1f) ===\n", show.Name, res.AverageRating)
		for _, r := range res.Results {
			winner := "?"
			if c, ok := rc.Competitor(r.Winner); ok {
				winner = c.Name
			}
			fmt.Printf("  %-18s wins by %-16s rating %.1f\n", winner, r.Finish, r.Rating)
			for _, inj := range r.Injuries {
				if c, ok := rc.Competitor(inj.CompetitorID); ok {
					fmt.Printf("    injury: %s %s (%d weeks)\n", c.Name, inj.Description, inj.Weeks)
				}
			}
		}

		svc.AdvanceWeek()
	}
}

// buildCard pairs the roster top to bottom; the top pair main-events.
func buildCard(rc *roster.Context, name string) *model.Show {
	rows := rc.Standings()
	show := &model.Show{Name: name}

	for i := 0; i+1 < len(rows); i += 2 {
		show.Matches = append(show.Matches, &model.Match{
			ID:          types.NewMatchID(),
			Competitors: []types.CompetitorID{rows[i].ID, rows[i+1].ID},
			Type:        types.Singles,
			IsMainEvent: i == 0,
		})
	}
	return show
}

// runBulk fans a simple-mode batch over the worker pool and reports
// through the callback contract.
func runBulk(ctx context.Context, svc *service.Service, rc *roster.Context, count int) {
	log := logger.Get()
	cs := rc.Competitors()
	if len(cs) < 2 {
		return
	}

	matches := make([]*model.Match, 0, count)
	for i := 0; i < count; i++ {
		matches = append(matches, &model.Match{
			ID:          types.NewMatchID(),
			Competitors: []types.CompetitorID{cs[i%len(cs)].ID, cs[(i+1)%len(cs)].ID},
			Type:        types.Singles,
		})
	}

	summary, err := svc.SimulateBulk(ctx, matches, types.Simple, service.BulkObserver{
		OnProgress: func(completed, total int, res *engine.Result, err error) {
			if completed%100 == 0 || completed == total {
				log.Info(ctx, "bulk progress", logger.Int("completed", completed), logger.Int("total", total))
			}
		},
	})
	if err != nil {
		log.Error(ctx, "bulk run failed", logger.Error(err))
		return
	}

	fmt.Printf("\n=== bulk run ===\n")
	fmt.Printf("  simulated %d/%d  failed %d  duplicates %d\n",
		summary.Simulated, summary.Total, summary.Failed, summary.Duplicates)
	fmt.Printf("  rating avg %.1f  high %.1f  low %.1f  injuries %d\n",
		summary.AverageRating, summary.HighestRating, summary.LowestRating, summary.Injuries)
}

func printStandings(rows []roster.Standing) {
	fmt.Printf("\n=== standings ===\n")
	for i, row := range rows {
		fmt.Printf("  %2d. %-18s pop %5.1f  %d-%d  momentum %+.0f\n",
			i+1, row.Name, row.Popularity, row.Wins, row.Losses, row.Momentum)
	}
}
