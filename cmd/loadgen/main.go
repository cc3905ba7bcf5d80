package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"sync"
	"syscall"
	"text/tabwriter"
	"time"

	"gudlft/pkg/client"
	"gudlft/pkg/logger"
	"gudlft/pkg/model"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"
)

func main() {
	log := logger.New(logger.Config{
		Level:   logger.INFO,
		Format:  logger.TEXT,
		Output:  os.Stderr,
		Service: "loadgen",
	})

	cliApp := &cli.App{
		Name:  "loadgen",
		Usage: "drive mixed portal traffic and report status codes per call",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", EnvVars: []string{"API_BASE_URL"}},
			&cli.DurationFlag{Name: "duration", Value: 30 * time.Second},
			&cli.IntFlag{Name: "workers", Value: 8},
			&cli.Float64Flag{Name: "rps", Value: 50, Usage: "total requests per second"},
			&cli.StringSliceFlag{Name: "email", Value: cli.NewStringSlice("john@simplylift.co", "invalid@mail.com")},
			&cli.IntSliceFlag{Name: "places", Value: cli.NewIntSlice(-1, 3, 11, 12, 15)},
			&cli.Int64Flag{Name: "seed"},
		},
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			seed := uint64(time.Now().UnixNano())
			if c.IsSet("seed") {
				seed = uint64(c.Int64("seed"))
			}

			r := &runner{
				portal:  client.NewPortalClient(c.String("url")),
				limiter: rate.NewLimiter(rate.Limit(c.Float64("rps")), 1),
				emails:  c.StringSlice("email"),
				places:  c.IntSlice("places"),
				seed:    seed,
				log:     log,
				stats:   newStats(),
			}
			if err := r.discover(ctx); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, c.Duration("duration"))
			defer cancel()
			r.run(ctx, c.Int("workers"))
			return r.stats.print(c.App.Writer)
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal("loadgen failed", "error", err)
	}
}

type runner struct {
	portal       *client.PortalClient
	limiter      *rate.Limiter
	emails       []string
	places       []int
	clubs        []string
	competitions []string
	seed         uint64
	log          *logger.Logger
	stats        *stats
}

// discover reads club and competition names from the portal itself.
func (r *runner) discover(ctx context.Context) error {
	if err := r.portal.HTTP().WaitForHealthy(ctx, 30*time.Second); err != nil {
		return err
	}

	resp, err := r.portal.Board(ctx)
	if err != nil {
		return err
	}
	board, _, err := client.DecodeList[model.BoardEntry](resp)
	if err != nil {
		return err
	}
	for _, entry := range board {
		r.clubs = append(r.clubs, entry.Name)
	}

	resp, err = r.portal.Competitions(ctx)
	if err != nil {
		return err
	}
	comps, _, err := client.DecodeList[model.CompetitionView](resp)
	if err != nil {
		return err
	}
	for _, comp := range comps {
		r.competitions = append(r.competitions, comp.Name)
	}

	if len(r.clubs) == 0 || len(r.competitions) == 0 {
		return fmt.Errorf("portal has %d clubs and %d competitions, nothing to drive", len(r.clubs), len(r.competitions))
	}

	r.log.Info("Discovered portal data", "clubs", len(r.clubs), "competitions", len(r.competitions))
	return nil
}

func (r *runner) run(ctx context.Context, workers int) {
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			faker := gofakeit.New(r.seed + uint64(worker))
			for {
				if err := r.limiter.Wait(ctx); err != nil {
					return
				}
				r.step(ctx, faker)
			}
		}(i)
	}
	wg.Wait()
}

func (r *runner) step(ctx context.Context, faker *gofakeit.Faker) {
	club := r.clubs[pick(faker, len(r.clubs))]
	competition := r.competitions[pick(faker, len(r.competitions))]

	var (
		call string
		resp *client.Response
		err  error
	)
	switch pick(faker, 6) {
	case 0:
		call = "competitions"
		resp, err = r.portal.Competitions(ctx)
	case 1:
		call = "summary"
		resp, err = r.portal.Summary(ctx, r.emails[pick(faker, len(r.emails))])
	case 2:
		call = "book"
		resp, err = r.portal.OpenBooking(ctx, competition, club)
	case 3:
		call = "purchase"
		places := r.places[pick(faker, len(r.places))]
		resp, err = r.portal.Purchase(ctx, model.PurchaseRequest{
			Club:        club,
			Competition: competition,
			Places:      model.PlacesText(strconv.Itoa(places)),
		}, uuid.NewString())
	case 4:
		call = "board"
		resp, err = r.portal.Board(ctx)
	default:
		call = "club_board"
		resp, err = r.portal.ClubBoard(ctx, club)
	}

	if err != nil {
		if ctx.Err() == nil {
			r.log.Warn("Request failed", "call", call, "error", err)
			r.stats.record(call, "error")
		}
		return
	}
	r.stats.record(call, strconv.Itoa(resp.StatusCode))
}

// pick returns an index in [0, n).
func pick(faker *gofakeit.Faker, n int) int {
	return faker.Number(0, n-1)
}

type stats struct {
	mu     sync.Mutex
	counts map[string]map[string]int
}

func newStats() *stats {
	return &stats{counts: make(map[string]map[string]int)}
}

func (s *stats) record(call, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counts[call] == nil {
		s.counts[call] = make(map[string]int)
	}
	s.counts[call][status]++
}

func (s *stats) print(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	calls := make([]string, 0, len(s.counts))
	for call := range s.counts {
		calls = append(calls, call)
	}
	sort.Strings(calls)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CALL\tSTATUS\tCOUNT")
	for _, call := range calls {
		statuses := make([]string, 0, len(s.counts[call]))
		for status := range s.counts[call] {
			statuses = append(statuses, status)
		}
		sort.Strings(statuses)
		for _, status := range statuses {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", call, status, s.counts[call][status])
		}
	}
	return tw.Flush()
}
