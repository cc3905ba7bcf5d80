package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"
	_ "time/tzdata"

	"gudlft/internal/bookings/engine"
	"gudlft/internal/bookings/validator"
	"gudlft/internal/fixtures"
	"gudlft/pkg/config"
	"gudlft/pkg/logger"

	"github.com/urfave/cli/v2"
)

func main() {
	log := logger.New(logger.Config{
		Level:   logger.WARN,
		Format:  logger.TEXT,
		Output:  os.Stderr,
		Service: "fixtures",
	})

	cliApp := &cli.App{
		Name:  "fixtures",
		Usage: "inspect and generate portal fixture files",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "clubs", Value: "clubs.json", Usage: "clubs fixture file", EnvVars: []string{"CLUBS_FILE"}},
			&cli.StringFlag{Name: "competitions", Value: "competitions.json", Usage: "competitions fixture file", EnvVars: []string{"COMPETITIONS_FILE"}},
			&cli.StringFlag{Name: "timezone", Value: config.DefaultTimezone, Usage: "IANA zone fixture dates are written in", EnvVars: []string{config.EnvTimezone}},
		},
		Commands: []*cli.Command{
			checkCommand(log),
			boardCommand(log),
			competitionsCommand(log),
			generateCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal("fixtures command failed", "error", err)
	}
}

func location(c *cli.Context) (*time.Location, error) {
	loc, err := time.LoadLocation(c.String("timezone"))
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.String("timezone"), err)
	}
	return loc, nil
}

func load(c *cli.Context, log *logger.Logger) (*fixtures.Fixtures, error) {
	loc, err := location(c)
	if err != nil {
		return nil, err
	}
	loader := fixtures.NewLoader(log, validator.NewBookingValidator(log), fixtures.WithLocation(loc))
	return loader.Load(c.String("clubs"), c.String("competitions"))
}

func checkCommand(log *logger.Logger) *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "load both fixture files and report problems",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "strict", Usage: "treat warnings as errors"},
		},
		Action: func(c *cli.Context) error {
			data, err := load(c, log)
			if err != nil {
				return err
			}

			warnings := fixtures.Lint(data)
			for _, w := range warnings {
				fmt.Fprintln(c.App.Writer, "warning:", w)
			}
			fmt.Fprintf(c.App.Writer, "%d clubs, %d competitions, %d warnings\n",
				len(data.Clubs), len(data.Competitions), len(warnings))

			if c.Bool("strict") && len(warnings) > 0 {
				return cli.Exit("fixtures have warnings", 1)
			}
			return nil
		},
	}
}

func boardCommand(log *logger.Logger) *cli.Command {
	return &cli.Command{
		Name:  "board",
		Usage: "print the points board",
		Action: func(c *cli.Context) error {
			data, err := load(c, log)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CLUB\tPOINTS\tMAX PLACES")
			for _, club := range data.Clubs {
				fmt.Fprintf(tw, "%s\t%d\t%d\n", club.Name, club.Points,
					min(club.Points/engine.PointsPerPlace, engine.MaxPlacesPerBooking))
			}
			return tw.Flush()
		},
	}
}

func competitionsCommand(log *logger.Logger) *cli.Command {
	return &cli.Command{
		Name:  "competitions",
		Usage: "list competitions and whether they can be booked today",
		Action: func(c *cli.Context) error {
			data, err := load(c, log)
			if err != nil {
				return err
			}

			now := time.Now()
			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "COMPETITION\tDATE\tPLACES\tBOOKABLE")
			for _, comp := range data.Competitions {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%t\n", comp.Name, comp.Date.Format(fixtures.DateLayouts[0]),
					comp.NumberOfPlaces, engine.IsBookable(comp, now))
			}
			return tw.Flush()
		},
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "write random fixture files for load testing",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "num-clubs", Value: 50, Usage: "number of clubs"},
			&cli.IntFlag{Name: "num-competitions", Value: 10, Usage: "number of competitions"},
			&cli.IntFlag{Name: "max-points", Value: 60},
			&cli.IntFlag{Name: "max-places", Value: 100},
			&cli.Int64Flag{Name: "seed", Usage: "random seed, defaults to the current time"},
			&cli.StringFlag{Name: "format", Value: "json", Usage: "json or yaml"},
			&cli.StringFlag{Name: "out", Value: ".", Usage: "output directory"},
		},
		Action: func(c *cli.Context) error {
			format := fixtures.Format(c.String("format"))
			if format != fixtures.FormatJSON && format != fixtures.FormatYAML {
				return fmt.Errorf("unknown format %q", format)
			}

			loc, err := location(c)
			if err != nil {
				return err
			}

			var gen *fixtures.Generator
			if c.IsSet("seed") {
				gen = fixtures.NewGenerator(c.Int64("seed"))
			} else {
				gen = fixtures.NewGenerator()
			}

			now := time.Now().In(loc)
			clubs := gen.Clubs(c.Int("num-clubs"), 0, c.Int("max-points"))
			comps := gen.Competitions(c.Int("num-competitions"), 0, c.Int("max-places"), now.AddDate(0, -6, 0), now.AddDate(1, 0, 0))

			ext := string(format)
			clubsPath := filepath.Join(c.String("out"), "clubs."+ext)
			compsPath := filepath.Join(c.String("out"), "competitions."+ext)

			if err := writeFile(clubsPath, func(f *os.File) error { return fixtures.EncodeClubs(f, clubs, format) }); err != nil {
				return err
			}
			if err := writeFile(compsPath, func(f *os.File) error { return fixtures.EncodeCompetitions(f, comps, format) }); err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "wrote %s and %s (seed %d)\n", clubsPath, compsPath, gen.Seed())
			return nil
		},
	}
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
