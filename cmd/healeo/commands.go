package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v3"

	"healeo-sense/internal/auth"
	"healeo-sense/internal/engine"
	"healeo-sense/internal/models"
	"healeo-sense/internal/output"
	"healeo-sense/internal/vitals"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "format",
		Value: string(output.FormatTable),
		Usage: fmt.Sprintf("output format (supported values: %s)", output.SupportedFormats()),
	}
}

func catalogueFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "catalogue",
		Usage: "path to a YAML meal catalogue (default: built-in catalogue)",
	}
}

var readingFlags = []string{"bp", "sugar", "protein", "calories", "fiber"}

func newApp(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "healeo",
		Usage:   "Meal and hydration suggestions from vital-sign readings",
		Version: version,
		Writer:  w,
		Commands: []*cli.Command{
			recommendCmd(),
			catalogueCmd(),
			tokenCmd(),
		},
	}
}

func recommendCmd() *cli.Command {
	return &cli.Command{
		Name:    "recommend",
		Aliases: []string{"rec"},
		Usage:   "Suggest meals for the current meal period and a daily water target",
		Description: `Readings are taken from the --bp, --sugar, --protein, --calories and --fiber flags.
When none is given, or with --random, test-mode readings are generated and any
reading flags override individual values.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "preference",
				Value: string(engine.Balanced),
				Usage: fmt.Sprintf("diet preference (supported values: %s)", engine.SupportedDietPreferences()),
			},
			&cli.IntFlag{Name: "bp", Usage: "systolic blood pressure"},
			&cli.IntFlag{Name: "sugar", Usage: "blood sugar"},
			&cli.IntFlag{Name: "protein", Usage: "protein level"},
			&cli.IntFlag{Name: "calories", Usage: "calories"},
			&cli.IntFlag{Name: "fiber", Usage: "fiber"},
			&cli.BoolFlag{Name: "random", Usage: "generate test-mode readings"},
			&cli.IntFlag{Name: "seed", Usage: "seed for generated readings (0: time-based)"},
			&cli.StringFlag{Name: "at", Usage: "RFC3339 timestamp to classify (default: now)"},
			&cli.IntFlag{
				Name:  "utc-offset",
				Value: engine.DefaultUTCOffsetMinutes,
				Usage: "UTC offset in minutes used to derive the local meal period",
			},
			catalogueFlag(),
			formatFlag(),
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			format := output.Format(cmd.String("format"))
			if format.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", format)
			}

			preference, err := engine.ParseDietPreference(cmd.String("preference"))
			if err != nil {
				return err
			}

			catalogue, err := loadCatalogue(cmd)
			if err != nil {
				return err
			}

			at := time.Now()
			if s := cmd.String("at"); s != "" {
				at, err = time.Parse(time.RFC3339, s)
				if err != nil {
					return fmt.Errorf("at: %q: %w", s, err)
				}
			}

			readings, source := readingsFromCmd(cmd)

			rec := catalogue.Recommend(engine.Request{
				Readings:         readings,
				Preference:       preference,
				At:               at,
				UTCOffsetMinutes: int(cmd.Int("utc-offset")),
			})

			return output.NewWriter(format, cmd.Root().Writer).
				WriteRecommendation(models.NewRecommendationResponse(rec, source))
		},
	}
}

func readingsFromCmd(cmd *cli.Command) (engine.VitalReadings, models.ReadingsSource) {
	anySet := false
	for _, name := range readingFlags {
		if cmd.IsSet(name) {
			anySet = true
		}
	}

	var r engine.VitalReadings
	source := models.SourceRequest
	if cmd.Bool("random") || !anySet {
		r = vitals.NewGenerator(uint64(cmd.Int("seed"))).Generate()
		source = models.SourceGenerated
	}

	if cmd.IsSet("bp") {
		r.BloodPressureSystolic = int(cmd.Int("bp"))
	}
	if cmd.IsSet("sugar") {
		r.BloodSugar = int(cmd.Int("sugar"))
	}
	if cmd.IsSet("protein") {
		r.ProteinLevel = int(cmd.Int("protein"))
	}
	if cmd.IsSet("calories") {
		r.Calories = int(cmd.Int("calories"))
	}
	if cmd.IsSet("fiber") {
		r.Fiber = int(cmd.Int("fiber"))
	}

	return r, source
}

func catalogueCmd() *cli.Command {
	return &cli.Command{
		Name:  "catalogue",
		Usage: "Print the meal catalogue",
		Flags: []cli.Flag{
			catalogueFlag(),
			formatFlag(),
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			format := output.Format(cmd.String("format"))
			if format.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", format)
			}

			catalogue, err := loadCatalogue(cmd)
			if err != nil {
				return err
			}

			return output.NewWriter(format, cmd.Root().Writer).WriteCatalogue(catalogue)
		},
	}
}

func tokenCmd() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Issue a JWT for the recommendation API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "secret",
				Usage:    "HMAC signing secret",
				Sources:  cli.EnvVars("JWT_SECRET"),
				Required: true,
			},
			&cli.StringFlag{
				Name:     "subject",
				Usage:    "user id placed in the sub claim",
				Required: true,
			},
			&cli.DurationFlag{
				Name:  "ttl",
				Value: 24 * time.Hour,
				Usage: "token lifetime",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			token, err := auth.IssueToken(cmd.String("secret"), cmd.String("subject"), cmd.Duration("ttl"))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, token)
			return err
		},
	}
}

func loadCatalogue(cmd *cli.Command) (*engine.Catalogue, error) {
	path := cmd.String("catalogue")
	if path == "" {
		return engine.DefaultCatalogue(), nil
	}
	c, err := engine.LoadCatalogueFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalogue %q: %w", path, err)
	}
	return c, nil
}
