// Detective Quest: explore a mansion room by room, collect clues and let the
// evidence name the culprit.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"detectivequest/internal/config"
	"detectivequest/internal/game/directory"
	"detectivequest/internal/game/mansion"
	"detectivequest/internal/game/scenario"
	"detectivequest/internal/i18n"
	"detectivequest/internal/logging"
)

var (
	cfgFile      string
	scenarioFile string
	locale       string
	useTUI       bool
	reviewLimit  int
	showBuckets  bool
	cfg          *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "game",
	Short:         "Detective Quest mansion mystery",
	Long:          "Explore a mansion with e (left), d (right) and s (stop), collect clues and hear the verdict.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: runPlay,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a case",
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "List recently journaled cases",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		journal, err := logging.NewJournal(cfg.Journal.Path)
		if err != nil {
			return fmt.Errorf("failed to open case journal: %w", err)
		}
		defer journal.Close()

		return printReview(cmd.OutOrStdout(), journal, reviewLimit)
	},
}

var rateCmd = &cobra.Command{
	Use:   "rate <id> <rating> [notes]",
	Short: "Rate a journaled case from 1 to 5",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID: %w", err)
		}

		rating, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid rating: %w", err)
		}
		if rating < 1 || rating > 5 {
			return fmt.Errorf("rating must be between 1 and 5")
		}

		notes := strings.Join(args[2:], " ")

		journal, err := logging.NewJournal(cfg.Journal.Path)
		if err != nil {
			return fmt.Errorf("failed to open case journal: %w", err)
		}
		defer journal.Close()

		if err := journal.RateCase(id, rating, notes); err != nil {
			return fmt.Errorf("failed to rate case: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Rated case %d as %d/5", id, rating)
		if notes != "" {
			fmt.Fprintf(out, " with notes: %s", notes)
		}
		fmt.Fprintln(out)
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration and the seeded scenario",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := scenario.Load(cfg.Scenario)
		if err != nil {
			return err
		}
		game, err := sc.Build()
		if err != nil {
			return fmt.Errorf("failed to seed scenario: %w", err)
		}

		printConfig(cmd.OutOrStdout(), cfg, game, showBuckets)
		return nil
	},
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&scenarioFile, "scenario", "", "scenario YAML file (default is the built-in case)")
	cmd.Flags().StringVar(&locale, "locale", "", "narration language: "+strings.Join(i18n.Available(), ", "))
	cmd.Flags().BoolVar(&useTUI, "tui", false, "play in the full-screen interface")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	addPlayFlags(rootCmd)
	addPlayFlags(playCmd)
	reviewCmd.Flags().IntVar(&reviewLimit, "limit", 10, "number of cases to show")
	configCmd.Flags().BoolVar(&showBuckets, "buckets", false, "list the occupied suspect directory buckets")
	configCmd.Flags().StringVar(&scenarioFile, "scenario", "", "scenario YAML file (default is the built-in case)")
	configCmd.Flags().StringVar(&locale, "locale", "", "narration language: "+strings.Join(i18n.Available(), ", "))
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}
	if scenarioFile != "" {
		cfg.Scenario = scenarioFile
	}
	if locale != "" {
		cfg.Locale = locale
	}
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, cleanup, err := createApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = a.play(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), useTUI)
	return err
}

func printReview(out io.Writer, journal *logging.Journal, limit int) error {
	cases, err := journal.GetRecentCases(limit)
	if err != nil {
		return fmt.Errorf("failed to get cases: %w", err)
	}

	if len(cases) == 0 {
		fmt.Fprintln(out, "No cases found. Enable journal.enabled and play a case first!")
		return nil
	}

	fmt.Fprintf(out, "Recent cases (%d):\n\n", len(cases))

	for _, c := range cases {
		var metadata logging.CaseMetadata
		if err := json.Unmarshal([]byte(c.Metadata), &metadata); err == nil {
			fmt.Fprintf(out, "[%d] %s | %s | %d visits | %s\n",
				c.ID,
				c.Timestamp.Format("2006-01-02 15:04:05"),
				metadata.Ending,
				metadata.Visits,
				c.Title)
			fmt.Fprintf(out, "Clues: %s\n", strings.Join(metadata.Clues, "; "))
		} else {
			fmt.Fprintf(out, "[%d] %s | %s\n", c.ID, c.Timestamp.Format("2006-01-02 15:04:05"), c.Title)
		}

		if visits, err := journal.GetVisits(c.SessionID); err == nil && len(visits) > 0 {
			rooms := make([]string, 0, len(visits))
			for _, v := range visits {
				rooms = append(rooms, v.Room)
			}
			fmt.Fprintf(out, "Path: %s\n", strings.Join(rooms, " -> "))
		}

		fmt.Fprintf(out, "Verdict: %s\n", c.Verdict)
		if c.Rating != nil {
			fmt.Fprintf(out, "Rating: %d/5", *c.Rating)
			if c.Notes != nil {
				fmt.Fprintf(out, " - %s", *c.Notes)
			}
		} else {
			fmt.Fprint(out, "Rating: not rated")
		}
		fmt.Fprintln(out, "\n"+strings.Repeat("-", 50))
	}

	fmt.Fprintln(out, "\nTo rate a case: game rate <id> <rating> [notes]")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config, game *scenario.Game, buckets bool) {
	fmt.Fprintf(out, "Current Configuration:\n")
	fmt.Fprintf(out, "  Locale: %s (available: %s)\n", cfg.Locale, strings.Join(i18n.Available(), ", "))
	fmt.Fprintf(out, "  Debug: %t (%s)\n", cfg.Debug.Enabled, cfg.Debug.Path)
	fmt.Fprintf(out, "  Journal: %t (%s)\n", cfg.Journal.Enabled, cfg.Journal.Path)
	fmt.Fprintf(out, "  Tracing: %t (%s, %s)\n", cfg.Tracing.Enabled, cfg.Tracing.Endpoint, cfg.Tracing.Environment)

	fmt.Fprintf(out, "\nScenario: %s\n", game.Title)
	fmt.Fprintf(out, "  Rooms: %d\n", mansion.Count(game.Root))
	fmt.Fprintf(out, "  Suspects: %s\n", strings.Join(game.Candidates, ", "))
	fmt.Fprintf(out, "  Evidence entries: %d\n", game.Directory.Len())

	if !buckets {
		return
	}
	fmt.Fprintf(out, "\nSuspect directory (%d buckets):\n", directory.BucketCount)
	for i := 0; i < directory.BucketCount; i++ {
		if chain := game.Directory.Chain(i); len(chain) > 0 {
			fmt.Fprintf(out, "  [%3d] %s\n", i, strings.Join(chain, " -> "))
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(configCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
