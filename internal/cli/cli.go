package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pfrederiksen/bbref/internal/award"
	"github.com/pfrederiksen/bbref/internal/config"
	"github.com/pfrederiksen/bbref/internal/logger"
	"github.com/pfrederiksen/bbref/internal/scraper"
	"github.com/pfrederiksen/bbref/internal/table"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig    string
	flagFormat    string
	flagOutput    string
	flagSort      string
	flagDesc      bool
	flagVerbose   bool
	flagMinGames  int
	flagStatType  string
	flagSummarize string
)

// settings is the resolved configuration for the running command
var settings config.Config

// stdout is where results go when --output is not set
var stdout io.Writer = os.Stdout

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bbref",
		Short: "Extract tables from baseball-reference.com",
		Long: `A CLI tool to extract award voting, award winners, career statistics
and game logs from baseball-reference.com as text, JSON, CSV or Excel tables.`,
		SilenceUsage:      true,
		PersistentPreRunE: loadSettings,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Debug("metrics", logger.Fields{"snapshot": logger.GetMetricsSnapshot()})
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file (default $"+config.EnvConfigPath+")")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", config.DefaultFormat, "Output format: text, json, csv or xlsx")
	cmd.PersistentFlags().StringVar(&flagOutput, "output", "", "Write output to this file instead of stdout")
	cmd.PersistentFlags().StringVar(&flagSort, "sort", "", "Sort rows by this column")
	cmd.PersistentFlags().BoolVar(&flagDesc, "desc", false, "Sort in descending order")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newAwardsCmd(),
		newHistoryCmd("mvp-history", "List every MVP winner", (*scraper.Client).MVPHistory),
		newHistoryCmd("cy-history", "List every Cy Young winner", (*scraper.Client).CyYoungHistory),
		newStatsCmd(),
		newCareerYearsCmd(),
		newGameLogCmd(),
		newPositionCmd(),
		newPlayerIDCmd(),
	)

	return cmd
}

// loadSettings merges defaults, the config file and explicit flags, then sets up logging
func loadSettings(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") || cfg.Format == "" {
		cfg.Format = flagFormat
	}
	if flags.Changed("output") {
		cfg.Output = flagOutput
	}
	if flagVerbose {
		cfg.LogLevel = string(logger.LevelDebug)
	}

	if _, err := ParseFormat(cfg.Format); err != nil {
		return err
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	settings = cfg
	return nil
}

func newClient() *scraper.Client {
	return scraper.New(scraper.WithBaseURL(settings.BaseURL))
}

func newAwardsCmd() *cobra.Command {
	var codes []string
	for _, c := range award.Codes {
		codes = append(codes, fmt.Sprintf("  %-6s %s", c[0], c[1]))
	}

	return &cobra.Command{
		Use:   "awards CODE YEAR",
		Short: "Show award voting results for a season",
		Long:  "Show award voting results for a season.\n\nAward codes:\n" + strings.Join(codes, "\n"),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[1])
			if err != nil {
				return err
			}
			tbl, err := newClient().AwardVoting(args[0], year)
			if err != nil {
				return err
			}
			return emit(tbl, fmt.Sprintf("%s %d", args[0], year))
		},
	}
}

func newHistoryCmd(use, short string, fetch func(*scraper.Client) (*table.Table, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := fetch(newClient())
			if err != nil {
				return err
			}
			return emit(tbl, use)
		},
	}
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats PLAYER_ID",
		Short: "Show a player's career statistics by season",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, err := newClient().PlayerStats(args[0])
			if err != nil {
				return err
			}
			if flagSummarize == "" {
				return emit(tbl, args[0])
			}
			return emitSummaries(tbl, strings.Split(flagSummarize, ","))
		},
	}
	cmd.Flags().StringVar(&flagSummarize, "summarize", "", "Print count/mean/median/min/max/stddev for these comma-separated columns")
	return cmd
}

func newCareerYearsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "career-years PLAYER_ID",
		Short: "List the seasons a player appeared in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			years, err := newClient().CareerYears(args[0], flagMinGames)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(years))
			for _, y := range years {
				rows = append(rows, []string{strconv.Itoa(y)})
			}
			tbl, err := table.New([]string{scraper.YearColumn}, rows)
			if err != nil {
				return err
			}
			return emit(tbl, args[0])
		},
	}
	cmd.Flags().IntVar(&flagMinGames, "min-games", 0, "Only include seasons with more than this many games")
	return cmd
}

func newGameLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gamelog PLAYER_ID YEAR",
		Short: "Show a player's game log for a season",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[1])
			if err != nil {
				return err
			}
			statType, err := scraper.ParseStatType(flagStatType)
			if err != nil {
				return err
			}
			tbl, err := newClient().GameLog(args[0], year, statType)
			if err != nil {
				return err
			}
			return emit(tbl, fmt.Sprintf("%s %d", args[0], year))
		},
	}
	cmd.Flags().StringVar(&flagStatType, "type", "", "Stat type: b (batting) or p (pitching); guessed from position when empty")
	return cmd
}

func newPositionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "position PLAYER_ID",
		Short: "Show the position line from a player's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := newClient().Position(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, position)
			return nil
		},
	}
}

func newPlayerIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "player-id FIRST LAST",
		Short: "Guess a player's id from their name",
		Long: `Guess a player's id from their name: the first five letters of the last
name, the first two of the first name, and "01". The guess may name a
different player or none at all.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(stdout, scraper.PlayerID(args[0], args[1]))
			return nil
		},
	}
}

func parseYear(s string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || year < 1871 {
		return 0, fmt.Errorf("invalid year: %q", s)
	}
	return year, nil
}

// emit sorts the table if requested and writes it to stdout or the output file
func emit(tbl *table.Table, title string) error {
	if flagSort != "" {
		if err := sortTable(tbl, flagSort, flagDesc); err != nil {
			return err
		}
	}

	format, err := ParseFormat(settings.Format)
	if err != nil {
		return err
	}

	logger.Info("writing table", logger.Fields{
		"title":  title,
		"rows":   tbl.Len(),
		"format": string(format),
		"output": settings.Output,
	})

	if format == FormatXLSX {
		if settings.Output == "" {
			return ErrOutputRequired
		}
		return WriteXLSX(settings.Output, sheetName(title), tbl)
	}

	return withOutput(func(w io.Writer) error {
		return WriteTable(w, tbl, format)
	})
}

// emitSummaries summarizes the season rows of a career stats table
func emitSummaries(stats *table.Table, columns []string) error {
	seasons, err := scraper.Seasons(stats)
	if err != nil {
		return err
	}

	summaries := make([]table.Summary, 0, len(columns))
	for _, col := range columns {
		s, err := seasons.Summarize(strings.TrimSpace(col))
		if err != nil {
			return err
		}
		summaries = append(summaries, s)
	}

	format, err := ParseFormat(settings.Format)
	if err != nil {
		return err
	}

	if format == FormatXLSX {
		if settings.Output == "" {
			return ErrOutputRequired
		}
		return WriteXLSX(settings.Output, "summary", SummaryTable(summaries))
	}

	return withOutput(func(w io.Writer) error {
		return WriteSummaries(w, summaries, format)
	})
}

func withOutput(write func(io.Writer) error) error {
	if settings.Output == "" {
		return write(stdout)
	}

	f, err := os.Create(settings.Output)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing output: %w", err)
	}
	return f.Close()
}

// sheetName makes a title safe for use as an Excel sheet name, which holds at most 31 characters
func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '-'
		}
		return r
	}, title)
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	return name
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
