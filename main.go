package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"seedsolver/locales"
	"seedsolver/pkg/engine/logging"
	"seedsolver/pkg/game/config"
	"seedsolver/pkg/game/generate"
	"seedsolver/pkg/game/renderer/tui"
	"seedsolver/pkg/game/spoiler"
	"seedsolver/pkg/game/worldfile"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "seedsolver",
	Short: "Derive playthroughs and hint data from randomizer placements",
	Long: `seedsolver reads a world file holding a completed item placement and
derives the minimized playthrough, the required locations and entrances,
coarse hint spheres and misc hint item locations.`,
	SilenceUsage: true,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Solve a placement and write its spoiler",
	RunE:  runGenerate,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that a placement is complete and beatable",
	RunE:  runCheck,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "config file (default ./seedsolver.{yaml,toml,json})")
	pf.StringP("world", "w", "", "world file holding the placement")
	pf.String("log-level", "info", "log level: debug, info, warn, error or silent")
	pf.String("log-format", "text", "log format: text or json")
	pf.String("locale", locales.DefaultLanguage, "language of the text report")

	f := generateCmd.Flags()
	f.String("seed", "", "seed string (default: the world file's seed, else random)")
	f.StringP("output", "o", "spoiler.json", "spoiler file; a .zst suffix compresses it")
	f.Bool("spoiler", true, "build the playthrough")
	f.Bool("hints", false, "compute hint data")
	f.Bool("report", false, "print the spoiler as text")
	f.Int("max-attempts", config.DefaultMaxAttempts, "generation attempts before giving up")
	f.StringSlice("noteworthy", spoiler.DefaultNoteworthyExclusions, "advancement items that never open a coarse sphere")

	rootCmd.AddCommand(generateCmd, checkCmd)
}

// loadSettings reads the settings for cmd and builds its logger
func loadSettings(cmd *cobra.Command) (*config.Settings, *slog.Logger, error) {
	s, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	logCfg := s.Logging.Logger()
	logCfg.Output = cmd.ErrOrStderr()
	return s, logging.New(logCfg), nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	s, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if s.Seed == "" {
		f, err := worldfile.Load(s.WorldFile)
		if err != nil {
			return err
		}
		s.Seed = f.Seed
	}

	g := generate.New(s, generate.FileLoader{Path: s.WorldFile}, generate.Preplaced{}, generate.WithLogger(logger))
	sp, err := g.Generate(cmd.Context())
	if err != nil {
		return err
	}
	if sp.Contradiction {
		logger.Error("Playthrough contradiction", "seed", sp.Seed)
	}

	if s.CreateSpoiler || s.Hints {
		if err := sp.WriteFile(s.Output); err != nil {
			return fmt.Errorf("writing spoiler: %w", err)
		}
		logger.Info("Wrote spoiler", "path", s.Output)
	}
	if s.Report {
		return report(cmd, s, sp)
	}
	return nil
}

func report(cmd *cobra.Command, s *config.Settings, sp *spoiler.Spoiler) error {
	po, err := locales.Load(s.Locale)
	if err != nil {
		return err
	}
	r := tui.New(cmd.OutOrStdout(), tui.WithTranslations(po))
	r.Init()
	return r.Render(sp)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	s, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	f, err := worldfile.Load(s.WorldFile)
	if err != nil {
		return err
	}

	po, err := locales.Load(s.Locale)
	if err != nil {
		return err
	}
	r := tui.New(cmd.OutOrStdout(), tui.WithTranslations(po))
	r.Init()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, r.FormatText("GT{WORLD_COUNT}: %d", len(f.Worlds)))
	for _, w := range f.Worlds {
		fmt.Fprintln(out, r.FormatText("  %s: %d GT{LOCATIONS}, %d GT{ENTRANCES}",
			r.Translate("WORLD", w.ID+1), len(w.Locations()), len(w.Entrances())))
	}

	if err := (generate.Preplaced{}).Fill(cmd.Context(), f.Worlds, nil); err != nil {
		fmt.Fprintln(out, r.FormatText("DENIED{%s}", err))
		return err
	}
	logger.Debug("Placement checked", "path", s.WorldFile)
	fmt.Fprintln(out, r.FormatText("GT{CHECK_OK}"))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
