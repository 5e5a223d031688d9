package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yigit/uniadmin/internal/bootstrap"
	"github.com/yigit/uniadmin/internal/config"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
	"github.com/yigit/uniadmin/internal/pkg/logger"
)

var (
	configPath string
	dbPath     string
	logLevel   string
	noSeed     bool

	deps *bootstrap.Dependencies
)

var rootCmd = &cobra.Command{
	Use:   "uniadmin",
	Short: "University records administration",
	Long: `uniadmin manages departments, instructors, students, courses and
enrollments stored in a local SQLite file.

The store is created on first use and filled with sample records unless
seeding is disabled.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		ctx := cmd.Context()

		cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath, logLevel)
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.Database.Path = dbPath
		}
		if noSeed {
			cfg.Seed.Enabled = false
		}

		store, err := bootstrap.SetupDatabase(ctx, cfg, lgr)
		if err != nil {
			return err
		}
		deps = bootstrap.BuildDependencies(cfg, store, lgr)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "config file (optional)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "store file, overrides database.path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn, error or disabled")
	rootCmd.PersistentFlags().BoolVar(&noSeed, "no-seed", false, "do not load sample records into an empty store")

	rootCmd.AddCommand(
		listCmd,
		showCmd,
		memberCmd,
		addCmd,
		enrollCmd,
		dropCmd,
		assignCmd,
		gradeCmd,
		reportCmd,
		exportCmd,
	)
}

// closeDeps releases the store opened by PersistentPreRunE. Cobra skips
// post-run hooks when a command fails, so this runs after Execute instead.
func closeDeps() {
	if err := deps.Close(); err != nil {
		logger.Error().Err(err).Msg("Failed to close store")
	}
	deps = nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	closeDeps()
	if err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for rejected input and 1 for everything else
func exitCode(err error) int {
	if apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrInvalidGrade,
		apperrors.ErrConstraintViolation,
		apperrors.ErrNotEnrolled,
		apperrors.ErrResourceNotFound) {
		return 2
	}
	return 1
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", err)

	details := apperrors.DetailsOf(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %v\n", k, details[k])
	}
}
