package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"markbook/internal/archive"
	"markbook/internal/config"
	"markbook/internal/gradebook"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	workDir    string

	// Archive flags
	watchMode bool

	// Loaded at startup
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd launches the interactive grade-entry session.
var rootCmd = &cobra.Command{
	Use:   "markbook",
	Short: "markbook - interactive weighted grade entry and archiving",
	Long: `markbook collects assignment grades interactively, computes weighted
category totals, a final grade, GPA, and pass/fail status, and writes
the entries to a delimited grade file.

Run without arguments to start the interactive entry session.
Use 'markbook archive' to move finished grade files into timestamped,
logged storage.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		zapCfg := zap.NewProductionConfig()
		if cfg.Logging.Format == "text" {
			zapCfg.Encoding = "console"
		}
		if verbose || cfg.Logging.Level == "debug" {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runSession,
}

// archiveCmd relocates grade files into the archive subdirectory.
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive grade files in the working directory",
	Long: `Discovers grade files in the working directory, appends a block per
file to the organizer log, and moves each file into the archive
subdirectory under a timestamped name.

With --watch, keeps running and archives new files as they appear.`,
	RunE: runArchive,
}

// summaryCmd recomputes a summary from a previously exported file.
var summaryCmd = &cobra.Command{
	Use:   "summary [file]",
	Short: "Print the grade summary for an exported grade file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummary,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "markbook.yaml", "Config file path")
	rootCmd.PersistentFlags().StringVarP(&workDir, "dir", "d", ".", "Working directory")

	archiveCmd.Flags().BoolVar(&watchMode, "watch", false, "Keep running and archive new files as they appear")

	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(summaryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runSession drives the interactive entry wizard, then prints the
// summary and exports the records.
func runSession(cmd *cobra.Command, args []string) error {
	logger.Debug("starting entry session")

	m := NewWizard()
	logger.Info("session started", zap.String("session", m.session.ID))

	prog := tea.NewProgram(m)
	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("session failed: %w", err)
	}

	wizard, ok := final.(Wizard)
	if !ok {
		return fmt.Errorf("unexpected model type %T", final)
	}
	session := wizard.session
	if wizard.aborted || session.Len() == 0 {
		fmt.Println("No assignments entered. Exiting without generating summary.")
		return nil
	}

	summary, err := gradebook.Summarize(session, cfg.Grading.PassThreshold, cfg.Grading.GPAScale)
	if err != nil {
		return fmt.Errorf("failed to compute summary: %w", err)
	}
	fmt.Println()
	fmt.Print(summary.Render(cfg.Grading.GPAScale))

	outPath := filepath.Join(workDir, cfg.Grading.OutputFile)
	if err := gradebook.SaveCSV(outPath, session.Export()); err != nil {
		return fmt.Errorf("failed to save grade file: %w", err)
	}
	logger.Info("session exported",
		zap.String("session", session.ID),
		zap.String("file", outPath),
		zap.Int("records", session.Len()))
	fmt.Printf("\nData saved to %s\n", outPath)
	return nil
}

// runArchive archives matching files, or watches for them with --watch.
func runArchive(cmd *cobra.Command, args []string) error {
	a := archive.New(workDir, archive.Options{
		ArchiveDir: cfg.Archive.Directory,
		LogName:    cfg.Archive.LogFile,
		Extension:  cfg.Archive.Extension,
		Logger:     logger,
	})

	if watchMode {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigCh
			logger.Info("received shutdown signal")
			cancel()
		}()

		fmt.Printf("Watching %s for new %s files...\n", workDir, cfg.Archive.Extension)
		entries := make(chan *archive.Entry)
		go func() {
			for e := range entries {
				fmt.Printf("Archived %s -> %s/%s\n", e.Original, cfg.Archive.Directory, e.Archived)
			}
		}()
		err := a.Watch(ctx, entries)
		close(entries)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}

	entries, err := a.Run()
	for _, e := range entries {
		fmt.Printf("Archived %s -> %s/%s\n", e.Original, cfg.Archive.Directory, e.Archived)
	}
	if err != nil {
		return fmt.Errorf("some files could not be archived: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No grade files to archive.")
	}
	return nil
}

// runSummary reloads an exported grade file and prints its summary.
func runSummary(cmd *cobra.Command, args []string) error {
	session, err := gradebook.LoadCSV(args[0])
	if err != nil {
		return err
	}
	summary, err := gradebook.Summarize(session, cfg.Grading.PassThreshold, cfg.Grading.GPAScale)
	if err != nil {
		return err
	}
	fmt.Print(summary.Render(cfg.Grading.GPAScale))
	return nil
}
