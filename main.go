package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sadopc/hozoor/internal/config"
	"github.com/sadopc/hozoor/internal/daylog"
	"github.com/sadopc/hozoor/internal/export"
	"github.com/sadopc/hozoor/internal/format"
	"github.com/sadopc/hozoor/internal/scheduler"
	"github.com/sadopc/hozoor/internal/tracker"
	"github.com/sadopc/hozoor/internal/tui"
	"github.com/sadopc/hozoor/internal/web"
)

var rootCmd = &cobra.Command{
	Use:   "hozoor",
	Short: "Personal presence tracker with Jalali day logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSummarizeCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newExportCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "hozoor: %v\n", err)
		os.Exit(1)
	}
}

func openTracker() (*config.Config, *tracker.Tracker, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	store, err := daylog.New(cfg.LogDir(), cfg.PersianDigits)
	if err != nil {
		return nil, nil, err
	}
	return cfg, tracker.New(store), nil
}

func openStore() (*daylog.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return daylog.New(cfg.LogDir(), cfg.PersianDigits)
}

func runTUI() error {
	cfg, tr, err := openTracker()
	if err != nil {
		return err
	}

	// Midnight rollover runs for as long as the UI does.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go scheduler.New(tr.Store()).Run(ctx)

	app := tui.NewApp(tr, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func newServeCmd() *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser widget",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, tr, err := openTracker()
			if err != nil {
				return err
			}
			if listenAddr == "" {
				listenAddr = cfg.ListenAddr
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go scheduler.New(tr.Store()).Run(ctx)

			srv := web.New(tr, listenAddr)
			if err := srv.Start(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "hozoor listening on %s\n", srv.URL())

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			select {
			case <-srv.Done():
				// Quit came through the page; the tracker is already
				// shut down.
			case <-sigCh:
				if err := tr.Shutdown(); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "shutdown: %v\n", err)
				}
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer shutdownCancel()
				srv.Shutdown(shutdownCtx)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (default from config)")
	return cmd
}

func newSummarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize [YYYY-MM-DD]",
		Short: "Append the daily summary line for a day (default: yesterday)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}

			day := time.Now().AddDate(0, 0, -1)
			if len(args) == 1 {
				day, err = time.ParseInLocation("2006-01-02", args[0], time.Local)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", args[0], err)
				}
			}

			if err := store.SummarizeDay(day); err != nil {
				return err
			}

			total, err := store.DayTotal(day)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", day.Format("2006-01-02"), daylog.FormatDuration(total))
			return nil
		},
	}
	return cmd
}

func newReportCmd() *cobra.Command {
	var (
		days       int
		formatFlag string
		noHeader   bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show per-day totals for the last N days",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return errors.New("--days must be at least 1")
			}

			store, err := openStore()
			if err != nil {
				return err
			}

			now := time.Now()
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
			from := today.AddDate(0, 0, 1-days)

			summaries, err := store.Totals(from, today.AddDate(0, 0, 1))
			if err != nil {
				return err
			}

			mode := strings.ToLower(formatFlag)
			// Tables are for humans; pipes get plain rows.
			if mode == "table" || mode == "" {
				if f, ok := cmd.OutOrStdout().(*os.File); ok && !isatty.IsTerminal(f.Fd()) {
					mode = "plain"
				}
			}

			return format.WriteDays(cmd.OutOrStdout(), summaries, !noHeader, mode)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&days, "days", 7, "number of days to include, ending today")
	flags.StringVar(&formatFlag, "format", "table", "output format: table, plain, or json")
	flags.BoolVar(&noHeader, "no-header", false, "omit the header row")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		days       int
		formatFlag string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export per-day totals to a CSV or JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return errors.New("--days must be at least 1")
			}

			store, err := openStore()
			if err != nil {
				return err
			}

			now := time.Now()
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
			from := today.AddDate(0, 0, 1-days)

			summaries, err := store.Totals(from, today.AddDate(0, 0, 1))
			if err != nil {
				return err
			}

			mode := strings.ToLower(formatFlag)
			if outPath == "" {
				home, _ := os.UserHomeDir()
				name := fmt.Sprintf("hozoor-export-%s.%s", now.Format("2006-01-02"), mode)
				outPath = filepath.Join(home, name)
			}

			switch mode {
			case "csv":
				err = export.ToCSV(summaries, outPath)
			case "json":
				err = export.ToJSON(summaries, outPath)
			default:
				return fmt.Errorf("unsupported format: %s", formatFlag)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %d days to %s\n", len(summaries), outPath)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&days, "days", 30, "number of days to include, ending today")
	flags.StringVar(&formatFlag, "format", "csv", "export format: csv or json")
	flags.StringVar(&outPath, "out", "", "output file (default: ~/hozoor-export-<date>.<ext>)")
	return cmd
}
