package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"chatspace-exporter/internal/domain/entity"
	"chatspace-exporter/internal/infrastructure/config"
	"chatspace-exporter/internal/infrastructure/oauth"
	"chatspace-exporter/internal/interface/googleclient"
	repo "chatspace-exporter/internal/interface/repository"
	"chatspace-exporter/internal/usecase"
	"chatspace-exporter/pkg/logger"
	"chatspace-exporter/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		spreadsheetID string
		worksheet     string
		dryRun        bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export your Google Chat rooms to a Google Sheets worksheet",
		Long: `Runs one export without the browser flow, authenticating with the refresh
token in GOOGLE_REFRESH_TOKEN (see cmd/utils/get_token).

With --dry-run the rooms are listed and printed but nothing is written.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if spreadsheetID != "" {
				cfg.SpreadsheetID = spreadsheetID
			}
			if worksheet != "" {
				cfg.WorksheetName = worksheet
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if cfg.GoogleRefreshToken == "" {
				return errors.New("GOOGLE_REFRESH_TOKEN is required")
			}

			log := logger.NewLoggerWithLevel(cfg.LogLevel)
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			googleOAuth := oauth.NewGoogleOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, log)
			tokenSource := googleOAuth.RefreshTokenSource(ctx, cfg.GoogleRefreshToken)
			factory := googleclient.NewFactory(cfg.ChatPageSize, log)

			if dryRun {
				return listRooms(ctx, cmd, factory, tokenSource)
			}

			m := metrics.NewMetricsWithRegisterer(cfg.MetricsNamespace, prometheus.NewRegistry())
			exporter := usecase.NewSpaceExporter(factory, repo.NewMemoryExportRunRepository(1), m, log, cfg.SpreadsheetID, cfg.WorksheetName)

			result, err := exporter.Export(ctx, tokenSource, "cli")
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d spaces to %q (%s layout", len(result.Rows), cfg.WorksheetName, result.Layout)
			if result.SheetCreated {
				fmt.Fprint(cmd.OutOrStdout(), ", worksheet created")
			}
			fmt.Fprintf(cmd.OutOrStdout(), ")\n%s\n", cfg.SpreadsheetURL())
			return nil
		},
	}

	cmd.Flags().StringVar(&spreadsheetID, "spreadsheet", "", "Spreadsheet ID (overrides SPREADSHEET_ID)")
	cmd.Flags().StringVar(&worksheet, "worksheet", "", "Worksheet title (overrides WORKSHEET_NAME)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the rooms that would be exported without writing")

	return cmd
}

// listRooms prints the rows an export would write
func listRooms(ctx context.Context, cmd *cobra.Command, factory usecase.ClientFactory, tokenSource oauth2.TokenSource) error {
	spaceRepo, err := factory.NewSpaceRepository(ctx, tokenSource)
	if err != nil {
		return fmt.Errorf("create chat client: %w", err)
	}
	spaces, err := spaceRepo.ListSpaces(ctx)
	if err != nil {
		return fmt.Errorf("list spaces: %w", err)
	}

	rows := usecase.BuildRows(usecase.FilterRooms(spaces), time.Now())

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(entity.WorksheetHeader[:4], "\t"))
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", row.DisplayName, row.SpaceID, row.CreateTime, row.MemberCount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d spaces would be exported\n", len(rows), len(spaces))
	return nil
}
