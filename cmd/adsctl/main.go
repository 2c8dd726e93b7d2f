// main.go - Admin control tool for adsight
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"adsight/internal"
	"adsight/internal/export"
	"adsight/internal/grid"
	"adsight/internal/reports"
	"adsight/internal/seeder"
	"adsight/internal/sources"
	"adsight/internal/timeframe"
)

const (
	defaultShutdownTimeout = 30 * time.Second
)

// Command defines the interface for all command implementations
type Command interface {
	// Name returns the command name
	Name() string
	// Description returns the command description
	Description() string
	// Execute runs the command with the given app and args
	Execute(ctx context.Context, app *internal.Application, args []string) error
}

// The set of available commands
var commands = []Command{
	&MigrateCommand{},
	&SeedCommand{},
	&StatusCommand{},
	&ExportCommand{},
	&HelpCommand{},
}

func main() {
	flag.Parse()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v, initiating cleanup...", sig)
		cancel()
	}()

	cmdName, args := parseArgs()

	cmd := findCommand(cmdName)
	if cmd == nil {
		showUsageAndExit()
	}

	// Commands decide for themselves whether they can run without an app
	app, err := internal.NewApp()
	if err != nil {
		log.Printf("Warning: Failed to initialize app: %v", err)
		log.Println("Proceeding with limited functionality...")
	}

	defer func() {
		if app != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
			defer cancel()
			if err := app.Shutdown(shutdownCtx); err != nil {
				log.Printf("Warning: Cleanup error: %v", err)
			}
		}
	}()

	if err := cmd.Execute(ctx, app, args); err != nil {
		log.Fatalf("Command failed: %v", err)
	}

	log.Printf("Command %s completed successfully", cmd.Name())
}

// MigrateCommand runs database migrations
type MigrateCommand struct{}

func (c *MigrateCommand) Name() string        { return "migrate" }
func (c *MigrateCommand) Description() string { return "Creates or updates the report source tables" }

func (c *MigrateCommand) Execute(ctx context.Context, app *internal.Application, args []string) error {
	if app == nil {
		return fmt.Errorf("app initialization failed, cannot run migrations")
	}

	log.Println("Running database migrations...")
	if err := app.DBManager.MigrateDatabase(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Println("Migrations completed successfully")
	return nil
}

// SeedCommand replaces the report data with generated demo data
type SeedCommand struct{}

func (c *SeedCommand) Name() string { return "seed" }
func (c *SeedCommand) Description() string {
	return "Replaces the report tables with generated demo data"
}

func (c *SeedCommand) Execute(ctx context.Context, app *internal.Application, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	days := fs.Int("days", seeder.DefaultDays, "number of days to generate, ending today")
	campaigns := fs.Int("campaigns", seeder.DefaultCampaigns, "number of campaigns to generate")
	seed := fs.Uint64("seed", 0, "random seed (0 picks one)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if app == nil {
		return fmt.Errorf("unable to initialise app")
	}

	if err := app.DBManager.MigrateDatabase(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	se := seeder.NewSeeder(app.DBManager, slog.Default(), *days, *campaigns, *seed)
	return se.Run(ctx)
}

// StatusCommand implements a command to check the system status
type StatusCommand struct{}

func (c *StatusCommand) Name() string        { return "status" }
func (c *StatusCommand) Description() string { return "Shows the current system status" }

func (c *StatusCommand) Execute(ctx context.Context, app *internal.Application, args []string) error {
	if app == nil {
		return fmt.Errorf("cannot check status: app initialization failed")
	}

	db := app.DBManager.GetConnection()
	repo := sources.NewRepository(db, slog.Default())

	counts, err := repo.CountRows(ctx)
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	log.Println("System Status:")
	log.Println("- Database: Connected")
	log.Printf("- Ads report rows: %d", counts[sources.AdsTable])
	log.Printf("- Business report rows: %d", counts[sources.BusinessTable])

	if ads, err := repo.FetchAdsDataset(ctx); err == nil {
		if bounds, ok := reports.AdsDateBounds(ads); ok {
			from, to := bounds.Format()
			log.Printf("- Ads data range: %s to %s", from, to)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get SQL DB: %w", err)
	}

	stats := sqlDB.Stats()
	log.Printf("- Max Open Connections: %d", stats.MaxOpenConnections)
	log.Printf("- Open Connections: %d", stats.OpenConnections)
	log.Printf("- In Use: %d", stats.InUse)
	log.Printf("- Idle: %d", stats.Idle)

	return nil
}

// ExportCommand writes a report export to disk
type ExportCommand struct{}

func (c *ExportCommand) Name() string { return "export" }
func (c *ExportCommand) Description() string {
	return "Exports the Keywords, Campaigns or Business report as csv or excel"
}

func (c *ExportCommand) Execute(ctx context.Context, app *internal.Application, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	reportType := fs.String("type", string(reports.ReportKeywords), "Keywords, Campaigns or Business")
	formatValue := fs.String("format", string(export.FormatCSV), "csv or excel")
	outDir := fs.String("out", ".", "output directory")
	from := fs.String("from", "", "first day (YYYY-MM-DD)")
	to := fs.String("to", "", "last day (YYYY-MM-DD)")
	campaigns := fs.String("campaigns", "", "comma-separated campaign names")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if app == nil {
		return fmt.Errorf("unable to initialise app")
	}

	format, err := export.ParseFormat(*formatValue)
	if err != nil {
		return err
	}

	dateRange, err := timeframe.ParseDateRange(*from, *to)
	if err != nil {
		return err
	}
	filters := reports.Filters{
		Range:     dateRange,
		Campaigns: reports.CleanValues(strings.Split(*campaigns, ",")),
	}

	repo := sources.NewRepository(app.DBManager.GetConnection(), slog.Default())
	now := time.Now()

	var (
		table    reports.Table
		sheet    string
		filename string
	)
	if strings.EqualFold(*reportType, "business") {
		business, err := repo.FetchBusinessDataset(ctx)
		if err != nil {
			return fmt.Errorf("failed to load business data: %w", err)
		}
		ds := sources.Dataset{Business: filters.ApplyBusiness(business)}
		rows := reports.Aggregate(ds, reports.ReportProducts, reports.FieldDate)
		table = reports.BuildTable(rows, reports.BusinessDailyFields)
		sheet = export.BusinessSheet
		filename = export.Filename(export.BusinessPrefix, format, now)
	} else {
		schema := reports.SchemaFor(reports.ParseReportType(*reportType))
		if schema.Source != reports.SourceAds {
			return fmt.Errorf("unsupported report type %q", *reportType)
		}
		ads, err := repo.FetchAdsDataset(ctx)
		if err != nil {
			return fmt.Errorf("failed to load ads data: %w", err)
		}
		rows := grid.Prepare(sources.Dataset{Ads: ads}, schema.Type, filters)
		table = reports.BuildTable(rows, schema.Fields())
		sheet = export.AdsSheet(schema.Type)
		filename = export.Filename(export.AdsPrefix(schema.Type), format, now)
	}

	path := filepath.Join(*outDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := export.Write(f, format, sheet, table); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	log.Printf("Wrote %d rows to %s", len(table.Records), path)
	return nil
}

// HelpCommand implements a command to show usage information
type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Shows usage information" }

func (c *HelpCommand) Execute(ctx context.Context, app *internal.Application, args []string) error {
	printUsage()
	return nil
}

// parseArgs parses the command name and arguments
func parseArgs() (string, []string) {
	args := os.Args[1:]
	if len(args) == 0 {
		return "help", []string{}
	}
	return args[0], args[1:]
}

// findCommand finds a command by name
func findCommand(name string) Command {
	for _, cmd := range commands {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}

func printUsage() {
	fmt.Println("Usage: adsctl [command] [args...]")
	fmt.Println("Available commands:")

	for _, cmd := range commands {
		fmt.Printf("  %s: %s\n", cmd.Name(), cmd.Description())
	}
}

// showUsageAndExit shows usage information and exits
func showUsageAndExit() {
	printUsage()
	os.Exit(1)
}
