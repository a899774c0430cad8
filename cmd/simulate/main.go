package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lorrc/desk-simulator/internal/adapters/secondary/memory"
	"github.com/lorrc/desk-simulator/internal/adapters/secondary/planfile"
	"github.com/lorrc/desk-simulator/internal/config"
	"github.com/lorrc/desk-simulator/internal/core/domain"
	"github.com/lorrc/desk-simulator/internal/core/ports"
	"github.com/lorrc/desk-simulator/internal/core/services"
	"github.com/lorrc/desk-simulator/internal/infrastructure/logging"
)

// simulate runs the engine once per requested run and prints the summaries.
// Everything stays in memory; use the API server for persisted runs.
func main() {
	var (
		tag      = flag.String("tag", "cli", "tag shared by all runs in this invocation")
		seed     = flag.Int64("seed", 0, "base RNG seed, 0 picks a random seed per run")
		count    = flag.Int("count", 1, "number of runs to execute")
		debug    = flag.Bool("debug", false, "enable per-tick engine logging")
		asJSON   = flag.Bool("json", false, "print summaries as JSON instead of text")
		catalog  = flag.String("catalog", "", "employee type catalog file, overrides PLAN_CATALOG_PATH")
		roster   = flag.String("roster", "", "shift roster file, overrides PLAN_ROSTER_PATH")
		arrivals = flag.String("arrivals", "", "ticket arrival plan file, overrides PLAN_ARRIVALS_PATH")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if *catalog != "" {
		cfg.Plans.CatalogPath = *catalog
	}
	if *roster != "" {
		cfg.Plans.RosterPath = *roster
	}
	if *arrivals != "" {
		cfg.Plans.PlanPath = *arrivals
	}

	logLevel := cfg.Logging.Level
	if *debug {
		logLevel = "debug"
	}
	logger := logging.NewLogger(logging.Config{
		Level:       logLevel,
		Format:      cfg.Logging.Format,
		Output:      os.Stderr,
		ServiceName: "simulate",
		Environment: cfg.App.Environment,
	})

	planSource := planfile.NewSource(
		cfg.Plans.CatalogPath,
		cfg.Plans.RosterPath,
		cfg.Plans.PlanPath,
		cfg.Simulation.DayLength,
	)

	runService := services.NewRunService(
		memory.NewRunRepository(),
		memory.NewDatapointRepository(),
		memory.NewTicketRecordRepository(),
		planSource,
		nil,
		cfg.Simulation,
		logger,
	)

	ctx := context.Background()
	summaries := make([]*domain.Summary, 0, *count)

	for number := 1; number <= *count; number++ {
		summary, err := runService.ExecuteRun(ctx, ports.StartRunParams{
			Tag:    *tag,
			Number: number,
			Seed:   *seed,
			Debug:  *debug,
		})
		if err != nil {
			logger.Error("run failed", "tag", *tag, "number", number, "error", err)
			os.Exit(1)
		}
		summaries = append(summaries, summary)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summaries); err != nil {
			logger.Error("failed to encode summaries", "error", err)
			os.Exit(1)
		}
		return
	}

	for _, s := range summaries {
		printSummary(s)
	}
}

func printSummary(s *domain.Summary) {
	fmt.Printf("run %s #%d (seed %d)\n", s.RunTag, s.RunNumber, s.Seed)
	fmt.Printf("  ticks:            %d\n", s.TotalTicks)
	fmt.Printf("  tickets:          %d (first %d, second %d)\n", s.TotalTickets, s.FirstLevel, s.SecondLevel)
	fmt.Printf("  solved:           %d\n", s.Solved)
	fmt.Printf("  deployed:         %d\n", s.Deployed)
	fmt.Printf("  unresolved:       %d\n", s.Unresolved)
	fmt.Printf("  avg resolution:   %.2f ticks\n", s.AvgResolutionTicks)
	fmt.Printf("  working hours:    %.2f\n", s.WorkingHours)
	fmt.Printf("  expenses:         %.2f\n", s.Expenses)
	fmt.Println()
}
