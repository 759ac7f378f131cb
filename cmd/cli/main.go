package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"maternal-vitals/internal/config"
	"maternal-vitals/internal/data"
	"maternal-vitals/internal/logger"
	"maternal-vitals/internal/model"
	"maternal-vitals/internal/simulator"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	logger.Init("warn", "text")
	logger.Log.SetOutput(os.Stderr)

	switch os.Args[1] {
	case "snapshot":
		cmdSnapshot(os.Args[2:])
	case "simulate":
		cmdSimulate(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli snapshot --source maternal_training_data.csv")
	fmt.Println("  cli simulate --source maternal_training_data.csv --cycles 5 --seed 42 --out results/vitals.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - snapshot prints the dataset exactly as GET /api/data would serve it at startup")
	fmt.Println("  - simulate applies N simulator cycles without waiting for the interval")
	fmt.Println("  - --out ending in .csv writes CSV, anything else writes JSON; no --out prints JSON")
}

func cmdSnapshot(args []string) {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	source := fs.String("source", "", "Tabular source (.csv or .xlsx); overrides config")
	_ = fs.Parse(args)

	cfg := mustConfig(*cfgPath)
	t, err := data.ReadTable(pick(*source, cfg.Data.Source))
	if err != nil {
		fail(err)
	}
	if err := writeJSON(os.Stdout, t.Records); err != nil {
		fail(err)
	}
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	source := fs.String("source", "", "Tabular source (.csv or .xlsx); overrides config")
	cycles := fs.Int("cycles", 1, "Number of simulator cycles to apply")
	seed := fs.Int64("seed", 0, "Random seed (0 = config seed, else time-based)")
	outPath := fs.String("out", "", "Output path (.csv or .json); stdout JSON when empty")
	_ = fs.Parse(args)

	cfg := mustConfig(*cfgPath)
	t, err := data.ReadTable(pick(*source, cfg.Data.Source))
	if err != nil {
		fail(err)
	}

	s := *seed
	if s == 0 {
		s = cfg.Simulator.Seed
	}
	if s == 0 {
		s = time.Now().UnixNano()
	}

	store := data.NewStore(t.Columns, t.Records)
	sim := simulator.New(store, simulator.Options{
		Profiles: cfg.Simulator.Profiles,
		Rand:     rand.New(rand.NewSource(s)),
	})

	applied := 0
	for i := 0; i < *cycles; i++ {
		if _, ok := sim.Step(context.Background()); ok {
			applied++
		}
	}
	fmt.Fprintf(os.Stderr, "Applied %d/%d cycles to %d records (seed=%d)\n", applied, *cycles, store.Len(), s)

	if *outPath == "" {
		if err := writeJSON(os.Stdout, store.All()); err != nil {
			fail(err)
		}
		return
	}

	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fail(err)
	}
	if strings.EqualFold(filepath.Ext(*outPath), ".csv") {
		err = data.WriteRecordsCSV(*outPath, store.Columns(), store.All())
	} else {
		err = writeJSONFile(*outPath, store.All())
	}
	if err != nil {
		fail(err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d rows to %s\n", store.Len(), *outPath)
}

func mustConfig(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		fail(err)
	}
	return cfg
}

func pick(flagValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	return fallback
}

func writeJSON(f *os.File, records []model.Record) error {
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func writeJSONFile(path string, records []model.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeJSON(f, records)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
