package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/photo-compass/internal/exifscan"
	"github.com/photo-compass/internal/pkg/logger"
)

// Инструмент для проверки директории: сканирует и печатает индекс
// геотегированных фотографий, не поднимая сервер.
func main() {
	var (
		asJSON   = flag.Bool("json", false, "print the index as JSON")
		logLevel = flag.String("log-level", "warn", "log level for scan diagnostics")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: scan [-json] [-log-level level] <directory>")
		os.Exit(2)
	}
	dir := flag.Arg(0)

	log, err := logger.New(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	scanner := exifscan.NewScanner(log)
	records, err := scanner.Scan(context.Background(), dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
		os.Exit(1)
	}

	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "no photos with GPS data found")
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode index: %v\n", err)
			os.Exit(1)
		}
		return
	}

	for _, rec := range records {
		heading := "-"
		if rec.HasHeading() {
			heading = fmt.Sprintf("%.1f", *rec.Heading)
		}
		fmt.Printf("%s\t%.6f\t%.6f\t%s\n", rec.Path, rec.Latitude, rec.Longitude, heading)
	}
	fmt.Printf("total: %d\n", len(records))
}
