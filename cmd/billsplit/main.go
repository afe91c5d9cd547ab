// Command billsplit prints the settlement report for a bill snapshot.
//
// Usage:
//
//	billsplit -in bill.json
//	cat bill.json | billsplit
//
// The input is {"people":[{"id":..,"name":..}],"items":[{"name":..,"price":..,"payer_id":..}]}.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/internal/report"
	"github.com/mmynk/billsplit/internal/service"
	billsplitv1 "github.com/mmynk/billsplit/pkg/billsplitv1"
	"github.com/mmynk/billsplit/pkg/logging"
)

func main() {
	in := flag.String("in", "", "snapshot JSON file (default: stdin)")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	flag.Parse()

	logging.Setup("text", *logLevel)

	if err := run(*in, os.Stdin, os.Stdout); err != nil {
		slog.Error("billsplit failed", "error", err)
		os.Exit(1)
	}
}

func run(path string, stdin io.Reader, stdout io.Writer) error {
	r := stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var snapshot billsplitv1.CalculateSummaryRequest
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snapshot); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}

	people, items, err := service.ValidateSnapshot(snapshot.People, snapshot.Items)
	if err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	slog.Debug("Snapshot loaded", "people", len(people), "items", len(items))

	roster, purchases := service.PeopleFromWire(people), service.ItemsFromWire(items)
	if err := report.WriteItems(stdout, roster, purchases); err != nil {
		return err
	}
	fmt.Fprintln(stdout)
	return report.Write(stdout, calculator.ComputeSummary(roster, purchases))
}
