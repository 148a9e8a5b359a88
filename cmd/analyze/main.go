// Command analyze runs the ingest pipeline and analysis offline
// against an export archive on disk and prints a text report.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/RichardAtCT/garmin-health-dashboard/internal/analysis"
	"github.com/RichardAtCT/garmin-health-dashboard/internal/ingest"
)

func main() {
	archivePath := flag.String("archive", "", "path to the Garmin Connect export ZIP")
	minAbsR := flag.Float64("min-r", 0.25, "minimum absolute correlation to report")
	maxPValue := flag.Float64("max-p", 0.05, "maximum p-value to report")
	flag.Parse()

	if *archivePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*archivePath)
	if err != nil {
		log.Fatalf("read archive: %v", err)
	}

	entries, err := ingest.OpenZip(data)
	if err != nil {
		log.Fatalf("open archive: %v", err)
	}

	var lastReported int
	aggregator := ingest.NewAggregator(
		ingest.WithLogger(log.New(os.Stderr, "[ingest] ", log.LstdFlags)),
		ingest.WithProgress(func(fraction float64) {
			percent := int(fraction * 100)
			if percent >= lastReported+10 || percent == 100 {
				lastReported = percent
				log.Printf("processed %d%%", percent)
			}
		}),
	)

	export := aggregator.Aggregate(entries)
	if export.Empty() {
		log.Fatal("archive contained no recognizable data")
	}

	report := analysis.NewReport(export)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "collection\trecords")
	fmt.Fprintf(w, "sleep\t%d\n", len(export.Sleep))
	fmt.Fprintf(w, "wellness\t%d\n", len(export.Wellness))
	fmt.Fprintf(w, "hydration\t%d\n", len(export.Hydration))
	fmt.Fprintf(w, "activities\t%d\n", len(export.Activities))
	fmt.Fprintf(w, "body metrics\t%d\n", len(export.BodyMetrics))
	w.Flush()

	ranked := analysis.RankByStrength(report.CorrelationMatrix(), *minAbsR, *maxPValue)
	if len(ranked) > 0 {
		fmt.Println("\ncorrelations:")
		for _, item := range ranked {
			fmt.Printf("  %-45s r=%+.2f p=%.3f n=%d\n", item.Label, item.R, item.PValue, item.N)
		}
	}

	patterns := report.WeeklyPatterns()
	fmt.Println("\nweekly averages (sleep hours / steps):")
	for day := time.Sunday; day <= time.Saturday; day++ {
		fmt.Printf("  %-9s %5.1fh  %7.0f steps\n", day, patterns.SleepHours[day], patterns.Steps[day])
	}

	insights := report.Insights()
	if len(insights) > 0 {
		fmt.Println("\ninsights:")
		for _, insight := range insights {
			fmt.Printf("  [%s] %s\n", insight.Severity, insight.Message)
		}
	}
}
