// compare_flow_bench checks two `go test -bench` outputs of the flow package.
// A benchmark fails when it slowed down by more than the allowed percentage,
// or when the current run reports more engine calls per box than the layout
// passes allow: one real measurement per box for Measure, and two memoized
// intrinsic queries per box for the intrinsic estimators. The comparison is
// written as a markdown table to stdout and, on CI, to $GITHUB_STEP_SUMMARY.
//
//	go run ./scripts/ci -baseline base.txt -current head.txt -max-regression-pct 15
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// workBudget caps a per-box metric for one benchmark family.
type workBudget struct {
	unit string
	max  float64
}

var (
	cpuSuffixPattern = regexp.MustCompile(`-\d+$`)
	workBudgets      = map[string]workBudget{
		"BenchmarkMeasure":    {unit: "measures/box", max: 1},
		"BenchmarkIntrinsics": {unit: "queries/box", max: 2},
	}
	expectedBenchmarks = []string{
		"BenchmarkMeasure/small/row",
		"BenchmarkMeasure/small/column",
		"BenchmarkMeasure/large/row",
		"BenchmarkMeasure/large/column",
		"BenchmarkIntrinsics/small/min-width",
		"BenchmarkIntrinsics/small/min-height",
		"BenchmarkIntrinsics/large/min-width",
		"BenchmarkIntrinsics/large/min-height",
	}
)

// benchResult is one benchmark line: ns/op plus any other reported metrics
// keyed by unit.
type benchResult struct {
	nsPerOp float64
	metrics map[string]float64
}

type comparisonRow struct {
	name       string
	baselineNs float64
	currentNs  float64
	deltaPct   float64
	work       float64
	budget     workBudget
	failures   []string
}

func (r comparisonRow) pass() bool { return len(r.failures) == 0 }

func main() {
	baselinePath := flag.String("baseline", "", "benchmark output of the base revision")
	currentPath := flag.String("current", "", "benchmark output of the revision under test")
	maxRegressionPct := flag.Float64("max-regression-pct", 20, "largest allowed slowdown in percent")
	flag.Parse()

	if *baselinePath == "" || *currentPath == "" {
		fatalf("both -baseline and -current are required")
	}
	if *maxRegressionPct < 0 {
		fatalf("-max-regression-pct must be non-negative")
	}

	baseline, err := parseBenchmarkFile(*baselinePath)
	if err != nil {
		fatalf("parse baseline: %v", err)
	}
	current, err := parseBenchmarkFile(*currentPath)
	if err != nil {
		fatalf("parse current: %v", err)
	}

	rows, err := compareBenchmarks(baseline, current, *maxRegressionPct)
	if err != nil {
		fatalf("compare benchmarks: %v", err)
	}

	writeMarkdownReport(rows, *maxRegressionPct, os.Stdout)
	if summary := os.Getenv("GITHUB_STEP_SUMMARY"); summary != "" {
		f, err := os.OpenFile(summary, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
		if err != nil {
			fatalf("open step summary: %v", err)
		}
		writeMarkdownReport(rows, *maxRegressionPct, f)
		f.Close()
	}

	for _, row := range rows {
		if !row.pass() {
			os.Exit(1)
		}
	}
}

func parseBenchmarkFile(path string) (map[string]benchResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer file.Close()
	results, err := parseBenchmarkOutput(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return results, nil
}

// parseBenchmarkOutput reads flow benchmark lines of the form
//
//	BenchmarkMeasure/small/row-8  1000  1234 ns/op  1.000 measures/box  64 B/op
//
// and ignores everything else.
func parseBenchmarkOutput(r io.Reader) (map[string]benchResult, error) {
	results := make(map[string]benchResult, len(expectedBenchmarks))
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || family(fields[0]) == "" {
			continue
		}
		if _, err := strconv.Atoi(fields[1]); err != nil {
			continue
		}

		name := cpuSuffixPattern.ReplaceAllString(fields[0], "")
		result := benchResult{metrics: map[string]float64{}}
		for i := 2; i+1 < len(fields); i += 2 {
			value, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("parse %s for %q: %w", fields[i+1], name, err)
			}
			if fields[i+1] == "ns/op" {
				result.nsPerOp = value
			} else {
				result.metrics[fields[i+1]] = value
			}
		}
		results[name] = result
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	if len(results) == 0 {
		return nil, errors.New("no flow benchmark results found")
	}
	return results, nil
}

// family returns the top-level benchmark name when it has a work budget.
func family(name string) string {
	top, _, _ := strings.Cut(name, "/")
	top = cpuSuffixPattern.ReplaceAllString(top, "")
	if _, ok := workBudgets[top]; !ok {
		return ""
	}
	return top
}

func compareBenchmarks(baseline, current map[string]benchResult, maxRegressionPct float64) ([]comparisonRow, error) {
	for _, name := range expectedBenchmarks {
		if _, ok := current[name]; !ok {
			return nil, fmt.Errorf("missing current benchmark %q", name)
		}
	}

	rows := make([]comparisonRow, 0, len(expectedBenchmarks))
	for _, name := range expectedBenchmarks {
		curr := current[name]
		base, ok := baseline[name]
		if !ok {
			// new benchmark: compare against itself until a baseline exists
			base = curr
		}
		if base.nsPerOp <= 0 {
			return nil, fmt.Errorf("non-positive baseline ns/op for %q", name)
		}

		row := comparisonRow{
			name:       name,
			baselineNs: base.nsPerOp,
			currentNs:  curr.nsPerOp,
			deltaPct:   (curr.nsPerOp - base.nsPerOp) / base.nsPerOp * 100,
			budget:     workBudgets[family(name)],
		}
		if row.deltaPct > maxRegressionPct {
			row.failures = append(row.failures, fmt.Sprintf("%+.2f%% slower", row.deltaPct))
		}
		work, ok := curr.metrics[row.budget.unit]
		switch {
		case !ok:
			row.failures = append(row.failures, "no "+row.budget.unit)
		case work > row.budget.max:
			row.failures = append(row.failures, fmt.Sprintf("%.2f %s over %g", work, row.budget.unit, row.budget.max))
		}
		row.work = work
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].name < rows[j].name
	})
	return rows, nil
}

func writeMarkdownReport(rows []comparisonRow, maxRegressionPct float64, out io.Writer) {
	fmt.Fprintf(out, "## Flow layout benchmarks\n\n")
	fmt.Fprintf(out, "Allowed regression threshold: %.2f%%\n\n", maxRegressionPct)
	fmt.Fprintf(out, "| Benchmark | Baseline ns/op | Current ns/op | Delta | Work per box | Result |\n")
	fmt.Fprintf(out, "|---|---:|---:|---:|---:|---|\n")
	for _, row := range rows {
		result := "PASS"
		if !row.pass() {
			result = "FAIL: " + strings.Join(row.failures, "; ")
		}
		fmt.Fprintf(out, "| %s | %.0f | %.0f | %+0.2f%% | %.2f %s (max %g) | %s |\n",
			row.name, row.baselineNs, row.currentNs, row.deltaPct, row.work, row.budget.unit, row.budget.max, result)
	}
	fmt.Fprintln(out)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
