// Command run_benchmarks runs the codec and server benchmarks and writes
// the results to benchmarks/results/latest.json.
//
//	go run ./benchmarks
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"text/tabwriter"
	"time"
)

type report struct {
	Timestamp string        `json:"timestamp"`
	GoVersion string        `json:"goVersion"`
	Platform  string        `json:"platform"`
	NumCPU    int           `json:"numCPU"`
	Results   []benchResult `json:"results"`
}

type benchResult struct {
	Package     string  `json:"package"`
	Name        string  `json:"name"`
	NsPerOp     float64 `json:"nsPerOp"`
	BytesPerOp  int64   `json:"bytesPerOp"`
	AllocsPerOp int64   `json:"allocsPerOp"`
}

var packages = []string{"./pkg/wire", "./pkg/server"}

// BenchmarkName-N  iterations  ns/op  B/op  allocs/op
var benchLine = regexp.MustCompile(`(?m)^(Benchmark[\w/]+)-\d+\s+\d+\s+([\d.]+) ns/op\s+(\d+) B/op\s+(\d+) allocs/op`)

func main() {
	rep := report{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
	for _, pkg := range packages {
		fmt.Fprintf(os.Stderr, "running %s...\n", pkg)
		out, err := exec.Command("go", "test", "-run=^$", "-bench=.", "-benchmem", pkg).CombinedOutput()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s failed: %v\n%s", pkg, err, out)
			os.Exit(1)
		}
		rep.Results = append(rep.Results, parseResults(pkg, string(out))...)
	}

	path := filepath.Join("benchmarks", "results", "latest.json")
	if err := writeReport(path, rep); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
		os.Exit(1)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BENCHMARK\tNS/OP\tB/OP\tALLOCS/OP")
	for _, r := range rep.Results {
		fmt.Fprintf(tw, "%s\t%.0f\t%d\t%d\n", r.Name, r.NsPerOp, r.BytesPerOp, r.AllocsPerOp)
	}
	_ = tw.Flush()
	fmt.Printf("\nresults: %s\n", path)
}

func parseResults(pkg, output string) []benchResult {
	var results []benchResult
	for _, m := range benchLine.FindAllStringSubmatch(output, -1) {
		ns, _ := strconv.ParseFloat(m[2], 64)
		b, _ := strconv.ParseInt(m[3], 10, 64)
		allocs, _ := strconv.ParseInt(m[4], 10, 64)
		results = append(results, benchResult{Package: pkg, Name: m[1], NsPerOp: ns, BytesPerOp: b, AllocsPerOp: allocs})
	}
	return results
}

func writeReport(path string, rep report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
