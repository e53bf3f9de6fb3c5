package main

import (
	"bufio"
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/mbuechner/timeparser/normalize"
	"github.com/mbuechner/timeparser/timeparser"
)

const (
	maxWorkers   = 4
	expectedArgs = 2
	topShapes    = 20
)

type fileRatio struct {
	path     string
	lines    int
	failures int
	ratio    float64
}

type Stats struct {
	mu              sync.Mutex
	filesScanned    int
	lines           int
	parsed          int
	empty           int
	inconsistent    int
	failureOutliers int
	failureKinds    map[string]int
	unmatchedShapes map[string]int
	fileRatios      []fileRatio
}

type fileState struct {
	path            string
	lines           int
	parsed          int
	empty           int
	inconsistent    int
	inconsistLogged bool
	failureKinds    map[string]int
	unmatchedShapes map[string]int
}

func main() {
	if len(os.Args) != expectedArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s <directory>\n", os.Args[0])
		os.Exit(1)
	}

	p, err := timeparser.Default(timeparser.WithWarningLimit(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading tables: %v\n", err)
		os.Exit(1)
	}

	dirPath := os.Args[1]
	stats := &Stats{
		failureKinds:    make(map[string]int),
		unmatchedShapes: make(map[string]int),
	}

	var filePaths []string
	err = filepath.WalkDir(dirPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".txt") {
			return nil
		}
		filePaths = append(filePaths, path)
		return nil
	})

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Found %d files to process\n", len(filePaths))
	start := time.Now()

	semaphore := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for _, path := range filePaths {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(path string) {
			defer wg.Done()
			defer func() { <-semaphore }()
			processFile(p, path, stats)
		}(path)
	}

	wg.Wait()

	flagFailureOutliers(stats)

	fmt.Fprintf(os.Stderr, "\nCompleted in %s\n\n", time.Since(start).Round(time.Millisecond))
	printStats(stats)
}

// processFile parses every non-empty line of the file at path as one date
// expression.
func processFile(p *timeparser.Parser, path string, stats *Stats) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", path, err)
		return
	}
	defer func() { _ = f.Close() }()

	fmt.Fprintf(os.Stderr, "START %s\n", path)
	fileStart := time.Now()

	state := &fileState{
		path:            path,
		failureKinds:    make(map[string]int),
		unmatchedShapes: make(map[string]int),
	}

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		state.processLine(p, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
	}

	fmt.Fprintf(os.Stderr, "DONE  %s in %s (%d lines)\n",
		filepath.Base(path), time.Since(fileStart).Round(time.Millisecond), state.lines)

	mergeFileState(state, stats)
}

func (fs *fileState) processLine(p *timeparser.Parser, line string) {
	if strings.TrimSpace(line) == "" {
		fs.empty++
		return
	}
	fs.lines++

	encoded := p.ParseTime(line)
	res, err := p.Parse(line)
	if err != nil {
		fs.failureKinds[timeparser.ErrorKind(err)]++
		if res.Rule == nil {
			fs.unmatchedShapes[digitShape(line)]++
		}
		if encoded != "" {
			fs.logInconsistency(line, encoded, "")
		}
		return
	}

	fs.parsed++
	if got := res.String(); got != encoded || res.StartDays > res.EndDays {
		fs.logInconsistency(line, encoded, got)
	}
}

func (fs *fileState) logInconsistency(line, encoded, result string) {
	fs.inconsistent++
	if fs.inconsistLogged {
		return
	}
	fs.inconsistLogged = true
	fmt.Fprintf(os.Stderr, "INCONSISTENT: %s: %q: ParseTime %q, Parse %q\n", fs.path, line, encoded, result)
}

// digitShape is the shape a rule mask would need to match line, with every
// digit shown as '#'.
func digitShape(line string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return '#'
		}
		return r
	}, normalize.Shape(line))
}

func mergeFileState(fs *fileState, stats *Stats) {
	stats.mu.Lock()
	defer stats.mu.Unlock()

	stats.filesScanned++
	stats.lines += fs.lines
	stats.parsed += fs.parsed
	stats.empty += fs.empty
	stats.inconsistent += fs.inconsistent

	failures := 0
	for kind, count := range fs.failureKinds {
		stats.failureKinds[kind] += count
		failures += count
	}
	for shape, count := range fs.unmatchedShapes {
		stats.unmatchedShapes[shape] += count
	}

	ratio := 0.0
	if fs.lines > 0 {
		ratio = float64(failures) / float64(fs.lines)
	}
	stats.fileRatios = append(stats.fileRatios, fileRatio{
		path:     fs.path,
		lines:    fs.lines,
		failures: failures,
		ratio:    ratio,
	})
}

// flagFailureOutliers computes the median failure ratio across all files
// and flags any file whose ratio exceeds 3x the median.
func flagFailureOutliers(stats *Stats) {
	if len(stats.fileRatios) == 0 {
		return
	}

	ratios := make([]float64, len(stats.fileRatios))
	for i, fr := range stats.fileRatios {
		ratios[i] = fr.ratio
	}
	med := computeMedian(ratios)

	for _, fr := range stats.fileRatios {
		if med > 0 && fr.ratio > 3*med {
			stats.failureOutliers++
			fmt.Fprintf(os.Stderr, "FAILURE_OUTLIER: %s: %d failures / %d lines (ratio %.2f, median %.2f)\n",
				fr.path, fr.failures, fr.lines, fr.ratio, med)
		}
	}
}

func computeMedian(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2 //nolint:mnd // arithmetic mean of two middle values
	}
	return sorted[mid]
}

func printStats(stats *Stats) {
	fmt.Printf("Files scanned:           %d\n", stats.filesScanned)
	fmt.Printf("Expressions:             %d\n", stats.lines)
	fmt.Printf("Blank lines:             %d\n", stats.empty)
	fmt.Printf("Parsed:                  %d\n", stats.parsed)
	fmt.Printf("Inconsistent:            %d\n", stats.inconsistent)
	fmt.Printf("Failure outliers:        %d\n", stats.failureOutliers)
	fmt.Println()

	fmt.Println("Failure kinds:")
	for _, kind := range []string{"ambiguous_rule", "normalization", "grammar", "calendar"} {
		printKindStats(kind, stats.failureKinds[kind], stats.lines)
	}

	type shapeCount struct {
		shape string
		count int
	}
	shapes := make([]shapeCount, 0, len(stats.unmatchedShapes))
	for s, n := range stats.unmatchedShapes {
		shapes = append(shapes, shapeCount{s, n})
	}
	slices.SortFunc(shapes, func(a, b shapeCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return strings.Compare(a.shape, b.shape)
	})

	fmt.Println()
	fmt.Println("Most frequent shapes without a rule:")
	for _, s := range shapes[:min(len(shapes), topShapes)] {
		fmt.Printf("  %6d  %q\n", s.count, s.shape)
	}
}

func printKindStats(label string, count, total int) {
	percentage := 0.0
	if total > 0 {
		percentage = float64(count) / float64(total) * 100
	}
	fmt.Printf("  %-15s %d  (%.1f%%)\n", label+":", count, percentage)
}
