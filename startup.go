package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	"dreamforge/styles"
)

// checkResult is the outcome of one startup check.
type checkResult struct {
	name    string
	passed  bool
	warning bool
	message string
}

// runStartupChecks validates the environment before any heavy
// initialization, printing a colored progress report. It returns false
// when a hard check failed and the process should not continue.
func runStartupChecks(cfg Config, out io.Writer) bool {
	header := color.New(color.FgCyan, color.Bold)
	header.Fprintln(out, "DreamForge startup checks")

	start := time.Now()
	results := []checkResult{
		checkModelWeights(cfg.ModelPath),
		checkOutputsDir(cfg.OutputsDir),
		checkStyleCatalog(cfg.StylePresetPath),
		checkDatabaseDir(cfg.DatabasePath),
	}

	passed, failed := 0, 0
	for _, r := range results {
		printCheck(out, r)
		if r.passed {
			passed++
		} else if !r.warning {
			failed++
		}
	}

	if failed > 0 {
		color.New(color.FgRed, color.Bold).Fprintf(out, "Startup checks failed ")
		color.New(color.FgHiBlack).Fprintf(out, "(%d passed, %d failed)\n", passed, failed)
		return false
	}
	color.New(color.FgGreen, color.Bold).Fprintf(out, "All checks passed ")
	color.New(color.FgHiBlack).Fprintf(out, "(%d checks in %v)\n", len(results), time.Since(start).Round(time.Millisecond))
	return true
}

func printCheck(out io.Writer, r checkResult) {
	var clr *color.Color
	var mark string
	switch {
	case r.passed:
		clr, mark = color.New(color.FgGreen), "ok"
	case r.warning:
		clr, mark = color.New(color.FgYellow), "warn"
	default:
		clr, mark = color.New(color.FgRed), "fail"
	}
	fmt.Fprintf(out, "  %-24s ", r.name)
	clr.Fprintf(out, "[%s]", mark)
	if r.message != "" {
		color.New(color.FgHiBlack).Fprintf(out, " %s", r.message)
	}
	fmt.Fprintln(out)
}

func checkModelWeights(path string) checkResult {
	r := checkResult{name: "model weights"}
	info, err := os.Stat(path)
	if err != nil {
		r.message = fmt.Sprintf("not found at %s", path)
		return r
	}
	if info.IsDir() {
		r.message = fmt.Sprintf("%s is a directory", path)
		return r
	}
	r.passed = true
	r.message = fmt.Sprintf("%s (%.1f MB)", path, float64(info.Size())/(1<<20))
	return r
}

func checkOutputsDir(dir string) checkResult {
	r := checkResult{name: "outputs directory"}
	if err := os.MkdirAll(dir, 0755); err != nil {
		r.message = err.Error()
		return r
	}

	probe := filepath.Join(dir, ".write_probe")
	if err := os.WriteFile(probe, []byte("probe"), 0644); err != nil {
		r.message = fmt.Sprintf("not writable: %v", err)
		return r
	}
	os.Remove(probe)

	r.passed = true
	r.message = dir
	return r
}

func checkStyleCatalog(path string) checkResult {
	r := checkResult{name: "style presets"}
	if path == "" {
		r.passed = true
		r.message = "using built-in catalog"
		return r
	}
	if _, err := styles.LoadCatalog(path); err != nil {
		r.message = err.Error()
		return r
	}
	r.passed = true
	r.message = path
	return r
}

func checkDatabaseDir(dbPath string) checkResult {
	r := checkResult{name: "history database"}
	if dbPath == "" {
		r.passed = true
		r.warning = true
		r.message = "indexing disabled"
		return r
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		// Indexing is optional, so a bad path degrades instead of failing.
		r.warning = true
		r.message = fmt.Sprintf("directory unavailable: %v", err)
		return r
	}
	r.passed = true
	r.message = dbPath
	return r
}
