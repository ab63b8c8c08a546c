package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/wildfunctions/symcore/pkg/property"
)

// GenerationReport summarizes one generation.
type GenerationReport struct {
	Generation int            `json:"generation"`
	Attempt    int            `json:"attempt"`
	BestScore  property.Score `json:"best_score"`
	BestCase   string         `json:"best_case"`
	AvgScore   float64        `json:"avg_score"`
	Failing    int            `json:"failing"`
}

// Counterexample is a shrunk case that fails one property.
type Counterexample struct {
	Property   string    `json:"property"`
	Generation int       `json:"generation"`
	Original   string    `json:"original"`
	Shrunk     string    `json:"shrunk"`
	LaTeX      string    `json:"latex"`
	Detail     string    `json:"detail"`
	Seed       int64     `json:"seed"`
	NodeCount  int       `json:"node_count"`
	Timestamp  time.Time `json:"timestamp"`
}

// PropertyStats counts the outcomes of one property over a run.
type PropertyStats struct {
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// Report summarizes the entire run.
type Report struct {
	RunID           string                    `json:"run_id"`
	Config          Config                    `json:"config"`
	Seed            int64                     `json:"seed"`
	StartedAt       time.Time                 `json:"started_at"`
	FinishedAt      time.Time                 `json:"finished_at"`
	Generations     int                       `json:"generations"`
	Restarts        int                       `json:"restarts"`
	CasesChecked    int                       `json:"cases_checked"`
	Cancelled       bool                      `json:"cancelled,omitempty"`
	BestScore       property.Score            `json:"best_score"`
	BestCase        string                    `json:"best_case"`
	Stats           map[string]*PropertyStats `json:"stats"`
	Counterexamples []Counterexample          `json:"counterexamples"`
	History         []GenerationReport        `json:"history,omitempty"`
}

// WriteTextReport writes a generation report in human-readable format.
func WriteTextReport(w io.Writer, r GenerationReport) {
	fmt.Fprintf(w, "Gen %4d | Best: %.4f (%d failures) | Avg: %.4f | %s\n",
		r.Generation, r.BestScore.Combined, r.BestScore.Failures, r.AvgScore, r.BestCase)
}

// sortedStats returns the property names of r.Stats in order.
func sortedStats(r Report) []string {
	names := make([]string, 0, len(r.Stats))
	for name := range r.Stats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// WriteTextFinal writes the final report in human-readable format.
func WriteTextFinal(w io.Writer, r Report) {
	if r.Config.Verbose {
		for _, g := range r.History {
			WriteTextReport(w, g)
		}
	}
	fmt.Fprintln(w, "\n========== SOAK RESULT ==========")
	fmt.Fprintf(w, "Run:         %s\n", r.RunID)
	fmt.Fprintf(w, "Pool:        %s\n", r.Config.Pool)
	fmt.Fprintf(w, "Strategy:    %s\n", r.Config.Strategy)
	fmt.Fprintf(w, "Seed:        %d\n", r.Seed)
	fmt.Fprintf(w, "Generations: %d (%d restarts)\n", r.Generations, r.Restarts)
	fmt.Fprintf(w, "Cases:       %d\n", r.CasesChecked)
	if r.Cancelled {
		fmt.Fprintln(w, "Status:      cancelled")
	}
	fmt.Fprintln(w, "\n--- Properties ---")
	for _, name := range sortedStats(r) {
		s := r.Stats[name]
		fmt.Fprintf(w, "  %-20s pass %6d | fail %6d | skip %6d\n", name, s.Passed, s.Failed, s.Skipped)
	}
	fmt.Fprintf(w, "\n--- Counterexamples (%d) ---\n", len(r.Counterexamples))
	for i, cx := range r.Counterexamples {
		fmt.Fprintf(w, "  #%d [%s, gen %d] %s\n", i+1, cx.Property, cx.Generation, cx.Shrunk)
		fmt.Fprintf(w, "      %s\n", cx.Detail)
	}
	fmt.Fprintln(w, "=================================")
}

// WriteJSONFinal writes the final report as JSON.
func WriteJSONFinal(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// latexEscape escapes underscores and other special chars for LaTeX text mode.
func latexEscape(s string) string {
	return strings.NewReplacer(`\`, `\textbackslash{}`, "_", `\_`, "#", `\#`, "%", `\%`, "&", `\&`, "$", `\$`).Replace(s)
}

// WriteCounterexamplesLatex writes a compilable LaTeX document listing the
// counterexamples of a run.
func WriteCounterexamplesLatex(w io.Writer, r Report) {
	genBudget := "unlimited"
	if r.Config.Generations > 0 {
		genBudget = fmt.Sprintf("%d", r.Config.Generations)
	}

	fmt.Fprintln(w, `\documentclass{article}`)
	fmt.Fprintln(w, `\usepackage{amsmath}`)
	fmt.Fprintln(w, `\usepackage{geometry}`)
	fmt.Fprintln(w, `\geometry{margin=1in}`)
	fmt.Fprintf(w, "\\title{Counterexamples --- Run \\texttt{%s}}\n", latexEscape(r.RunID))
	fmt.Fprintln(w, `\date{\today}`)
	fmt.Fprintln(w, `\begin{document}`)
	fmt.Fprintln(w, `\maketitle`)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "\\noindent Pool: \\texttt{%s}, Strategy: \\texttt{%s}\\\\\n",
		latexEscape(r.Config.Pool), latexEscape(r.Config.Strategy))
	fmt.Fprintf(w, "Population: %d, Gen budget: %s, Stagnation: %d, Workers: %d, Seed: %d\\\\\n",
		r.Config.Population, genBudget, r.Config.StagnationLimit, r.Config.Workers, r.Seed)
	fmt.Fprintf(w, "Generations run: %d, cases checked: %d\n\n", r.Generations, r.CasesChecked)

	if len(r.Counterexamples) == 0 {
		fmt.Fprintln(w, `\noindent No property failed.`)
	}
	for i, cx := range r.Counterexamples {
		fmt.Fprintf(w, "\\subsection*{\\#%d --- \\texttt{%s} (gen %d, %s)}\n",
			i+1, latexEscape(cx.Property), cx.Generation,
			cx.Timestamp.Format("2006-01-02 15:04:05 UTC"))
		fmt.Fprintln(w, `\begin{align*}`)
		fmt.Fprintf(w, "  %s\n", cx.LaTeX)
		fmt.Fprintln(w, `\end{align*}`)
		fmt.Fprintf(w, "\\noindent Seed: %d\\\\\n", cx.Seed)
		fmt.Fprintf(w, "Detail: \\verb|%s|\n\n", strings.ReplaceAll(cx.Detail, "|", "/"))
	}

	fmt.Fprintln(w, `\end{document}`)
}

// WriteArtifacts writes the JSON report and the LaTeX counterexample
// document into dir, compiling a PDF when pdflatex is available.
func WriteArtifacts(dir string, r Report, logger *slog.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	base := "symsoak_" + r.RunID

	jsonPath := filepath.Join(dir, base+".json")
	if err := writeFile(jsonPath, func(w io.Writer) error { return WriteJSONFinal(w, r) }); err != nil {
		return err
	}
	logger.Info("wrote report", slog.String("path", jsonPath))

	texPath := filepath.Join(dir, base+".tex")
	if err := writeFile(texPath, func(w io.Writer) error {
		WriteCounterexamplesLatex(w, r)
		return nil
	}); err != nil {
		return err
	}
	logger.Info("wrote counterexamples", slog.String("path", texPath))

	pdflatex, err := exec.LookPath("pdflatex")
	if err != nil {
		return nil
	}
	cmd := exec.Command(pdflatex, "-interaction=nonstopmode", base+".tex")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		logger.Warn("pdflatex failed", slog.Any("error", err), slog.String("output", string(out)))
		return nil
	}
	for _, ext := range []string{".aux", ".log"} {
		os.Remove(filepath.Join(dir, base+ext))
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
