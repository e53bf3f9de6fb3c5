package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mbuechner/timeparser/rule"
	"github.com/mbuechner/timeparser/timeparser"
	"github.com/mbuechner/timeparser/timespan"
)

var (
	workers   int
	withInput bool
)

// parseCmd prints the encoded form of each expression
var parseCmd = &cobra.Command{
	Use:   "parse [expression...]",
	Short: "Parse date expressions",
	Long: `Parses each argument, or each line of standard input when no
arguments are given, and prints one result line per input in input order.

Example:
  timeparser parse "um 1920" "19. Jh."
  cut -f3 records.tsv | timeparser parse --with-input`,
	RunE: runParse,
}

// explainCmd shows every stage of a single parse
var explainCmd = &cobra.Command{
	Use:   "explain [expression]",
	Short: "Show the rule, canonical form and span of an expression",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

func runParse(cmd *cobra.Command, args []string) error {
	inputs := args
	if len(inputs) == 0 {
		var err error
		if inputs, err = readLines(cmd.InOrStdin()); err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	}

	p, err := newParser()
	if err != nil {
		return err
	}

	n := workers
	if n <= 0 {
		n = cfg.Workers
	}
	logger.Debug("Parsing", zap.Int("inputs", len(inputs)), zap.Int("workers", n))

	results, err := p.ParseAll(cmd.Context(), inputs, n)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(cmd.OutOrStdout())
	for i, res := range results {
		if withInput {
			fmt.Fprintf(w, "%s\t", inputs[i])
		}
		fmt.Fprintln(w, res)
	}
	return w.Flush()
}

// readLines returns the lines of r without line terminators.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}

// explanation is the JSON document printed by explain.
type explanation struct {
	Input      string             `json:"input"`
	Rule       *rule.Rule         `json:"rule,omitempty"`
	Normalized string             `json:"normalized,omitempty"`
	Span       *timespan.TimeSpan `json:"span,omitempty"`
	Facets     []string           `json:"facets,omitempty"`
	StartDays  *int64             `json:"start_days,omitempty"`
	EndDays    *int64             `json:"end_days,omitempty"`
	Encoded    string             `json:"encoded"`
	Kind       string             `json:"error_kind,omitempty"`
	Error      string             `json:"error,omitempty"`
}

func runExplain(cmd *cobra.Command, args []string) error {
	p, err := newParser()
	if err != nil {
		return err
	}

	res, err := p.Parse(args[0])
	e := explanation{
		Input:      res.Input,
		Rule:       res.Rule,
		Normalized: res.Normalized,
	}
	if err != nil {
		e.Kind = timeparser.ErrorKind(err)
		e.Error = err.Error()
	} else {
		e.Span = &res.Span
		e.Facets = res.Facets
		e.StartDays, e.EndDays = &res.StartDays, &res.EndDays
		e.Encoded = res.String()
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(e)
}
