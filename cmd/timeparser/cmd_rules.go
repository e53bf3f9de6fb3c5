package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mbuechner/timeparser/rule"
	"github.com/mbuechner/timeparser/timeparser"
)

var errRulesInconsistent = errors.New("rule table is inconsistent")

// rulesCmd groups rule table commands
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect the rule table",
}

// rulesCheckCmd validates the rule table
var rulesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that every rule compiles and no two rules select the same input",
	Args:  cobra.NoArgs,
	RunE:  runRulesCheck,
}

func runRulesCheck(cmd *cobra.Command, args []string) error {
	rules, facets, err := timeparser.LoadTables(cfg.Rules, cfg.Facets, cfg.StrictFacets)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	problems := 0
	for _, r := range rules {
		if _, err := r.Transform(); err != nil {
			fmt.Fprintf(out, "broken: %v\n", err)
			problems++
		}
	}
	for _, m := range rule.Duplicates(rules) {
		fmt.Fprintf(out, "duplicate mask: %q\n", m)
		problems++
	}
	for _, c := range rule.Conflicts(rules) {
		fmt.Fprintf(out, "ambiguous: %s\n", c)
		problems++
	}

	fmt.Fprintf(out, "%d rules, %d facets, %d problems\n", len(rules), len(facets), problems)
	if problems > 0 {
		return errRulesInconsistent
	}
	return nil
}
