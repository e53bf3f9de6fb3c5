package main

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mbuechner/timeparser/internal/store"
	"github.com/mbuechner/timeparser/timeparser"
)

var dbPath string

// enrichCmd parses the dates of every record in a SQLite database
var enrichCmd = &cobra.Command{
	Use:   "enrich-db",
	Short: "Parse the date column of a SQLite table into a result table",
	Long: `Reads every record of store.table, parses store.input_column and
writes the result to store.output_table, replacing earlier results for the
same record. Results are committed in batches of store.batch_size.

Example:
  timeparser enrich-db --db catalogue.db`,
	Args: cobra.NoArgs,
	RunE: runEnrich,
}

func runEnrich(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sc := cfg.Store
	path := sc.Path
	if dbPath != "" {
		path = dbPath
	}
	if path == "" {
		return fmt.Errorf("no database: set store.path, TIMEPARSER_DB or --db")
	}

	p, err := newParser()
	if err != nil {
		return err
	}

	db, err := store.Open(path, store.Tables{
		Source:      sc.Table,
		IDColumn:    sc.IDColumn,
		InputColumn: sc.InputColumn,
		Output:      sc.OutputTable,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.EnsureOutput(ctx); err != nil {
		return err
	}

	records, err := db.Records(ctx)
	if err != nil {
		return err
	}
	logger.Info("Enriching records", zap.String("db", path), zap.Int("records", len(records)))
	start := time.Now()

	for i := 0; i < len(records); i += sc.BatchSize {
		batch := records[i:min(i+sc.BatchSize, len(records))]
		if err := enrichBatch(cmd, p, db, batch); err != nil {
			return err
		}
		logger.Debug("Batch written", zap.Int("done", i+len(batch)), zap.Int("records", len(records)))
	}

	st, err := db.Stats(ctx)
	if err != nil {
		return err
	}
	logger.Info("Enrichment finished",
		zap.Int("total", st.Total),
		zap.Int("parsed", st.Parsed),
		zap.Any("failures", st.Kinds),
		zap.Duration("elapsed", time.Since(start)))

	fmt.Fprintf(cmd.OutOrStdout(), "%d records, %d parsed, %d failed\n",
		st.Total, st.Parsed, st.Total-st.Parsed)
	return nil
}

func enrichBatch(cmd *cobra.Command, p *timeparser.Parser, db *store.Store, batch []store.Record) error {
	inputs := make([]string, len(batch))
	for i, rec := range batch {
		inputs[i] = rec.Input
	}

	outcomes, err := p.ParseResults(cmd.Context(), inputs, cfg.Workers)
	if err != nil {
		return err
	}

	rows := make([]store.Enrichment, len(batch))
	for i, rec := range batch {
		rows[i] = enrichment(rec, outcomes[i])
	}
	return db.Write(cmd.Context(), rows)
}

// enrichment converts a parse outcome into a result row.
func enrichment(rec store.Record, o timeparser.Outcome) store.Enrichment {
	e := store.Enrichment{RecordID: rec.ID, Input: rec.Input, Kind: o.Kind()}
	if o.Err != nil {
		return e
	}
	e.Encoded = o.String()
	e.Facets = strings.Join(o.Result.Facets, "|")
	e.Start = sql.NullInt64{Int64: o.Result.StartDays, Valid: true}
	e.End = sql.NullInt64{Int64: o.Result.EndDays, Valid: true}
	return e
}
