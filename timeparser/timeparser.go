// Package timeparser turns free-text German date expressions from catalogue
// records into a sortable day range and a set of era facets.
//
// The pipeline has four stages:
//
//  1. a rule is selected by the shape of the input (package rule);
//  2. the rule rewrites the input into canonical form (package normalize);
//     inputs no rule fits are taken as canonical already;
//  3. the canonical form is parsed into a time span (package timespan);
//  4. the span is encoded as facet notations and day indices.
//
// ParseTime returns the encoded form,
//
//	<facet notations joined by "|"> <start day>|<end day>
//
// e.g. "time_60900 675700|693961" for "2. Hälfte 19. Jahrhundert", and the
// empty string for anything it cannot interpret. Parse returns every
// intermediate result and the reason for a failure.
//
// A Parser is immutable apart from its warning counter and is safe for
// concurrent use by multiple goroutines.
package timeparser

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mbuechner/timeparser/data"
	"github.com/mbuechner/timeparser/datetime"
	"github.com/mbuechner/timeparser/facet"
	"github.com/mbuechner/timeparser/internal/textfold"
	"github.com/mbuechner/timeparser/normalize"
	"github.com/mbuechner/timeparser/rule"
	"github.com/mbuechner/timeparser/timespan"
)

// Parser interprets date expressions against a rule table and a facet
// table.
type Parser struct {
	rules      []rule.Rule
	transforms map[rule.Rule]*normalize.Transform
	facets     []facet.Facet
	logger     *zap.Logger
	warnings   *warningLimiter
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger parse failures are reported to. The default
// discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithWarningLimit sets how many parse failures are logged before the
// Parser stops logging them. The default is DefaultWarningLimit.
func WithWarningLimit(n int) Option {
	return func(p *Parser) {
		p.warnings = newWarningLimiter(max(n, 0))
	}
}

// New returns a Parser for the given tables. Every rule is compiled up
// front; a rule that does not compile is an error. The tables must not be
// modified afterwards.
func New(rules []rule.Rule, facets []facet.Facet, opts ...Option) (*Parser, error) {
	p := &Parser{
		rules:      rules,
		transforms: make(map[rule.Rule]*normalize.Transform, len(rules)),
		facets:     facets,
		logger:     zap.NewNop(),
		warnings:   newWarningLimiter(DefaultWarningLimit),
	}
	for _, opt := range opts {
		opt(p)
	}
	for _, r := range rules {
		if _, ok := p.transforms[r]; ok {
			continue
		}
		t, err := r.Transform()
		if err != nil {
			return nil, err
		}
		p.transforms[r] = t
	}
	return p, nil
}

// Default returns a Parser for the rule and facet tables shipped with the
// module.
func Default(opts ...Option) (*Parser, error) {
	return Load("", "", true, opts...)
}

// Load reads the rule and facet tables from the given files and returns a
// Parser for them. An empty path selects the table shipped with the
// module. strict is passed to facet.Read.
func Load(rulesPath, facetsPath string, strict bool, opts ...Option) (*Parser, error) {
	rules, facets, err := LoadTables(rulesPath, facetsPath, strict)
	if err != nil {
		return nil, err
	}
	return New(rules, facets, opts...)
}

// LoadTables reads the rule and facet tables like Load, without building a
// Parser.
func LoadTables(rulesPath, facetsPath string, strict bool) ([]rule.Rule, []facet.Facet, error) {
	rulesData, err := readOr(rulesPath, data.Rules)
	if err != nil {
		return nil, nil, err
	}
	rules, err := rule.Read(bytes.NewReader(rulesData))
	if err != nil {
		return nil, nil, fmt.Errorf("timeparser: rules %s: %w", describe(rulesPath), err)
	}

	facetsData, err := readOr(facetsPath, data.Facets)
	if err != nil {
		return nil, nil, err
	}
	facets, err := facet.Read(bytes.NewReader(facetsData), strict)
	if err != nil {
		return nil, nil, fmt.Errorf("timeparser: facets %s: %w", describe(facetsPath), err)
	}
	return rules, facets, nil
}

func readOr(path string, embedded []byte) ([]byte, error) {
	if path == "" {
		return embedded, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("timeparser: %w", err)
	}
	return b, nil
}

func describe(path string) string {
	if path == "" {
		return "(embedded)"
	}
	return path
}

// Rules returns the rule table.
func (p *Parser) Rules() []rule.Rule { return p.rules }

// Facets returns the facet table.
func (p *Parser) Facets() []facet.Facet { return p.facets }

// Result holds every stage of a successful parse.
type Result struct {
	Input      string            `json:"input"`
	Rule       *rule.Rule        `json:"rule,omitempty"` // nil when the input was canonical
	Normalized string            `json:"normalized"`
	Span       timespan.TimeSpan `json:"span"`
	Facets     []string          `json:"facets"`
	StartDays  int64             `json:"start_days"`
	EndDays    int64             `json:"end_days"`
}

// String returns the encoded form produced by ParseTime.
func (r Result) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(r.Facets, "|"))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatInt(r.StartDays, 10))
	b.WriteByte('|')
	b.WriteString(strconv.FormatInt(r.EndDays, 10))
	return b.String()
}

// ParseTime returns the encoded form of raw, or "" if raw is empty or
// cannot be interpreted. Failures are logged, up to the warning limit.
func (p *Parser) ParseTime(raw string) string {
	res, err := p.parseLogged(raw)
	if err != nil {
		return ""
	}
	return res.String()
}

// parseLogged is Parse with failures reported to the logger. Empty input
// fails with errEmptyInput and is not logged.
func (p *Parser) parseLogged(raw string) (res Result, err error) {
	if raw == "" {
		return Result{}, errEmptyInput
	}
	defer func() {
		if r := recover(); r != nil {
			res, err = Result{Input: raw}, fmt.Errorf("%w: panic: %v", ErrGrammar, r)
			p.warn(raw, err)
		}
	}()

	res, err = p.Parse(raw)
	if err != nil {
		p.warn(raw, err)
	}
	return res, err
}

// Parse interprets raw and returns all intermediate results. The error
// wraps one of ErrAmbiguousRule, ErrNormalization, ErrGrammar or
// ErrCalendar. Parse does not log.
func (p *Parser) Parse(raw string) (Result, error) {
	res := Result{Input: raw}

	r, ok, err := rule.Find(p.rules, raw)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrAmbiguousRule, err)
	}
	if ok {
		res.Rule = &r
		res.Normalized, err = p.transforms[r].Apply(raw)
		if err != nil {
			return res, fmt.Errorf("%w: %w", ErrNormalization, err)
		}
	} else {
		res.Normalized = textfold.ComposeNFC(raw)
	}

	res.Span, err = timespan.Parse(res.Normalized)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrGrammar, err)
	}

	if res.StartDays, err = dayIndex(res.Span.Start); err != nil {
		return res, err
	}
	if res.EndDays, err = dayIndex(res.Span.End); err != nil {
		return res, err
	}

	res.Facets = facet.Assign(p.facets, int64(res.Span.Start.Signed()), int64(res.Span.End.Signed()))
	return res, nil
}

func dayIndex(d datetime.Date) (int64, error) {
	n, err := d.DayIndex()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCalendar, err)
	}
	return n, nil
}

func (p *Parser) warn(raw string, err error) {
	n, ok := p.warnings.next()
	if !ok {
		return
	}
	p.logger.Warn("cannot parse time expression",
		zap.String("input", raw),
		zap.String("kind", ErrorKind(err)),
		zap.Error(err))
	if n == p.warnings.limit {
		p.logger.Warn("warning limit reached, further parse failures are not logged",
			zap.Int64("limit", p.warnings.limit))
	}
}

// WarningsLogged returns the number of parse failures that were logged.
func (p *Parser) WarningsLogged() int64 {
	return p.warnings.logged()
}
