package timeparser

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Outcome is the result of one input of a batch.
type Outcome struct {
	Result Result
	Err    error
}

// String returns the encoded form of a successful outcome and "" otherwise.
func (o Outcome) String() string {
	if o.Err != nil {
		return ""
	}
	return o.Result.String()
}

// Kind returns the failure kind of the outcome, see ErrorKind.
func (o Outcome) Kind() string {
	return ErrorKind(o.Err)
}

// ParseResults parses inputs on up to workers goroutines and returns one
// Outcome per input, in input order. Failures are logged like in ParseTime.
// It stops early and returns the context's error if ctx is cancelled.
func (p *Parser) ParseResults(ctx context.Context, inputs []string, workers int) ([]Outcome, error) {
	out := make([]Outcome, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, raw := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := p.parseLogged(raw)
			out[i] = Outcome{Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseAll is ParseResults reduced to the encoded form of each input.
func (p *Parser) ParseAll(ctx context.Context, inputs []string, workers int) ([]string, error) {
	outcomes, err := p.ParseResults(ctx, inputs, workers)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(outcomes))
	for i, o := range outcomes {
		out[i] = o.String()
	}
	return out, nil
}
