// Package transformer defines the stage contract for the cleaning pipeline
// and the ordered chain that executes stages against record batches.
package transformer

import "onrretl/pkg/records"

// Transformer is one cleaning stage. Apply mutates records in place and
// returns the (possibly reused) slice. A non-nil error is fatal for the run:
// the caller stops the stream and no further batches are written.
type Transformer interface {
	Apply([]records.Record) ([]records.Record, error)
}

// Chain is an ordered list of transformers.
type Chain []Transformer

// Apply runs each stage in order, stopping at the first error.
func (c Chain) Apply(in []records.Record) ([]records.Record, error) {
	out := in
	for _, t := range c {
		if t == nil {
			continue
		}
		var err error
		out, err = t.Apply(out)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}
