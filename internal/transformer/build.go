package transformer

import (
	"fmt"

	"onrretl/internal/config"
	"onrretl/internal/transformer/builtin"
)

// FromConfig builds the cleaning chain declared by the pipeline's transform
// section. Unknown kinds are an error; ordering constraints are enforced
// separately by config.ValidatePipeline.
func FromConfig(specs []config.Transform) (Chain, error) {
	chain := make(Chain, 0, len(specs))
	for i, t := range specs {
		switch t.Kind {
		case "coerce":
			chain = append(chain, builtin.CoerceNumeric{
				Columns: t.Options.StringSlice("columns"),
			})
		case "fill_zero":
			chain = append(chain, builtin.FillZero{
				Columns: t.Options.StringSlice("columns"),
			})
		case "normalize_text":
			chain = append(chain, builtin.NormalizeText{
				Columns: t.Options.StringSlice("columns"),
			})
		case "correct_values":
			var table map[string]string
			if m := t.Options.StringMap("corrections"); len(m) > 0 {
				table = m
			}
			chain = append(chain, builtin.CorrectValues{
				Column: t.Options.String("column", ""),
				Table:  table,
			})
		case "derive_efficiency":
			chain = append(chain, builtin.DeriveEfficiency{})
		default:
			return nil, fmt.Errorf("transform[%d]: unknown kind %q", i, t.Kind)
		}
	}
	return chain, nil
}
