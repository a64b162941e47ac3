package metrics

import (
	"errors"
)

// Sentinel kinds for metrics errors.
var (
	ErrGather = errors.New("metrics gather failed")
)

// Snapshot gathers the custom registry into name -> sample count, mainly for
// diagnostics and tests.
func Snapshot() (map[string]int, error) {
	families, err := customRegistry.Gather()
	if err != nil {
		return nil, errors.Join(ErrGather, err)
	}
	out := make(map[string]int, len(families))
	for _, f := range families {
		out[f.GetName()] = len(f.GetMetric())
	}
	return out, nil
}
