package timing

import "github.com/san-kum/neurosim/internal/dynamo"

// Entry pairs an integration step size with the maximum number of output
// points obtainable per second of simulated burst at that step size. Larger
// steps simulate faster but yield fewer points.
type Entry struct {
	Dt     float64
	Points float64
}

// Table is an immutable sequence of entries ordered by ascending step size,
// with strictly decreasing achievable points. The ordering is enforced at
// construction so the search can rely on it.
type Table []Entry

// New validates entries and returns them as a Table.
func New(entries []Entry) (Table, error) {
	if len(entries) == 0 {
		return nil, dynamo.ErrEmptyTable
	}
	for i := range entries {
		if entries[i].Dt <= 0 || entries[i].Points <= 0 {
			return nil, dynamo.ErrTableOrder
		}
		if i > 0 && (entries[i].Dt <= entries[i-1].Dt || entries[i].Points >= entries[i-1].Points) {
			return nil, dynamo.ErrTableOrder
		}
	}
	return Table(entries), nil
}

// minPoints is the achievable-points value of the largest step size.
func (t Table) minPoints() float64 { return t[len(t)-1].Points }

// DefaultTable returns the calibrated table for the membrane model: for each
// step size, the measured maximum points per second of burst the integrator
// sustains in real time.
func DefaultTable() Table {
	return Table{
		{0.0005, 577638.0},
		{0.001, 286092.5},
		{0.0015, 189687.0},
		{0.002, 142001.8},
		{0.003, 94527.4},
		{0.005, 56664.4},
		{0.01, 28313.6},
		{0.015, 18381.1},
		{0.02, 14223.2},
		{0.03, 9497.0},
		{0.05, 5716.9},
		{0.1, 2829.7},
	}
}
