package timing

import "math"

// MaxSubSteps caps the integrator applications per host tick so a
// misconfigured instance still has a bounded worst-case cost.
const MaxSubSteps = 10000

// noMatch is the sentinel reported when no table entry can cover a request.
const noMatch = -1.0

// Negotiator reconciles the host tick period with the step sizes the table
// allows. It selects the largest step size for which a near-integer number
// of output samples tiles the requested burst window, minimizing per-tick
// work while keeping phase drift between successive bursts low.
type Negotiator struct {
	table Table
}

func NewNegotiator(tbl Table) *Negotiator {
	return &Negotiator{table: tbl}
}

// Negotiate returns the step size and sub-step count for one host tick.
// dt is the current step size; it is returned unchanged unless the table
// search selects a new one. period is the authoritative host tick period
// and burst the target window the sub-steps should approximate in real
// time; burst <= 0 requests plain period tiling at the current dt.
func (n *Negotiator) Negotiate(dt, period, burst float64) (float64, int) {
	if period <= 0 {
		return dt, 1
	}

	if burst > 0 {
		freq := 1.0 / period
		ptsLive := burst * freq
		if newDt, pts := n.search(ptsLive); pts != noMatch {
			return newDt, clampSteps(math.Round(pts / ptsLive))
		}
		// No entry covers the request: keep dt, tile the period below.
	}

	if dt <= 0 {
		return dt, 1
	}
	return dt, clampSteps(math.Round(period / dt))
}

// search walks integer multiples of the requested burst points looking for
// the largest step size whose achievable points are a near-integer multiple
// of the request. If no multiple passes the acceptance test, the last
// scanned multiple is reused for an unconditional pick. That final multiple
// depends on how many were tried before the loop bound was reached, so the
// fallback choice is sensitive to the iteration count; existing deployments
// depend on the exact selection, so the behavior is kept as is.
func (n *Negotiator) search(ptsLive float64) (float64, float64) {
	tbl := n.table
	if len(tbl) == 0 {
		return 0, noMatch
	}

	aux := ptsLive
	var cand *Entry
	for factor := 1; aux < tbl.minPoints(); factor++ {
		aux = ptsLive * float64(factor)
		for i := len(tbl) - 1; i >= 0; i-- {
			if tbl[i].Points > aux {
				cand = &tbl[i]
				break
			}
		}
		if cand != nil {
			ratio := cand.Points / ptsLive
			intPart := math.Trunc(ratio)
			if ratio-intPart <= 0.1*intPart {
				return cand.Dt, cand.Points
			}
		}
	}

	for i := len(tbl) - 1; i >= 0; i-- {
		if tbl[i].Points > aux {
			return tbl[i].Dt, tbl[i].Points
		}
	}
	return 0, noMatch
}

func clampSteps(steps float64) int {
	if steps < 1 {
		return 1
	}
	if steps > MaxSubSteps {
		return MaxSubSteps
	}
	return int(steps)
}
