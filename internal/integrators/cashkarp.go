package integrators

import "github.com/san-kum/neurosim/internal/dynamo"

// Cash-Karp coefficients, fifth-order combination only. The literals must
// stay at exactly these values: trajectories are compared against reference
// runs bit for bit, and any rounding difference compounds over thousands of
// steps.
var (
	b21 = 0.2
	b31 = 0.075
	b32 = 0.225
	b41 = 0.3
	b42 = -0.9
	b43 = 1.2
	b51 = 0.075
	b52 = 0.675
	b53 = -0.6
	b54 = 0.75
	b61 = 0.660493827160493
	b62 = 2.5
	b63 = -5.185185185185185
	b64 = 3.888888888888889
	b65 = -0.864197530864197

	c1 = 0.098765432098765
	c3 = 0.396825396825396
	c4 = 0.231481481481481
	c5 = 0.308641975308641
	c6 = -0.035714285714285
)

// CashKarp is a six-stage explicit stepper using the fifth-order Cash-Karp
// combination. No embedded lower-order estimate is computed: every step is
// taken unconditionally at the given dt. The negotiated table step sizes
// stand in for adaptive error control.
type CashKarp struct{}

func NewCashKarp() *CashKarp { return &CashKarp{} }

func (ck *CashKarp) Step(sys dynamo.System, s dynamo.State, input, t, dt float64) dynamo.State {
	var k1, k2, k3, k4, k5, k6, aux dynamo.State

	d := sys.Derive(s, input, t)
	for i := 0; i < dynamo.Dim; i++ {
		k1[i] = dt * d[i]
		aux[i] = s[i] + b21*k1[i]
	}

	d = sys.Derive(aux, input, t)
	for i := 0; i < dynamo.Dim; i++ {
		k2[i] = dt * d[i]
		aux[i] = s[i] + b31*k1[i] + b32*k2[i]
	}

	d = sys.Derive(aux, input, t)
	for i := 0; i < dynamo.Dim; i++ {
		k3[i] = dt * d[i]
		aux[i] = s[i] + b41*k1[i] + b42*k2[i] + b43*k3[i]
	}

	d = sys.Derive(aux, input, t)
	for i := 0; i < dynamo.Dim; i++ {
		k4[i] = dt * d[i]
		aux[i] = s[i] + b51*k1[i] + b52*k2[i] + b53*k3[i] + b54*k4[i]
	}

	d = sys.Derive(aux, input, t)
	for i := 0; i < dynamo.Dim; i++ {
		k5[i] = dt * d[i]
		aux[i] = s[i] + b61*k1[i] + b62*k2[i] + b63*k3[i] + b64*k4[i] + b65*k5[i]
	}

	d = sys.Derive(aux, input, t)
	for i := 0; i < dynamo.Dim; i++ {
		k6[i] = dt * d[i]
	}

	var result dynamo.State
	for i := 0; i < dynamo.Dim; i++ {
		result[i] = s[i] + c1*k1[i] + c3*k3[i] + c4*k4[i] + c5*k5[i] + c6*k6[i]
	}

	return result
}
