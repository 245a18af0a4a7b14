package integrators

import "github.com/san-kum/neurosim/internal/dynamo"

type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

func (e *Euler) Step(sys dynamo.System, s dynamo.State, input, t, dt float64) dynamo.State {
	d := sys.Derive(s, input, t)
	var result dynamo.State
	for i := 0; i < dynamo.Dim; i++ {
		result[i] = s[i] + dt*d[i]
	}
	return result
}
