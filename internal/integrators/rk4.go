package integrators

import "github.com/san-kum/neurosim/internal/dynamo"

type RK4 struct{}

func NewRK4() *RK4 { return &RK4{} }

func (r *RK4) Step(sys dynamo.System, s dynamo.State, input, t, dt float64) dynamo.State {
	var aux dynamo.State

	k1 := sys.Derive(s, input, t)

	for i := 0; i < dynamo.Dim; i++ {
		aux[i] = s[i] + dt*0.5*k1[i]
	}
	k2 := sys.Derive(aux, input, t+dt*0.5)

	for i := 0; i < dynamo.Dim; i++ {
		aux[i] = s[i] + dt*0.5*k2[i]
	}
	k3 := sys.Derive(aux, input, t+dt*0.5)

	for i := 0; i < dynamo.Dim; i++ {
		aux[i] = s[i] + dt*k3[i]
	}
	k4 := sys.Derive(aux, input, t+dt)

	var result dynamo.State
	dt6 := dt / 6.0
	for i := 0; i < dynamo.Dim; i++ {
		result[i] = s[i] + dt6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}

	return result
}
