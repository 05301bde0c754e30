package physics

// Physical constants of the power-balance model. The web frontend runs the
// same model with the same values, so server and client estimates agree.
const (
	gravity           = 9.81  // m/s^2
	rollingResistance = 0.005 // Cr
	dragArea          = 0.3   // CdA, m^2
	airDensity        = 1.225 // kg/m^3
	windSpeed         = 0.0   // m/s headwind
)

const (
	newtonIterations = 10
	initialSpeed     = 8.0 // m/s
	minSpeed         = 1.0 // m/s
)

// steadySpeed solves the power balance
//
//	P = Cr·m·g·v + 0.5·CdA·ρ·(v+w)^3 + m·g·grade·v
//
// for the steady-state speed v with Newton-Raphson. The iteration count is
// fixed at 10 with no convergence exit: estimates must be reproducible
// bit-for-bit, and an adaptive stop would change results between inputs.
// v is clamped to 1 m/s after each step to keep the solve away from
// non-physical stalls.
func steadySpeed(power, weight, grade float64) float64 {
	v := initialSpeed
	for i := 0; i < newtonIterations; i++ {
		rolling := rollingResistance * weight * gravity * v
		rel := v + windSpeed
		air := 0.5 * dragArea * airDensity * rel * rel * rel
		climb := weight * gravity * grade * v

		f := rolling + air + climb - power
		df := rollingResistance*weight*gravity +
			1.5*dragArea*airDensity*rel*rel +
			weight*gravity*grade

		v -= f / df
		if v < minSpeed {
			v = minSpeed
		}
	}
	return v
}
