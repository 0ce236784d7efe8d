package ballistics

import "math"

const (
	// referenceDragCoefficient is the single effective drag coefficient of the
	// point-mass model. There is no Mach dependence.
	referenceDragCoefficient = 0.5

	// squareInchesPerPoundToSI converts a ballistic coefficient in lb/in^2 to kg/m^2
	squareInchesPerPoundToSI = 0.00064516 / 0.45359237
)

// DragFactor returns the per-meter drag constant of a projectile at standard density.
// The ballistic coefficient is read as sectional density over form factor, so the
// frontal area per unit mass is (pi/4)/BC.
func DragFactor(ballisticCoefficient float64) float64 {
	areaPerMass := math.Pi / 4 * squareInchesPerPoundToSI / ballisticCoefficient
	return StandardAirDensity * referenceDragCoefficient * areaPerMass
}

// DragDeceleration returns the drag acceleration (m/s^2) for an air-relative velocity
// (m/s): 0.5 * densityRatio * k * |v| * v, opposing v. k comes from DragFactor.
// The quadratic form is the simple coefficient model, but BC divides k rather than
// multiplying it, so a higher ballistic coefficient means less drag.
func DragDeceleration(velocity Vector, ballisticCoefficient, airDensityRatio float64) Vector {
	speed := velocity.Norm()
	if speed == 0 {
		return Vector{}
	}
	scale := 0.5 * airDensityRatio * DragFactor(ballisticCoefficient) * speed
	return velocity.Scale(-scale)
}
