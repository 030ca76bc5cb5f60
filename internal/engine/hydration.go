package engine

const (
	BaseHydrationLitres = 2.5
	hydrationStepLitres = 0.5

	BloodPressureThreshold = 130
	BloodSugarThreshold    = 150
	ProteinThreshold       = 80
)

// ComputeHydrationTarget returns the recommended daily water intake in litres.
// Each rule is applied independently over the 2.5 litre base.
func ComputeHydrationTarget(r VitalReadings) float64 {
	litres := BaseHydrationLitres

	if r.BloodPressureSystolic > BloodPressureThreshold {
		litres += hydrationStepLitres
	}
	if r.BloodSugar > BloodSugarThreshold {
		litres += hydrationStepLitres
	}
	if r.ProteinLevel > ProteinThreshold {
		litres -= hydrationStepLitres
	}

	return litres
}
