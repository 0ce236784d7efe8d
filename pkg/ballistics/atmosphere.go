package ballistics

import "math"

const (
	// StandardAirDensity is the sea level ICAO density in kg/m^3
	StandardAirDensity = 1.225

	dryAirGasConstant   = 287.05 // J/(kg*K)
	waterVaporConstant  = 461.5  // J/(kg*K)
	pascalsPerInHg      = 3386.389
	absoluteZeroF       = -459.67
	kelvinOffset        = 273.15
	magnusBasePressure  = 610.78
	magnusCoefficient   = 17.27
	magnusTemperatureC0 = 237.3
)

// AirDensityRatio returns the density of moist air relative to StandardAirDensity.
// Saturation vapor pressure comes from the Magnus formula; dry air and vapor are
// treated as ideal gases and summed.
func AirDensityRatio(temperatureF, pressureInHg, humidityPercent float64) (float64, error) {
	if err := validateAir(temperatureF, pressureInHg, humidityPercent); err != nil {
		return 0, err
	}

	tempC := fahrenheitToCelsius(temperatureF)
	tempK := tempC + kelvinOffset

	saturation := magnusBasePressure * math.Exp(magnusCoefficient*tempC/(tempC+magnusTemperatureC0))
	vapor := saturation * humidityPercent / 100
	total := pressureInHg * pascalsPerInHg
	dry := total - vapor
	if dry <= 0 {
		return 0, invalid(ErrInvalidEnvironment, "humidityPercent", humidityPercent,
			"gives a vapor pressure above the total pressure")
	}

	density := dry/(dryAirGasConstant*tempK) + vapor/(waterVaporConstant*tempK)
	ratio := density / StandardAirDensity
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio <= 0 {
		return 0, invalid(ErrInvalidEnvironment, "temperatureF", temperatureF, "gives a non-physical air density")
	}
	return ratio, nil
}

func validateAir(temperatureF, pressureInHg, humidityPercent float64) error {
	if !finite(temperatureF) || temperatureF <= absoluteZeroF {
		return invalid(ErrInvalidEnvironment, "temperatureF", temperatureF, "must be above absolute zero")
	}
	// the Magnus fit has a pole at -237.3 C
	if fahrenheitToCelsius(temperatureF) <= -magnusTemperatureC0 {
		return invalid(ErrInvalidEnvironment, "temperatureF", temperatureF, "is outside the humidity model")
	}
	if !finite(pressureInHg) || pressureInHg <= 0 {
		return invalid(ErrInvalidEnvironment, "pressureInHg", pressureInHg, "must be positive")
	}
	if !finite(humidityPercent) || humidityPercent < 0 || humidityPercent > 100 {
		return invalid(ErrInvalidEnvironment, "humidityPercent", humidityPercent, "must be within 0..100")
	}
	return nil
}

func fahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
