package soilwater

const (
	// latent heat of vaporization of water, MJ/kg
	latentHeatMJPerKg = 2.45
	mjPerKWh          = 3.6
)

// CoolingEnergyKWh converts an evapotranspired depth over a plant area into
// the equivalent cooling energy: mm over m² is litres, litres of water are
// kilograms, kilograms times latent heat is MJ, MJ over 3.6 is kWh. The
// trailing /1000 carries the mm → m depth conversion.
func CoolingEnergyKWh(etActualMM, areaM2 float64) float64 {
	return etActualMM * areaM2 * latentHeatMJPerKg / mjPerKWh / 1000.0
}
