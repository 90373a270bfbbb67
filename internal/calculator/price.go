package calculator

// GramsPerTroyOunce converts prices quoted per troy ounce to per gram.
const GramsPerTroyOunce = 31.1034768

// DefaultTaxRate is the sales tax applied on top of the converted price.
const DefaultTaxRate = 0.03

// PricePerUnit converts a reference-currency price per quoted unit into local currency per unit mass.
func PricePerUnit(referencePrice, exchangeRate, unitMass float64) float64 {
	return referencePrice * exchangeRate / unitMass
}

// TaxAdjusted applies a flat tax rate to price.
func TaxAdjusted(price, taxRate float64) float64 {
	return price * (1 + taxRate)
}
