package scale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NA is the display string for regions with no population record.
const NA = "N/A"

var printer = message.NewPrinter(language.English)

// Int formats an integer with locale thousands separators.
func Int(n int) string {
	return printer.Sprintf("%d", n)
}

// Float formats a float with locale thousands separators and the given
// number of decimal places.
func Float(v float64, decimals int) string {
	return printer.Sprintf("%.*f", decimals, v)
}

// Population formats a population count with its unit.
func Population(n int) string {
	return Int(n) + " people"
}

// Density formats a density value with its unit.
func Density(v float64) string {
	return Float(v, 0) + " people/km²"
}

// Area formats an area value with its unit.
func Area(v float64) string {
	return Float(v, 2) + " km²"
}
