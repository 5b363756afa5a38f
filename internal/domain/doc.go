// Package domain models crop tolerance data and the recommendation filter.
//
// # Catalog Data
//
// The catalog is a flat CSV file with a header line followed by one crop per
// line:
//
//	Name,Season,MinPH,MaxPH,MinTemp,MaxTemp,MinRain,MaxRain,Details
//	Wheat,Rabi,6.0,7.5,10,25,300,450,"Winter cereal"
//
// Parsing lives in package catalog. This package holds the values it produces
// and the matching rules applied to them.
//
// # Units
//
//	Soil pH:      dimensionless, decimal (e.g. 6.5).
//	Temperature:  degrees Celsius, decimal.
//	Rainfall:     millimetres, integer.
//
// # Seasons
//
// Indian cropping seasons are used alongside the calendar ones:
//
//	Kharif  monsoon sowing, roughly June to October.
//	Rabi    winter sowing, roughly October to March.
//	Winter, Summer  calendar seasons.
//	Any     wildcard; a crop or query with season Any matches every season.
//
// Labels outside this set are kept as free text and compared
// case-insensitively, so they only match the same label or the wildcard.
//
// # Matching
//
// A crop matches a [Query] when the query pH, temperature, and rainfall each
// fall inside the crop's closed range (bounds inclusive) and the seasons match.
// There is no scoring and no nearest-match fallback: a query either matches a
// crop or it does not, and an empty result means "no suitable crops".
//
// An inverted range (min > max) admits no value, so such a crop never matches.
//
// # Catalog Lifetime
//
// A [Catalog] is built once at startup and never mutated afterwards. It can be
// shared between goroutines without locking.
package domain
