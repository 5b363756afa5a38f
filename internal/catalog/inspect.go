package catalog

import (
	"fmt"

	"github.com/couchcryptid/crop-recommender/internal/domain"
)

// Warning flags a crop that loaded but will behave oddly when matched.
type Warning struct {
	Crop    string `json:"crop" yaml:"crop"`
	Message string `json:"message" yaml:"message"`
}

// Inspect checks loaded crops for inverted ranges, which never match, and for
// season labels outside the known set, which only match themselves or Any.
func Inspect(crops []domain.Crop) []Warning {
	var warnings []Warning
	for _, c := range crops {
		if c.PH.Inverted() {
			warnings = append(warnings, Warning{Crop: c.Name, Message: fmt.Sprintf("inverted pH range %g > %g", c.PH.Min, c.PH.Max)})
		}
		if c.Temperature.Inverted() {
			warnings = append(warnings, Warning{Crop: c.Name, Message: fmt.Sprintf("inverted temperature range %g > %g", c.Temperature.Min, c.Temperature.Max)})
		}
		if c.Rainfall.Inverted() {
			warnings = append(warnings, Warning{Crop: c.Name, Message: fmt.Sprintf("inverted rainfall range %d > %d", c.Rainfall.Min, c.Rainfall.Max)})
		}
		if !c.Season.Known() {
			warnings = append(warnings, Warning{Crop: c.Name, Message: fmt.Sprintf("unknown season %q", c.Season)})
		}
	}
	return warnings
}
