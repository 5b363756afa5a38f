package domain

import "fmt"

// Range is a closed interval [Min, Max]. Bounds are inclusive.
type Range[T float64 | int] struct {
	Min T `json:"min" yaml:"min"`
	Max T `json:"max" yaml:"max"`
}

// Contains reports whether v lies within the range, bounds included.
// An inverted range contains nothing.
func (r Range[T]) Contains(v T) bool {
	return r.Min <= v && v <= r.Max
}

// Inverted reports whether Min is greater than Max.
func (r Range[T]) Inverted() bool {
	return r.Min > r.Max
}

// Crop is one catalog entry: the conditions a crop tolerates.
type Crop struct {
	Name        string         `json:"name"`
	Season      Season         `json:"season"`
	PH          Range[float64] `json:"ph"`
	Temperature Range[float64] `json:"temperature"` // degrees Celsius
	Rainfall    Range[int]     `json:"rainfall"`    // millimetres
	Details     string         `json:"details"`
}

// Admits reports whether the crop tolerates the queried conditions.
func (c Crop) Admits(q Query) bool {
	return c.PH.Contains(q.PH) &&
		c.Temperature.Contains(q.Temperature) &&
		c.Rainfall.Contains(q.Rainfall) &&
		c.Season.Matches(q.Season)
}

// CropView is the display form of a Crop with ranges pre-formatted.
type CropView struct {
	Name        string `json:"name" yaml:"name"`
	Season      string `json:"season" yaml:"season"`
	PH          string `json:"ph_range" yaml:"ph_range"`
	Temperature string `json:"temperature_range" yaml:"temperature_range"`
	Rainfall    string `json:"rainfall_range" yaml:"rainfall_range"`
	Details     string `json:"details" yaml:"details"`
}

// View formats the crop for display: pH to one decimal, temperature to whole
// degrees, rainfall as integers.
func (c Crop) View() CropView {
	return CropView{
		Name:        c.Name,
		Season:      c.Season.String(),
		PH:          fmt.Sprintf("%.1f–%.1f", c.PH.Min, c.PH.Max),
		Temperature: fmt.Sprintf("%.0f–%.0f", c.Temperature.Min, c.Temperature.Max),
		Rainfall:    fmt.Sprintf("%d–%d", c.Rainfall.Min, c.Rainfall.Max),
		Details:     c.Details,
	}
}

// Views formats a slice of crops, preserving order.
func Views(crops []Crop) []CropView {
	views := make([]CropView, len(crops))
	for i := range crops {
		views[i] = crops[i].View()
	}
	return views
}
