package catalog

import (
	"testing"

	"github.com/couchcryptid/crop-recommender/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	crops := []domain.Crop{
		{
			Name:        "Wheat",
			Season:      domain.SeasonRabi,
			PH:          domain.Range[float64]{Min: 6.0, Max: 7.5},
			Temperature: domain.Range[float64]{Min: 10, Max: 25},
			Rainfall:    domain.Range[int]{Min: 300, Max: 450},
		},
		{
			Name:        "Backwards",
			Season:      domain.SeasonKharif,
			PH:          domain.Range[float64]{Min: 7.5, Max: 6.0},
			Temperature: domain.Range[float64]{Min: 10, Max: 25},
			Rainfall:    domain.Range[int]{Min: 450, Max: 300},
		},
		{
			Name:        "Millet",
			Season:      domain.Season("pre-monsoon"),
			PH:          domain.Range[float64]{Min: 5.5, Max: 7.5},
			Temperature: domain.Range[float64]{Min: 25, Max: 35},
			Rainfall:    domain.Range[int]{Min: 200, Max: 500},
		},
	}

	warnings := Inspect(crops)

	require.Len(t, warnings, 3)
	assert.Equal(t, "Backwards", warnings[0].Crop)
	assert.Contains(t, warnings[0].Message, "inverted pH range")
	assert.Equal(t, "Backwards", warnings[1].Crop)
	assert.Contains(t, warnings[1].Message, "inverted rainfall range 450 > 300")
	assert.Equal(t, "Millet", warnings[2].Crop)
	assert.Contains(t, warnings[2].Message, `unknown season "pre-monsoon"`)
}

func TestInspect_Clean(t *testing.T) {
	assert.Empty(t, Inspect(nil))
	assert.Empty(t, Inspect([]domain.Crop{{
		Name:   "Tomato",
		Season: domain.SeasonAny,
		PH:     domain.Range[float64]{Min: 6, Max: 7},
	}}))
}
