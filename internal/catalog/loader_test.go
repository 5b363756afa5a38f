package catalog

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/couchcryptid/crop-recommender/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHeader = "Name,Season,MinPH,MaxPH,MinTemp,MaxTemp,MinRain,MaxRain,Details\n"

func TestParse_WellFormed(t *testing.T) {
	input := testHeader +
		`Wheat,Rabi,6.0,7.5,10,25,300,450,"Winter cereal"` + "\n" +
		"Rice,kharif,5.0,6.5,20,35,1000,2000,Paddy\n"

	res, err := Parse(strings.NewReader(input))

	require.NoError(t, err)
	assert.Empty(t, res.Skipped)
	want := []domain.Crop{
		{
			Name:        "Wheat",
			Season:      domain.SeasonRabi,
			PH:          domain.Range[float64]{Min: 6.0, Max: 7.5},
			Temperature: domain.Range[float64]{Min: 10, Max: 25},
			Rainfall:    domain.Range[int]{Min: 300, Max: 450},
			Details:     "Winter cereal",
		},
		{
			Name:        "Rice",
			Season:      domain.SeasonKharif,
			PH:          domain.Range[float64]{Min: 5.0, Max: 6.5},
			Temperature: domain.Range[float64]{Min: 20, Max: 35},
			Rainfall:    domain.Range[int]{Min: 1000, Max: 2000},
			Details:     "Paddy",
		},
	}
	if diff := cmp.Diff(want, res.Crops); diff != "" {
		t.Fatalf("crops mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	res, err := Parse(strings.NewReader(testHeader))

	require.NoError(t, err)
	assert.Empty(t, res.Crops)
	assert.Empty(t, res.Skipped)
	assert.Equal(t, 0, res.Catalog().Len())
}

func TestParse_EmptySource(t *testing.T) {
	res, err := Parse(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, res.Crops)
}

func TestParse_HeaderDiscardedUnconditionally(t *testing.T) {
	input := "Wheat,Rabi,6.0,7.5,10,25,300,450,first line is data\n" +
		"Rice,Kharif,5.0,6.5,20,35,1000,2000,Paddy\n"

	res, err := Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, res.Crops, 1)
	assert.Equal(t, "Rice", res.Crops[0].Name)
}

func TestParse_ShortLineSkippedAndParsingContinues(t *testing.T) {
	input := testHeader +
		"Wheat,Rabi,6.0,7.5,10,25,300,450,Winter cereal\n" +
		"Broken,Rabi,6.0,7.5\n" +
		"Rice,Kharif,5.0,6.5,20,35,1000,2000,Paddy\n"

	res, err := Parse(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{"Wheat", "Rice"}, cropNames(res.Crops))
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 3, res.Skipped[0].Line)
	assert.Contains(t, res.Skipped[0].Reason, "expected 9 fields, got 4")
}

func TestParse_DetailsMayContainDelimiter(t *testing.T) {
	input := testHeader + "Maize,Kharif,5.5,7.5,18,32,500,800,Loam, well drained, no waterlogging\n"

	res, err := Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, res.Crops, 1)
	assert.Equal(t, "Loam, well drained, no waterlogging", res.Crops[0].Details)
}

func TestParse_EmptyDetailsAccepted(t *testing.T) {
	input := testHeader + "Maize,Kharif,5.5,7.5,18,32,500,800,\n"

	res, err := Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, res.Crops, 1)
	assert.Empty(t, res.Crops[0].Details)
}

func TestParse_NumericFaults(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		reason string
	}{
		{"bad min ph", "X,Rabi,abc,7.5,10,25,300,450,d", "MinPH"},
		{"bad max ph", "X,Rabi,6.0,,10,25,300,450,d", "MaxPH"},
		{"bad min temp", "X,Rabi,6.0,7.5,cold,25,300,450,d", "MinTemp"},
		{"bad max temp", "X,Rabi,6.0,7.5,10,hot,300,450,d", "MaxTemp"},
		{"decimal min rain", "X,Rabi,6.0,7.5,10,25,300.5,450,d", "MinRain"},
		{"bad max rain", "X,Rabi,6.0,7.5,10,25,300,lots,d", "MaxRain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := testHeader + tt.line + "\n" + "Rice,Kharif,5.0,6.5,20,35,1000,2000,Paddy\n"
			res, err := Parse(strings.NewReader(input))

			require.NoError(t, err)
			assert.Equal(t, []string{"Rice"}, cropNames(res.Crops))
			require.Len(t, res.Skipped, 1)
			assert.Equal(t, 2, res.Skipped[0].Line)
			assert.Contains(t, res.Skipped[0].Reason, tt.reason)
		})
	}
}

func TestParse_TrimsWhitespaceAndCRLF(t *testing.T) {
	input := "Name,Season,MinPH,MaxPH,MinTemp,MaxTemp,MinRain,MaxRain,Details\r\n" +
		" Wheat , rabi , 6.0 ,7.5, 10,25 , 300,450,Winter cereal\r\n"

	res, err := Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, res.Crops, 1)
	crop := res.Crops[0]
	assert.Equal(t, "Wheat", crop.Name)
	assert.Equal(t, domain.SeasonRabi, crop.Season)
	assert.Equal(t, 6.0, crop.PH.Min)
	assert.Equal(t, 300, crop.Rainfall.Min)
	assert.Equal(t, "Winter cereal", crop.Details)
}

func TestParse_BlankLinesIgnored(t *testing.T) {
	input := testHeader + "\n   \nRice,Kharif,5.0,6.5,20,35,1000,2000,Paddy\n\n"

	res, err := Parse(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{"Rice"}, cropNames(res.Crops))
	assert.Empty(t, res.Skipped)
}

func TestParse_ReadErrorKeepsPartialResult(t *testing.T) {
	input := testHeader +
		"Rice,Kharif,5.0,6.5,20,35,1000,2000,Paddy\n" +
		"Wheat,Rabi,6.0,7.5,10,25,300,450,Winter cereal\n"
	readErr := errors.New("disk unplugged")
	r := io.MultiReader(strings.NewReader(input), iotest.ErrReader(readErr))

	res, err := Parse(r)

	require.ErrorIs(t, err, readErr)
	assert.Equal(t, []string{"Rice", "Wheat"}, cropNames(res.Crops))
	assert.Empty(t, res.Skipped)
}

func TestParse_LongDetailsLine(t *testing.T) {
	details := strings.Repeat("x", 70000)
	input := testHeader +
		"Rice,Kharif,5.0,6.5,20,35,1000,2000," + details + "\n" +
		"Wheat,Rabi,6.0,7.5,10,25,300,450,Winter cereal\n"

	res, err := Parse(strings.NewReader(input))

	require.NoError(t, err)
	assert.Empty(t, res.Skipped)
	require.Equal(t, []string{"Rice", "Wheat"}, cropNames(res.Crops))
	assert.Len(t, res.Crops[0].Details, 70000)
}

func TestParse_DuplicatesKeptInOrder(t *testing.T) {
	input := testHeader +
		"Rice,Kharif,5.0,6.5,20,35,1000,2000,first\n" +
		"Rice,Kharif,5.0,6.5,20,35,1000,2000,second\n"

	res, err := Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, res.Crops, 2)
	assert.Equal(t, "first", res.Crops[0].Details)
	assert.Equal(t, "second", res.Crops[1].Details)
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"Winter cereal"`, "Winter cereal"},
		{`Winter cereal`, "Winter cereal"},
		{`"say ""hi"""`, `say "hi"`},
		{`"`, `"`},
		{`""`, ""},
		{`  "padded"  `, "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, unquote(tt.input))
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crops.csv")
	content := testHeader + "Wheat,Rabi,6.0,7.5,10,25,300,450,Winter cereal\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	res, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"Wheat"}, cropNames(res.Crops))
}

func TestLoadFile_Missing(t *testing.T) {
	res, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "open catalog")
	assert.Empty(t, res.Crops)
	assert.Equal(t, 0, res.Catalog().Len())
	assert.Empty(t, res.Catalog().Recommend(domain.Query{PH: 6.5, Temperature: 20, Rainfall: 350, Season: domain.SeasonAny}))
}

func TestLoadFile_BundledCatalog(t *testing.T) {
	res, err := LoadFile(filepath.Join("..", "..", "data", "crops.csv"))

	require.NoError(t, err)
	assert.Empty(t, res.Skipped)
	assert.Len(t, res.Crops, 13)
	assert.Empty(t, Inspect(res.Crops))

	got := res.Catalog().Recommend(domain.Query{PH: 6.5, Temperature: 20, Rainfall: 350, Season: domain.SeasonRabi})
	assert.Equal(t, []string{"Wheat", "Barley", "Mustard"}, cropNames(got))
}

func cropNames(crops []domain.Crop) []string {
	out := make([]string, len(crops))
	for i, c := range crops {
		out[i] = c.Name
	}
	return out
}
