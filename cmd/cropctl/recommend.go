package main

import (
	"fmt"
	"strconv"

	"github.com/couchcryptid/crop-recommender/internal/catalog"
	"github.com/couchcryptid/crop-recommender/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	keyPH          = "ph"
	keyTemperature = "temperature"
	keyRainfall    = "rainfall"
	keySeason      = "season"

	noMatchMessage = "No suitable crops found. Try adjusting inputs."
)

type recommendOutput struct {
	Query   domain.Query      `json:"query" yaml:"query"`
	Count   int               `json:"count" yaml:"count"`
	Crops   []domain.CropView `json:"crops" yaml:"crops"`
	Message string            `json:"message,omitempty" yaml:"message,omitempty"`
}

func newRecommendCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "List crops suited to the given field conditions",
		Long: `Recommend prints every catalog crop whose pH, temperature, and rainfall
ranges contain the given values and whose season matches. Ranges are
inclusive. The season "Any" matches every crop.

Example:
  cropctl recommend --ph 6.5 --temperature 20 --rainfall 350 --season Rabi
  CROPCTL_SEASON=Kharif cropctl recommend --ph 6 --temperature 30 --rainfall 1200 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecommend(cmd, v)
		},
	}

	cmd.Flags().Float64(keyPH, 0, "soil pH")
	cmd.Flags().Float64(keyTemperature, 0, "temperature in °C")
	cmd.Flags().Int(keyRainfall, 0, "rainfall in mm")
	cmd.Flags().String(keySeason, string(domain.SeasonAny), "season: Any, Winter, Summer, Kharif, Rabi, or a catalog label")
	_ = v.BindPFlags(cmd.Flags())

	return cmd
}

func runRecommend(cmd *cobra.Command, v *viper.Viper) error {
	format, err := outputFormat(v)
	if err != nil {
		return err
	}
	q, err := queryFromConfig(v)
	if err != nil {
		return err
	}

	logger := newLogger(cmd, v)
	path := v.GetString(keyCatalog)
	res, err := catalog.LoadFile(path)
	if err != nil {
		logger.Warn("catalog unavailable, continuing with what was read", "error", err, "crops", len(res.Crops))
	}
	reportSkips(logger, path, res.Skipped)

	matches := domain.Views(res.Catalog().Recommend(q))
	out := recommendOutput{Query: q, Count: len(matches), Crops: matches}
	if len(matches) == 0 {
		out.Message = noMatchMessage
	}

	w := cmd.OutOrStdout()
	switch format {
	case outputJSON:
		return writeJSON(w, out)
	case outputYAML:
		return writeYAML(w, out)
	}
	if len(matches) == 0 {
		_, err := fmt.Fprintln(w, noMatchMessage)
		return err
	}
	return writeCropTable(w, matches)
}

// queryFromConfig reads the query values as strings so that bad environment
// overrides are reported instead of silently read as zero.
func queryFromConfig(v *viper.Viper) (domain.Query, error) {
	for _, k := range []string{keyPH, keyTemperature, keyRainfall} {
		if !v.IsSet(k) {
			return domain.Query{}, fmt.Errorf("--%s is required", k)
		}
	}

	ph, err := strconv.ParseFloat(v.GetString(keyPH), 64)
	if err != nil {
		return domain.Query{}, fmt.Errorf("invalid pH %q: must be a number", v.GetString(keyPH))
	}
	temp, err := strconv.ParseFloat(v.GetString(keyTemperature), 64)
	if err != nil {
		return domain.Query{}, fmt.Errorf("invalid temperature %q: must be a number", v.GetString(keyTemperature))
	}
	rain, err := strconv.Atoi(v.GetString(keyRainfall))
	if err != nil {
		return domain.Query{}, fmt.Errorf("invalid rainfall %q: must be an integer", v.GetString(keyRainfall))
	}

	season := domain.ParseSeason(v.GetString(keySeason))
	if season == "" {
		season = domain.SeasonAny
	}

	return domain.Query{PH: ph, Temperature: temp, Rainfall: rain, Season: season}, nil
}
