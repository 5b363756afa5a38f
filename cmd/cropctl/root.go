package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/couchcryptid/crop-recommender/internal/catalog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix = "CROPCTL"

	keyCatalog  = "catalog"
	keyOutput   = "output"
	keyLogLevel = "log-level"

	defaultCatalog = "data/crops.csv"
)

// Output formats accepted by --output.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// newRootCmd builds the command tree. Every flag can also be set through a
// CROPCTL_-prefixed environment variable, e.g. CROPCTL_CATALOG or
// CROPCTL_LOG_LEVEL; flags given on the command line win.
func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "cropctl",
		Short: "Recommend crops for field conditions",
		Long: `cropctl filters a crop catalog by soil pH, temperature, rainfall, and
season, and checks catalog files for malformed lines.

The catalog is a comma-separated file with a header line and one crop per line:

  Name,Season,MinPH,MaxPH,MinTemp,MaxTemp,MinRain,MaxRain,Details`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String(keyCatalog, defaultCatalog, "path to the crop catalog file")
	root.PersistentFlags().StringP(keyOutput, "o", outputTable, "output format: table, json, or yaml")
	root.PersistentFlags().String(keyLogLevel, "warn", "log level: debug, info, warn, or error")
	_ = v.BindPFlags(root.PersistentFlags())

	root.AddCommand(newRecommendCmd(v))
	root.AddCommand(newValidateCmd(v))

	return root
}

// newLogger writes diagnostics to stderr so stdout stays parseable.
func newLogger(cmd *cobra.Command, v *viper.Viper) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString(keyLogLevel))); err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func outputFormat(v *viper.Viper) (string, error) {
	switch f := strings.ToLower(v.GetString(keyOutput)); f {
	case outputTable, outputJSON, outputYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: table, json, yaml)", f)
	}
}

// reportSkips logs a single summary line plus one debug line per skipped record.
func reportSkips(logger *slog.Logger, path string, skipped []catalog.Skip) {
	if len(skipped) == 0 {
		return
	}
	logger.Warn("catalog lines skipped", "path", path, "count", len(skipped))
	for _, s := range skipped {
		logger.Debug("skipped catalog line", "line", s.Line, "reason", s.Reason)
	}
}
