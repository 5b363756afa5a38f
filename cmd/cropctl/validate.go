package main

import (
	"fmt"
	"io"

	"github.com/couchcryptid/crop-recommender/internal/catalog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type validateOutput struct {
	Path     string            `json:"path" yaml:"path"`
	Crops    int               `json:"crops" yaml:"crops"`
	Skipped  []catalog.Skip    `json:"skipped" yaml:"skipped"`
	Warnings []catalog.Warning `json:"warnings" yaml:"warnings"`
}

func newValidateCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a catalog file for malformed lines and suspicious ranges",
		Long: `Validate loads the catalog and reports how many crops were read, every
line that was skipped and why, and crops whose ranges are inverted or whose
season is not one of Any, Winter, Summer, Kharif, or Rabi.

A Details value wrapped in double quotes is read without the enclosing
quotes, and doubled quotes inside it become a single quote.

Skipped lines and warnings do not fail the command; an unreadable file does.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, v)
		},
	}
}

func runValidate(cmd *cobra.Command, v *viper.Viper) error {
	format, err := outputFormat(v)
	if err != nil {
		return err
	}

	path := v.GetString(keyCatalog)
	res, err := catalog.LoadFile(path)
	if err != nil {
		return err
	}

	out := validateOutput{
		Path:     path,
		Crops:    len(res.Crops),
		Skipped:  res.Skipped,
		Warnings: catalog.Inspect(res.Crops),
	}
	if out.Skipped == nil {
		out.Skipped = []catalog.Skip{}
	}
	if out.Warnings == nil {
		out.Warnings = []catalog.Warning{}
	}

	w := cmd.OutOrStdout()
	switch format {
	case outputJSON:
		return writeJSON(w, out)
	case outputYAML:
		return writeYAML(w, out)
	}
	return writeValidateText(w, out)
}

func writeValidateText(w io.Writer, out validateOutput) error {
	if _, err := fmt.Fprintf(w, "%s: %d crops loaded, %d lines skipped, %d warnings\n",
		out.Path, out.Crops, len(out.Skipped), len(out.Warnings)); err != nil {
		return err
	}
	for _, s := range out.Skipped {
		if _, err := fmt.Fprintf(w, "  line %d: %s\n", s.Line, s.Reason); err != nil {
			return err
		}
	}
	for _, wn := range out.Warnings {
		if _, err := fmt.Fprintf(w, "  %s: %s\n", wn.Crop, wn.Message); err != nil {
			return err
		}
	}
	return nil
}
