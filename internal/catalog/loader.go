// Package catalog loads crop catalogs from delimited text files.
//
// The file has a header line followed by one crop per line with nine
// comma-separated fields:
//
//	Name,Season,MinPH,MaxPH,MinTemp,MaxTemp,MinRain,MaxRain,Details
//
// The split stops after the ninth field, so Details may itself contain commas.
// Lines that do not produce a valid crop are skipped and reported in
// [Result.Skipped]; bad data never aborts a load.
package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/crop-recommender/internal/domain"
)

// FieldCount is the number of fields in a catalog line.
const FieldCount = 9

// maxLineSize bounds a single catalog line. Details is free text and may run
// well past the scanner's 64 KiB default.
const maxLineSize = 16 << 20

// Skip records a data line that was dropped and why.
type Skip struct {
	Line   int    `json:"line" yaml:"line"`
	Reason string `json:"reason" yaml:"reason"`
}

// Result is the outcome of a load: every crop parsed so far plus the lines
// that were skipped.
type Result struct {
	Crops   []domain.Crop
	Skipped []Skip
}

// Catalog builds the read-only catalog from the parsed crops.
func (r Result) Catalog() *domain.Catalog {
	return domain.NewCatalog(r.Crops)
}

// LoadFile opens path and parses it. If the file cannot be opened or read,
// the error is returned together with whatever was parsed before the fault;
// callers are expected to log it and carry on with the partial result.
func LoadFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	res, err := Parse(f)
	if err != nil {
		return res, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return res, nil
}

// Parse reads a catalog from r. The first line is always treated as the
// header and discarded. The returned error reports only read failures.
func Parse(r io.Reader) (Result, error) {
	res := Result{Crops: []domain.Crop{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum == 1 {
			continue
		}

		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		crop, err := parseLine(line)
		if err != nil {
			res.Skipped = append(res.Skipped, Skip{Line: lineNum, Reason: err.Error()})
			continue
		}
		res.Crops = append(res.Crops, crop)
	}

	if err := scanner.Err(); err != nil {
		return res, err
	}
	return res, nil
}

// parseLine converts one data line into a crop.
func parseLine(line string) (domain.Crop, error) {
	fields := strings.SplitN(line, ",", FieldCount)
	if len(fields) != FieldCount {
		return domain.Crop{}, fmt.Errorf("expected %d fields, got %d", FieldCount, len(fields))
	}

	minPH, err := parseFloat("MinPH", fields[2])
	if err != nil {
		return domain.Crop{}, err
	}
	maxPH, err := parseFloat("MaxPH", fields[3])
	if err != nil {
		return domain.Crop{}, err
	}
	minTemp, err := parseFloat("MinTemp", fields[4])
	if err != nil {
		return domain.Crop{}, err
	}
	maxTemp, err := parseFloat("MaxTemp", fields[5])
	if err != nil {
		return domain.Crop{}, err
	}
	minRain, err := parseInt("MinRain", fields[6])
	if err != nil {
		return domain.Crop{}, err
	}
	maxRain, err := parseInt("MaxRain", fields[7])
	if err != nil {
		return domain.Crop{}, err
	}

	return domain.Crop{
		Name:        strings.TrimSpace(fields[0]),
		Season:      domain.ParseSeason(fields[1]),
		PH:          domain.Range[float64]{Min: minPH, Max: maxPH},
		Temperature: domain.Range[float64]{Min: minTemp, Max: maxTemp},
		Rainfall:    domain.Range[int]{Min: minRain, Max: maxRain},
		Details:     unquote(fields[8]),
	}, nil
}

func parseFloat(column, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", column, s)
	}
	return v, nil
}

func parseInt(column, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", column, s)
	}
	return v, nil
}

// unquote strips one pair of enclosing double quotes from the details field
// and collapses doubled quotes inside it, e.g. `"Winter cereal"` -> `Winter cereal`.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return strings.ReplaceAll(s[1:len(s)-1], `""`, `"`)
	}
	return s
}
