// SPDX-License-Identifier: MIT

package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tsdist/matrix"
)

// Output formats.
const (
	formatCSV  = "csv"
	formatJSON = "json"
)

// readCollection loads one sequence per CSV line (ragged rows allowed) or a
// JSON/YAML array of arrays, chosen by file extension.
func readCollection(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var xs [][]float64
		if err := json.NewDecoder(f).Decode(&xs); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		return xs, nil
	case ".yaml", ".yml":
		var xs [][]float64
		if err := yaml.NewDecoder(f).Decode(&xs); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		return xs, nil
	default:
		return readCSV(f, path)
	}
}

func readCSV(r io.Reader, name string) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	xs := make([][]float64, 0, len(records))
	for i, rec := range records {
		x := make([]float64, 0, len(rec))
		for _, field := range rec {
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: line %d: %w", name, i+1, err)
			}
			x = append(x, v)
		}
		xs = append(xs, x)
	}

	return xs, nil
}

// writeMatrix renders m as CSV rows or a JSON array of rows.
func writeMatrix(w io.Writer, m *matrix.Dense, format string) error {
	return writeRows(w, m.ToRows(), format)
}

func writeRows(w io.Writer, rows [][]float64, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)

		return enc.Encode(jsonSafe(rows))
	case formatCSV:
		cw := csv.NewWriter(w)
		for _, row := range rows {
			rec := make([]string, len(row))
			for j, v := range row {
				rec[j] = strconv.FormatFloat(v, 'g', -1, 64)
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		cw.Flush()

		return cw.Error()
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, formatCSV, formatJSON)
	}
}

// jsonSafe replaces non-finite values with nil.
func jsonSafe(rows [][]float64) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		out[i] = make([]any, len(row))
		for j, v := range row {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				out[i][j] = v
			}
		}
	}

	return out
}

// openOutput returns stdout when path is empty.
func openOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}

	return f, f.Close, nil
}
