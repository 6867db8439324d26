// Package loader reads annotation inputs: CSV files of texts, entities
// and excluded names, and HTML pages reduced to plain text. It feeds the
// pipeline; nothing in here decides what is kept.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cognicore/annot/pkg/annot/corpus"
	"github.com/cognicore/annot/pkg/annot/internalerr"
)

// Texts reads the "text" column of a CSV file, one candidate text per
// row. The first row must be a header naming the column.
func Texts(path string) ([]string, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	col, err := columnIndex(header, "text", path)
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, len(rows))
	for _, row := range rows {
		if col < len(row) {
			texts = append(texts, row[col])
		}
	}
	return texts, nil
}

// Entities reads the "name" and "label" columns of a CSV file.
func Entities(path string) ([]corpus.Entity, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	nameCol, err := columnIndex(header, "name", path)
	if err != nil {
		return nil, err
	}
	labelCol, err := columnIndex(header, "label", path)
	if err != nil {
		return nil, err
	}
	ents := make([]corpus.Entity, 0, len(rows))
	for _, row := range rows {
		if nameCol < len(row) && labelCol < len(row) {
			ents = append(ents, corpus.Entity{Name: row[nameCol], Label: row[labelCol]})
		}
	}
	return ents, nil
}

// Excludes reads entity names to drop, one per row in the first column.
// The first row is treated as a header and skipped.
func Excludes(path string) ([]string, error) {
	rows, _, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) > 0 && row[0] != "" {
			names = append(names, row[0])
		}
	}
	return names, nil
}

func readCSV(path string) (rows [][]string, header []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err = r.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("%s: empty file: %w", path, internalerr.ErrInvalidInput)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	rows, err = r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, header, nil
}

func columnIndex(header []string, name, path string) (int, error) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%s: no %q column in header: %w", path, name, internalerr.ErrInvalidInput)
}
