// Package output serializes the scraped record table: CSV (with
// re-import for round-trips), JSON, and a Markdown rendering for
// detail pages.
package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/promo-watch/promoscrape/pkg/models"
)

// SaveCSV writes records to path with a header row, fields in the
// fixed schema order.
func SaveCSV(records []models.Record, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(models.FieldNames); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		if err := writer.Write(r.Fields()); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// LoadCSV reads a file written by SaveCSV back into records. The
// header row must match the fixed schema.
func LoadCSV(path string) ([]models.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv file %s is empty", path)
	}

	header := rows[0]
	if len(header) != len(models.FieldNames) {
		return nil, fmt.Errorf("unexpected csv header %v", header)
	}
	for i, name := range models.FieldNames {
		if header[i] != name {
			return nil, fmt.Errorf("unexpected csv column %q, want %q", header[i], name)
		}
	}

	records := make([]models.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(models.FieldNames) {
			return nil, fmt.Errorf("csv row has %d fields, want %d", len(row), len(models.FieldNames))
		}
		records = append(records, models.Record{
			Name:         row[0],
			CurrentPrice: row[1],
			RegularPrice: row[2],
			Discount:     row[3],
			ValidityDate: row[4],
			Source:       row[5],
		})
	}
	return records, nil
}
