package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/openrx/pharmacy-api/logging"
	"golang.org/x/text/encoding/charmap"
)

// csvColumns is the minimum column count of a catalog export row:
// id, name, genericName, brand, category, price, stock, dosage, form,
// manufacturer, expiryDate, prescriptionRequired.
const csvColumns = 12

// LoadCSV reads a catalog export and returns its medicines. Pharmacy
// management systems commonly export in Windows-1252, so files that are not
// valid UTF-8 are decoded through that charmap first. Rows that cannot be
// parsed are skipped with a warning rather than failing the whole import.
func LoadCSV(path string) ([]Medicine, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	if !utf8.Valid(raw) {
		decoded, err := io.ReadAll(charmap.Windows1252.NewDecoder().Reader(bytes.NewReader(raw)))
		if err != nil {
			return nil, fmt.Errorf("failed to decode catalog file %s: %w", path, err)
		}
		raw = decoded
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}

	var medicines []Medicine
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logging.Warn("Skipping unreadable catalog row", "error", err)
			continue
		}

		m, err := medicineFromRecord(record)
		if err != nil {
			logging.Warn("Skipping invalid catalog row", "error", err)
			continue
		}
		medicines = append(medicines, m)
	}

	logging.Info("Catalog import completed", "file", path, "medicines", len(medicines))
	return medicines, nil
}

func medicineFromRecord(record []string) (Medicine, error) {
	if len(record) < csvColumns {
		return Medicine{}, fmt.Errorf("expected at least %d columns, got %d", csvColumns, len(record))
	}

	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	if record[0] == "" || record[1] == "" {
		return Medicine{}, fmt.Errorf("missing id or name")
	}

	price, err := strconv.ParseFloat(record[5], 64)
	if err != nil || price < 0 {
		return Medicine{}, fmt.Errorf("invalid price %q for %s", record[5], record[1])
	}

	stock, err := strconv.Atoi(record[6])
	if err != nil || stock < 0 {
		return Medicine{}, fmt.Errorf("invalid stock %q for %s", record[6], record[1])
	}

	m := Medicine{
		ID:                   record[0],
		Name:                 record[1],
		GenericName:          record[2],
		Brand:                record[3],
		Category:             record[4],
		Price:                price,
		Stock:                stock,
		Dosage:               record[7],
		Form:                 record[8],
		Manufacturer:         record[9],
		ExpiryDate:           record[10],
		PrescriptionRequired: parseBool(record[11]),
	}

	if len(record) > 12 {
		m.Description = record[12]
	}

	return m, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
