package csv

import (
	"encoding/csv"
	"io"

	"github.com/curtisnewbie/timeaxis/util/errs"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Write csv records.
func Write(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return errs.Wrap(err)
	}
	return nil
}

// Wrap csv data reader, leading BOM is dropped.
func Reader(reader io.Reader) *csv.Reader {
	var transformer = unicode.BOMOverride(encoding.Nop.NewDecoder())
	r := csv.NewReader(transform.NewReader(reader, transformer))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r
}

// Read all csv content and ignore empty row.
func ReadAllIgnoreEmpty(reader io.Reader) ([][]string, error) {
	records := [][]string{}
	r := Reader(reader)
	validRow := func(row []string) bool {
		for _, c := range row {
			if c != "" {
				return true
			}
		}
		return false
	}
	for {
		record, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, errs.Wrap(err)
		}
		if validRow(record) {
			records = append(records, record)
		}
	}
}
