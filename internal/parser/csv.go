package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rcalloway/notesynth/internal/refdoc"
)

// CSVParser handles CSV files. Rows are rendered as header: value lines and
// grouped into batches so one section stays a manageable size.
type CSVParser struct{}

const csvBatchSize = 20

func (p *CSVParser) Parse(r io.Reader, filename string) (*refdoc.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := &refdoc.Document{Title: titleFromFilename(filename, ".csv")}
	if len(records) == 0 {
		return doc, nil
	}

	headers := records[0]
	dataRows := records[1:]

	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := i + csvBatchSize
		if end > len(dataRows) {
			end = len(dataRows)
		}

		var text strings.Builder
		for _, row := range dataRows[i:end] {
			for j, cell := range row {
				if j > 0 {
					text.WriteString(", ")
				}
				if j < len(headers) {
					text.WriteString(headers[j] + ": " + cell)
				} else {
					text.WriteString(cell)
				}
			}
			text.WriteString("\n")
		}

		// 1-indexed, skipping the header row.
		doc.Append(fmt.Sprintf("Rows %d-%d", i+2, end+1), text.String())
	}

	return doc, nil
}
