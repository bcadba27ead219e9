package lexicon

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

var (
	ErrEmptyFile     = errors.New("lexicon file has no lines")
	ErrInvalidHeader = errors.New("invalid lexicon header")
)

var expectedHeaders = []string{"rank", "word", "pos", "definition", "sample", "frequency"}

const sampleColumn = 4

// ParseCSV reads a frequency list with the columns rank, word, pos, definition,
// sample and frequency. Tab-separated files are detected when they contain no comma.
// Rows with extra fields are repaired by joining the overflow into the sample column,
// and rows with missing fields are skipped.
func ParseCSV(r io.Reader) ([]Entry, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll() > %w", err)
	}

	delimiter := ','
	if bytes.ContainsRune(content, '\t') && !bytes.ContainsRune(content, ',') {
		delimiter = '\t'
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv.Reader.ReadAll() > %w", err)
	}
	records = dropBlankRecords(records)
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	if err := validateHeader(records[0]); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(records)-1)
	for i, fields := range records[1:] {
		lineNumber := i + 2
		fields = repairFields(fields, string(delimiter))
		if len(fields) != len(expectedHeaders) {
			slog.Debug("skip a malformed lexicon line",
				slog.Int("line", lineNumber),
				slog.Any("fields", fields),
			)
			continue
		}

		rank, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			rank = i + 1
		}
		entries = append(entries, Entry{
			Rank:         rank,
			Lemma:        strings.TrimSpace(fields[1]),
			PartOfSpeech: strings.TrimSpace(fields[2]),
			Definition:   strings.TrimSpace(fields[3]),
			Sample:       strings.TrimSpace(fields[4]),
			FrequencyRaw: strings.TrimSpace(fields[5]),
		})
	}
	return entries, nil
}

func validateHeader(header []string) error {
	if len(header) < len(expectedHeaders) {
		return fmt.Errorf("%w: %v", ErrInvalidHeader, header)
	}
	for i, want := range expectedHeaders {
		got := strings.ToLower(strings.TrimSpace(header[i]))
		// the first header cell may carry a UTF-8 byte order mark
		got = strings.TrimPrefix(got, "\ufeff")
		if got != want {
			return fmt.Errorf("%w: %v", ErrInvalidHeader, header)
		}
	}
	return nil
}

func repairFields(fields []string, delimiter string) []string {
	if len(fields) <= len(expectedHeaders) {
		return fields
	}
	last := len(fields) - 1
	repaired := make([]string, 0, len(expectedHeaders))
	repaired = append(repaired, fields[:sampleColumn]...)
	repaired = append(repaired, strings.Join(fields[sampleColumn:last], delimiter))
	repaired = append(repaired, fields[last])
	return repaired
}

func dropBlankRecords(records [][]string) [][]string {
	result := records[:0]
	for _, record := range records {
		if strings.TrimSpace(strings.Join(record, "")) == "" {
			continue
		}
		result = append(result, record)
	}
	return result
}
