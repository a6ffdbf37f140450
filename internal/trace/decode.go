package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Decode reads a JSON-lines trace. Blank lines are skipped; the first
// malformed line aborts decoding with its line number.
func Decode(reader io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(reader)

	var records []Record
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		rec, err := decodeLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	return records, nil
}

func decodeLine(line string) (Record, error) {
	var rec Record
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return Record{}, fmt.Errorf("parse error: %w", err)
	}
	if !rec.Type.Valid() {
		return Record{}, fmt.Errorf("unknown record type %q", rec.Type)
	}
	return rec, nil
}

// Encode writes records as JSON lines
func Encode(w io.Writer, records []Record) error {
	tw := NewWriter(w)
	for _, rec := range records {
		if err := tw.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// EncodeEvents writes replay events as JSON lines
func EncodeEvents(w io.Writer, events []Event) error {
	enc := json.NewEncoder(w)
	for _, ev := range events {
		if err := enc.Encode(ev); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

// Writer appends records to a JSON-lines trace as they happen
type Writer struct {
	enc *json.Encoder
}

// NewWriter creates a trace writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: json.NewEncoder(w)}
}

// Write appends one record
func (w *Writer) Write(rec Record) error {
	if err := w.enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}
