package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"datalist/internal/domain"
)

// parseJSON streams a JSON array of objects, keeping field order.
func parseJSON(data []byte) ([]string, []domain.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, nil, err
	}

	var (
		order   fieldOrder
		records []domain.Record
	)
	for dec.More() {
		idx := len(records)
		if err := expectDelim(dec, '{'); err != nil {
			return nil, nil, fmt.Errorf("record %d: %w", idx, err)
		}
		rec := domain.Record{}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, nil, fmt.Errorf("record %d: %w", idx, err)
			}
			key, ok := tok.(string)
			if !ok {
				return nil, nil, fmt.Errorf("record %d: expected field name, got %v", idx, tok)
			}
			var raw interface{}
			if err := dec.Decode(&raw); err != nil {
				return nil, nil, fmt.Errorf("record %d field %q: %w", idx, key, err)
			}
			v, err := domain.ValueOf(raw)
			if err != nil {
				return nil, nil, fmt.Errorf("record %d field %q: %w", idx, key, err)
			}
			rec[key] = v
			order.add(key)
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, nil, fmt.Errorf("record %d: %w", idx, err)
		}
		records = append(records, rec)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, nil, fmt.Errorf("unexpected data after fixture array")
	}
	return order.names, records, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("expected %q: %w", want, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
