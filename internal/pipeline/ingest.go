package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"kosis-cpi/internal/model"
	"kosis-cpi/pkg/kosisapi"
)

// ErrNotArray is returned when the response is valid JSON but not an array of records
var ErrNotArray = errors.New("response is not a JSON array")

// Fetcher retrieves the raw response body for a query
type Fetcher interface {
	Fetch(ctx context.Context, p kosisapi.Params) ([]byte, error)
}

// ------------------- Ingestion -------------------

// Ingest fetches the response body and decodes it into records
func Ingest(ctx context.Context, logger *slog.Logger, f Fetcher, params kosisapi.Params) ([]model.GenericRecord, int, error) {
	logger.Info("🌐 GET JSON", "table", params.TblID, "org", params.OrgID, "period", params.PrdSe)

	body, err := f.Fetch(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch failed: %w", err)
	}

	records, err := DecodeRecords(body)
	if err != nil {
		return nil, len(body), err
	}

	logger.Info("🌐 JSON ingestion done", "records", len(records), "bytes", len(body))
	return records, len(body), nil
}

// DecodeRecords parses body as an ordered array of JSON objects.
// Numbers are kept as json.Number so they print exactly as received.
func DecodeRecords(body []byte) ([]model.GenericRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("failed to decode JSON: unexpected data after top-level value")
	}

	switch data := raw.(type) {
	case []interface{}:
		records := make([]model.GenericRecord, 0, len(data))
		for i, item := range data {
			m, ok := item.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("record %d: expected JSON object, got %s", i, jsonKind(item))
			}
			records = append(records, model.GenericRecord(m))
		}
		return records, nil
	default:
		if apiErr, ok := kosisapi.ParseAPIError(body); ok {
			return nil, fmt.Errorf("%w: %w", ErrNotArray, apiErr)
		}
		return nil, fmt.Errorf("%w: got %s", ErrNotArray, jsonKind(raw))
	}
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
