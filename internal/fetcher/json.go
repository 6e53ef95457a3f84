// Package fetcher reads raw company-record dumps produced by the
// collectors: JSON arrays, CSV and XLSX exports, from disk or over HTTP.
package fetcher

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/djrooz/btl-agency-scraper/internal/model"
)

// DecodeJSONRecords decodes a JSON array of raw records streaming,
// sending each element to a channel. Both channels are closed when
// processing completes.
func DecodeJSONRecords(ctx context.Context, r io.Reader) (<-chan model.RawRecord, <-chan error) {
	outCh := make(chan model.RawRecord, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(outCh)
		defer close(errCh)

		decoder := json.NewDecoder(r)

		tok, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				return
			}
			errCh <- eris.Wrap(err, "json: read opening token")
			return
		}
		delim, ok := tok.(json.Delim)
		if !ok || delim != '[' {
			errCh <- eris.Errorf("json: expected '[', got %v", tok)
			return
		}

		for decoder.More() {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "json: context cancelled")
				return
			}

			var rec model.RawRecord
			if err := decoder.Decode(&rec); err != nil {
				errCh <- eris.Wrap(err, "json: decode record")
				return
			}

			select {
			case outCh <- rec:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "json: context cancelled")
				return
			}
		}

		if _, err := decoder.Token(); err != nil && err != io.EOF {
			errCh <- eris.Wrap(err, "json: read closing token")
		}
	}()

	return outCh, errCh
}

// ReadJSONRecords loads a whole JSON dump into memory.
func ReadJSONRecords(ctx context.Context, r io.Reader) ([]model.RawRecord, error) {
	recCh, errCh := DecodeJSONRecords(ctx, r)

	var records []model.RawRecord
	for rec := range recCh {
		records = append(records, rec)
	}
	if err := <-errCh; err != nil {
		return nil, err
	}
	return records, nil
}

// ReadJSONFile loads a JSON dump from disk.
func ReadJSONFile(ctx context.Context, path string) ([]model.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "json: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	return ReadJSONRecords(ctx, f)
}
