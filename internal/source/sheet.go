package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Error is a whole-table failure: the sheet could not be fetched or its
// header row could not be parsed. Row-level problems are never an Error;
// they degrade to missing values further down the pipeline.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("sheet source %s: %v", e.URL, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// Record is one raw row of the sheet. All values are unprocessed cell
// strings; absent cells are "".
type Record struct {
	Date        string
	Start       string
	Slept       string
	DurationMin string
	Note        string
}

// Table is the fetched sheet with headers already normalized. Every record
// carries all five logical columns even if the sheet lacked some of them.
type Table struct {
	Rows []Record
}

// SheetSource fetches a published Google Sheets CSV over HTTP.
type SheetSource struct {
	client *http.Client
}

func NewSheetSource(fetchTimeout time.Duration) *SheetSource {
	return &SheetSource{client: &http.Client{Timeout: fetchTimeout}}
}

// Fetch retrieves and decodes the CSV at url. Column names are trimmed and
// lowercased; the five expected columns (date, start, slept, duration_min,
// note) are guaranteed in the result, extra columns are dropped.
func (s *SheetSource) Fetch(ctx context.Context, url string) (Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Table{}, &Error{URL: url, Err: err}
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return Table{}, &Error{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return Table{}, &Error{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	return decode(url, resp.Body)
}

func decode(url string, r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // sheets pad/truncate rows freely
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return Table{}, &Error{URL: url, Err: fmt.Errorf("read header: %w", err)}
	}

	// Column index per normalized name; -1 = column absent in the sheet.
	idx := map[string]int{"date": -1, "start": -1, "slept": -1, "duration_min": -1, "note": -1}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, ok := idx[name]; ok && idx[name] == -1 {
			idx[name] = i
		}
	}

	var rows []Record
	for {
		raw, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, &Error{URL: url, Err: fmt.Errorf("read row: %w", err)}
		}
		cell := func(col string) string {
			i := idx[col]
			if i < 0 || i >= len(raw) {
				return ""
			}
			return raw[i]
		}
		rows = append(rows, Record{
			Date:        cell("date"),
			Start:       cell("start"),
			Slept:       cell("slept"),
			DurationMin: cell("duration_min"),
			Note:        cell("note"),
		})
	}
	return Table{Rows: rows}, nil
}
