// Copyright 2022 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package av

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/stockparfait/alphavantage/date"
	"github.com/stockparfait/errors"

	"golang.org/x/exp/slices"
)

// Column names of a time series, in the order of the CSV fields.
const (
	ColumnTimestamp = "timestamp"
	ColumnOpen      = "open"
	ColumnHigh      = "high"
	ColumnLow       = "low"
	ColumnClose     = "close"
	ColumnVolume    = "volume"
)

var quoteColumns = []string{
	ColumnTimestamp, ColumnOpen, ColumnHigh, ColumnLow, ColumnClose, ColumnVolume}

// QuoteTableHeader is the list of column names, which is also the header line
// of the provider's CSV response.
func QuoteTableHeader() []string {
	return slices.Clone(quoteColumns)
}

// QuoteRow is a single tokenized CSV record before type conversion.
type QuoteRow struct {
	Record    int // 1-based record number in the source
	Timestamp string
	Open      string
	High      string
	Low       string
	Close     string
	Volume    string
}

// isHeader checks whether the record is the provider's header line.
func isHeader(record []string) bool {
	if len(record) != len(quoteColumns) {
		return false
	}
	norm := make([]string, len(record))
	for i, s := range record {
		norm[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
	}
	return slices.Equal(norm, quoteColumns)
}

func recordSkipped(n int, err error) Diagnostic {
	return Diagnostic{
		Kind:    DiagnosticRecordSkipped,
		Row:     n,
		Message: err.Error(),
		Err:     &MalformedRecordError{Row: n, Err: err},
	}
}

// tokenize splits CSV into QuoteRows. Records which fail to tokenize or don't
// have exactly six fields are dropped and reported. The first record is
// dropped silently if it is the provider's header.
func tokenize(r io.Reader) ([]QuoteRow, []Diagnostic, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []QuoteRow
	var diags []Diagnostic
	for n := 1; ; n++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if _, ok := err.(*csv.ParseError); !ok {
				return nil, nil, errors.Annotate(err, "failed to read CSV record %d", n)
			}
			diags = append(diags, recordSkipped(n, err))
			continue
		}
		if n == 1 && isHeader(record) {
			continue
		}
		if len(record) != len(quoteColumns) {
			diags = append(diags, recordSkipped(n, errors.Reason(
				"expected %d fields, got %d", len(quoteColumns), len(record))))
			continue
		}
		rows = append(rows, QuoteRow{
			Record:    n,
			Timestamp: record[0],
			Open:      record[1],
			High:      record[2],
			Low:       record[3],
			Close:     record[4],
			Volume:    record[5],
		})
	}
	return rows, diags, nil
}

// isHexNumber reports whether s uses the 0x prefix, which strconv.ParseFloat
// accepts but a decimal price must not.
func isHexNumber(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// parseFloat parses a decimal number. NaN and Inf spellings are accepted.
func parseFloat(row int, column, s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if isHexNumber(trimmed) {
		err := &strconv.NumError{Func: "ParseFloat", Num: trimmed, Err: strconv.ErrSyntax}
		return 0, &InvalidNumericFieldError{Row: row, Column: column, Value: s, Err: err}
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &InvalidNumericFieldError{Row: row, Column: column, Value: s, Err: err}
	}
	return v, nil
}

func parseVolume(row int, s string) (int32, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, &InvalidNumericFieldError{Row: row, Column: ColumnVolume, Value: s, Err: err}
	}
	return int32(v), nil
}

// ReadTimeSeries is ParseTimeSeries for an io.Reader. A read error other than
// a CSV syntax error aborts the parse.
func ReadTimeSeries(r io.Reader) (*QuoteTable, []Diagnostic, error) {
	rows, diags, err := tokenize(r)
	if err != nil {
		return nil, nil, err
	}
	n := len(rows)
	t := &QuoteTable{
		timestamp: make([]date.NullDate, n),
		open:      make([]float64, n),
		high:      make([]float64, n),
		low:       make([]float64, n),
		close:     make([]float64, n),
		volume:    make([]int32, n),
	}
	for i, row := range rows {
		if t.open[i], err = parseFloat(row.Record, ColumnOpen, row.Open); err != nil {
			return nil, nil, err
		}
		if t.high[i], err = parseFloat(row.Record, ColumnHigh, row.High); err != nil {
			return nil, nil, err
		}
		if t.low[i], err = parseFloat(row.Record, ColumnLow, row.Low); err != nil {
			return nil, nil, err
		}
		if t.close[i], err = parseFloat(row.Record, ColumnClose, row.Close); err != nil {
			return nil, nil, err
		}
		if t.volume[i], err = parseVolume(row.Record, row.Volume); err != nil {
			return nil, nil, err
		}
	}
	// Dates never fail the parse; a bad one leaves a null in its place.
	for i, row := range rows {
		d, err := date.Parse(row.Timestamp)
		if err != nil {
			diags = append(diags, Diagnostic{
				Kind:    DiagnosticDateUnparsable,
				Row:     row.Record,
				Message: fmt.Sprintf("'%s' is not a YYYY-MM-DD date", row.Timestamp),
				Err:     err,
			})
			continue
		}
		t.timestamp[i] = date.Some(d)
	}
	return t, diags, nil
}

// ParseTimeSeries converts the CSV body of a TIME_SERIES_* response into a
// QuoteTable. Each record must have six fields: timestamp, open, high, low,
// close, volume. Rows keep their source order.
//
// Malformed records are dropped with a DiagnosticRecordSkipped, and unparsable
// dates become nulls with a DiagnosticDateUnparsable. A price or volume which
// is not a number fails the whole parse with *InvalidNumericFieldError. An
// empty input yields an empty table.
func ParseTimeSeries(raw string) (*QuoteTable, []Diagnostic, error) {
	return ReadTimeSeries(strings.NewReader(raw))
}
