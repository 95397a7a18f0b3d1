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
	"io"
	"strconv"

	"github.com/stockparfait/alphavantage/date"
	"github.com/stockparfait/alphavantage/table"
	"github.com/stockparfait/errors"
)

// QuoteTable is a column-oriented time series. All the columns have the same
// length, and the i'th element of each column belongs to the same
// observation. Rows are in the order of the source data.
//
// The column accessors return the underlying slices, which must not be
// modified.
type QuoteTable struct {
	timestamp []date.NullDate
	open      []float64
	high      []float64
	low       []float64
	close     []float64
	volume    []int32
}

// NewQuoteTable creates a QuoteTable from the columns. It panics if the columns
// have different lengths. The slices are used as is, not copied.
func NewQuoteTable(timestamp []date.NullDate, open, high, low, close []float64, volume []int32) *QuoteTable {
	t := &QuoteTable{
		timestamp: timestamp,
		open:      open,
		high:      high,
		low:       low,
		close:     close,
		volume:    volume,
	}
	if err := t.Check(); err != nil {
		panic(errors.Annotate(err, "inconsistent columns"))
	}
	return t
}

func (t *QuoteTable) Timestamp() []date.NullDate { return t.timestamp }
func (t *QuoteTable) Open() []float64            { return t.open }
func (t *QuoteTable) High() []float64            { return t.high }
func (t *QuoteTable) Low() []float64             { return t.low }
func (t *QuoteTable) Close() []float64           { return t.close }
func (t *QuoteTable) Volume() []int32            { return t.volume }

// Len is the number of rows.
func (t *QuoteTable) Len() int { return len(t.timestamp) }

// Check that all the columns have the same length.
func (t *QuoteTable) Check() error {
	n := len(t.timestamp)
	lens := map[string]int{
		ColumnOpen:   len(t.open),
		ColumnHigh:   len(t.high),
		ColumnLow:    len(t.low),
		ColumnClose:  len(t.close),
		ColumnVolume: len(t.volume),
	}
	for _, c := range quoteColumns[1:] {
		if lens[c] != n {
			return errors.Reason("len(%s) [%d] != len(%s) [%d]",
				c, lens[c], ColumnTimestamp, n)
		}
	}
	return nil
}

// Quote is a single row of a QuoteTable.
type Quote struct {
	Timestamp date.NullDate
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    int32
}

// CSV representation of the row. Null timestamp is an empty string.
func (q Quote) CSV() []string {
	f := func(x float64) string { return strconv.FormatFloat(x, 'f', -1, 64) }
	return []string{
		q.Timestamp.String(),
		f(q.Open),
		f(q.High),
		f(q.Low),
		f(q.Close),
		strconv.FormatInt(int64(q.Volume), 10),
	}
}

// Row returns the i'th row. It panics if i is out of range.
func (t *QuoteTable) Row(i int) Quote {
	return Quote{
		Timestamp: t.timestamp[i],
		Open:      t.open[i],
		High:      t.high[i],
		Low:       t.low[i],
		Close:     t.close[i],
		Volume:    t.volume[i],
	}
}

// NullDates is the number of rows with a null timestamp.
func (t *QuoteTable) NullDates() int {
	n := 0
	for _, d := range t.timestamp {
		if !d.Valid {
			n++
		}
	}
	return n
}

func (t *QuoteTable) cells(p table.Params) [][]string {
	rows := make([][]string, p.Limit(t.Len()))
	for i := range rows {
		rows[i] = t.Row(i).CSV()
	}
	return rows
}

// WriteCSV writes the table to w in CSV format, with the provider's header
// unless p.NoHeader is set.
func (t *QuoteTable) WriteCSV(w io.Writer, p table.Params) error {
	return table.WriteCSV(w, quoteColumns, t.cells(p), p)
}

// WriteText writes the table as aligned text. Null timestamps are blank.
func (t *QuoteTable) WriteText(w io.Writer, p table.Params) error {
	return table.WriteText(w, quoteColumns, t.cells(p), p)
}
