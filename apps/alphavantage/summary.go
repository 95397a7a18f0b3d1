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

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/stockparfait/alphavantage/av"
	"github.com/stockparfait/alphavantage/date"
	"github.com/stockparfait/alphavantage/table"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary statistics of a single time series.
type Summary struct {
	Symbol      string
	Rows        int
	NullDates   int
	Earliest    date.NullDate // null when all the dates are null
	Latest      date.NullDate
	MinClose    float64
	MaxClose    float64
	MeanClose   float64
	StdDevClose float64 // sample standard deviation; 0 for fewer than 2 rows
	TotalVolume int64
}

// Summarize the time series.
func Summarize(symbol string, t *av.QuoteTable) Summary {
	s := Summary{Symbol: symbol, Rows: t.Len(), NullDates: t.NullDates()}
	for _, d := range t.Timestamp() {
		if !d.Valid {
			continue
		}
		if !s.Earliest.Valid || d.Date.Before(s.Earliest.Date) {
			s.Earliest = d
		}
		if !s.Latest.Valid || d.Date.After(s.Latest.Date) {
			s.Latest = d
		}
	}
	closes := t.Close()
	if len(closes) > 0 {
		s.MinClose = floats.Min(closes)
		s.MaxClose = floats.Max(closes)
		s.MeanClose = stat.Mean(closes, nil)
	}
	if len(closes) > 1 {
		s.StdDevClose = stat.StdDev(closes, nil)
	}
	for _, v := range t.Volume() {
		s.TotalVolume += int64(v)
	}
	return s
}

// SummaryHeader is the list of column names for Summary.CSV().
func SummaryHeader() []string {
	return []string{
		"Symbol", "Rows", "Null dates", "Earliest", "Latest",
		"Min close", "Max close", "Mean close", "Stddev close", "Volume",
	}
}

// CSV representation of the summary.
func (s Summary) CSV() []string {
	f := func(x float64) string { return fmt.Sprintf("%.2f", x) }
	return []string{
		s.Symbol,
		strconv.Itoa(s.Rows),
		strconv.Itoa(s.NullDates),
		s.Earliest.String(),
		s.Latest.String(),
		f(s.MinClose),
		f(s.MaxClose),
		f(s.MeanClose),
		f(s.StdDevClose),
		strconv.FormatInt(s.TotalVolume, 10),
	}
}

func printSummaries(w io.Writer, summaries []Summary, csv bool) error {
	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		rows[i] = s.CSV()
	}
	if csv {
		return table.WriteCSV(w, SummaryHeader(), rows, table.Params{})
	}
	return table.WriteText(w, SummaryHeader(), rows, table.Params{})
}
