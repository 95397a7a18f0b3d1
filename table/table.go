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

// Package table renders a grid of string cells as CSV or as aligned text.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/stockparfait/errors"
)

// Params are parameters for pretty-printing or CSV export of a table.
type Params struct {
	Rows        int  // max. number of rows to write; 0 = unlimited (default)
	NoHeader    bool // whether to print the header, default - yes
	MaxColWidth int  // for WriteText only; 0 = unlimited, otherwise must be >= 4
}

// Limit returns the number of rows to write out of n available.
func (p Params) Limit(n int) int {
	if p.Rows > 0 && p.Rows < n {
		return p.Rows
	}
	return n
}

// WriteCSV writes the header (if any) and the rows to w in CSV format.
func WriteCSV(w io.Writer, header []string, rows [][]string, p Params) error {
	cw := csv.NewWriter(w)
	if !p.NoHeader && len(header) > 0 {
		if err := cw.Write(header); err != nil {
			return errors.Annotate(err, "failed to write header")
		}
	}
	for i := 0; i < p.Limit(len(rows)); i++ {
		if err := cw.Write(rows[i]); err != nil {
			return errors.Annotate(err, "failed to write row %d", i)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Annotate(err, "failed to flush written rows")
	}
	return nil
}

// WriteText writes the header (if any) and the rows as a text formatted for
// ease of reading, with right-aligned columns. All rows must have the same
// number of cells.
func WriteText(w io.Writer, header []string, rows [][]string, p Params) error {
	if p.MaxColWidth != 0 && p.MaxColWidth < 4 {
		return errors.Reason("MaxColWidth [%d] must be 0 or >= 4", p.MaxColWidth)
	}
	cells := rows[:p.Limit(len(rows))]
	withHeader := !p.NoHeader && len(header) > 0
	if withHeader {
		cells = append([][]string{header}, cells...)
	}

	var widths []int
	for i, row := range cells {
		if len(row) == 0 {
			return errors.Reason("row %d: size = 0", i)
		}
		if widths == nil {
			widths = make([]int, len(row))
		}
		if len(row) != len(widths) {
			return errors.Reason("row %d: size [%d] != expected size [%d]",
				i, len(row), len(widths))
		}
		for j, s := range row {
			if l := len([]rune(s)); widths[j] < l {
				widths[j] = l
				if p.MaxColWidth > 0 && widths[j] > p.MaxColWidth {
					widths[j] = p.MaxColWidth
				}
			}
		}
	}

	write := func(row []string) error {
		trimmed := make([]string, len(row))
		for i, s := range row {
			if r := []rune(s); len(r) > widths[i] {
				s = string(r[:widths[i]-2]) + ".."
			}
			trimmed[i] = fmt.Sprintf("%[2]*[1]s", s, widths[i])
		}
		_, err := fmt.Fprintf(w, "%s\n", strings.Join(trimmed, " | "))
		return err
	}

	for i, row := range cells {
		if err := write(row); err != nil {
			return errors.Annotate(err, "failed to write row %d", i)
		}
		if i == 0 && withHeader {
			dashes := make([]string, len(widths))
			for j, n := range widths {
				dashes[j] = strings.Repeat("-", n)
			}
			if err := write(dashes); err != nil {
				return errors.Annotate(err, "failed to write header separator")
			}
		}
	}
	return nil
}
