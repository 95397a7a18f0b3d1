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
	"fmt"
	"strconv"
)

// InvalidSymbolError is returned when building a URL for an empty or otherwise
// invalid ticker symbol.
type InvalidSymbolError struct {
	Symbol string
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("invalid symbol: %s", strconv.Quote(e.Symbol))
}

// InvalidParameterError is returned when an optional request parameter is set
// to a value outside of its documented choices.
type InvalidParameterError struct {
	Name  string
	Value string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Name, strconv.Quote(e.Value))
}

// MalformedRecordError describes a CSV record which was dropped. It is never
// returned by ParseTimeSeries, only carried in a Diagnostic.
type MalformedRecordError struct {
	Row int // 1-based record number
	Err error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record %d: %s", e.Row, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// InvalidNumericFieldError aborts the whole parse: a price or volume cell is
// not a number of the expected type.
type InvalidNumericFieldError struct {
	Row    int    // 1-based record number
	Column string // column name, e.g. "open"
	Value  string
	Err    error
}

func (e *InvalidNumericFieldError) Error() string {
	return fmt.Sprintf("record %d: invalid %s value %s: %s",
		e.Row, e.Column, strconv.Quote(e.Value), e.Err)
}

func (e *InvalidNumericFieldError) Unwrap() error { return e.Err }
