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
	"net/url"
	"strings"

	"github.com/stockparfait/errors"
)

// URL is the query endpoint of the server. It may be overwritten in tests
// before building requests.
var URL = "https://www.alphavantage.co/query"

// redacted replaces the API key in String().
const redacted = "REDACTED"

// Variant is the granularity of a time series.
type Variant int

// Values of Variant.
const (
	Daily Variant = iota
	Weekly
	Monthly
)

// Function returns the value of the "function" query parameter.
func (v Variant) Function() (string, error) {
	switch v {
	case Daily:
		return "TIME_SERIES_DAILY", nil
	case Weekly:
		return "TIME_SERIES_WEEKLY", nil
	case Monthly:
		return "TIME_SERIES_MONTHLY", nil
	}
	return "", errors.Reason("unknown time series variant: %d", int(v))
}

// String implements fmt.Stringer, and is the inverse of ParseVariant.
func (v Variant) String() string {
	switch v {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant parses "daily", "weekly" or "monthly", case-insensitively.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(s) {
	case "daily":
		return Daily, nil
	case "weekly":
		return Weekly, nil
	case "monthly":
		return Monthly, nil
	}
	return 0, errors.Reason("unknown time series variant: '%s'", s)
}

// OutputSize is the "outputsize" parameter. Empty means not set.
type OutputSize string

const (
	Compact OutputSize = "compact" // the latest 100 data points
	Full    OutputSize = "full"    // the full history
)

// DataType is the "datatype" parameter. Empty means not set.
type DataType string

const (
	JSON DataType = "json"
	CSV  DataType = "csv"
)

// TimeSeriesRequest describes a TIME_SERIES_{DAILY,WEEKLY,MONTHLY} query.
type TimeSeriesRequest struct {
	Variant    Variant
	Symbol     string
	OutputSize OutputSize // meaningful only for Daily
	DataType   DataType
	APIKey     string // opaque; never validated or logged
}

// NewTimeSeriesRequest creates a request with the required fields.
func NewTimeSeriesRequest(v Variant, symbol, apiKey string) TimeSeriesRequest {
	return TimeSeriesRequest{Variant: v, Symbol: symbol, APIKey: apiKey}
}

// WithOutputSize returns a copy of the request with the output size set. The
// original request is left intact.
func (r TimeSeriesRequest) WithOutputSize(s OutputSize) TimeSeriesRequest {
	r.OutputSize = s
	return r
}

// WithDataType returns a copy of the request with the data type set.
func (r TimeSeriesRequest) WithDataType(t DataType) TimeSeriesRequest {
	r.DataType = t
	return r
}

// URL is a shorthand for BuildURL(r).
func (r TimeSeriesRequest) URL() (string, []Diagnostic, error) {
	return BuildURL(r)
}

// String renders the URL with the API key masked, suitable for logging. An
// invalid request renders as its error.
func (r TimeSeriesRequest) String() string {
	r.APIKey = redacted
	uri, _, err := BuildURL(r)
	if err != nil {
		return "invalid request: " + err.Error()
	}
	return uri
}

// RedactError hides the API key in the text of err, which may quote the
// request URL. The result does not unwrap to err. A nil error stays nil.
func (r TimeSeriesRequest) RedactError(err error) error {
	if err == nil || r.APIKey == "" {
		return err
	}
	msg := err.Error()
	for _, k := range []string{url.QueryEscape(r.APIKey), url.PathEscape(r.APIKey), r.APIKey} {
		msg = strings.ReplaceAll(msg, k, redacted)
	}
	return &redactedError{msg: msg}
}

type redactedError struct {
	msg string
}

func (e *redactedError) Error() string { return e.msg }

// queryBuilder appends query parameters in the order they are added, which
// url.Values cannot do.
type queryBuilder struct {
	b strings.Builder
}

func (q *queryBuilder) add(name, value string) {
	if q.b.Len() == 0 {
		q.b.WriteByte('?')
	} else {
		q.b.WriteByte('&')
	}
	q.b.WriteString(name)
	q.b.WriteByte('=')
	q.b.WriteString(url.QueryEscape(value))
}

// BuildURL renders the request as a query URL. Parameters appear in a fixed
// order: function, symbol, outputsize, datatype, apikey. Output size supplied
// for a Weekly or Monthly request is left out and reported as a Diagnostic.
//
// The symbol must be non-blank, otherwise *InvalidSymbolError is returned.
// Output size and data type, when set and applicable, must be one of the
// documented values, otherwise *InvalidParameterError is returned.
func BuildURL(r TimeSeriesRequest) (string, []Diagnostic, error) {
	var diags []Diagnostic
	function, err := r.Variant.Function()
	if err != nil {
		return "", nil, errors.Annotate(err, "failed to build URL")
	}
	if strings.TrimSpace(r.Symbol) == "" {
		return "", nil, &InvalidSymbolError{Symbol: r.Symbol}
	}
	var q queryBuilder
	q.add("function", function)
	q.add("symbol", r.Symbol)

	if r.OutputSize != "" {
		switch r.Variant {
		case Daily:
			if r.OutputSize != Compact && r.OutputSize != Full {
				return "", nil, &InvalidParameterError{
					Name: "outputsize", Value: string(r.OutputSize)}
			}
			q.add("outputsize", string(r.OutputSize))
		case Weekly, Monthly:
			diags = append(diags, Diagnostic{
				Kind: DiagnosticOutputSizeIgnored,
				Message: fmt.Sprintf("outputsize=%s is not used by %s queries",
					r.OutputSize, r.Variant),
			})
		}
	}

	if r.DataType != "" {
		if r.DataType != JSON && r.DataType != CSV {
			return "", nil, &InvalidParameterError{
				Name: "datatype", Value: string(r.DataType)}
		}
		q.add("datatype", string(r.DataType))
	}
	q.add("apikey", r.APIKey)
	return URL + q.b.String(), diags, nil
}
