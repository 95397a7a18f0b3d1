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

// Package av implements the Alpha Vantage time series query API as a pure
// translation layer: it renders TIME_SERIES_* query URLs from a typed request,
// and converts the CSV response body into a column-oriented QuoteTable.
//
// Official documentation is at https://www.alphavantage.co/documentation/ .
//
// The package performs no network I/O. A typical caller builds the URL, fetches
// it with its own HTTP client, and parses the body:
//
//   req := av.NewTimeSeriesRequest(av.Daily, "IBM", key).WithDataType(av.CSV)
//   uri, diags, err := req.URL()
//   ...
//   tbl, diags, err := av.ParseTimeSeries(body)
//
// Non-fatal problems, such as an inapplicable request parameter, a dropped CSV
// record or an unparsable date, are returned as Diagnostics alongside the
// result rather than printed. Use LogDiagnostics to forward them to the logger
// in the context.
package av
