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
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/stockparfait/alphavantage/av"
	"github.com/stockparfait/alphavantage/table"
	"github.com/stockparfait/errors"
	"github.com/stockparfait/fetch"
	"github.com/stockparfait/iterator"
	"github.com/stockparfait/logging"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/exp/slices"
)

type Flags struct {
	ConfigDir  string // default: ~/.stockparfait/alphavantage
	LogLevel   logging.Level
	Symbols    []string // required
	Variant    av.Variant
	OutputSize string // daily only: compact or full
	Workers    int    // parallel requests
	Rows       int    // max. rows to print per symbol; 0 = all
	CSV        bool   // print CSV; default: text
	Summary    bool   // print per-symbol statistics instead of the data
	Parquet    string // directory to export <SYMBOL>.parquet files to
	DryRun     bool   // print redacted URLs without fetching
}

func parseFlags(args []string) (*Flags, error) {
	var flags Flags
	var symbols, variant string
	fs := flag.NewFlagSet("alphavantage", flag.ExitOnError)
	fs.StringVar(&flags.ConfigDir, "config",
		filepath.Join(os.Getenv("HOME"), ".stockparfait", "alphavantage"),
		"directory with config.toml")
	flags.LogLevel = logging.Info
	fs.Var(&flags.LogLevel, "log-level", "Log level: debug, info, warning, error")
	fs.StringVar(&symbols, "symbols", "", "comma-separated ticker symbols (required)")
	fs.StringVar(&variant, "variant", "daily", "time series: daily, weekly or monthly")
	fs.StringVar(&flags.OutputSize, "outputsize", "", "compact or full (daily only)")
	fs.IntVar(&flags.Workers, "workers", 4, "number of parallel requests")
	fs.IntVar(&flags.Rows, "rows", 0, "max. number of rows to print per symbol")
	fs.BoolVar(&flags.CSV, "csv", false, "print table in CSV format; default: text")
	fs.BoolVar(&flags.Summary, "summary", false, "print statistics instead of prices")
	fs.StringVar(&flags.Parquet, "parquet", "", "export each series to <dir>/<SYMBOL>.parquet")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "print query URLs (with the key redacted)")

	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}
	for _, s := range strings.Split(symbols, ",") {
		s = strings.TrimSpace(s)
		if s != "" && !slices.Contains(flags.Symbols, s) {
			flags.Symbols = append(flags.Symbols, s)
		}
	}
	if len(flags.Symbols) == 0 {
		return nil, errors.Reason("missing required -symbols argument")
	}
	if flags.Variant, err = av.ParseVariant(variant); err != nil {
		return nil, errors.Annotate(err, "invalid -variant")
	}
	if flags.Workers < 1 {
		return nil, errors.Reason("-workers must be >= 1")
	}
	if flags.Rows < 0 {
		return nil, errors.Reason("-rows must be >= 0")
	}
	return &flags, nil
}

// request for the symbol. The data is always requested as CSV.
func (f *Flags) request(symbol, key string) av.TimeSeriesRequest {
	return av.NewTimeSeriesRequest(f.Variant, symbol, key).
		WithOutputSize(av.OutputSize(f.OutputSize)).
		WithDataType(av.CSV)
}

type Config struct {
	Key string `toml:"key"` // user key for Alpha Vantage
}

func parseConfig(dir string) (*Config, error) {
	filePath := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sample := `key = "YourSecretAlphaVantageKey"
`
			err = errors.Annotate(err,
				"config file '%s' does not exist.\nPlease create config file containing:\n%s",
				filePath, sample)
			return nil, err
		} else {
			return nil, errors.Annotate(err,
				"cannot check config file for existence: '%s'", filePath)
		}
	}
	f, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Annotate(err, "failed to open config file %s", filePath)
	}
	defer f.Close()

	d := toml.NewDecoder(f)
	var c Config
	if err := d.Decode(&c); err != nil {
		return nil, errors.Annotate(err, "failed to read config file %s", filePath)
	}
	if c.Key == "" {
		return nil, errors.Reason("config file %s has no key", filePath)
	}
	return &c, nil
}

// result of fetching and parsing one symbol.
type result struct {
	Symbol string
	Table  *av.QuoteTable
	Diags  []av.Diagnostic
	Err    error
}

// get downloads the response body for the request. The query is sent as built
// by av.BuildURL, and the returned error never contains the API key.
func get(ctx context.Context, req av.TimeSeriesRequest) (string, error) {
	uri, _, err := req.URL()
	if err != nil {
		return "", errors.Annotate(err, "invalid request")
	}
	resp, err := fetch.GetRetry(ctx, uri, nil, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
			return "", errors.Reason("response code %s", resp.Status)
		}
		return "", errors.Annotate(req.RedactError(err), "failed to GET %s", req.String())
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Annotate(req.RedactError(err), "failed to read response body")
	}
	return string(data), nil
}

func fetchSymbol(ctx context.Context, req av.TimeSeriesRequest) result {
	res := result{Symbol: req.Symbol}
	_, diags, err := req.URL()
	if err != nil {
		res.Err = errors.Annotate(err, "failed to build request for %s", req.Symbol)
		return res
	}
	res.Diags = diags
	logging.Debugf(ctx, "fetching %s", req.String())
	body, err := get(ctx, req)
	if err != nil {
		res.Err = errors.Annotate(err, "failed to fetch %s", req.Symbol)
		return res
	}
	if err := av.ProviderError(body); err != nil {
		res.Err = errors.Annotate(err, "provider rejected the request for %s", req.Symbol)
		return res
	}
	tbl, parseDiags, err := av.ParseTimeSeries(body)
	if err != nil {
		res.Err = errors.Annotate(err, "failed to parse %s", req.Symbol)
		return res
	}
	res.Table = tbl
	res.Diags = append(res.Diags, parseDiags...)
	logging.Infof(ctx, "%s: fetched %d rows", req.Symbol, tbl.Len())
	return res
}

// fetchAll fetches the symbols in parallel. The results are in the order of
// flags.Symbols.
func fetchAll(ctx context.Context, flags *Flags, key string) []result {
	f := func(symbol string) result {
		return fetchSymbol(ctx, flags.request(symbol, key))
	}
	pm := iterator.ParallelMap(ctx, flags.Workers, iterator.FromSlice(flags.Symbols), f)
	results := iterator.Reduce[result, []result](pm, []result{}, func(r result, rs []result) []result {
		return append(rs, r)
	})
	sort.Slice(results, func(i, j int) bool {
		return slices.Index(flags.Symbols, results[i].Symbol) <
			slices.Index(flags.Symbols, results[j].Symbol)
	})
	return results
}

// printURLs prints the redacted URL of each request without fetching.
func printURLs(ctx context.Context, flags *Flags, w io.Writer) error {
	for _, s := range flags.Symbols {
		req := flags.request(s, "")
		_, diags, err := req.URL()
		if err != nil {
			return errors.Annotate(err, "invalid request for %s", s)
		}
		av.LogDiagnostics(ctx, diags)
		if _, err := io.WriteString(w, req.String()+"\n"); err != nil {
			return errors.Annotate(err, "failed to print URL")
		}
	}
	return nil
}

func printTable(w io.Writer, flags *Flags, r result) error {
	if _, err := io.WriteString(w, r.Symbol+" ("+flags.Variant.String()+"):\n"); err != nil {
		return err
	}
	if err := r.Table.WriteText(w, table.Params{Rows: flags.Rows}); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// printCSV prints all the tables as a single CSV with a leading symbol column.
func printCSV(w io.Writer, flags *Flags, results []result) error {
	header := append([]string{"symbol"}, av.QuoteTableHeader()...)
	var rows [][]string
	p := table.Params{Rows: flags.Rows}
	for _, r := range results {
		for i := 0; i < p.Limit(r.Table.Len()); i++ {
			rows = append(rows, append([]string{r.Symbol}, r.Table.Row(i).CSV()...))
		}
	}
	return table.WriteCSV(w, header, rows, table.Params{})
}

func run(ctx context.Context, flags *Flags, w io.Writer) error {
	if flags.DryRun {
		return printURLs(ctx, flags, w)
	}
	config, err := parseConfig(flags.ConfigDir)
	if err != nil {
		return errors.Annotate(err, "failed to parse config")
	}
	if flags.Parquet != "" {
		if err := os.MkdirAll(flags.Parquet, 0755); err != nil {
			return errors.Annotate(err, "failed to create '%s'", flags.Parquet)
		}
	}

	var summaries []Summary
	var fetched []result
	failed := 0
	for _, r := range fetchAll(ctx, flags, config.Key) {
		if r.Err != nil {
			logging.Errorf(ctx, "%s", r.Err.Error())
			failed++
			continue
		}
		av.LogDiagnostics(ctx, r.Diags)
		if flags.Parquet != "" {
			fileName := filepath.Join(flags.Parquet, r.Symbol+".parquet")
			if err := writeParquet(fileName, r.Table); err != nil {
				return errors.Annotate(err, "failed to export %s", r.Symbol)
			}
			logging.Infof(ctx, "%s: wrote %s", r.Symbol, fileName)
		}
		switch {
		case flags.Summary:
			summaries = append(summaries, Summarize(r.Symbol, r.Table))
		case flags.CSV:
			fetched = append(fetched, r)
		default:
			if err := printTable(w, flags, r); err != nil {
				return errors.Annotate(err, "failed to print %s", r.Symbol)
			}
		}
	}
	switch {
	case flags.Summary:
		if err := printSummaries(w, summaries, flags.CSV); err != nil {
			return errors.Annotate(err, "failed to print summary")
		}
	case flags.CSV && len(fetched) > 0:
		if err := printCSV(w, flags, fetched); err != nil {
			return errors.Annotate(err, "failed to print CSV")
		}
	}
	if failed > 0 {
		return errors.Reason("failed to fetch %d of %d symbols", failed, len(flags.Symbols))
	}
	return nil
}

// main is not tested, keep it short.
func main() {
	ctx := context.Background()
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		ctx = logging.Use(ctx, logging.DefaultGoLogger(logging.Info))
		logging.Errorf(ctx, "failed to parse flags: %s", err.Error())
		os.Exit(1)
	}
	ctx = logging.Use(ctx, logging.DefaultGoLogger(flags.LogLevel))

	if err := run(ctx, flags, os.Stdout); err != nil {
		logging.Errorf(ctx, "%s", err.Error())
		os.Exit(1)
	}
}
