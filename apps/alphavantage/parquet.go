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
	"github.com/stockparfait/alphavantage/av"
	"github.com/stockparfait/errors"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// parquetQuote is the parquet schema of a QuoteTable row. A null timestamp is
// a null date.
type parquetQuote struct {
	Date   *string `parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Open   float64 `parquet:"name=open, type=DOUBLE"`
	High   float64 `parquet:"name=high, type=DOUBLE"`
	Low    float64 `parquet:"name=low, type=DOUBLE"`
	Close  float64 `parquet:"name=close, type=DOUBLE"`
	Volume int32   `parquet:"name=volume, type=INT32"`
}

// writeParquet exports the table into a new parquet file, preserving the row
// order.
func writeParquet(fileName string, t *av.QuoteTable) error {
	fw, err := local.NewLocalFileWriter(fileName)
	if err != nil {
		return errors.Annotate(err, "failed to create parquet file '%s'", fileName)
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(parquetQuote), 4)
	if err != nil {
		return errors.Annotate(err, "failed to create parquet writer")
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for i := 0; i < t.Len(); i++ {
		q := t.Row(i)
		row := parquetQuote{
			Open:   q.Open,
			High:   q.High,
			Low:    q.Low,
			Close:  q.Close,
			Volume: q.Volume,
		}
		if q.Timestamp.Valid {
			s := q.Timestamp.String()
			row.Date = &s
		}
		if err := pw.Write(row); err != nil {
			return errors.Annotate(err, "failed to write row %d", i)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return errors.Annotate(err, "failed to finalize parquet file")
	}
	return nil
}
