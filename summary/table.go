// Copyright 2025-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package summary assembles per-ticker risk records into the cross-sectional
// summary table: three rank columns over average return, VaR and expected
// shortfall, persisted as CSV.
package summary

import (
	"bytes"
	"context"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rocketlaunchr/dataframe-go"
	"github.com/rocketlaunchr/dataframe-go/exports"
	"github.com/rocketlaunchr/dataframe-go/imports"
)

// Column names of the persisted summary table.
const (
	ColName          = "Name"
	ColTicker        = "Ticker"
	ColAvgReturn     = "Average_Return"
	ColVaR           = "VaR"
	ColES            = "ES"
	ColAvgReturnRank = "Average_Return_Rank"
	ColVaRRank       = "VaR_Rank"
	ColESRank        = "ES_Rank"
)

// Record is one ticker's row of the summary table. VaR and ES are NaN when
// the tail fit did not produce defined quantiles; rank fields are nil until
// Build assigns them.
type Record struct {
	Name      string
	Ticker    string
	AvgReturn float64
	VaR       float64
	ES        float64

	AvgReturnRank *int
	VaRRank       *int
	ESRank        *int
}

// Table is the ranked cross-sectional summary.
type Table struct {
	Records []Record
}

// Build ranks the records and returns the assembled table. Average return
// ranks ascending (rank 1 = smallest value, the historical convention of
// this table); VaR and ES rank descending (rank 1 = largest risk).
// Undefined VaR/ES rank at the bottom, never dropped. Record order is
// preserved.
func Build(records []Record) *Table {
	avgRet := make([]float64, len(records))
	valueAtRisk := make([]float64, len(records))
	shortfall := make([]float64, len(records))
	for i := range records {
		avgRet[i] = records[i].AvgReturn
		valueAtRisk[i] = records[i].VaR
		shortfall[i] = records[i].ES
	}

	avgRanks := Rank(avgRet, true)
	varRanks := Rank(valueAtRisk, false)
	esRanks := Rank(shortfall, false)

	out := make([]Record, len(records))
	copy(out, records)
	for i := range out {
		out[i].AvgReturnRank = &avgRanks[i]
		out[i].VaRRank = &varRanks[i]
		out[i].ESRank = &esRanks[i]
	}
	return &Table{Records: out}
}

// Lookup returns the row for a ticker symbol, matching case-insensitively
// on the trimmed symbol. The second return is false when the table has no
// row for the symbol.
func (t *Table) Lookup(symbol string) (Record, bool) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	for _, rec := range t.Records {
		if strings.ToUpper(strings.TrimSpace(rec.Ticker)) == symbol {
			return rec, true
		}
	}
	return Record{}, false
}

// DataFrame converts the table to a dataframe with the persisted column
// layout. Undefined risk values become NaN entries; nil ranks stay nil.
func (t *Table) DataFrame() *dataframe.DataFrame {
	n := len(t.Records)
	init := &dataframe.SeriesInit{Capacity: n}

	names := dataframe.NewSeriesString(ColName, init)
	tickers := dataframe.NewSeriesString(ColTicker, init)
	avgRet := dataframe.NewSeriesFloat64(ColAvgReturn, init)
	valueAtRisk := dataframe.NewSeriesFloat64(ColVaR, init)
	shortfall := dataframe.NewSeriesFloat64(ColES, init)
	avgRank := dataframe.NewSeriesInt64(ColAvgReturnRank, init)
	varRank := dataframe.NewSeriesInt64(ColVaRRank, init)
	esRank := dataframe.NewSeriesInt64(ColESRank, init)

	appendRank := func(s *dataframe.SeriesInt64, rank *int) {
		if rank == nil {
			s.Append(nil)
			return
		}
		s.Append(int64(*rank))
	}

	for _, rec := range t.Records {
		names.Append(rec.Name)
		tickers.Append(rec.Ticker)
		avgRet.Append(rec.AvgReturn)
		valueAtRisk.Append(rec.VaR)
		shortfall.Append(rec.ES)
		appendRank(avgRank, rec.AvgReturnRank)
		appendRank(varRank, rec.VaRRank)
		appendRank(esRank, rec.ESRank)
	}

	return dataframe.NewDataFrame(names, tickers, avgRet, valueAtRisk, shortfall, avgRank, varRank, esRank)
}

// WriteCSV writes the table as CSV. Undefined risk values and absent ranks
// serialize as empty fields.
func (t *Table) WriteCSV(ctx context.Context, w io.Writer) error {
	empty := ""
	return exports.ExportToCSV(ctx, w, t.DataFrame(), exports.CSVExportOptions{
		NullString: &empty,
	})
}

// WriteFile persists the table as CSV at path.
func (t *Table) WriteFile(ctx context.Context, path string) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fh.Close()
	return t.WriteCSV(ctx, fh)
}

// Load reads a summary table previously written by WriteCSV. Empty risk
// fields load as NaN and empty rank fields as nil, so a written table
// round-trips.
func Load(ctx context.Context, r io.Reader) (*Table, error) {
	floatConverter := imports.Converter{
		ConcreteType: float64(0),
		ConverterFunc: func(in interface{}) (interface{}, error) {
			v, err := strconv.ParseFloat(in.(string), 64)
			if err != nil {
				return math.NaN(), nil
			}
			return v, nil
		},
	}
	rankConverter := imports.Converter{
		ConcreteType: int64(0),
		ConverterFunc: func(in interface{}) (interface{}, error) {
			v, err := strconv.ParseInt(strings.TrimSpace(in.(string)), 10, 64)
			if err != nil {
				return nil, nil
			}
			return v, nil
		},
	}

	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	df, err := imports.LoadFromCSV(ctx, bytes.NewReader(buf), imports.CSVLoadOptions{
		DictateDataType: map[string]interface{}{
			ColName:          "",
			ColTicker:        "",
			ColAvgReturn:     floatConverter,
			ColVaR:           floatConverter,
			ColES:            floatConverter,
			ColAvgReturnRank: rankConverter,
			ColVaRRank:       rankConverter,
			ColESRank:        rankConverter,
		},
	})
	if err != nil {
		return nil, err
	}

	return fromDataFrame(df)
}

// LoadFile reads the summary table from a CSV file at path.
func LoadFile(ctx context.Context, path string) (*Table, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Load(ctx, fh)
}

func fromDataFrame(df *dataframe.DataFrame) (*Table, error) {
	colIdx := make(map[string]int, len(df.Series))
	for _, name := range []string{ColName, ColTicker, ColAvgReturn, ColVaR, ColES,
		ColAvgReturnRank, ColVaRRank, ColESRank} {
		idx, err := df.NameToColumn(name)
		if err != nil {
			return nil, err
		}
		colIdx[name] = idx
	}

	str := func(row int, col string) string {
		v := df.Series[colIdx[col]].Value(row)
		if v == nil {
			return ""
		}
		return v.(string)
	}
	flt := func(row int, col string) float64 {
		v := df.Series[colIdx[col]].Value(row)
		if v == nil {
			return math.NaN()
		}
		return v.(float64)
	}
	rank := func(row int, col string) *int {
		v := df.Series[colIdx[col]].Value(row)
		if v == nil {
			return nil
		}
		r := int(v.(int64))
		return &r
	}

	tbl := &Table{Records: make([]Record, 0, df.NRows())}
	for row := 0; row < df.NRows(); row++ {
		tbl.Records = append(tbl.Records, Record{
			Name:          str(row, ColName),
			Ticker:        str(row, ColTicker),
			AvgReturn:     flt(row, ColAvgReturn),
			VaR:           flt(row, ColVaR),
			ES:            flt(row, ColES),
			AvgReturnRank: rank(row, ColAvgReturnRank),
			VaRRank:       rank(row, ColVaRRank),
			ESRank:        rank(row, ColESRank),
		})
	}
	return tbl, nil
}
