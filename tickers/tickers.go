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

// Package tickers loads the ticker universe from an Excel workbook with
// Company_Name and Stock_Symbol columns.
package tickers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Ticker pairs a company name with the symbol used for quote lookups.
type Ticker struct {
	Name   string
	Symbol string
}

const (
	nameHeader   = "Company_Name"
	symbolHeader = "Stock_Symbol"
)

// canadianSymbols trade on the TSX and need the market suffix before quote
// lookup.
var canadianSymbols = map[string]struct{}{
	"RY": {},
	"TD": {},
}

var (
	ErrMissingColumns = errors.New("workbook is missing Company_Name or Stock_Symbol column")
	ErrNoTickers      = errors.New("workbook contains no tickers")
)

// Load reads the ticker list from the first sheet of the workbook at path.
// Rows with a blank symbol are dropped and Canadian symbols gain the ".TO"
// suffix. A missing or unreadable workbook is an error; the batch cannot
// run without a universe.
func Load(path string) ([]Ticker, error) {
	fh, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open tickers workbook: %w", err)
	}
	defer fh.Close()

	sheets := fh.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoTickers
	}
	rows, err := fh.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("could not read tickers sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoTickers
	}

	nameCol, symbolCol := -1, -1
	for idx, header := range rows[0] {
		switch strings.TrimSpace(header) {
		case nameHeader:
			nameCol = idx
		case symbolHeader:
			symbolCol = idx
		}
	}
	if nameCol < 0 || symbolCol < 0 {
		return nil, ErrMissingColumns
	}

	cell := func(row []string, idx int) string {
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	tickers := make([]Ticker, 0, len(rows)-1)
	for _, row := range rows[1:] {
		symbol := cell(row, symbolCol)
		if symbol == "" {
			continue
		}
		name := cell(row, nameCol)
		if name == "" {
			name = symbol
		}
		tickers = append(tickers, Ticker{
			Name:   name,
			Symbol: MarketSymbol(symbol),
		})
	}
	if len(tickers) == 0 {
		return nil, ErrNoTickers
	}
	return tickers, nil
}

// MarketSymbol rewrites a raw symbol with its exchange suffix where one is
// required for quote lookup.
func MarketSymbol(symbol string) string {
	if _, ok := canadianSymbols[symbol]; ok {
		return symbol + ".TO"
	}
	return symbol
}
