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

package tickers_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/TonyMPeluso/extreme-value/tickers"
)

// writeWorkbook creates a minimal Stocks.xlsx-style workbook for testing.
func writeWorkbook(path string, rows [][]interface{}) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		Expect(err).To(BeNil())
		Expect(f.SetSheetRow(sheet, cell, &row)).To(Succeed())
	}
	Expect(f.SaveAs(path)).To(Succeed())
}

var _ = Describe("Load", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("loads company names and symbols from the first sheet", func() {
		path := filepath.Join(dir, "Stocks.xlsx")
		writeWorkbook(path, [][]interface{}{
			{"Company_Name", "Stock_Symbol"},
			{"Apple Inc", "AAPL"},
			{"Microsoft Corp", "MSFT"},
		})

		universe, err := tickers.Load(path)
		Expect(err).To(BeNil())
		Expect(universe).To(Equal([]tickers.Ticker{
			{Name: "Apple Inc", Symbol: "AAPL"},
			{Name: "Microsoft Corp", Symbol: "MSFT"},
		}))
	})

	It("rewrites Canadian symbols with the market suffix", func() {
		path := filepath.Join(dir, "Stocks.xlsx")
		writeWorkbook(path, [][]interface{}{
			{"Company_Name", "Stock_Symbol"},
			{"Royal Bank of Canada", "RY"},
			{"Toronto-Dominion Bank", "TD"},
			{"Apple Inc", "AAPL"},
		})

		universe, err := tickers.Load(path)
		Expect(err).To(BeNil())
		Expect(universe[0].Symbol).To(Equal("RY.TO"))
		Expect(universe[1].Symbol).To(Equal("TD.TO"))
		Expect(universe[2].Symbol).To(Equal("AAPL"))
	})

	It("drops rows with a blank symbol", func() {
		path := filepath.Join(dir, "Stocks.xlsx")
		writeWorkbook(path, [][]interface{}{
			{"Company_Name", "Stock_Symbol"},
			{"No Symbol Co", ""},
			{"Apple Inc", "AAPL"},
		})

		universe, err := tickers.Load(path)
		Expect(err).To(BeNil())
		Expect(universe).To(HaveLen(1))
		Expect(universe[0].Symbol).To(Equal("AAPL"))
	})

	It("fails when the workbook is missing", func() {
		_, err := tickers.Load(filepath.Join(dir, "absent.xlsx"))
		Expect(err).NotTo(BeNil())
		Expect(os.IsNotExist(err)).To(BeFalse()) // wrapped, not raw
	})

	It("fails when the expected columns are absent", func() {
		path := filepath.Join(dir, "Stocks.xlsx")
		writeWorkbook(path, [][]interface{}{
			{"Foo", "Bar"},
			{"Apple Inc", "AAPL"},
		})

		_, err := tickers.Load(path)
		Expect(err).To(MatchError(tickers.ErrMissingColumns))
	})
})
