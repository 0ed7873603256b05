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

package cmd

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/TonyMPeluso/extreme-value/common"
	"github.com/TonyMPeluso/extreme-value/summary"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show TICKER",
	Short: "Print one ticker's row of the summary table",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()

		output := viper.GetString("summary.output")
		table, err := summary.LoadFile(context.Background(), output)
		if err != nil {
			log.Fatal().Err(err).Str("File", output).Msg("could not load summary table")
		}

		rec, ok := table.Lookup(args[0])
		if !ok {
			fmt.Printf("no data for %s\n", args[0])
			return
		}

		w := tablewriter.NewWriter(os.Stdout)
		w.SetHeader([]string{"Field", "Value"})
		w.Append([]string{summary.ColName, rec.Name})
		w.Append([]string{summary.ColTicker, rec.Ticker})
		w.Append([]string{summary.ColAvgReturn, formatFloat(rec.AvgReturn)})
		w.Append([]string{summary.ColVaR, formatFloat(rec.VaR)})
		w.Append([]string{summary.ColES, formatFloat(rec.ES)})
		w.Append([]string{summary.ColAvgReturnRank, formatRank(rec.AvgReturnRank)})
		w.Append([]string{summary.ColVaRRank, formatRank(rec.VaRRank)})
		w.Append([]string{summary.ColESRank, formatRank(rec.ESRank)})
		w.Render()
	},
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "undefined"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func formatRank(r *int) string {
	if r == nil {
		return ""
	}
	return strconv.Itoa(*r)
}
