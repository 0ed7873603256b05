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
	"time"

	"github.com/TonyMPeluso/extreme-value/batch"
	"github.com/TonyMPeluso/extreme-value/common"
	"github.com/TonyMPeluso/extreme-value/quotes"
	"github.com/TonyMPeluso/extreme-value/tail"
	"github.com/TonyMPeluso/extreme-value/tickers"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	batchCmd.Flags().String("tickers-file", "data/Stocks.xlsx", "Excel workbook with Company_Name and Stock_Symbol columns")
	viper.BindPFlag("tickers.file", batchCmd.Flags().Lookup("tickers-file"))

	batchCmd.Flags().String("begin", "2022-01-01", "First quote date (YYYY-MM-dd)")
	viper.BindPFlag("quotes.begin", batchCmd.Flags().Lookup("begin"))

	batchCmd.Flags().String("end", "2024-12-31", "Last quote date (YYYY-MM-dd)")
	viper.BindPFlag("quotes.end", batchCmd.Flags().Lookup("end"))

	batchCmd.Flags().Int("workers", 0, "Number of concurrent ticker pipelines (0 = NumCPU)")
	viper.BindPFlag("batch.workers", batchCmd.Flags().Lookup("workers"))

	batchCmd.Flags().Float64("confidence", 0.95, "Confidence level for VaR and ES")
	viper.BindPFlag("risk.confidence", batchCmd.Flags().Lookup("confidence"))

	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Estimate tail risk for every ticker and write the summary table",
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()

		universe, err := tickers.Load(viper.GetString("tickers.file"))
		if err != nil {
			log.Fatal().Err(err).Str("File", viper.GetString("tickers.file")).Msg("could not load ticker universe")
		}

		begin, err := time.Parse("2006-01-02", viper.GetString("quotes.begin"))
		if err != nil {
			log.Fatal().Err(err).Str("InputStr", viper.GetString("quotes.begin")).Msg("could not parse begin date - expected format 2006-01-02")
		}
		end, err := time.Parse("2006-01-02", viper.GetString("quotes.end"))
		if err != nil {
			log.Fatal().Err(err).Str("InputStr", viper.GetString("quotes.end")).Msg("could not parse end date - expected format 2006-01-02")
		}

		cfg := tail.DefaultConfig()
		if w := viper.GetInt("batch.workers"); w > 0 {
			cfg.Workers = w
		}
		if alpha := viper.GetFloat64("risk.confidence"); alpha > 0 && alpha < 1 {
			cfg.Alpha = alpha
		}

		log.Info().Int("Tickers", len(universe)).Time("Begin", begin).Time("End", end).Msg("starting batch")

		table, stats, err := batch.Run(context.Background(), universe, quotes.NewYahoo(), begin, end, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("batch failed")
		}
		if table == nil {
			log.Warn().Msg("no tickers produced a risk record; summary not written")
			return
		}

		output := viper.GetString("summary.output")
		if err := table.WriteFile(context.Background(), output); err != nil {
			log.Fatal().Err(err).Str("File", output).Msg("could not write summary table")
		}
		log.Info().Str("File", output).Int("Rows", stats.Processed()).Msg("wrote summary table")
	},
}
