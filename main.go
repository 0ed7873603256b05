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

package main

import (
	"errors"

	"github.com/TonyMPeluso/extreme-value/cmd"

	"github.com/spf13/viper"
)

func configureViper() {
	viper.SetConfigName("extreme-value")
	viper.SetConfigType("toml")
	viper.AddConfigPath("/etc/extreme-value/")
	viper.AddConfigPath("$HOME/.config/extreme-value")
	viper.AddConfigPath(".")

	// the config file is optional; flags and env vars cover every setting
	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		panic(err)
	}
}

func main() {
	configureViper()
	cmd.Execute()
}
