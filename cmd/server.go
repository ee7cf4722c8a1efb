/*
Copyright © 2021 Edmond Cotterell

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"os"
	"path/filepath"

	devConfig "github.com/Daskott/kard/dev/config"
	"github.com/Daskott/kard/server"
	"github.com/Daskott/kard/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serverConfigFile string

func createServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start a kard server",
		Long: `The kard server hosts the card pages, the vCard and QR downloads
and a small JSON API over the contacts dataset`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := serverConfig()
			if err != nil {
				return err
			}

			server.Start(config, isDevEnv)
			return nil
		},
	}

	cmd.Flags().StringVar(&serverConfigFile, "sconfig", "", "config for server")

	return cmd
}

// serverConfig reads the server config file and ENV variables. In dev mode
// the config lives in dev/config/server.yml and is created when missing.
func serverConfig() (*viper.Viper, error) {
	config := viper.New()

	if isDevEnv {
		path, err := devConfigFilePath()
		if err != nil {
			return nil, err
		}
		serverConfigFile = path
	}

	if serverConfigFile == "" {
		return nil, formattedError("\"sconfig\" not set, pass the server config with --sconfig")
	}

	config.SetConfigFile(serverConfigFile)
	config.AutomaticEnv() // read in environment variables that match

	// GOOGLE_APPLICATION_CREDENTIALS overrides whatever is in the config file
	config.BindEnv("google.applicationCredentials", "GOOGLE_APPLICATION_CREDENTIALS")

	if err := config.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "error reading server config file")
	}

	return config, nil
}

func devConfigFilePath() (string, error) {
	workingDir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(workingDir, "dev", "config")
	configFilePath := filepath.Join(configDir, "server.yml")
	if utils.FileExist(configFilePath) {
		return configFilePath, nil
	}

	if err := utils.CreateDirIfNotExist(configDir); err != nil {
		return "", err
	}

	return configFilePath, os.WriteFile(configFilePath, []byte(devConfig.SERVER_YML), 0600)
}
