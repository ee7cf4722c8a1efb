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
	"fmt"

	"github.com/Daskott/kard/colors"
	"github.com/Daskott/kard/models"
	"github.com/Daskott/kard/version"
	"github.com/spf13/cobra"
)

var (
	isDevEnv bool
	dataFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd *cobra.Command

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd = createRootCmd()
	rootCmd.Version = fmt.Sprintf("v%s", version.Version)

	rootCmd.AddCommand(
		createServerCmd(),
		createExportCmd(),
		createQRCmd(),
		createImportCmd(),
	)
}

func createRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use: "kard",
		Short: `kard serves digital visiting cards for a company's employees.

Every employee gets a card page with a QR code, and a vCard that adds them
to a phone's contacts in one tap.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&isDevEnv, "dev", "", false, "run in development mode")

	return cmd
}

// loadContacts reads the dataset named by --data.
func loadContacts() (*models.Directory, error) {
	if dataFile == "" {
		return nil, formattedError("\"data\" not set, pass the contacts file with --data")
	}

	return models.LoadDirectory(dataFile)
}

func formattedError(format string, a ...interface{}) error {
	return colors.Errorf(format, a...)
}
