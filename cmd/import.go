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

	"github.com/Daskott/kard/colors"
	"github.com/Daskott/kard/importer"
	"github.com/Daskott/kard/models"
	"github.com/Daskott/kard/utils"
	"github.com/spf13/cobra"
)

var (
	importXLSX      string
	importOut       string
	importCompanies map[string]string
	importDefault   string
	importInspect   int
)

func createImportCmd() *cobra.Command {
	defaults := importer.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Build the contacts dataset from the visiting card spreadsheet",
		Long: `Reads the visiting card workbook, one sheet per section with the column headers
on row 2, and writes the contacts dataset served by kard.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd)
		},
	}

	cmd.Flags().StringVar(&importXLSX, "xlsx", "", "visiting card workbook")
	cmd.Flags().StringVarP(&importOut, "out", "o", "", "contacts dataset to write (JSON)")
	cmd.Flags().StringToStringVar(&importCompanies, "company", defaults.Companies,
		"company printed on the cards of a section, e.g. --company \"DSA Group=Diamond Star Arabia Industrial Company\"")
	cmd.Flags().StringVar(&importDefault, "default-company", defaults.DefaultCompany, "company for sections without --company")
	cmd.Flags().IntVar(&importInspect, "inspect", 0, "print the first N rows of every sheet instead of importing")

	cmd.MarkFlagRequired("xlsx")

	return cmd
}

func runImport(cmd *cobra.Command) error {
	if importInspect > 0 {
		return importer.Inspect(cmd.OutOrStdout(), importXLSX, importInspect)
	}

	if importOut == "" {
		return formattedError("\"out\" not set, pass the dataset to write with --out")
	}

	report, err := importer.ReadFile(importXLSX, importer.Options{
		Companies:      importCompanies,
		DefaultCompany: importDefault,
	})
	if err != nil {
		return err
	}

	for _, warning := range report.Warnings {
		cmd.Printf("%s %v\n", colors.WarningLabel, warning)
	}

	// Refuse to write a dataset the server would not load.
	dir, err := models.NewDirectory(report.Contacts)
	if err != nil {
		return err
	}

	if err := utils.CreateDirIfNotExist(filepath.Dir(importOut)); err != nil {
		return err
	}

	f, err := os.Create(importOut)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := importer.WriteJSON(f, report.Contacts); err != nil {
		return err
	}

	cmd.Printf("%s wrote %d contacts to %s\n", colors.DoneLabel, dir.Len(), importOut)
	for _, section := range dir.Sections() {
		cmd.Printf("  %s: %d\n", section, report.Count(section))
	}

	return f.Close()
}
