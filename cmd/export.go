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
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/Daskott/kard/colors"
	"github.com/Daskott/kard/models"
	"github.com/Daskott/kard/server/gstorage"
	"github.com/Daskott/kard/utils"
	"github.com/Daskott/kard/vcard"
	"github.com/spf13/cobra"
)

var (
	exportSection     string
	exportSN          string
	exportOut         string
	exportCheck       bool
	exportUpload      bool
	uploadBucket      string
	uploadPrefix      string
	uploadCredentials string

	// objectStore is used by --upload. It is created from --credentials
	// when nil.
	objectStore gstorage.ObjectStore
)

func createExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Encode contacts as vCard (.vcf) files",
		Long: `Encodes contacts of the dataset as vCard 3.0 files, one per contact, laid out
as <out>/<section>/<sn>_<name>.vcf. A single contact is printed to stdout when --out is not set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd)
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "contacts dataset (JSON)")
	cmd.Flags().StringVarP(&exportSection, "section", "s", "", "only export contacts in this section")
	cmd.Flags().StringVar(&exportSN, "sn", "", "only export the contact with this serial number (requires --section)")
	cmd.Flags().StringVarP(&exportOut, "out", "o", "", "directory to write the .vcf files to")
	cmd.Flags().BoolVar(&exportCheck, "check", false, "re-read every vCard and fail on malformed output")
	cmd.Flags().BoolVar(&exportUpload, "upload", false, "upload the written files to google storage")
	cmd.Flags().StringVar(&uploadBucket, "bucket", "", "google storage bucket for --upload")
	cmd.Flags().StringVar(&uploadPrefix, "prefix", "vcards", "object prefix for --upload")
	cmd.Flags().StringVar(&uploadCredentials, "credentials", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		"service account key for --upload")

	return cmd
}

func runExport(cmd *cobra.Command) error {
	if exportSN != "" && exportSection == "" {
		return formattedError("--sn requires --section")
	}

	if exportUpload && (exportOut == "" || uploadBucket == "") {
		return formattedError("--upload requires --out and --bucket")
	}

	dir, err := loadContacts()
	if err != nil {
		return err
	}

	contacts, err := selectContacts(dir, exportSection, exportSN)
	if err != nil {
		return err
	}

	if exportCheck {
		for _, contact := range contacts {
			if err := vcard.Check(contact.VCard()); err != nil {
				return formattedError("%s/%s: %v", contact.Section, contact.SN, err)
			}
		}
	}

	if exportOut == "" {
		if len(contacts) != 1 {
			return formattedError("%d contacts selected, use --out to write them to a directory", len(contacts))
		}

		fmt.Fprint(cmd.OutOrStdout(), contacts[0].VCard())
		return nil
	}

	files, err := writeVCards(exportOut, contacts)
	if err != nil {
		return err
	}
	cmd.Printf("%s wrote %d vCards to %s\n", colors.DoneLabel, len(files), exportOut)

	if exportUpload {
		return uploadVCards(cmd, files)
	}

	return nil
}

func selectContacts(dir *models.Directory, section, sn string) ([]models.Contact, error) {
	if section == "" {
		return dir.All(), nil
	}

	if name, ok := dir.LookupSection(section); ok {
		section = name
	}

	if sn != "" {
		contact, err := dir.Find(section, sn)
		if err != nil {
			return nil, err
		}
		return []models.Contact{contact}, nil
	}

	return dir.InSection(section)
}

// writeVCards writes one file per contact below out and returns the file
// paths relative to out.
func writeVCards(out string, contacts []models.Contact) ([]string, error) {
	files := make([]string, 0, len(contacts))

	for _, contact := range contacts {
		name := filepath.Join(
			utils.SafeFileName(contact.Section),
			utils.SafeFileName(contact.SN)+"_"+vcard.FileName(contact.Name),
		)

		filePath := filepath.Join(out, name)
		if err := utils.CreateDirIfNotExist(filepath.Dir(filePath)); err != nil {
			return nil, err
		}

		if err := os.WriteFile(filePath, []byte(contact.VCard()), 0644); err != nil {
			return nil, err
		}

		files = append(files, name)
	}

	return files, nil
}

func uploadVCards(cmd *cobra.Command, files []string) error {
	store := objectStore
	if store == nil {
		gs, err := gstorage.NewGStorage(uploadCredentials)
		if err != nil {
			return err
		}
		defer gs.Close()
		store = gs
	}

	for _, file := range files {
		object := path.Join(uploadPrefix, filepath.ToSlash(file))
		if err := store.UploadFile(context.Background(), uploadBucket, object, filepath.Join(exportOut, file)); err != nil {
			return formattedError("upload %s: %v", object, err)
		}
	}

	cmd.Printf("%s uploaded %d vCards to gs://%s/%s\n", colors.DoneLabel, len(files), uploadBucket, uploadPrefix)
	return nil
}
