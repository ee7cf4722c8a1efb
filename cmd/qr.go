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

	"github.com/Daskott/kard/colors"
	"github.com/Daskott/kard/vcard"
	"github.com/spf13/cobra"
)

var (
	qrSection string
	qrSN      string
	qrMode    string
	qrBaseURL string
	qrSize    int
	qrLogo    string
	qrOut     string
)

func createQRCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Write a contact's QR code as a PNG image",
		Long: `Writes the QR code printed on a contact's card. In link mode the code opens the
hosted card page, in vcard mode it carries the vCard itself.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQR(cmd)
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "contacts dataset (JSON)")
	cmd.Flags().StringVarP(&qrSection, "section", "s", "", "section of the contact")
	cmd.Flags().StringVar(&qrSN, "sn", "", "serial number of the contact")
	cmd.Flags().StringVarP(&qrMode, "mode", "m", string(vcard.PayloadLink), "QR payload, link or vcard")
	cmd.Flags().StringVar(&qrBaseURL, "base-url", "", "site address used in link mode, e.g. https://cards.example.com")
	cmd.Flags().IntVar(&qrSize, "size", vcard.DefaultQRSize, "width and height of the image in pixels")
	cmd.Flags().StringVar(&qrLogo, "logo", "", "PNG logo drawn in the centre of the code")
	cmd.Flags().StringVarP(&qrOut, "out", "o", "", "output file (default QR_<name>_<section>.png)")

	cmd.MarkFlagRequired("section")
	cmd.MarkFlagRequired("sn")

	return cmd
}

func runQR(cmd *cobra.Command) error {
	mode := vcard.PayloadMode(qrMode)
	if !mode.Valid() {
		return formattedError("invalid argument %q, --mode should be link or vcard", qrMode)
	}

	if mode == vcard.PayloadLink && qrBaseURL == "" {
		return formattedError("--base-url is required in link mode")
	}

	if qrSize <= 0 || qrSize > vcard.MaxQRSize {
		return formattedError("invalid argument \"%v\", --size must be between 1 and %d", qrSize, vcard.MaxQRSize)
	}

	dir, err := loadContacts()
	if err != nil {
		return err
	}

	if name, ok := dir.LookupSection(qrSection); ok {
		qrSection = name
	}

	contact, err := dir.Find(qrSection, qrSN)
	if err != nil {
		return err
	}

	opts := vcard.QROptions{Size: qrSize}
	if qrLogo != "" {
		data, err := os.ReadFile(qrLogo)
		if err != nil {
			return err
		}

		if opts.Logo, err = vcard.LoadLogo(data); err != nil {
			return err
		}
	}

	payload := vcard.Payload(mode, contact.Card(), vcard.CardURL(qrBaseURL, contact.Section, contact.SN))
	pngData, err := vcard.QRPNG(payload, opts)
	if err != nil {
		return err
	}

	out := qrOut
	if out == "" {
		out = vcard.QRFileName(contact.Name, contact.Section)
	}

	if err := os.WriteFile(out, pngData, 0644); err != nil {
		return err
	}

	cmd.Printf("%s QR code for %s written to %s\n", colors.DoneLabel, contact.Name, out)
	return nil
}
