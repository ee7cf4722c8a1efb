package cmd

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Daskott/kard/models"
	"github.com/Daskott/kard/server/gstorage"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type TestDataProvider []struct {
	description string
	args        []string
	expectedOut string
}

var fixtureContacts = filepath.Join("test-fixtures", "contacts.json")

func executeCmd(cmd *cobra.Command, args ...string) string {
	buff := new(bytes.Buffer)

	cmd.SetOut(buff)
	cmd.SetErr(buff)
	cmd.SetArgs(args)
	cmd.Execute()

	return buff.String()
}

func runCases(t *testing.T, createCmd func() *cobra.Command, cases TestDataProvider) {
	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			actualOut := executeCmd(createCmd(), c.args...)
			if !strings.Contains(actualOut, c.expectedOut) {
				t.Errorf("Expected: \n\"%s\" \nTo contain: \n\"%s\"", actualOut, c.expectedOut)
			}
		})
	}
}

func TestExportCmd(t *testing.T) {
	out := t.TempDir()

	runCases(t, createExportCmd, TestDataProvider{
		{
			description: "Should fail when data flag is not provided",
			args:        []string{},
			expectedOut: "\"data\" not set",
		},
		{
			description: "Should fail when sn is set without section",
			args:        []string{"--data", fixtureContacts, "--sn", "1"},
			expectedOut: "--sn requires --section",
		},
		{
			description: "Should print a single contact's vCard",
			args:        []string{"--data", fixtureContacts, "--section", "green city", "--sn", "1"},
			expectedOut: "BEGIN:VCARD\r\nVERSION:3.0\r\nN:Jane Q. Doe;;;\r\nFN:Jane Q. Doe\r\n",
		},
		{
			description: "Should NOT print several contacts without out flag",
			args:        []string{"--data", fixtureContacts},
			expectedOut: "3 contacts selected",
		},
		{
			description: "Should fail for a contact that does not exist",
			args:        []string{"--data", fixtureContacts, "--section", "GREEN CITY", "--sn", "99"},
			expectedOut: "contact not found",
		},
		{
			description: "Should fail for a section that does not exist",
			args:        []string{"--data", fixtureContacts, "--section", "Nowhere", "--out", out},
			expectedOut: "unknown section",
		},
		{
			description: "Should NOT upload without a bucket",
			args:        []string{"--data", fixtureContacts, "--out", out, "--upload"},
			expectedOut: "--upload requires --out and --bucket",
		},
		{
			description: "Should write checked vCards for a section",
			args:        []string{"--data", fixtureContacts, "--section", "GREEN CITY", "--out", out, "--check"},
			expectedOut: "wrote 2 vCards",
		},
	})
}

func TestExportCmdWritesFiles(t *testing.T) {
	out := t.TempDir()

	output := executeCmd(createExportCmd(), "--data", fixtureContacts, "--out", out, "--check")
	assert.Contains(t, output, "wrote 3 vCards")

	data, err := os.ReadFile(filepath.Join(out, "GREEN_CITY", "1_Jane_Q._Doe.vcf"))
	require.Nil(t, err)
	assert.True(t, strings.HasSuffix(string(data), "\r\nEND:VCARD"))

	assert.FileExists(t, filepath.Join(out, "GREEN_CITY", "2_Omar_Farouk.vcf"))
	assert.FileExists(t, filepath.Join(out, "DSA_Group", "1_Tony_Stark.vcf"))
}

func TestExportCmdUploads(t *testing.T) {
	savedObjectStore := objectStore
	defer func() {
		objectStore = savedObjectStore
	}()

	stub := gstorage.NewStorageStub()
	objectStore = stub

	out := t.TempDir()
	output := executeCmd(createExportCmd(),
		"--data", fixtureContacts, "--section", "DSA Group", "--out", out, "--upload", "--bucket", "kard", "--prefix", "cards/2024")

	assert.Contains(t, output, "uploaded 1 vCards to gs://kard/cards/2024")

	data, ok := stub.Objects["kard/cards/2024/DSA_Group/1_Tony_Stark.vcf"]
	require.True(t, ok)
	assert.Contains(t, string(data), "FN:Tony Stark")
}

func decodeQRFile(t *testing.T, path string) (string, int) {
	t.Helper()

	f, err := os.Open(path)
	require.Nil(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.Nil(t, err)

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	require.Nil(t, err)

	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	require.Nil(t, err)

	return result.GetText(), img.Bounds().Dx()
}

func TestQRCmd(t *testing.T) {
	out := filepath.Join(t.TempDir(), "qr.png")

	runCases(t, createQRCmd, TestDataProvider{
		{
			description: "Should fail when section flag is not provided",
			args:        []string{"--data", fixtureContacts, "--sn", "1"},
			expectedOut: "\"section\" not set",
		},
		{
			description: "Should NOT accept an unknown mode",
			args:        []string{"--data", fixtureContacts, "--section", "DSA Group", "--sn", "1", "--mode", "image"},
			expectedOut: "--mode should be link or vcard",
		},
		{
			description: "Should require a base url in link mode",
			args:        []string{"--data", fixtureContacts, "--section", "DSA Group", "--sn", "1"},
			expectedOut: "--base-url is required",
		},
		{
			description: "Should NOT accept a size over the maximum",
			args:        []string{"--data", fixtureContacts, "--section", "DSA Group", "--sn", "1", "--mode", "vcard", "--size", "5000"},
			expectedOut: "--size must be between",
		},
		{
			description: "Should fail for a contact that does not exist",
			args:        []string{"--data", fixtureContacts, "--section", "DSA Group", "--sn", "2", "--mode", "vcard", "--out", out},
			expectedOut: "contact not found",
		},
	})
}

func TestQRCmdWritesLink(t *testing.T) {
	out := filepath.Join(t.TempDir(), "qr.png")

	output := executeCmd(createQRCmd(),
		"--data", fixtureContacts, "--section", "dsa group", "--sn", "1",
		"--base-url", "https://cards.example.com/", "--size", "300", "--out", out)
	assert.Contains(t, output, "QR code for Tony Stark written to")

	text, size := decodeQRFile(t, out)
	assert.Equal(t, "https://cards.example.com/card/DSA%20Group/1", text)
	assert.Equal(t, 300, size)
}

func TestQRCmdWritesVCard(t *testing.T) {
	out := filepath.Join(t.TempDir(), "qr.png")

	executeCmd(createQRCmd(),
		"--data", fixtureContacts, "--section", "GREEN CITY", "--sn", "2", "--mode", "vcard", "--size", "400", "--out", out)

	dir, err := models.LoadDirectory(fixtureContacts)
	require.Nil(t, err)
	contact, err := dir.Find("GREEN CITY", "2")
	require.Nil(t, err)

	text, _ := decodeQRFile(t, out)
	assert.Equal(t, contact.VCard(), text)
}

func writeTestWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.Nil(t, f.SetSheetName("Sheet1", "GREEN CITY"))
	headers := []interface{}{"SN", "NAME", "NAME ARABIC", "POSITION", "POSITION ARABIC", "EMAIL", "MOBILE", "TELEPHONE (H.O)", "ADDRESS (H.O)"}
	require.Nil(t, f.SetSheetRow("GREEN CITY", "A2", &headers))

	rows := [][]interface{}{
		{"1", "Jane Q. Doe", "", "VP, Sales", "", "jane@greencity.example", "0501234567", "", "Jeddah"},
		{"2", "Omar Farouk", "", "Accountant", "", "", "12", "", ""},
	}
	for i, row := range rows {
		row := row
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		require.Nil(t, err)
		require.Nil(t, f.SetSheetRow("GREEN CITY", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "cards.xlsx")
	require.Nil(t, f.SaveAs(path))
	return path
}

func TestImportCmd(t *testing.T) {
	xlsx := writeTestWorkbook(t)
	out := filepath.Join(t.TempDir(), "data", "contacts.json")

	runCases(t, createImportCmd, TestDataProvider{
		{
			description: "Should fail when xlsx flag is not provided",
			args:        []string{"--out", out},
			expectedOut: "\"xlsx\" not set",
		},
		{
			description: "Should fail when out flag is not provided",
			args:        []string{"--xlsx", xlsx},
			expectedOut: "\"out\" not set",
		},
		{
			description: "Should print the first rows of every sheet",
			args:        []string{"--xlsx", xlsx, "--inspect", "2"},
			expectedOut: "--- GREEN CITY: 4 rows ---",
		},
	})
}

func TestImportCmdWritesDataset(t *testing.T) {
	out := filepath.Join(t.TempDir(), "data", "contacts.json")

	output := executeCmd(createImportCmd(),
		"--xlsx", writeTestWorkbook(t), "--out", out, "--company", "GREEN CITY=Green City Holding")

	assert.Contains(t, output, "wrote 2 contacts to")
	assert.Contains(t, output, "GREEN CITY: 2")
	assert.Contains(t, output, `phone number "+96612" looks malformed`)

	dir, err := models.LoadDirectory(out)
	require.Nil(t, err)

	contact, err := dir.Find("GREEN CITY", "1")
	require.Nil(t, err)
	assert.Equal(t, "+966501234567", contact.PhonePrimary)
	assert.Equal(t, "Green City Holding", contact.Company)
}

func TestServerConfig(t *testing.T) {
	savedConfigFile := serverConfigFile
	defer func() {
		serverConfigFile = savedConfigFile
	}()

	serverConfigFile = ""
	_, err := serverConfig()
	assert.NotNil(t, err)

	serverConfigFile = filepath.Join(t.TempDir(), "server.yml")
	require.Nil(t, os.WriteFile(serverConfigFile, []byte("kard:\n  listener:\n    port: 8080\n"), 0600))

	config, err := serverConfig()
	require.Nil(t, err)
	assert.Equal(t, 8080, config.GetInt("kard.listener.port"))
}
