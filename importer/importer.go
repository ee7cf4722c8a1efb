// Package importer builds the contacts dataset from the visiting card
// spreadsheet. Every sheet is a section; row 2 holds the column headers and
// employees start on row 3.
package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Daskott/kard/models"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	headerRow   = 1
	firstRow    = 2
	missingName = "—"

	// minPhoneDigits is the shortest number that is not reported as malformed.
	minPhoneDigits = 7
)

// Column headers
const (
	colSN            = "SN"
	colName          = "NAME"
	colNameArabic    = "NAME ARABIC"
	colPosition      = "POSITION"
	colPositionArab  = "POSITION ARABIC"
	colEmail         = "EMAIL"
	colMobile        = "MOBILE"
	colTelephone     = "TELEPHONE (H.O)"
	colAddress       = "ADDRESS (H.O)"
	headOfficeSuffix = "(H.O)"
)

type Options struct {
	// Companies maps a section (sheet name) to the company printed on its cards.
	Companies map[string]string

	// DefaultCompany is used for sections missing from Companies.
	DefaultCompany string
}

// DefaultOptions returns the company mapping of the current card run.
func DefaultOptions() Options {
	return Options{
		Companies: map[string]string{
			"DSA Group": "Diamond Star Arabia Industrial Company",
		},
		DefaultCompany: "Green City Trading",
	}
}

func (opts Options) company(section string) string {
	if company, ok := opts.Companies[section]; ok {
		return company
	}
	return opts.DefaultCompany
}

// Warning flags a row that was imported but needs a human look.
type Warning struct {
	Section string
	Row     int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s row %d: %s", w.Section, w.Row, w.Message)
}

type Report struct {
	Contacts []models.Contact
	Warnings []Warning
}

// Count returns the number of contacts imported for section.
func (report *Report) Count(section string) int {
	count := 0
	for _, contact := range report.Contacts {
		if contact.Section == section {
			count++
		}
	}
	return count
}

func (report *Report) warn(section string, row int, format string, a ...interface{}) {
	report.Warnings = append(report.Warnings, Warning{
		Section: section,
		Row:     row,
		Message: fmt.Sprintf(format, a...),
	})
}

func ReadFile(path string, opts Options) (*Report, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	return read(f, opts)
}

func Read(r io.Reader, opts Options) (*Report, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	return read(f, opts)
}

func read(f *excelize.File, opts Options) (*Report, error) {
	report := &Report{Contacts: []models.Contact{}}
	seen := map[string]int{}

	for _, section := range f.GetSheetList() {
		rows, err := f.GetRows(section, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, errors.Wrapf(err, "read sheet %q", section)
		}

		if len(rows) <= headerRow {
			continue
		}
		headers := newHeaderIndex(rows[headerRow])

		for i := firstRow; i < len(rows); i++ {
			contact, ok := report.contact(section, i+1, headers.reader(rows[i]), opts)
			if !ok {
				continue
			}

			key := contact.Section + "/" + contact.SN
			if row, ok := seen[key]; ok {
				report.warn(section, i+1, "SN %s already used on row %d", contact.SN, row)
			}
			seen[key] = i + 1

			report.Contacts = append(report.Contacts, contact)
		}
	}

	return report, nil
}

// contact maps one spreadsheet row to a contact. Rows without any data are
// skipped.
func (report *Report) contact(section string, row int, get func(string) string, opts Options) (models.Contact, bool) {
	sn := get(colSN)
	name := get(colName)
	nameArabic := get(colNameArabic)
	position := get(colPosition)
	email := get(colEmail)
	mobile := get(colMobile)
	telephone := get(colTelephone)
	address := get(colAddress)

	if sn == "" && name == "" && nameArabic == "" && position == "" && email == "" &&
		mobile == "" && telephone == "" && address == "" {
		return models.Contact{}, false
	}

	if sn == "" {
		sn = strconv.Itoa(len(report.Contacts) + 1)
	}

	if name == "" {
		name = nameArabic
	}
	if name == "" {
		name = missingName
		report.warn(section, row, "no name, using %q", missingName)
	}

	mobile = NormalizePhone(firstNumber(mobile))
	telephone = NormalizePhone(firstNumber(telephone))
	for _, phone := range []string{mobile, telephone} {
		if phone != "" && digits(phone) < minPhoneDigits {
			report.warn(section, row, "phone number %q looks malformed", phone)
		}
	}

	primary, secondary := mobile, ""
	if primary == "" {
		primary = telephone
	} else {
		secondary = telephone
	}

	return models.Contact{
		SN:             sn,
		Section:        section,
		Name:           name,
		Title:          position,
		NameArabic:     nameArabic,
		TitleArabic:    get(colPositionArab),
		Company:        opts.company(section),
		Email:          strings.TrimSpace(strings.TrimSuffix(email, ">")),
		PhonePrimary:   primary,
		PhoneSecondary: secondary,
		Location:       address,
	}, true
}

// NormalizePhone rewrites a spreadsheet phone number into international
// form. Saudi local numbers get the +966 country code; numbers already
// carrying a known country code just get a leading +.
func NormalizePhone(raw string) string {
	number := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	switch {
	case number == "":
		return ""
	case strings.HasPrefix(number, "966"), strings.HasPrefix(number, "971"), strings.HasPrefix(number, "91"):
		return "+" + number
	case strings.HasPrefix(number, "05"):
		return "+966" + number[1:]
	case strings.HasPrefix(number, "5") && len(number) >= 9:
		return "+966" + number
	case strings.HasPrefix(number, "12"):
		return "+966" + number
	case strings.HasPrefix(number, "012"):
		return "+966" + number[1:]
	default:
		return "+" + number
	}
}

// firstNumber keeps the first of several "/" separated numbers.
func firstNumber(value string) string {
	return strings.TrimSpace(strings.SplitN(value, "/", 2)[0])
}

func digits(phone string) int {
	count := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}

// WriteJSON writes contacts in the dataset format read by models.LoadDirectory.
func WriteJSON(w io.Writer, contacts []models.Contact) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(contacts)
}

type headerIndex map[string]int

func newHeaderIndex(row []string) headerIndex {
	index := headerIndex{}
	for i, header := range row {
		header = strings.TrimSpace(header)
		if _, ok := index[header]; !ok && header != "" {
			index[header] = i
		}
	}
	return index
}

// reader returns a lookup of trimmed cell values by header. Head office
// columns are also found when spelled with a trailing dot, "(H.O.)".
func (index headerIndex) reader(row []string) func(string) string {
	return func(header string) string {
		i, ok := index[header]
		if !ok && strings.HasSuffix(header, headOfficeSuffix) {
			i, ok = index[strings.TrimSuffix(header, headOfficeSuffix)+"(H.O.)"]
		}
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
}
