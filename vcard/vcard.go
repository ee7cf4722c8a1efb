// Package vcard serializes contacts into vCard 3.0 payloads and renders
// those payloads (or links to them) as QR codes.
package vcard

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	crlf = "\r\n"

	// maxLineLength is the number of characters allowed on a content line
	// before it is folded.
	maxLineLength = 75

	// MIMEType is the content type used when a payload is offered as a download.
	MIMEType = "text/vcard;charset=utf-8"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)

	escaper = strings.NewReplacer(`\`, `\\`, `;`, `\;`, `,`, `\,`, "\r\n", `\n`, "\n", `\n`)
)

// Contact is the information printed on a visiting card.
type Contact struct {
	Name           string
	Title          string
	Company        string
	Email          string
	PhonePrimary   string
	PhoneSecondary string
	Location       string
}

// Encode returns the vCard 3.0 representation of c. Lines are CRLF
// separated and the payload ends with END:VCARD.
func Encode(c Contact) string {
	name := Escape(c.Name)

	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		Fold("N:" + name + ";;;"),
		Fold("FN:" + name),
		Fold("ORG:" + Escape(c.Company)),
		Fold("TITLE:" + Escape(c.Title)),
	}

	if tel := NormalizePhone(c.PhonePrimary); tel != "" {
		lines = append(lines, Fold("TEL;TYPE=CELL,VOICE:"+tel))
	}

	if tel := NormalizePhone(c.PhoneSecondary); tel != "" {
		lines = append(lines, Fold("TEL;TYPE=WORK,VOICE:"+tel))
	}

	if IsEmail(c.Email) {
		lines = append(lines, Fold("EMAIL;TYPE=INTERNET:"+c.Email))
	}

	if c.Location != "" {
		lines = append(lines, Fold("ADR;TYPE=WORK:;;"+Escape(c.Location)+";;;;;"))
	}

	lines = append(lines, "END:VCARD")

	return strings.Join(lines, crlf)
}

// Escape escapes backslashes, semicolons, commas and line breaks in a text value.
func Escape(s string) string {
	// strings.Replacer picks the first matching old string at each position,
	// so every input rune is replaced at most once.
	return escaper.Replace(s)
}

// Unescape reverses Escape.
func Unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}

		i++
		switch s[i] {
		case 'n', 'N':
			b.WriteByte('\n')
		default:
			b.WriteByte(s[i])
		}
	}

	return b.String()
}

// Fold splits a content line longer than 75 characters into 75 character
// chunks. Every chunk after the first is prefixed with a single space.
// Chunks are cut at character boundaries and the bytes are kept as given.
func Fold(line string) string {
	if utf8.RuneCountInString(line) <= maxLineLength {
		return line
	}

	var b strings.Builder
	start, count := 0, 0
	for i := 0; i < len(line); {
		_, size := utf8.DecodeRuneInString(line[i:])
		i += size
		count++

		if count == maxLineLength || i == len(line) {
			if start > 0 {
				b.WriteString(crlf + " ")
			}
			b.WriteString(line[start:i])
			start, count = i, 0
		}
	}

	return b.String()
}

// NormalizePhone removes all whitespace, including a byte order mark, from a
// phone number. Punctuation such as '+' and '-' is kept.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '\ufeff' {
			return -1
		}
		return r
	}, phone)
}

// IsEmail reports whether s should be treated as an email address.
// Any value containing '@' passes.
func IsEmail(s string) bool {
	return strings.Contains(s, "@")
}

// FileName returns the suggested download name for a contact's vCard.
func FileName(name string) string {
	return whitespaceRun.ReplaceAllString(name, "_") + ".vcf"
}
