package models

import (
	"github.com/Daskott/kard/vcard"
)

// Contact is one employee record of the visiting card dataset. Records are
// keyed by the pair (Section, SN).
type Contact struct {
	SN             string `json:"sn" validate:"required"`
	Section        string `json:"section" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Title          string `json:"title"`
	NameArabic     string `json:"nameArabic,omitempty"`
	TitleArabic    string `json:"titleArabic,omitempty"`
	Company        string `json:"company"`
	Email          string `json:"email"`
	PhonePrimary   string `json:"phonePrimary"`
	PhoneSecondary string `json:"phoneSecondary,omitempty"`
	Location       string `json:"location"`
}

// Card returns the fields printed on the contact's vCard.
func (contact Contact) Card() vcard.Contact {
	return vcard.Contact{
		Name:           contact.Name,
		Title:          contact.Title,
		Company:        contact.Company,
		Email:          contact.Email,
		PhonePrimary:   contact.PhonePrimary,
		PhoneSecondary: contact.PhoneSecondary,
		Location:       contact.Location,
	}
}

// VCard returns the contact encoded as a vCard 3.0 payload.
func (contact Contact) VCard() string {
	return vcard.Encode(contact.Card())
}

func (contact Contact) HasEmail() bool {
	return vcard.IsEmail(contact.Email)
}

func (contact Contact) key() contactKey {
	return contactKey{section: contact.Section, sn: contact.SN}
}

type contactKey struct {
	section string
	sn      string
}
