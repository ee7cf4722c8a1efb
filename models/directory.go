package models

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator"
	"github.com/pkg/errors"
)

var (
	ErrContactNotFound = errors.New("contact not found")
	ErrUnknownSection  = errors.New("unknown section")
	ErrDuplicateKey    = errors.New("duplicate contact key")
)

var validate = validator.New()

// Directory is an immutable, ordered view of the contact dataset.
type Directory struct {
	contacts []Contact
	sections []string
	index    map[contactKey]int
	bySect   map[string][]int
}

// LoadDirectory reads a JSON array of contacts from path.
func LoadDirectory(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read contacts")
	}

	contacts := []Contact{}
	if err := json.Unmarshal(data, &contacts); err != nil {
		return nil, errors.Wrapf(err, "parse contacts in %s", path)
	}

	return NewDirectory(contacts)
}

// NewDirectory validates contacts and indexes them by section and serial number.
func NewDirectory(contacts []Contact) (*Directory, error) {
	dir := &Directory{
		contacts: make([]Contact, 0, len(contacts)),
		index:    make(map[contactKey]int, len(contacts)),
		bySect:   make(map[string][]int),
	}

	for i, contact := range contacts {
		if err := validate.Struct(contact); err != nil {
			return nil, errors.Wrapf(err, "contact #%d", i+1)
		}

		key := contact.key()
		if _, ok := dir.index[key]; ok {
			return nil, errors.Wrapf(ErrDuplicateKey, "section %q, sn %q", contact.Section, contact.SN)
		}

		if _, ok := dir.bySect[contact.Section]; !ok {
			dir.sections = append(dir.sections, contact.Section)
		}

		dir.index[key] = len(dir.contacts)
		dir.bySect[contact.Section] = append(dir.bySect[contact.Section], len(dir.contacts))
		dir.contacts = append(dir.contacts, contact)
	}

	return dir, nil
}

// Find returns the contact with the given section and serial number.
func (dir *Directory) Find(section, sn string) (Contact, error) {
	i, ok := dir.index[contactKey{section: section, sn: sn}]
	if !ok {
		return Contact{}, errors.Wrap(ErrContactNotFound, fmt.Sprintf("%s/%s", section, sn))
	}

	return dir.contacts[i], nil
}

// InSection returns the contacts of section in dataset order.
func (dir *Directory) InSection(section string) ([]Contact, error) {
	indexes, ok := dir.bySect[section]
	if !ok {
		return nil, errors.Wrap(ErrUnknownSection, section)
	}

	contacts := make([]Contact, 0, len(indexes))
	for _, i := range indexes {
		contacts = append(contacts, dir.contacts[i])
	}

	return contacts, nil
}

// Sections returns the section names in the order they first appear.
func (dir *Directory) Sections() []string {
	return append([]string(nil), dir.sections...)
}

// LookupSection returns the canonical name of section. Matching ignores
// case so "green city" finds "GREEN CITY".
func (dir *Directory) LookupSection(section string) (string, bool) {
	for _, name := range dir.sections {
		if strings.EqualFold(name, section) {
			return name, true
		}
	}
	return "", false
}

func (dir *Directory) All() []Contact {
	return append([]Contact(nil), dir.contacts...)
}

func (dir *Directory) Len() int {
	return len(dir.contacts)
}
