package vcard

import (
	"strings"

	govcard "github.com/emersion/go-vcard"
	"github.com/pkg/errors"
)

var ErrMalformedCard = errors.New("malformed vCard payload")

// Check reads payload back with a standard vCard decoder and verifies that
// it is a single version 3.0 card carrying a formatted name.
func Check(payload string) error {
	if !strings.HasSuffix(payload, crlf) {
		payload += crlf
	}

	card, err := govcard.NewDecoder(strings.NewReader(payload)).Decode()
	if err != nil {
		return errors.Wrap(ErrMalformedCard, err.Error())
	}

	if version := card.Value(govcard.FieldVersion); version != "3.0" {
		return errors.Wrapf(ErrMalformedCard, "unexpected version %q", version)
	}

	if card.Get(govcard.FieldFormattedName) == nil {
		return errors.Wrap(ErrMalformedCard, "missing FN")
	}

	return nil
}
