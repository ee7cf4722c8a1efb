package vcard

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	qrgen "github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
)

// QR code errors
var (
	ErrEmptyPayload = errors.New("QR payload is empty")
	ErrInvalidSize  = errors.New("invalid QR code size")
	ErrQREncode     = errors.New("failed to encode QR code")
)

const (
	// DefaultQRSize matches the size of the code shown on the card pages.
	DefaultQRSize = 176
	MaxQRSize     = 4096
)

// PayloadMode selects what a card's QR code carries.
type PayloadMode string

const (
	// PayloadLink encodes a deep link to the hosted card page.
	PayloadLink PayloadMode = "link"
	// PayloadVCard encodes the vCard text itself.
	PayloadVCard PayloadMode = "vcard"
)

// Valid reports whether m is a known payload mode.
func (m PayloadMode) Valid() bool {
	return m == PayloadLink || m == PayloadVCard
}

var (
	qrForeground = color.RGBA{R: 0x02, G: 0x06, B: 0x17, A: 0xff}
	qrBackground = color.White
)

type QROptions struct {
	// Size is the width and height of the PNG in pixels.
	Size int

	// Logo, when set, is drawn over the centre of the code on a white frame.
	Logo image.Image
}

// QRPNG renders payload as a PNG encoded QR code. Codes use the highest
// error correction level so a centre logo does not make them unreadable.
func QRPNG(payload string, opts QROptions) ([]byte, error) {
	img, err := QRImage(payload, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(ErrQREncode, err.Error())
	}

	return buf.Bytes(), nil
}

// QRImage renders payload as a QR code image.
func QRImage(payload string, opts QROptions) (image.Image, error) {
	if payload == "" {
		return nil, ErrEmptyPayload
	}

	size := opts.Size
	if size <= 0 {
		size = DefaultQRSize
	}
	if size > MaxQRSize {
		return nil, ErrInvalidSize
	}

	qr, err := qrgen.New(payload, qrgen.Highest)
	if err != nil {
		return nil, errors.Wrap(ErrQREncode, err.Error())
	}
	qr.ForegroundColor = qrForeground
	qr.BackgroundColor = qrBackground

	code := qr.Image(size)
	if opts.Logo == nil {
		return code, nil
	}

	return overlayLogo(code, opts.Logo), nil
}

// overlayLogo draws logo in the centre of code. The logo occupies 56/220 of
// the code's width, the proportions used by the printed cards.
func overlayLogo(code image.Image, logo image.Image) image.Image {
	bounds := code.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, code, bounds.Min, draw.Src)

	side := bounds.Dx() * 56 / 220
	if side <= 0 {
		return canvas
	}

	x := bounds.Min.X + (bounds.Dx()-side)/2
	y := bounds.Min.Y + (bounds.Dy()-side)/2

	frame := image.Rect(x-2, y-2, x+side+2, y+side+2)
	draw.Draw(canvas, frame, image.NewUniform(qrBackground), image.Point{}, draw.Src)

	target := image.Rect(x, y, x+side, y+side)
	xdraw.CatmullRom.Scale(canvas, target, logo, logo.Bounds(), xdraw.Over, nil)

	return canvas
}

// LoadLogo decodes a PNG logo.
func LoadLogo(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "decode logo")
	}
	return img, nil
}

// Payload returns the string to encode in a contact's QR code for mode.
// cardURL is only used in link mode.
func Payload(mode PayloadMode, c Contact, cardURL string) string {
	if mode == PayloadVCard {
		return Encode(c)
	}
	return cardURL
}

// CardURL returns the public address of a contact's card page.
func CardURL(baseURL, section, sn string) string {
	return fmt.Sprintf("%s/card/%s/%s",
		strings.TrimRight(baseURL, "/"), url.PathEscape(section), url.PathEscape(sn))
}

// QRFileName returns the suggested download name of a contact's QR image.
func QRFileName(name, section string) string {
	return fmt.Sprintf("QR_%s_%s.png",
		whitespaceRun.ReplaceAllString(name, "_"),
		whitespaceRun.ReplaceAllString(section, "_"))
}
