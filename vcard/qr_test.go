package vcard

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeQR(t *testing.T, pngData []byte) string {
	t.Helper()

	img, err := png.Decode(bytes.NewReader(pngData))
	require.Nil(t, err)

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	require.Nil(t, err)

	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	require.Nil(t, err)

	return result.GetText()
}

func TestQRPNGCarriesLink(t *testing.T) {
	link := CardURL("https://cards.example.com/", "GREEN CITY", "12")
	assert.Equal(t, "https://cards.example.com/card/GREEN%20CITY/12", link)

	pngData, err := QRPNG(link, QROptions{Size: 256})
	require.Nil(t, err)

	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, pngData[:4])
	assert.Equal(t, link, decodeQR(t, pngData))
}

func TestQRPNGCarriesVCard(t *testing.T) {
	contact := Contact{Name: "Jane Q. Doe", Company: "Acme", PhonePrimary: "+1 555 000 1111"}
	payload := Payload(PayloadVCard, contact, "https://ignored.example.com")
	assert.Equal(t, Encode(contact), payload)

	pngData, err := QRPNG(payload, QROptions{Size: 512})
	require.Nil(t, err)
	assert.Equal(t, payload, decodeQR(t, pngData))
}

func TestQRPNGWithLogoStaysReadable(t *testing.T) {
	logo := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			logo.Set(x, y, color.RGBA{R: 0x10, G: 0x80, B: 0x40, A: 0xff})
		}
	}

	link := "https://cards.example.com/card/DSA%20Group/3"
	pngData, err := QRPNG(link, QROptions{Size: 440, Logo: logo})
	require.Nil(t, err)
	assert.Equal(t, link, decodeQR(t, pngData))
}

func TestOverlayLogoScalesIntoCentre(t *testing.T) {
	green := color.RGBA{R: 0x10, G: 0x80, B: 0x40, A: 0xff}
	logo := image.NewRGBA(image.Rect(0, 0, 300, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 300; x++ {
			logo.Set(x, y, green)
		}
	}

	code := image.NewRGBA(image.Rect(0, 0, 440, 440))
	out := overlayLogo(code, logo)

	// 112px logo at (164, 164).
	for _, p := range []image.Point{{220, 220}, {165, 165}, {274, 274}} {
		c := color.RGBAModel.Convert(out.At(p.X, p.Y)).(color.RGBA)
		assert.InDelta(t, green.R, c.R, 1, "at %v", p)
		assert.InDelta(t, green.G, c.G, 1, "at %v", p)
		assert.InDelta(t, green.B, c.B, 1, "at %v", p)
	}
	assert.Equal(t, color.RGBA{}, color.RGBAModel.Convert(out.At(10, 10)))
}

func TestQRPNGErrors(t *testing.T) {
	_, err := QRPNG("", QROptions{})
	assert.Equal(t, ErrEmptyPayload, err)

	_, err = QRPNG("x", QROptions{Size: MaxQRSize + 1})
	assert.Equal(t, ErrInvalidSize, err)
}

func TestQRImageDefaultSize(t *testing.T) {
	img, err := QRImage("hello", QROptions{})
	require.Nil(t, err)
	assert.GreaterOrEqual(t, img.Bounds().Dx(), DefaultQRSize)
}

func TestPayloadLinkMode(t *testing.T) {
	assert.Equal(t, "https://x/card/a/1", Payload(PayloadLink, Contact{Name: "a"}, "https://x/card/a/1"))
	assert.True(t, PayloadLink.Valid())
	assert.True(t, PayloadVCard.Valid())
	assert.False(t, PayloadMode("both").Valid())
}

func TestQRFileName(t *testing.T) {
	assert.Equal(t, "QR_Jane_Q._Doe_GREEN_CITY.png", QRFileName("Jane Q. Doe", "GREEN CITY"))
}

func TestLoadLogo(t *testing.T) {
	var buf bytes.Buffer
	require.Nil(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4))))

	img, err := LoadLogo(buf.Bytes())
	require.Nil(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	_, err = LoadLogo([]byte("not a png"))
	assert.NotNil(t, err)
}
