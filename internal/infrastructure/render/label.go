package render

import (
	"fmt"
	"image/color"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"lumbertrace/internal/domain/material"
)

// Label geometry in pixels, sized for 100x50 mm stock at 203 dpi.
const (
	LabelWidth  = 800
	LabelHeight = 400
	qrSize      = 340
	labelPad    = 30
)

var (
	fontsOnce sync.Once
	fontsErr  error
	titleFont *truetype.Font
	bodyFont  *truetype.Font
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if titleFont, fontsErr = truetype.Parse(gobold.TTF); fontsErr != nil {
			fontsErr = fmt.Errorf("parse bold font: %w", fontsErr)
			return
		}
		if bodyFont, fontsErr = truetype.Parse(goregular.TTF); fontsErr != nil {
			fontsErr = fmt.Errorf("parse regular font: %w", fontsErr)
		}
	})
	return fontsErr
}

func face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Label writes a PNG label for m: the text block on the left and a QR code
// carrying the scan payload on the right. supplierName is printed for raw
// material only.
func Label(w io.Writer, m *material.Material, supplierName string) error {
	if err := loadFonts(); err != nil {
		return err
	}

	qr, err := qrcode.New(material.EncodeScanPayload(m.ID), qrcode.Medium)
	if err != nil {
		return fmt.Errorf("encode qr: %w", err)
	}
	qr.DisableBorder = true

	dc := gg.NewContext(LabelWidth, LabelHeight)
	dc.SetColor(color.White)
	dc.Clear()

	dc.SetRGB255(51, 65, 85)
	dc.SetLineWidth(4)
	dc.DrawRectangle(2, 2, LabelWidth-4, LabelHeight-4)
	dc.Stroke()

	dc.DrawImage(qr.Image(qrSize), LabelWidth-qrSize-labelPad, (LabelHeight-qrSize)/2)

	textWidth := float64(LabelWidth - qrSize - 3*labelPad)
	x, y := float64(labelPad), float64(labelPad)

	dc.SetColor(color.Black)
	dc.SetFontFace(face(titleFont, 34))
	for _, line := range dc.WordWrap(m.Name, textWidth) {
		y += 38
		dc.DrawString(line, x, y)
	}

	dc.SetFontFace(face(bodyFont, 24))
	rows := []string{
		m.ID,
		string(m.Type),
		"Stare: " + string(m.State),
	}
	if m.IsRaw() {
		rows = append(rows, "Furnizor: "+supplierName)
	}
	if m.Details.Dimensions != "" {
		rows = append(rows, m.Details.Dimensions)
	}

	y += 16
	for _, row := range rows {
		for _, line := range dc.WordWrap(row, textWidth) {
			y += 32
			if y > LabelHeight-labelPad {
				break
			}
			dc.DrawString(line, x, y)
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
