package main

import (
	"bytes"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// Size of the card shown in place of a page that fails to decode
const (
	errorCardWidth  = 480
	errorCardHeight = 320
)

var (
	errorCardFill   = color.RGBA{70, 34, 40, 255}
	errorCardBorder = color.RGBA{200, 120, 120, 255}
)

// globalFontSource backs every text face the viewer draws with
var globalFontSource *text.GoTextFaceSource

// InitGraphics loads the bundled font
func InitGraphics() error {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	globalFontSource = s
	return nil
}

// DrawText draws textString with its top-left corner at (x, y)
func DrawText(screen *ebiten.Image, textString string, font *text.GoTextFace, x, y float64, textColor color.RGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, textString, font, op)
}

// DrawFilledRect draws filled rectangles with float64 coordinates
func DrawFilledRect(screen *ebiten.Image, x, y, w, h float64, bgColor color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)
}

// fitText shortens s with an ellipsis until it is at most maxWidth wide
func fitText(s string, face *text.GoTextFace, maxWidth float64) string {
	if w, _ := text.Measure(s, face, 0); w <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := strings.TrimSpace(string(runes)) + "…"
		if w, _ := text.Measure(candidate, face, 0); w <= maxWidth {
			return candidate
		}
	}
	return ""
}

// NewErrorCard renders the stand-in page for a photo that could not be read.
// Without a font only the framed card is drawn.
func NewErrorCard(src MediaSource, err error) *ebiten.Image {
	card := ebiten.NewImage(errorCardWidth, errorCardHeight)
	card.Fill(errorCardFill)
	vector.StrokeRect(card, 2, 2, errorCardWidth-4, errorCardHeight-4, 3, errorCardBorder, false)

	if globalFontSource == nil {
		return card
	}

	titleFace := &text.GoTextFace{Source: globalFontSource, Size: 24}
	bodyFace := &text.GoTextFace{Source: globalFontSource, Size: 16}
	maxWidth := float64(errorCardWidth - 40)

	name := filepath.Base(src.Path)
	if src.InArchive() {
		name = filepath.Base(src.EntryPath) + " (" + filepath.Base(src.ArchivePath) + ")"
	}

	DrawText(card, "Could not open this photo", titleFace, 20, 24, colorWhite)
	DrawText(card, fitText(name, bodyFace, maxWidth), bodyFace, 20, 80, colorLightBlue)
	if err != nil {
		DrawText(card, fitText(err.Error(), bodyFace, maxWidth), bodyFace, 20, 112, colorGray)
	}
	return card
}
