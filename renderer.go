package main

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Common colors used in rendering
var (
	colorWhite     = color.RGBA{255, 255, 255, 255}
	colorGray      = color.RGBA{180, 180, 180, 255}
	colorDimmed    = color.RGBA{255, 255, 255, 70}
	colorLightBlue = color.RGBA{200, 200, 255, 255}
	colorGreen     = color.RGBA{100, 255, 100, 255}
	colorOrange    = color.RGBA{255, 200, 100, 255}
	colorVideoCard = color.RGBA{24, 24, 32, 255}

	// Background colors for semi-transparent overlays
	bgColorLight  = color.RGBA{0, 0, 0, 128} // Light semi-transparent
	bgColorMedium = color.RGBA{0, 0, 0, 160} // Medium semi-transparent
	bgColorDark   = color.RGBA{0, 0, 0, 200} // Dark semi-transparent
)

const captionBandHeight = 64.0

// Renderer handles all drawing operations
type Renderer struct {
	state ViewState
}

// NewRenderer creates a new Renderer
func NewRenderer(state ViewState) (*Renderer, error) {
	if globalFontSource == nil {
		if err := InitGraphics(); err != nil {
			return nil, fmt.Errorf("init font: %w", err)
		}
	}
	return &Renderer{state: state}, nil
}

func (r *Renderer) face(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: globalFontSource, Size: size}
}

// Draw renders the entire screen
func (r *Renderer) Draw(screen *ebiten.Image) {
	// Clear the screen since SetScreenClearedEveryFrame(false) is enabled
	screen.Clear()

	if r.state.GetTotalPagesCount() == 0 {
		r.drawEmptyAlbum(screen)
		return
	}

	r.drawPages(screen)
	r.drawCaption(screen)
	r.drawControls(screen)

	if r.state.IsShowingInfo() {
		r.drawInfoDisplay(screen)
	}

	if r.state.GetOverlayMessage() != "" && time.Since(r.state.GetOverlayMessageTime()) < overlayMessageDuration {
		r.drawOverlayMessage(screen)
	}
}

// drawPages draws the committed page, or both pages of a flip in flight
// sliding in the flip's direction
func (r *Renderer) drawPages(screen *ebiten.Image) {
	w := float64(screen.Bounds().Dx())
	state := r.state.GetTransition()

	if state.IsIdle() {
		r.drawPage(screen, r.state.GetCurrentIndex(), r.dragShift(w))
		return
	}

	progress := r.state.GetFlipProgress()
	sign := 1.0
	if state.Direction == DirectionPrev {
		sign = -1.0
	}
	r.drawPage(screen, state.From, -sign*w*progress)
	r.drawPage(screen, state.To, sign*w*(1-progress))
}

// dragShift follows the finger while a swipe is in progress, resisting past
// the album's ends
func (r *Renderer) dragShift(w float64) float64 {
	dx := r.state.GetDragOffset()
	if dx == 0 {
		return 0
	}
	idx := r.state.GetCurrentIndex()
	atEdge := (dx > 0 && idx == 0) || (dx < 0 && idx == r.state.GetTotalPagesCount()-1)
	if atEdge {
		dx /= 3
	}
	return math.Max(-w, math.Min(w, dx))
}

func (r *Renderer) drawPage(screen *ebiten.Image, idx int, shiftX float64) {
	item, ok := r.state.GetItem(idx)
	if !ok {
		return
	}
	if item.IsVideo() {
		r.drawVideoCard(screen, item, shiftX)
		return
	}
	img := r.state.GetImage(idx)
	if img == nil {
		return
	}
	r.drawImageFitted(screen, img, shiftX)
}

func (r *Renderer) calculateImageScale(iw, ih, maxW, maxH float64) float64 {
	if r.state.IsFullscreen() {
		return math.Min(maxW/iw, maxH/ih)
	}

	// In windowed mode, don't scale up small images
	if iw > maxW || ih > maxH {
		return math.Min(maxW/iw, maxH/ih)
	}
	return 1
}

func (r *Renderer) drawImageFitted(screen *ebiten.Image, img *ebiten.Image, shiftX float64) {
	iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	if iw == 0 || ih == 0 {
		return
	}

	scale := r.calculateImageScale(iw, ih, w, h)
	sw, sh := iw*scale, ih*scale

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(w/2-sw/2+shiftX, h/2-sh/2)
	screen.DrawImage(img, op)
}

// drawVideoCard stands in for a video page: title, play glyph and, while the
// slideshow waits on it, a playback bar
func (r *Renderer) drawVideoCard(screen *ebiten.Image, item MediaItem, shiftX float64) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	cardW, cardH := math.Min(w*0.7, 800), math.Min(h*0.6, 450)
	x := w/2 - cardW/2 + shiftX
	y := h/2 - cardH/2

	DrawFilledRect(screen, x, y, cardW, cardH, colorVideoCard)
	vector.StrokeRect(screen, float32(x), float32(y), float32(cardW), float32(cardH), 2, colorGray, true)

	// play triangle
	cx, cy := x+cardW/2, y+cardH/2
	size := math.Min(cardW, cardH) / 6
	ax, ay := float32(cx-size/2), float32(cy-size*0.6)
	bx, by := float32(cx+size*0.7), float32(cy)
	ex, ey := float32(cx-size/2), float32(cy+size*0.6)
	vector.StrokeLine(screen, ax, ay, bx, by, 3, colorWhite, true)
	vector.StrokeLine(screen, bx, by, ex, ey, 3, colorWhite, true)
	vector.StrokeLine(screen, ex, ey, ax, ay, 3, colorWhite, true)

	titleFont := r.face(r.state.GetFontSize())
	title := filepath.Base(item.Source.Path)
	tw, _ := text.Measure(title, titleFont, 0)
	DrawText(screen, title, titleFont, cx-tw/2, y+20, colorLightBlue)

	if !r.state.IsAwaitingPlayback() || shiftX != 0 {
		return
	}
	barW := cardW - 40
	DrawFilledRect(screen, x+20, y+cardH-30, barW, 6, bgColorMedium)
	DrawFilledRect(screen, x+20, y+cardH-30, barW*r.state.GetPlaybackProgress(), 6, colorWhite)
}

func (r *Renderer) drawCaption(screen *ebiten.Image) {
	if !r.state.GetTransition().IsIdle() {
		return
	}
	item, ok := r.state.GetItem(r.state.GetCurrentIndex())
	if !ok || !item.HasCaption() {
		return
	}

	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	captionFont := r.face(r.state.GetFontSize())
	tw, th := text.Measure(item.Caption, captionFont, 0)

	bandY := h - captionBandHeight - dotsBottomInset
	DrawFilledRect(screen, 0, bandY, w, captionBandHeight, bgColorLight)
	DrawText(screen, item.Caption, captionFont, w/2-tw/2, bandY+captionBandHeight/2-th/2, colorWhite)
}

// controlEnabled reports whether pressing b would currently do anything
func (r *Renderer) controlEnabled(b ControlButton) bool {
	idle := r.state.GetTransition().IsIdle()
	idx := r.state.GetCurrentIndex()
	total := r.state.GetTotalPagesCount()

	switch b.Kind {
	case ControlPrev:
		return idle && idx > 0
	case ControlNext:
		return idle && idx < total-1
	case ControlDot:
		return idle && b.Page != idx
	default:
		return true
	}
}

func (r *Renderer) drawControls(screen *ebiten.Image) {
	labelFont := r.face(r.state.GetFontSize())
	idx := r.state.GetCurrentIndex()

	for _, b := range r.state.GetControls() {
		fg := colorWhite
		if !r.controlEnabled(b) {
			fg = colorDimmed
		}

		rect := b.Rect
		switch b.Kind {
		case ControlDot:
			dotColor := colorGray
			if b.Page == idx {
				dotColor = colorWhite
			}
			vector.DrawFilledCircle(screen, float32(rect.X+rect.Width/2), float32(rect.Y+rect.Height/2), float32(rect.Width/2), dotColor, true)
			continue
		case ControlPrev, ControlNext:
			vector.DrawFilledCircle(screen, float32(rect.X+rect.Width/2), float32(rect.Y+rect.Height/2), float32(rect.Width/2), bgColorMedium, true)
		default:
			DrawFilledRect(screen, rect.X, rect.Y, rect.Width, rect.Height, bgColorMedium)
		}

		label := r.controlLabel(b.Kind)
		lw, lh := text.Measure(label, labelFont, 0)
		DrawText(screen, label, labelFont, rect.X+rect.Width/2-lw/2, rect.Y+rect.Height/2-lh/2, fg)
	}
}

func (r *Renderer) controlLabel(kind ControlKind) string {
	switch kind {
	case ControlPrev:
		return "<"
	case ControlNext:
		return ">"
	case ControlClose:
		return "×"
	case ControlAutoplay:
		if r.state.IsAutoplayEnabled() {
			return "Pause"
		}
		return "Play"
	default:
		return ""
	}
}

func (r *Renderer) drawInfoDisplay(screen *ebiten.Image) {
	infoFont := r.face(r.state.GetFontSize())

	infoText := r.buildPageNumberString()
	textWidth, textHeight := text.Measure(infoText, infoFont, 0)

	// Position at bottom right corner
	padding := 10.0
	textX := float64(screen.Bounds().Dx()) - textWidth - padding
	textY := float64(screen.Bounds().Dy()) - textHeight - padding

	bgPadding := 5.0
	DrawFilledRect(screen, textX-bgPadding, textY-bgPadding, textWidth+bgPadding*2, textHeight+bgPadding*2, bgColorLight)
	DrawText(screen, infoText, infoFont, textX, textY, colorWhite)

	// Album title, sort order and config status, bottom left
	smallFont := r.face(r.state.GetFontSize() * 0.7)
	status := r.state.GetConfigStatus()
	statusColor := colorGreen
	if status.Status == "Warning" || status.Status == "Error" {
		statusColor = colorOrange
	}
	detail := fmt.Sprintf("%s  [%s]", r.state.AlbumTitle(), r.state.GetSortMethodName())
	dw, dh := text.Measure(detail, smallFont, 0)
	dy := float64(screen.Bounds().Dy()) - dh - padding
	DrawFilledRect(screen, padding-bgPadding, dy-bgPadding, dw+bgPadding*2, dh+bgPadding*2, bgColorLight)
	DrawText(screen, detail, smallFont, padding, dy, colorGray)
	if status.Status != "OK" {
		DrawText(screen, "Config: "+status.Status, smallFont, padding, dy-dh-bgPadding*2, statusColor)
	}
}

func (r *Renderer) buildPageNumberString() string {
	total := r.state.GetTotalPagesCount()
	if total == 0 {
		return "0 / 0"
	}
	return fmt.Sprintf("%d / %d", r.state.GetCurrentIndex()+1, total)
}

func (r *Renderer) drawEmptyAlbum(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	emptyFont := r.face(r.state.GetFontSize())

	message := "No memories yet"
	mw, mh := text.Measure(message, emptyFont, 0)
	DrawText(screen, message, emptyFont, w/2-mw/2, h/2-mh/2, colorGray)
	r.drawControls(screen)
}

func (r *Renderer) drawOverlayMessage(screen *ebiten.Image) {
	messageFont := r.face(r.state.GetFontSize())
	message := r.state.GetOverlayMessage()

	textWidth, textHeight := text.Measure(message, messageFont, 0)

	// Calculate position (center of screen)
	padding := 20.0
	boxWidth := textWidth + padding*2
	boxHeight := textHeight + padding*2
	boxX := (float64(screen.Bounds().Dx()) - boxWidth) / 2
	boxY := (float64(screen.Bounds().Dy()) - boxHeight) / 2

	DrawFilledRect(screen, boxX, boxY, boxWidth, boxHeight, bgColorDark)
	DrawText(screen, message, messageFont, boxX+padding, boxY+padding, colorWhite)
}
