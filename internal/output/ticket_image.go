package output

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"time"

	"github.com/ayitek/borlette-pos/internal/config"
	"github.com/ayitek/borlette-pos/internal/types"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Ticket rendering for the thermal printer: a fixed-width monochrome
// strip. Layout is line based; the height is computed from the line
// count plus the QR block before drawing.

const (
	lineHeight = 16
	marginX    = 8
	qrSize     = 128
)

// maxLineChars fits the 7px basicfont glyphs into the print width.
const maxLineChars = (config.TicketWidthPx - 2*marginX) / 7

// RenderTicket draws one ticket as a monochrome image sized for the
// printer. The QR code carries the serial so winnings checks can scan
// the physical ticket.
func RenderTicket(t types.Ticket, drawName string, agentName string) (image.Image, error) {
	lines := ticketLines(t, drawName, agentName)

	height := len(lines)*lineHeight + qrSize + 4*lineHeight
	img := image.NewRGBA(image.Rect(0, 0, config.TicketWidthPx, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	y := lineHeight
	for _, line := range lines {
		drawLine(img, line, y)
		y += lineHeight
	}

	qr, err := qrcode.New(t.Serial, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to build ticket QR code: %w", err)
	}
	qrImg := qr.Image(qrSize)
	qrX := (config.TicketWidthPx - qrSize) / 2
	draw.Draw(img, image.Rect(qrX, y, qrX+qrSize, y+qrSize), qrImg, image.Point{}, draw.Over)
	y += qrSize + lineHeight

	drawLine(img, center(t.Serial), y)

	return img, nil
}

func ticketLines(t types.Ticket, drawName, agentName string) []string {
	lines := []string{
		center("BORLETTE"),
		center(drawName),
		separator(),
	}
	if agentName != "" {
		lines = append(lines, "Agent: "+agentName)
	}
	if !t.CreatedAt.IsZero() {
		lines = append(lines, t.CreatedAt.Format("2006-01-02 15:04"))
	} else {
		lines = append(lines, time.Now().Format("2006-01-02 15:04"))
	}
	lines = append(lines, separator())

	for _, b := range t.Bets {
		label := b.Number
		if b.GameType != "" {
			label = fmt.Sprintf("%s  %s", b.GameType, b.Number)
		}
		amount := fmt.Sprintf("%.0f %s", b.Amount, config.CurrencySymbol)
		lines = append(lines, padBetween(label, amount))
	}

	lines = append(lines,
		separator(),
		padBetween("TOTAL", fmt.Sprintf("%.0f %s", t.Amount, config.CurrencySymbol)),
		separator(),
	)
	return lines
}

func drawLine(img *image.RGBA, text string, baselineY int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(marginX, baselineY),
	}
	d.DrawString(text)
}

func separator() string {
	return strings.Repeat("-", maxLineChars)
}

func center(s string) string {
	if len(s) >= maxLineChars {
		return s
	}
	pad := (maxLineChars - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

// padBetween left-aligns label and right-aligns value on one line.
func padBetween(label, value string) string {
	gap := maxLineChars - len(label) - len(value)
	if gap < 1 {
		gap = 1
	}
	return label + strings.Repeat(" ", gap) + value
}
