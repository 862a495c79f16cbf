package service

import (
	"bytes"
	"fmt"

	"geoattend/backend/internal/repository/postgres/user"

	"github.com/jung-kurt/gofpdf/v2"
	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 256

// BadgePNG renders one user's badge QR code. The payload is what the badge
// scanner expects: the user id and email.
func BadgePNG(card user.Card) ([]byte, error) {
	return qrcode.Encode(badgePayload(card), qrcode.Medium, qrSize)
}

// BadgeCards lays out one badge card per active user on an A4 sheet, two
// columns, QR on the left of each card.
func BadgeCards(cards []user.Card) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	const (
		cardW   = 90.0
		cardH   = 45.0
		marginX = 10.0
		marginY = 15.0
		gap     = 5.0
	)

	for i, card := range cards {
		col := i % 2
		row := (i / 2) % 5
		if i > 0 && col == 0 && row == 0 {
			pdf.AddPage()
		}

		x := marginX + float64(col)*(cardW+gap)
		y := marginY + float64(row)*(cardH+gap)

		png, err := BadgePNG(card)
		if err != nil {
			return nil, fmt.Errorf("rendering badge for user %d: %w", card.ID, err)
		}

		imageName := fmt.Sprintf("qr-%d", card.ID)
		pdf.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))

		pdf.Rect(x, y, cardW, cardH, "D")
		pdf.ImageOptions(imageName, x+3, y+3, cardH-6, cardH-6, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetXY(x+cardH, y+12)
		pdf.CellFormat(cardW-cardH-3, 6, card.FullName, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetXY(x+cardH, y+20)
		pdf.CellFormat(cardW-cardH-3, 5, card.Email, "", 0, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing badge pdf: %w", err)
	}

	return &buf, nil
}

func badgePayload(card user.Card) string {
	return fmt.Sprintf("geoattend:user:%d:%s", card.ID, card.Email)
}
