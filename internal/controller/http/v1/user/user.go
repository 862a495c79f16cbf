package user

import (
	"net/http"
	"reflect"

	"geoattend/backend/foundation/web"
	"geoattend/backend/internal/service"

	"github.com/pkg/errors"
)

type Controller struct {
	user User
}

func NewController(user User) *Controller {
	return &Controller{user: user}
}

func (uc Controller) GetStats(c *web.Context) error {
	stats, err := uc.user.GetMonthlyStats(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"stats": stats,
		},
	}, http.StatusOK)
}

// GetQrCode streams one user's badge QR as PNG.
func (uc Controller) GetQrCode(c *web.Context) error {
	userID, ok := c.GetQueryFunc(reflect.Int, "user_id").(*int)
	if !ok || userID == nil {
		return c.RespondError(web.NewRequestError(errors.New("user_id parameter is required"), http.StatusBadRequest))
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	card, err := uc.user.GetCardByID(c.Ctx, *userID)
	if err != nil {
		return c.RespondError(err)
	}

	png, err := service.BadgePNG(card)
	if err != nil {
		return c.RespondError(err)
	}

	c.Header("Content-Type", "image/png")
	c.Header("Content-Disposition", "inline; filename=badge.png")
	c.Status(http.StatusOK)
	_, err = c.Writer.Write(png)
	if err != nil {
		return c.RespondError(err)
	}

	return nil
}

// GetQrCodeCards streams the badge card sheet for all active users as PDF.
func (uc Controller) GetQrCodeCards(c *web.Context) error {
	cards, err := uc.user.GetActiveCardList(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	pdf, err := service.BadgeCards(cards)
	if err != nil {
		return c.RespondError(err)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=badges.pdf")
	c.Status(http.StatusOK)
	_, err = c.Writer.Write(pdf.Bytes())
	if err != nil {
		return c.RespondError(err)
	}

	return nil
}
