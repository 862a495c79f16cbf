package office

import (
	"net/http"
	"reflect"

	"geoattend/backend/foundation/web"
	"geoattend/backend/internal/repository/postgres"
	"geoattend/backend/internal/repository/postgres/office"

	"github.com/pkg/errors"
)

type Controller struct {
	office Office
}

func NewController(office Office) *Controller {
	return &Controller{office: office}
}

func (uc Controller) GetOffice(c *web.Context) error {
	detail, err := uc.office.GetActive(c.Ctx)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return c.RespondError(web.NewRequestError(errors.New("Office not found"), http.StatusNotFound))
		}
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"office": office.GetOfficeResponse{
				ID:      detail.ID,
				Name:    detail.Name,
				Address: detail.Address,
				Location: office.Location{
					Latitude:  detail.Latitude,
					Longitude: detail.Longitude,
				},
				Radius: detail.Radius,
			},
		},
	}, http.StatusOK)
}

func (uc Controller) UpdateAll(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request office.UpdateRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}
	request.ID = id

	if err := uc.office.UpdateAll(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"success": true,
		"message": "Office updated",
	}, http.StatusOK)
}
