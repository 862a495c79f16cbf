package office

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type GetOfficeResponse struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Location Location `json:"location"`
	Radius   float64  `json:"radius"`
}

type UpdateRequest struct {
	ID        int      `json:"id" form:"id"`
	Name      *string  `json:"name" form:"name"`
	Address   *string  `json:"address" form:"address"`
	Latitude  *float64 `json:"latitude" form:"latitude"`
	Longitude *float64 `json:"longitude" form:"longitude"`
	Radius    *float64 `json:"radius" form:"radius"`
	IsActive  *bool    `json:"is_active" form:"is_active"`
}
