package entity

import (
	"time"

	"github.com/uptrace/bun"
)

type Office struct {
	bun.BaseModel `bun:"table:offices"`

	ID           int        `json:"id" bun:"id,pk,autoincrement"`
	Name         string     `json:"name" bun:"name"`
	Address      string     `json:"address" bun:"address"`
	Latitude     float64    `json:"latitude" bun:"latitude"`
	Longitude    float64    `json:"longitude" bun:"longitude"`
	Radius       float64    `json:"radius" bun:"radius"`
	Organization string     `json:"organization" bun:"organization"`
	IsActive     bool       `json:"is_active" bun:"is_active"`
	CreatedAt    time.Time  `json:"created_at" bun:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at" bun:"updated_at"`
}
