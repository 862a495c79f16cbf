package entity

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	ID           int        `json:"id" bun:"id,pk,autoincrement"`
	FullName     *string    `json:"full_name" bun:"full_name"`
	Email        *string    `json:"email" bun:"email"`
	Password     *string    `json:"-" bun:"password"`
	Role         *string    `json:"role" bun:"role"`
	Organization *string    `json:"organization" bun:"organization"`
	IsActive     *bool      `json:"is_active" bun:"is_active"`
	CreatedAt    time.Time  `json:"created_at" bun:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at" bun:"updated_at"`
}
