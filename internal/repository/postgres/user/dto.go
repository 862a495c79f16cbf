package user

import "geoattend/backend/internal/entity"

type SignInRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" form:"refreshToken"`
}

type GetProfileResponse struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Organization string `json:"organization"`
}

// ProfileFromEntity shapes a user row for responses, password excluded.
func ProfileFromEntity(detail entity.User) GetProfileResponse {
	response := GetProfileResponse{ID: detail.ID}
	if detail.FullName != nil {
		response.Name = *detail.FullName
	}
	if detail.Email != nil {
		response.Email = *detail.Email
	}
	if detail.Role != nil {
		response.Role = *detail.Role
	}
	if detail.Organization != nil {
		response.Organization = *detail.Organization
	}
	return response
}

// GetStatsResponse aggregates the caller's current calendar month. Absent
// counts only records that exist but were never completed; days without a
// record at all are not counted.
type GetStatsResponse struct {
	Present             int    `json:"present"`
	Absent              int    `json:"absent"`
	HalfDays            int    `json:"halfDays"`
	TotalWorkingHours   string `json:"totalWorkingHours"`
	TotalWorkingMinutes int    `json:"totalWorkingMinutes"`
}

// Card is the payload of one badge on the QR card sheet.
type Card struct {
	ID       int
	FullName string
	Email    string
}
