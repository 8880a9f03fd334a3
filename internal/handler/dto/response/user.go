package response

import (
	"stayhub/internal/usecase/queries"
)

type UserResponse struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	DisplayName  string   `json:"displayName"`
	AvatarURL    string   `json:"avatarUrl"`
	Role         string   `json:"role"`
	RecentCities []string `json:"recentSearchedCities"`
}

func FromUserView(v *queries.UserView) *UserResponse {
	return &UserResponse{
		ID:           v.ID,
		Email:        v.Email,
		DisplayName:  v.DisplayName,
		AvatarURL:    v.AvatarURL,
		Role:         v.Role,
		RecentCities: v.RecentCities,
	}
}
