package response

import "airaa-jewels/internal/usecase/queries"

type LoginResponse struct {
	AccessToken  string                      `json:"access_token"`
	RefreshToken string                      `json:"refresh_token"`
	User         *queries.AuthorizedUserView `json:"user,omitempty"`
}

type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
