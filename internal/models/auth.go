package models

type LoginRequest struct {
	Passphrase string `json:"passphrase" binding:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}
