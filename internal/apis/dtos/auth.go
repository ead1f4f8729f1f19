package dtos

type VerifyTokenRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}
