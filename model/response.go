// file: model/response.go

package model

// SuccessResponse is the envelope returned by every successful endpoint.
// Token fields are only populated by the auth endpoints.
type SuccessResponse struct {
	Status       string      `json:"status"`
	Data         interface{} `json:"data,omitempty"`
	AccessToken  string      `json:"accessToken,omitempty"`
	RefreshToken string      `json:"refreshToken,omitempty"`
	Message      string      `json:"message,omitempty"`
}
