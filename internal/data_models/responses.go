package dto

import "time"

type ErrorBody struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type UserResponse struct {
	ID           string    `json:"id"`
	Fullname     string    `json:"fullname"`
	Email        string    `json:"email"`
	UserType     string    `json:"user_type"`
	Bio          string    `json:"bio"`
	Rating       float64   `json:"rating"`
	TotalRatings int       `json:"total_ratings"`
	CreatedAt    time.Time `json:"created_at"`
}

type SessionResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}
