package inbound

import (
	"net/http"
	"strconv"
	"time"

	"github.com/azizbek-web-dev/phonegate/internal/identity/entity"
	"github.com/azizbek-web-dev/phonegate/internal/identity/usecase"
)

type RegisterRequest struct {
	FullName             string `json:"full_name"`
	Username             string `json:"username"`
	Phone                string `json:"phone"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type RegisterResponse struct {
	UserID       string    `json:"user_id" example:"1893204512876093440"`
	Phone        string    `json:"phone" example:"+998901234567"`
	OTPExpiresAt time.Time `json:"otp_expires_at"`
}

func (RegisterResponse) StatusCode() int {
	return http.StatusCreated
}

func (RegisterResponse) Message() string {
	return "User registered successfully. Please verify your phone number."
}

type VerifyOTPRequest struct {
	Phone   string `json:"phone"`
	OtpCode string `json:"otp_code"`
}

type ResendOTPRequest struct {
	Phone string `json:"phone"`
}

type ResendOTPResponse struct {
	OTPExpiresAt time.Time `json:"otp_expires_at"`
}

func (ResendOTPResponse) Message() string {
	return "OTP sent successfully"
}

type LoginRequest struct {
	Login    string `json:"login" example:"alice"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID              string     `json:"id" example:"1893204512876093440"`
	FullName        string     `json:"full_name"`
	Username        string     `json:"username"`
	Phone           string     `json:"phone"`
	PhoneVerifiedAt *time.Time `json:"phone_verified_at"`
}

func newUserResponse(acc entity.Account) UserResponse {
	var verifiedAt *time.Time
	if acc.PhoneVerifiedAt != nil {
		at := acc.PhoneVerifiedAt.UTC()
		verifiedAt = &at
	}

	return UserResponse{
		ID:              strconv.FormatInt(acc.ID, 10),
		FullName:        acc.FullName,
		Username:        acc.Username,
		Phone:           acc.Phone,
		PhoneVerifiedAt: verifiedAt,
	}
}

type TokenResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type" example:"Bearer"`

	message string
}

func newTokenResponse(out *usecase.TokenOutput, message string) TokenResponse {
	return TokenResponse{
		User:      newUserResponse(out.Account),
		Token:     out.Token,
		TokenType: out.TokenType,
		message:   message,
	}
}

func (t TokenResponse) Message() string {
	return t.message
}

type LogoutResponse struct{}

func (LogoutResponse) Message() string {
	return "Logged out successfully"
}

func (LogoutResponse) Payload() any {
	return nil
}

type ProfileUser struct {
	UserResponse
	CreatedAt time.Time `json:"created_at"`
}

type ProfileResponse struct {
	User ProfileUser `json:"user"`
}

func (ProfileResponse) Message() string {
	return "Profile retrieved successfully"
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Username *string `json:"username"`
}

type UpdateProfileResponse struct {
	User UserResponse `json:"user"`
}

func (UpdateProfileResponse) Message() string {
	return "Profile updated successfully"
}
