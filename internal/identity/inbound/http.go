package inbound

import (
	"context"

	"github.com/azizbek-web-dev/phonegate/internal/identity/entity"
	"github.com/azizbek-web-dev/phonegate/internal/identity/usecase"
	"github.com/azizbek-web-dev/phonegate/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) (*usecase.TokenOutput, error)
	ResendOTP(ctx context.Context, in usecase.ResendOTPInput) (*usecase.ResendOTPOutput, error)

	Login(ctx context.Context, in usecase.LoginInput) (*usecase.TokenOutput, error)
	Logout(ctx context.Context) error

	Profile(ctx context.Context) (*entity.Account, error)
	ProfileUpdate(ctx context.Context, in usecase.ProfileUpdateInput) (*entity.Account, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}
	limit := r.RateLimit()

	// Registration & verification
	r.POST("/api/v1/auth/register", end.Register, limit)
	r.POST("/api/v1/auth/verify-otp", end.VerifyOTP, limit)
	r.POST("/api/v1/auth/resend-otp", end.ResendOTP, limit)

	// Session
	r.POST("/api/v1/auth/login", end.Login, limit)
	r.POST("/api/v1/auth/logout", end.Logout) // need authenticated

	// User Profile (need authenticated)
	r.GET("/api/v1/profile", end.Profile)
	r.PATCH("/api/v1/profile", end.ProfileUpdate)
}
