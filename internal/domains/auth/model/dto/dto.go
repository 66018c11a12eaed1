package dto

import (
	"atrium/infras/jwt"
	userModel "atrium/internal/domains/user/model"
	"atrium/shared/constant"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email      string `json:"email"      validate:"required,email"`
	Password   string `json:"password"   validate:"required,min=8"`
	FullName   string `json:"full_name"  validate:"required,max=100"`
	Department string `json:"department" validate:"omitempty,max=100"`
	Phone      string `json:"phone"      validate:"omitempty,max=20"`
}

func (r *RegisterRequest) ToUserModel(username string, hashedPassword string) userModel.User {
	return userModel.User{
		ID:           uuid.NewString(),
		Email:        r.Email,
		PasswordHash: hashedPassword,
		FullName:     r.FullName,
		Role:         constant.RoleUser,
		Status:       userModel.StatusActive,
		Department:   r.Department,
		Phone:        r.Phone,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}

type UpdatePasswordRequest struct {
	PasswordHash string `db:"password_hash" json:"-" validate:"required"`
}
