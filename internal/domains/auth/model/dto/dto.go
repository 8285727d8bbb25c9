package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"rentwheels/infras/jwt"
	userModel "rentwheels/internal/domains/user/model"
	userDto "rentwheels/internal/domains/user/model/dto"
	"rentwheels/shared/constant"
	"rentwheels/shared/failure"
	gModel "rentwheels/shared/model"
)

const (
	MessageFillAllFields      = "Please fill in all fields!"
	MessagePasswordMismatch   = "Passwords do not match!"
	MessageInvalidEmail       = "Please enter a valid email address!"
	MessageUsernameTaken      = "Username already exists! Please choose a different username."
	MessageInvalidCredentials = "Invalid username or password!"
	MessageWrongPassword      = "current password is incorrect"
)

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Check runs the registration form rules in order and reports the first one
// that fails. Username uniqueness needs the store and is checked by the
// caller afterwards.
func (r *RegisterRequest) Check() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Username = strings.TrimSpace(r.Username)

	if r.Name == "" || r.Email == "" || r.Username == "" || r.Password == "" || r.ConfirmPassword == "" {
		return failure.BadRequestFromString(MessageFillAllFields)
	}

	if r.Password != r.ConfirmPassword {
		return failure.BadRequestFromString(MessagePasswordMismatch)
	}

	if !strings.Contains(r.Email, "@") {
		return failure.BadRequestFromString(MessageInvalidEmail)
	}

	return nil
}

func (r *RegisterRequest) ToUserModel(hashedPassword string, at time.Time) userModel.User {
	return userModel.User{
		ID:       uuid.NewString(),
		Name:     r.Name,
		Email:    r.Email,
		Username: r.Username,
		Password: hashedPassword,
		Role:     constant.RoleUser,
		Metadata: gModel.NewMetadata(constant.ContextGuest, at),
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	TokenType    string               `json:"token_type"`
	ExpiresIn    int64                `json:"expires_in"`
	User         userDto.UserResponse `json:"user"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.TokenType = tokenPair.TokenType
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required"`
}

func Identity(user userModel.User) jwt.Identity {
	return jwt.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
	}
}
