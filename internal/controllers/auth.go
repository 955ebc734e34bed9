package controllers

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"math/big"
	"strings"
	"time"

	"clipstream-backend/internal/apperrors"
	"clipstream-backend/internal/mail"
	"clipstream-backend/internal/models"
	"clipstream-backend/internal/repository"
	"clipstream-backend/internal/token"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetCodePurpose = "password_reset"

type AuthController struct {
	users   *repository.UserRepository
	codes   *repository.VerificationCodeRepository
	tokens  *token.Service
	uploads Uploader
	mail    mail.Sender
}

func NewAuthController(
	users *repository.UserRepository,
	codes *repository.VerificationCodeRepository,
	tokens *token.Service,
	uploads Uploader,
	sender mail.Sender,
) *AuthController {
	return &AuthController{
		users:   users,
		codes:   codes,
		tokens:  tokens,
		uploads: uploads,
		mail:    sender,
	}
}

// Register creates a user from a multipart form with a required avatar and
// an optional cover image.
func (a *AuthController) Register(c fiber.Ctx) error {
	username := strings.ToLower(strings.TrimSpace(c.FormValue("username")))
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	fullName := strings.TrimSpace(c.FormValue("fullName"))
	password := c.FormValue("password")

	if username == "" || email == "" || fullName == "" || strings.TrimSpace(password) == "" {
		return apperrors.BadRequest("All fields are required")
	}

	exists, err := a.users.ExistsByUsernameOrEmail(username, email)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.Conflict("User with this username or email already exists")
	}

	avatarFile, err := c.FormFile("avatar")
	if err != nil {
		return apperrors.BadRequest("Avatar is required")
	}
	avatarURL, err := uploadFormFile(c, a.uploads, avatarFile, "avatar")
	if err != nil {
		return apperrors.Internal("Avatar upload failed")
	}

	// A broken cover upload is tolerated, the field is optional anyway.
	var coverURL string
	if coverFile, err := c.FormFile("coverImage"); err == nil {
		if url, err := uploadFormFile(c, a.uploads, coverFile, "cover"); err == nil {
			coverURL = url
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{
		Username:      username,
		Email:         email,
		FullName:      fullName,
		AvatarUrl:     avatarURL,
		CoverImageUrl: coverURL,
		PasswordHash:  hash,
	}
	if err := a.users.Create(&user); err != nil {
		// A concurrent registration can slip past the existence check and
		// land on the unique index instead.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Conflict("User with this username or email already exists")
		}
		return apperrors.Internal("User could not be registered")
	}

	return respond(c, fiber.StatusCreated, toUserResponse(&user), "User registered successfully")
}

// Login verifies credentials, rotates the token pair and sets both cookies.
func (a *AuthController) Login(c fiber.Ctx) error {
	var req LoginRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperrors.BadRequest("Invalid request body")
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if (username == "" && email == "") || req.Password == "" {
		return apperrors.BadRequest("Missing credentials")
	}

	user, err := a.users.FindByUsernameOrEmail(username, email)
	if err != nil {
		return apperrors.NotFound("User does not exist")
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
		return apperrors.Unauthorized("Invalid credentials")
	}

	pair, err := a.tokens.Rotate(user)
	if err != nil {
		return apperrors.Internal("Could not generate tokens")
	}
	a.setAuthCookies(c, pair)

	return respond(c, fiber.StatusOK, LoginResponse{
		User:         toUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "User successfully logged in")
}

// Logout clears the stored refresh token and both cookies.
func (a *AuthController) Logout(c fiber.Ctx) error {
	user := currentUser(c)
	if err := a.users.ClearRefreshToken(user.Id); err != nil {
		return err
	}
	c.ClearCookie("accessToken")
	c.ClearCookie("refreshToken")
	return respond(c, fiber.StatusOK, fiber.Map{}, "User logged out")
}

// Refresh exchanges a valid refresh token for a fresh pair. The presented
// token must equal the stored one; a successful exchange invalidates it.
func (a *AuthController) Refresh(c fiber.Ctx) error {
	raw := c.Cookies("refreshToken")
	if raw == "" {
		var req RefreshRequest
		if err := json.Unmarshal(c.Body(), &req); err == nil {
			raw = req.RefreshToken
		}
	}
	if raw == "" {
		return apperrors.Unauthorized("Refresh token is required")
	}

	userID, err := a.tokens.ParseRefresh(raw)
	if err != nil {
		return apperrors.Unauthorized("Invalid or expired refresh token")
	}

	user, err := a.users.FindByID(userID)
	if err != nil {
		return apperrors.Unauthorized("User no longer exists")
	}

	pair, err := a.tokens.RotateFrom(user, raw)
	if err != nil {
		if err == token.ErrStaleRefreshToken {
			return apperrors.Unauthorized("Refresh token is expired or has been used")
		}
		return apperrors.Internal("Could not generate tokens")
	}
	a.setAuthCookies(c, pair)

	return respond(c, fiber.StatusOK, pair, "Tokens refreshed")
}

func (a *AuthController) ChangePassword(c fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperrors.BadRequest("Invalid request body")
	}
	if strings.TrimSpace(req.NewPassword) == "" {
		return apperrors.BadRequest("New password is required")
	}

	user := currentUser(c)
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.OldPassword)); err != nil {
		return apperrors.Unauthorized("Old password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := a.users.UpdatePassword(user.Id, hash); err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{}, "Password changed successfully")
}

func (a *AuthController) CurrentUser(c fiber.Ctx) error {
	return respond(c, fiber.StatusOK, toUserResponse(currentUser(c)), "Current user fetched")
}

// ForgotPassword mails a short-lived reset code to the account address.
func (a *AuthController) ForgotPassword(c fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperrors.BadRequest("Invalid request body")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return apperrors.BadRequest("Email is required")
	}

	user, err := a.users.FindByEmail(email)
	if err != nil {
		return apperrors.NotFound("User does not exist")
	}

	code, err := generateCode(6)
	if err != nil {
		return err
	}
	vc := models.VerificationCode{
		UserId:    user.Id,
		Code:      code,
		Purpose:   resetCodePurpose,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}
	if err := a.codes.Replace(&vc); err != nil {
		return err
	}

	body := "Your password reset code is " + code + ". It expires in 15 minutes."
	if err := a.mail.Send(user.Email, "Password reset", body); err != nil {
		return apperrors.Internal("Could not send reset code")
	}

	return respond(c, fiber.StatusOK, fiber.Map{}, "Reset code sent")
}

// ResetPassword consumes a mailed code, sets the new password and drops any
// active session.
func (a *AuthController) ResetPassword(c fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperrors.BadRequest("Invalid request body")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Code == "" || strings.TrimSpace(req.Password) == "" {
		return apperrors.BadRequest("Email, code and new password are required")
	}

	user, err := a.users.FindByEmail(email)
	if err != nil {
		return apperrors.NotFound("User does not exist")
	}

	vc, err := a.codes.FindValid(user.Id, req.Code, resetCodePurpose)
	if err != nil {
		return apperrors.BadRequest("Invalid or expired code")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := a.users.UpdatePassword(user.Id, hash); err != nil {
		return err
	}
	if err := a.users.ClearRefreshToken(user.Id); err != nil {
		return err
	}
	if err := a.codes.Delete(vc.Id); err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{}, "Password has been reset")
}

func (a *AuthController) setAuthCookies(c fiber.Ctx, pair token.Pair) {
	c.Cookie(&fiber.Cookie{
		Name:     "accessToken",
		Value:    pair.AccessToken,
		Expires:  time.Now().Add(a.tokens.AccessTTL()),
		HTTPOnly: true,
		Secure:   true,
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refreshToken",
		Value:    pair.RefreshToken,
		Expires:  time.Now().Add(a.tokens.RefreshTTL()),
		HTTPOnly: true,
		Secure:   true,
	})
}

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generateCode(length int) (string, error) {
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		out[i] = codeAlphabet[n.Int64()]
	}
	return string(out), nil
}
