// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"soutenance_backend/internals/features/users/auth/dto"
	"soutenance_backend/internals/features/users/auth/service"
	userModel "soutenance_backend/internals/features/users/user/model"
	helper "soutenance_backend/internals/helpers"
)

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB, v *validator.Validate) *AuthController {
	return &AuthController{DB: db, Validate: v}
}

/* =======================================================
   POST /auth/register
   ======================================================= */

func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		UserName:         req.Name,
		UserPrenom:       req.Prenom,
		UserEmail:        req.Email,
		UserPasswordHash: string(hash),
		UserRole:         userModel.UserRole(req.Role),
	}
	if err := ctl.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.Error(c, fiber.StatusConflict, "Email already in use")
		}
		log.Printf("[ERROR] register %s: %v", req.Email, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create account")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Account created", dto.ToUserResponse(&user))
}

/* =======================================================
   POST /auth/login
   ======================================================= */

func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := ctl.DB.Where("user_email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Login failed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPasswordHash), []byte(req.Password)); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	now := time.Now().UTC()
	access, err := service.IssueAccessToken(&user, now)
	if err != nil {
		log.Printf("[ERROR] issue access token: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Login failed")
	}
	refresh, err := service.IssueRefreshToken(user.UserID, now)
	if err != nil {
		log.Printf("[ERROR] issue refresh token: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Login failed")
	}

	setRefreshCookie(c, refresh, now.Add(service.RefreshTokenTTL))

	return helper.Success(c, "Login successful", dto.LoginResponse{
		AccessToken: access,
		User:        dto.ToUserResponse(&user),
	})
}

/* =======================================================
   POST /auth/refresh-token
   ======================================================= */

func (ctl *AuthController) Refresh(c *fiber.Ctx) error {
	raw := helper.GetRefreshTokenFromCookie(c)
	if raw == "" {
		return helper.Error(c, fiber.StatusUnauthorized, "Missing refresh token")
	}

	userID, err := service.ParseRefreshToken(raw)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	var user userModel.UserModel
	if err := ctl.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	now := time.Now().UTC()
	access, err := service.IssueAccessToken(&user, now)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to refresh token")
	}
	refresh, err := service.IssueRefreshToken(user.UserID, now)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to refresh token")
	}
	setRefreshCookie(c, refresh, now.Add(service.RefreshTokenTTL))

	return helper.Success(c, "Token refreshed", fiber.Map{
		"access_token": access,
	})
}

/* =======================================================
   GET /auth/me & POST /auth/logout
   ======================================================= */

func (ctl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var user userModel.UserModel
	if err := ctl.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "User not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}
	return c.JSON(dto.ToUserResponse(&user))
}

func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: "refresh_token", Value: "", Expires: expired, HTTPOnly: true})
	c.Cookie(&fiber.Cookie{Name: "access_token", Value: "", Expires: expired, HTTPOnly: true})
	return helper.Success(c, "Logged out", nil)
}

func setRefreshCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}
