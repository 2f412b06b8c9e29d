package handlers

import (
	"edugate/internal/adapters/http/middleware"
	"edugate/internal/core/domain"
	"edugate/internal/core/services"
	"edugate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	log         *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

// SignupRequest represents signup request body
type SignupRequest struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	Photo    *string `json:"photo"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Signup handles user registration
// @Summary Register new user
// @Description Register a student or distributor account. photo is an optional data URL.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body SignupRequest true "Signup data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.authService.Signup(c.Context(), &services.SignupInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Photo:    req.Photo,
	})
	if err != nil {
		return handleError(c, h.log, err, "Failed to register user")
	}

	return response.Success(c, "User registered successfully", fiber.Map{
		"user": user,
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with email, password and role and return a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.Login(c.Context(), &services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return handleError(c, h.log, err, "Failed to login")
	}

	return response.Success(c, "Login successful", fiber.Map{
		"token": result.Token,
		"user":  result.User,
	})
}

// Me returns the authenticated caller's profile
// @Summary Current user
// @Description Get the profile of the token holder
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	caller := middleware.CallerFrom(c)
	if caller == nil {
		return handleError(c, h.log, domain.ErrUnauthenticated, "")
	}

	user, err := h.authService.GetUserByID(c.Context(), caller.UserID)
	if err != nil {
		return handleError(c, h.log, err, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user": user,
	})
}
