package handler

import (
	"math"
	"strconv"

	"notesapi/dto"
	"notesapi/logging"
	"notesapi/middleware"
	"notesapi/services"
	"notesapi/usecase"
	"notesapi/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users   *usecase.UserService
	limiter services.LoginLimiter
	log     logging.Logger
	errorResponder
}

func NewAuthHandler(users *usecase.UserService, limiter services.LoginLimiter,
	log logging.Logger, exposeDetails bool) *AuthHandler {
	if limiter == nil {
		limiter = services.NoopLimiter()
	}
	return &AuthHandler{
		users:          users,
		limiter:        limiter,
		log:            log,
		errorResponder: errorResponder{log: log, exposeDetails: exposeDetails},
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.bind(c, &req) {
		return
	}

	user, err := h.users.Register(c.Request.Context(), usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respond(c, err)
		return
	}

	utils.Created(c, dto.AuthResponse{
		Message: "User registered successfully",
		User:    dto.ToUserResponse(user),
	})
}

// Login handles POST /auth/login. Attempts are counted per client IP before
// the body is read.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	allowed, retryAfter, err := h.limiter.Allow(ctx, c.ClientIP())
	if err != nil {
		h.log.Warn(ctx, "login rate limiter unavailable", "error", err)
		utils.TrackError("ratelimit", "unavailable")
	} else if !allowed {
		utils.TrackAuthAttempt("failure", "rate_limited")
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
		utils.TooManyRequests(c, "Too many login attempts, please try again later")
		return
	}

	var req dto.LoginRequest
	if !h.bind(c, &req) {
		return
	}

	token, user, err := h.users.Login(ctx, usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.respond(c, err)
		return
	}

	utils.Success(c, dto.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    dto.ToUserResponse(user),
	})
}

// Profile handles GET /auth/profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, _, ok := middleware.Identity(c)
	if !ok {
		utils.Unauthorized(c, "Access token required")
		return
	}

	user, err := h.users.Profile(c.Request.Context(), userID)
	if err != nil {
		h.respond(c, err)
		return
	}

	utils.Success(c, gin.H{
		"message": "Profile retrieved successfully",
		"user":    dto.ToUserResponse(user),
	})
}
