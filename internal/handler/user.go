package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gantabya/internal/domain"
	"gantabya/internal/middleware"
	"gantabya/internal/service"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	userService *service.UserService
	sessions    *service.SessionService
	tokenTTL    time.Duration
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService, sessions *service.SessionService, tokenTTL time.Duration) *UserHandler {
	return &UserHandler{
		userService: userService,
		sessions:    sessions,
		tokenTTL:    tokenTTL,
	}
}

// RegisterUserRequest is the HTTP request body for user registration.
type RegisterUserRequest struct {
	FullName FullNameRequest `json:"fullname"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"min=6"`
}

// UserResponse is the HTTP response for user data.
type UserResponse struct {
	ID        string           `json:"id"`
	FullName  FullNameResponse `json:"fullname"`
	Email     string           `json:"email"`
	CreatedAt time.Time        `json:"created_at"`
}

// UserAuthResponse is returned by register and login.
type UserAuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FullName:  toFullNameResponse(u.FullName),
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Register handles POST /users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.userService.Register(c.Request.Context(), service.RegisterUserRequest{
		FirstName: req.FullName.FirstName,
		LastName:  req.FullName.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	setTokenCookie(c, token, h.tokenTTL)
	respondJSON(c, http.StatusCreated, UserAuthResponse{Token: token, User: toUserResponse(user)})
}

// Login handles POST /users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	setTokenCookie(c, token, h.tokenTTL)
	respondJSON(c, http.StatusOK, UserAuthResponse{Token: token, User: toUserResponse(user)})
}

// Profile handles GET /users/profile
func (h *UserHandler) Profile(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "Unauthorized"})
		return
	}

	user, err := h.userService.Profile(c.Request.Context(), claims.Subject)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toUserResponse(user))
}

// Logout handles GET /users/logout
func (h *UserHandler) Logout(c *gin.Context) {
	logout(c, h.sessions)
}
