package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gantabya/internal/domain"
	"gantabya/internal/middleware"
	"gantabya/internal/service"
)

// FullNameRequest is the nested name of a signup request.
type FullNameRequest struct {
	FirstName string `json:"firstname" binding:"min=3"`
	LastName  string `json:"lastname"`
}

// LoginRequest is the HTTP request body for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"min=6"`
}

// FullNameResponse is the nested name of an account response.
type FullNameResponse struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

func toFullNameResponse(n domain.FullName) FullNameResponse {
	return FullNameResponse{FirstName: n.FirstName, LastName: n.LastName}
}

// setTokenCookie mirrors the issued token into an HttpOnly cookie.
func setTokenCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, int(ttl.Seconds()), "/", "", false, true)
}

func clearTokenCookie(c *gin.Context) {
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
}

// logout revokes the caller's token and clears the cookie.
func logout(c *gin.Context, sessions *service.SessionService) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "Unauthorized"})
		return
	}

	if err := sessions.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, err)
		return
	}

	clearTokenCookie(c)
	respondJSON(c, http.StatusOK, MessageResponse{Message: "Logged out"})
}
