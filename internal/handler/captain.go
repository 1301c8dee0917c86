package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gantabya/internal/domain"
	"gantabya/internal/middleware"
	"gantabya/internal/service"
)

// CaptainHandler handles HTTP requests for captains.
type CaptainHandler struct {
	captainService *service.CaptainService
	sessions       *service.SessionService
	tokenTTL       time.Duration
}

// NewCaptainHandler creates a new CaptainHandler.
func NewCaptainHandler(captainService *service.CaptainService, sessions *service.SessionService, tokenTTL time.Duration) *CaptainHandler {
	return &CaptainHandler{
		captainService: captainService,
		sessions:       sessions,
		tokenTTL:       tokenTTL,
	}
}

// VehicleRequest is the vehicle block of a captain signup request.
type VehicleRequest struct {
	Color       string   `json:"color" binding:"min=3"`
	Plate       string   `json:"plate" binding:"min=3"`
	Capacity    capacity `json:"capacity" binding:"min=1"`
	VehicleType string   `json:"vehicleType" binding:"oneof=car motorcycle auto"`
}

// RegisterCaptainRequest is the HTTP request body for captain registration.
type RegisterCaptainRequest struct {
	FullName FullNameRequest `json:"fullname"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"min=6"`
	Vehicle  VehicleRequest  `json:"vehicle"`
}

// VehicleResponse is the vehicle block of a captain response.
type VehicleResponse struct {
	Color       string `json:"color"`
	Plate       string `json:"plate"`
	Capacity    int    `json:"capacity"`
	VehicleType string `json:"vehicleType"`
}

// CaptainResponse is the HTTP response for captain data.
type CaptainResponse struct {
	ID        string           `json:"id"`
	FullName  FullNameResponse `json:"fullname"`
	Email     string           `json:"email"`
	Status    string           `json:"status"`
	Vehicle   VehicleResponse  `json:"vehicle"`
	CreatedAt time.Time        `json:"created_at"`
}

// CaptainAuthResponse is returned by register and login.
type CaptainAuthResponse struct {
	Token   string          `json:"token"`
	Captain CaptainResponse `json:"captain"`
}

// CaptainProfileResponse is returned by the profile endpoint.
type CaptainProfileResponse struct {
	Captain CaptainResponse `json:"captain"`
}

func toCaptainResponse(c *domain.Captain) CaptainResponse {
	return CaptainResponse{
		ID:       c.ID,
		FullName: toFullNameResponse(c.FullName),
		Email:    c.Email,
		Status:   string(c.Status),
		Vehicle: VehicleResponse{
			Color:       c.Vehicle.Color,
			Plate:       c.Vehicle.Plate,
			Capacity:    c.Vehicle.Capacity,
			VehicleType: string(c.Vehicle.Type),
		},
		CreatedAt: c.CreatedAt,
	}
}

// Register handles POST /captains/register
func (h *CaptainHandler) Register(c *gin.Context) {
	var req RegisterCaptainRequest
	if !bindJSON(c, &req) {
		return
	}

	captain, token, err := h.captainService.Register(c.Request.Context(), service.RegisterCaptainRequest{
		FirstName: req.FullName.FirstName,
		LastName:  req.FullName.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Vehicle: domain.Vehicle{
			Color:    req.Vehicle.Color,
			Plate:    req.Vehicle.Plate,
			Capacity: int(req.Vehicle.Capacity),
			Type:     domain.VehicleType(req.Vehicle.VehicleType),
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	setTokenCookie(c, token, h.tokenTTL)
	respondJSON(c, http.StatusCreated, CaptainAuthResponse{Token: token, Captain: toCaptainResponse(captain)})
}

// Login handles POST /captains/login
func (h *CaptainHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	captain, token, err := h.captainService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	setTokenCookie(c, token, h.tokenTTL)
	respondJSON(c, http.StatusOK, CaptainAuthResponse{Token: token, Captain: toCaptainResponse(captain)})
}

// Profile handles GET /captains/profile
func (h *CaptainHandler) Profile(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "Unauthorized"})
		return
	}

	captain, err := h.captainService.Profile(c.Request.Context(), claims.Subject)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, CaptainProfileResponse{Captain: toCaptainResponse(captain)})
}

// Logout handles GET /captains/logout
func (h *CaptainHandler) Logout(c *gin.Context) {
	logout(c, h.sessions)
}
