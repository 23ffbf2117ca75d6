package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tastebud-ai/backend/internal/middleware"
	"github.com/tastebud-ai/backend/internal/models"
	"github.com/tastebud-ai/backend/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/profile", middleware.AuthMiddleware(h.authService), h.GetProfile)
		auth.PUT("/profile", middleware.AuthMiddleware(h.authService), h.UpdateProfile)
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("auth: register validation error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("auth: register failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: user})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		log.Printf("auth: login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
}

type ProfileResponse struct {
	User               *models.User `json:"user"`
	DietaryPreferences []string     `json:"dietaryPreferences"`
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := currentUserID(c)

	user, prefs, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("auth: profile lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{User: user, DietaryPreferences: prefs})
}

type UpdateProfileRequest struct {
	Name                string    `json:"name" binding:"required"`
	Age                 *int      `json:"age"`
	Location            string    `json:"location"`
	PhoneNumber         string    `json:"phoneNumber"`
	CookingExperience   string    `json:"cookingExperience"`
	FavoriteIngredients string    `json:"favoriteIngredients"`
	Allergies           string    `json:"allergies"`
	DietaryPreferences  *[]string `json:"dietaryPreferences"`
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	update := service.ProfileUpdate{
		Name:                req.Name,
		Age:                 req.Age,
		Location:            req.Location,
		PhoneNumber:         req.PhoneNumber,
		CookingExperience:   req.CookingExperience,
		FavoriteIngredients: req.FavoriteIngredients,
		Allergies:           req.Allergies,
	}
	if req.DietaryPreferences != nil {
		update.DietaryPreferences = *req.DietaryPreferences
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), currentUserID(c), update)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("auth: profile update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// currentUserID reads the authenticated user from the context set by the
// auth middleware.
func currentUserID(c *gin.Context) uuid.UUID {
	id, _ := c.Get("user_id")
	userID, _ := id.(uuid.UUID)
	return userID
}
