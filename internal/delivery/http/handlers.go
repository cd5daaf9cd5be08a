package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"coursehub-backend/internal/domain"
	"coursehub-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	AuthUsecase       domain.AuthUsecase
	UserUsecase       domain.UserUsecase
	CourseUsecase     domain.CourseUsecase
	ContentUsecase    domain.ContentUsecase
	EnrollmentUsecase domain.EnrollmentUsecase
	CartUsecase       domain.CartUsecase
	DashboardUsecase  domain.DashboardUsecase
	AssetRepo         repository.AssetRepository
}

func NewHandler(
	au domain.AuthUsecase,
	uu domain.UserUsecase,
	cu domain.CourseUsecase,
	contentU domain.ContentUsecase,
	eu domain.EnrollmentUsecase,
	cartU domain.CartUsecase,
	du domain.DashboardUsecase,
	assetRepo repository.AssetRepository,
) *Handler {
	return &Handler{
		AuthUsecase:       au,
		UserUsecase:       uu,
		CourseUsecase:     cu,
		ContentUsecase:    contentU,
		EnrollmentUsecase: eu,
		CartUsecase:       cartU,
		DashboardUsecase:  du,
		AssetRepo:         assetRepo,
	}
}

// ========== UTILITY FUNCTIONS ==========

func formatValidationErrors(err error) gin.H {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		details := make(map[string]string)
		for _, f := range ve {
			details[f.Field()] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", f.Field(), f.Tag())
		}
		return gin.H{"error": "Validation failed", "details": details}
	}
	return gin.H{"error": "Invalid request: " + err.Error()}
}

// respondError maps the domain error taxonomy onto HTTP status codes.
// Anything outside the taxonomy is a server error and is logged, not leaked.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}

// ========== AUTH HANDLERS ==========

func (h *Handler) Register(c *gin.Context) {
	var req struct {
		Name     string      `json:"name" binding:"required"`
		Email    string      `json:"email" binding:"required,email"`
		Password string      `json:"password" binding:"required,min=6"`
		Role     domain.Role `json:"role" binding:"omitempty,oneof=student educator"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	user, err := h.AuthUsecase.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user": gin.H{
			"id":          user.ID,
			"name":        user.Name,
			"email":       user.Email,
			"role":        user.Role,
			"is_approved": user.IsApproved,
		},
	})
}

func (h *Handler) Login(c *gin.Context) {
	var creds struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	token, user, err := h.AuthUsecase.Login(c.Request.Context(), creds.Email, creds.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":          user.ID,
			"name":        user.Name,
			"email":       user.Email,
			"role":        user.Role,
			"is_approved": user.IsApproved,
		},
	})
}

func (h *Handler) GetCurrentUser(c *gin.Context) {
	caller := getCaller(c)

	user, err := h.AuthUsecase.GetUserByID(c.Request.Context(), caller.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	caller := getCaller(c)

	var req struct {
		Name         string `json:"name"`
		Password     string `json:"password" binding:"omitempty,min=6"`
		ProfileImage string `json:"profile_image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	user, err := h.AuthUsecase.UpdateProfile(c.Request.Context(), caller, req.Name, req.Password, req.ProfileImage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
}

// ========== ADMIN USER HANDLERS ==========

func (h *Handler) GetAllUsers(c *gin.Context) {
	users, err := h.UserUsecase.GetAllUsers(c.Request.Context(), getCaller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

func (h *Handler) GetEducators(c *gin.Context) {
	educators, err := h.UserUsecase.GetEducators(c.Request.Context(), getCaller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"educators": educators, "count": len(educators)})
}

func (h *Handler) ApproveEducator(c *gin.Context) {
	userID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	user, err := h.UserUsecase.ApproveEducator(c.Request.Context(), getCaller(c), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Educator approved successfully", "user": user})
}

func (h *Handler) CreateEducator(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	user, err := h.UserUsecase.CreateEducator(c.Request.Context(), getCaller(c), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Educator created successfully",
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// ========== DASHBOARD ==========

func (h *Handler) GetAdminDashboard(c *gin.Context) {
	data, err := h.DashboardUsecase.GetAdminDashboard(c.Request.Context(), getCaller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}
