package http

import (
	"net/http"

	"coursehub-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// ========== MODULE HANDLERS ==========

func (h *Handler) GetModulesByCourse(c *gin.Context) {
	courseID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	modules, err := h.ContentUsecase.GetModulesByCourse(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"modules": modules, "count": len(modules)})
}

func (h *Handler) CreateModule(c *gin.Context) {
	var req struct {
		CourseID    uint   `json:"course_id" binding:"required"`
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	module := &domain.Module{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := h.ContentUsecase.AddModule(c.Request.Context(), getCaller(c), module); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Module created successfully", "module": module})
}

func (h *Handler) UpdateModule(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Order       *int   `json:"order" binding:"omitempty,gte=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	module, err := h.ContentUsecase.UpdateModule(c.Request.Context(), getCaller(c), c.Param("moduleId"), domain.ModuleUpdate{
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Module updated successfully", "module": module})
}

func (h *Handler) DeleteModule(c *gin.Context) {
	if err := h.ContentUsecase.DeleteModule(c.Request.Context(), getCaller(c), c.Param("moduleId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Module and all related videos deleted successfully"})
}

// ========== VIDEO HANDLERS ==========

func (h *Handler) GetVideosByModule(c *gin.Context) {
	videos, err := h.ContentUsecase.GetVideosByModule(c.Request.Context(), c.Param("moduleId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos, "count": len(videos)})
}

func (h *Handler) CreateVideo(c *gin.Context) {
	var req struct {
		ModuleID string `json:"module_id" binding:"required"`
		Title    string `json:"title" binding:"required"`
		VideoURL string `json:"video_url" binding:"required"`
		Duration int    `json:"duration" binding:"gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	video := &domain.Video{
		ModuleID: req.ModuleID,
		Title:    req.Title,
		VideoURL: req.VideoURL,
		Duration: req.Duration,
	}
	if err := h.ContentUsecase.AddVideo(c.Request.Context(), getCaller(c), video); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Video created successfully", "video": video})
}

func (h *Handler) UpdateVideo(c *gin.Context) {
	var req struct {
		Title    string `json:"title"`
		VideoURL string `json:"video_url"`
		Duration *int   `json:"duration" binding:"omitempty,gte=0"`
		Order    *int   `json:"order" binding:"omitempty,gte=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	video, err := h.ContentUsecase.UpdateVideo(c.Request.Context(), getCaller(c), c.Param("videoId"), domain.VideoUpdate{
		Title:    req.Title,
		VideoURL: req.VideoURL,
		Duration: req.Duration,
		Order:    req.Order,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Video updated successfully", "video": video})
}

func (h *Handler) DeleteVideo(c *gin.Context) {
	if err := h.ContentUsecase.DeleteVideo(c.Request.Context(), getCaller(c), c.Param("videoId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Video deleted successfully"})
}
