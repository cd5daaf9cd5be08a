package http

import (
	"net/http"
	"strconv"

	"coursehub-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// ========== COURSE HANDLERS ==========

func (h *Handler) GetAllCourses(c *gin.Context) {
	courses, err := h.CourseUsecase.GetApprovedCourses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses, "count": len(courses)})
}

func (h *Handler) GetCourseByID(c *gin.Context) {
	courseID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	course, err := h.CourseUsecase.GetCourseByID(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *Handler) GetCourseContent(c *gin.Context) {
	courseID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	content, err := h.CourseUsecase.GetCourseContent(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, content)
}

func (h *Handler) CreateCourse(c *gin.Context) {
	var req struct {
		Title       string  `json:"title" binding:"required"`
		Description string  `json:"description" binding:"required"`
		Price       float64 `json:"price" binding:"gte=0"`
		Category    string  `json:"category" binding:"required"`
		Image       string  `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	course := &domain.Course{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
	}
	if err := h.CourseUsecase.CreateCourse(c.Request.Context(), getCaller(c), course); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Course created successfully, pending approval",
		"course":  course,
	})
}

func (h *Handler) UpdateCourse(c *gin.Context) {
	courseID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Price       *float64 `json:"price" binding:"omitempty,gte=0"`
		Category    string   `json:"category"`
		Image       string   `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	course, err := h.CourseUsecase.UpdateCourse(c.Request.Context(), getCaller(c), courseID, domain.CourseUpdate{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		Price:       req.Price,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Course updated successfully"
	if !course.IsApproved {
		message = "Course updated successfully, pending approval"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "course": course})
}

func (h *Handler) DeleteCourse(c *gin.Context) {
	courseID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.CourseUsecase.DeleteCourse(c.Request.Context(), getCaller(c), courseID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Course and all related content deleted successfully"})
}

func (h *Handler) GetEducatorCourses(c *gin.Context) {
	courses, err := h.CourseUsecase.GetEducatorCourses(c.Request.Context(), getCaller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses, "count": len(courses)})
}

func (h *Handler) GetPendingCourses(c *gin.Context) {
	courses, err := h.CourseUsecase.GetPendingCourses(c.Request.Context(), getCaller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses, "count": len(courses)})
}

func (h *Handler) ApproveCourse(c *gin.Context) {
	courseID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	course, err := h.CourseUsecase.ApproveCourse(c.Request.Context(), getCaller(c), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Course approved successfully", "course": course})
}
