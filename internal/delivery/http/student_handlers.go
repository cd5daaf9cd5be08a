package http

import (
	"net/http"

	"coursehub-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// ========== ENROLLMENT HANDLERS ==========

func (h *Handler) GetMyEnrollments(c *gin.Context) {
	enrollments, err := h.EnrollmentUsecase.GetStudentEnrollments(c.Request.Context(), getCaller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enrollments": enrollments, "count": len(enrollments)})
}

func (h *Handler) EnrollCourse(c *gin.Context) {
	var req struct {
		CourseID uint `json:"course_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	enrollment, err := h.EnrollmentUsecase.Enroll(c.Request.Context(), getCaller(c), req.CourseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Enrolled successfully", "enrollment": enrollment})
}

func (h *Handler) UpdateProgress(c *gin.Context) {
	enrollmentID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		VideoID   string `json:"video_id"`
		Completed *bool  `json:"completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	enrollment, err := h.EnrollmentUsecase.RecordProgress(c.Request.Context(), getCaller(c), enrollmentID, domain.ProgressUpdate{
		VideoID:   req.VideoID,
		Completed: req.Completed,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Progress updated successfully", "enrollment": enrollment})
}

// ========== CART HANDLERS ==========

func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.CartUsecase.GetCart(c.Request.Context(), getCaller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req struct {
		CourseID uint `json:"course_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	cart, err := h.CartUsecase.AddToCart(c.Request.Context(), getCaller(c), req.CourseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Course added to cart", "cart": cart})
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	courseID, ok := parseUintParam(c, "courseId")
	if !ok {
		return
	}

	cart, err := h.CartUsecase.RemoveFromCart(c.Request.Context(), getCaller(c), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Course removed from cart", "cart": cart})
}

func (h *Handler) Checkout(c *gin.Context) {
	enrollments, err := h.CartUsecase.Checkout(c.Request.Context(), getCaller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Checkout successful", "enrollments": enrollments})
}
