package http

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"coursehub-backend/internal/repository"

	"github.com/gin-gonic/gin"
)

// UploadAsset stores a course thumbnail or attachment in GridFS. Educators
// only; the optional course_id form field links the asset to a course.
func (h *Handler) UploadAsset(c *gin.Context) {
	caller := getCaller(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	defer file.Close()

	metadata := repository.AssetMetadata{UploadedBy: caller.ID}
	if v := c.PostForm("course_id"); v != "" {
		courseID, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course_id"})
			return
		}
		metadata.CourseID = uint(courseID)
	}

	info, err := h.AssetRepo.Upload(c.Request.Context(), file, header, metadata)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Asset uploaded successfully",
		"asset": gin.H{
			"id":           info.ID,
			"filename":     info.Filename,
			"content_type": info.ContentType,
			"size":         info.Size,
			"upload_date":  info.UploadDate,
			"url":          "/api/v1/assets/" + info.ID,
		},
	})
}

// StreamAsset streams an asset from GridFS.
func (h *Handler) StreamAsset(c *gin.Context) {
	assetID := c.Param("id")

	stream, info, err := h.AssetRepo.Download(c.Request.Context(), assetID)
	if err != nil {
		respondError(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", info.ContentType)
	c.Header("Content-Length", strconv.FormatInt(info.Size, 10))
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", info.Metadata.OriginalName))

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Headers are already out; nothing left to send the client.
		log.Printf("stream asset %s: %v", assetID, err)
	}
}
