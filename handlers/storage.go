package handlers

import (
	"net/http"
	"strings"

	"detailing/services/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxImageBytes caps service image uploads.
const maxImageBytes = 10 << 20

// StorageHandler uploads service images. Images may be nil when storage is not configured.
type StorageHandler struct {
	Images storage.ImageStore
}

func NewStorageHandler(images storage.ImageStore) *StorageHandler {
	return &StorageHandler{Images: images}
}

// UploadImage handles POST /api/admin/uploads/images with a multipart "file" field.
func (h *StorageHandler) UploadImage(c *gin.Context) {
	logger := getLogger(c)
	if h.Images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"code": "storage_unavailable", "message": "image storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": CodeInvalidRequest, "message": "file not provided", "details": err.Error()})
		return
	}
	if fileHeader.Size > maxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"code": CodeInvalidRequest, "message": "image exceeds 10MB"})
		return
	}
	if ct := fileHeader.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"code": CodeInvalidRequest, "message": "only image uploads are allowed"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": CodeInternal, "message": "failed to read file"})
		return
	}
	defer file.Close()

	uploaded, err := h.Images.UploadImage(c.Request.Context(), file)
	if err != nil {
		logger.Error("Image upload failed", zap.String("filename", fileHeader.Filename), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"code": "upload_failed", "message": "failed to upload image"})
		return
	}
	logger.Info("Image uploaded", zap.String("publicId", uploaded.PublicID))
	c.JSON(http.StatusCreated, uploaded)
}
