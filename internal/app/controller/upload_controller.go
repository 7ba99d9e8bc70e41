package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/Manulynx/kitaluro/internal/errors"
	"github.com/Manulynx/kitaluro/internal/middleware"
	"github.com/Manulynx/kitaluro/internal/storage"
)

var allowedImageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}

var allowedVideoTypes = []string{
	"video/mp4",
	"video/webm",
	"video/quicktime",
}

type UploadController struct {
	storage *storage.MediaStorage
}

func NewUploadController(storage *storage.MediaStorage) *UploadController {
	return &UploadController{
		storage: storage,
	}
}

type PresignUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Folder      string `json:"folder"`
}

// allowedTypesFor maps each upload folder to its content-type allow list.
// Unknown folders are rejected so the bucket layout stays under control.
func allowedTypesFor(folder string) ([]string, bool) {
	switch folder {
	case storage.FolderProductImages, storage.FolderRatingImages:
		return allowedImageTypes, true
	case storage.FolderProductVideos:
		return allowedVideoTypes, true
	default:
		return nil, false
	}
}

// PresignUpload issues a pre-signed PUT URL for catalog media
// POST /api/v1/admin/uploads/presign
func (ctrl *UploadController) PresignUpload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid presign request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos introducidos no son válidos")
		return
	}

	folder := req.Folder
	if folder == "" {
		folder = storage.FolderProductImages
	}

	allowed, ok := allowedTypesFor(folder)
	if !ok {
		apperrors.BadRequest(c, apperrors.UploadInvalidFolder, "Carpeta de destino no permitida")
		return
	}
	if err := ctrl.storage.ValidateContentType(req.ContentType, allowed); err != nil {
		log.Warn("Rejected upload content type", map[string]interface{}{
			"content_type": req.ContentType,
			"folder":       folder,
		})
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Tipo de archivo no permitido para esta carpeta")
		return
	}

	upload, err := ctrl.storage.PresignUpload(c.Request.Context(), req.Filename, req.ContentType, folder)
	if err != nil {
		log.Error("Failed to generate presigned URL", err, map[string]interface{}{
			"filename":     req.Filename,
			"content_type": req.ContentType,
			"folder":       folder,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "No se pudo generar la URL de subida")
		return
	}

	log.Info("Presigned upload URL generated", map[string]interface{}{
		"folder": folder,
		"key":    upload.Key,
	})
	c.JSON(http.StatusOK, upload)
}
