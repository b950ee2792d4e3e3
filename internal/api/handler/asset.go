package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"matchpoint/backend/internal/auth"
	"matchpoint/backend/internal/models"
	"matchpoint/backend/internal/storage"
	"matchpoint/backend/internal/upload"
)

// UploadAssets accepts a multipart form with an optional profile_picture
// file, optional image_list files and optional passion_list values. Files
// go to the blob store; the asset row keeps the returned URLs.
func (h *Handler) UploadAssets(c *gin.Context) {
	ctx := c.Request.Context()
	userID := auth.UserID(c)

	if h.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "File uploads are not available."})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form expected"})
		return
	}

	asset, err := h.Store.GetAssetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			h.Log.Error("asset lookup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred."})
			return
		}
		asset = &models.Asset{UserID: userID}
	}

	if files := form.File["profile_picture"]; len(files) > 0 {
		url, err := h.uploadFormFile(c, files[0], "profile_picture", userID)
		if err != nil {
			h.Log.Error("profile picture upload failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed."})
			return
		}
		asset.ProfilePicture = &url
	}

	for _, fh := range form.File["image_list"] {
		url, err := h.uploadFormFile(c, fh, "image_list", userID)
		if err != nil {
			h.Log.Error("image upload failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed."})
			return
		}
		asset.ImageList = append(asset.ImageList, url)
	}

	if passions := form.Value["passion_list"]; len(passions) > 0 {
		asset.PassionList = passions
	}

	if err := h.Store.SaveAsset(ctx, asset); err != nil {
		h.Log.Error("asset save failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Upload completed successfully", "asset_id": asset.ID})
}

// GetAssets returns the current user's asset record.
func (h *Handler) GetAssets(c *gin.Context) {
	asset, err := h.Store.GetAssetByUserID(c.Request.Context(), auth.UserID(c))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assets does not exist"})
			return
		}
		h.Log.Error("asset lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error occurred."})
		return
	}
	c.JSON(http.StatusOK, asset)
}

func (h *Handler) uploadFormFile(c *gin.Context, fh *multipart.FileHeader, category, userID string) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}

	return h.Uploader.Upload(c.Request.Context(), upload.File{
		Data:        data,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}, category, userID)
}
