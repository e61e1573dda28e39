package handler

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/SlickbitTechnologies/ContractFlow/model"
	"github.com/SlickbitTechnologies/ContractFlow/service"
	"github.com/gin-gonic/gin"
)

// allowedExtensions restricts uploads at the selection boundary. Content
// validation is the remote store's responsibility.
var allowedExtensions = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

type ContractHandler struct {
	manager        *service.ContractManager
	maxUploadBytes int64
}

func NewContractHandler(manager *service.ContractManager, maxUploadMB int) *ContractHandler {
	return &ContractHandler{
		manager:        manager,
		maxUploadBytes: int64(maxUploadMB) * 1024 * 1024,
	}
}

// List returns the contract collection with the compound filter applied.
// The first call (or refresh=true) refetches from the remote store;
// otherwise the last known snapshot is served.
func (h *ContractHandler) List(c *gin.Context) {
	if h.manager.LastRefresh().IsZero() || c.Query("refresh") == "true" {
		if err := h.manager.Refresh(c.Request.Context()); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load contracts"})
			return
		}
	}

	query := service.FilterQuery{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Action: c.Query("action"),
	}

	filtered := h.manager.Filter(query)
	c.JSON(http.StatusOK, gin.H{
		"contracts": filtered,
		"total":     len(h.manager.Contracts()),
		"shown":     len(filtered),
	})
}

// Upload accepts a multipart batch of contract documents and hands it to
// the orchestrator. File type and size are checked here, before any file
// is sent.
func (h *ContractHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
		return
	}

	files := make([]service.UploadFile, 0, len(headers))
	for _, header := range headers {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		contentType, ok := allowedExtensions[ext]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF, DOC and DOCX files are allowed"})
			return
		}
		if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File too large: " + header.Filename})
			return
		}

		f, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file: " + header.Filename})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file: " + header.Filename})
			return
		}

		files = append(files, service.UploadFile{
			Name:        header.Filename,
			Data:        data,
			ContentType: contentType,
		})
	}

	results, err := h.manager.Upload(c.Request.Context(), files)
	if errors.Is(err, service.ErrBusy) {
		c.JSON(http.StatusConflict, gin.H{"error": "Another operation is in progress"})
		return
	}
	if err != nil {
		// Uploads ran; only the trailing refresh failed.
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to refresh contracts", "results": results})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "results": results})
}

// Update replaces a full contract record.
func (h *ContractHandler) Update(c *gin.Context) {
	var contract model.Contract
	if err := c.ShouldBindJSON(&contract); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	contract.ID = c.Param("id")

	err := h.manager.Update(c.Request.Context(), contract)
	switch {
	case errors.Is(err, service.ErrMissingID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot update: missing document ID"})
	case errors.Is(err, service.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "Another operation is in progress"})
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update contract"})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}

// Delete removes a contract. The confirm flag must be set explicitly;
// without it no network call is made.
func (h *ContractHandler) Delete(c *gin.Context) {
	contract := model.Contract{ID: c.Param("id")}
	confirmed := c.Query("confirm") == "true"

	err := h.manager.Delete(c.Request.Context(), contract, confirmed)
	switch {
	case errors.Is(err, service.ErrMissingID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete: missing document ID"})
	case errors.Is(err, service.ErrNotConfirmed):
		c.JSON(http.StatusPreconditionRequired, gin.H{"error": "Delete requires confirmation"})
	case errors.Is(err, service.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "Another operation is in progress"})
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete contract"})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	}
}

// Notifications returns the contracts expiring inside the window, in
// collection order, with per-contract days remaining for display.
func (h *ContractHandler) Notifications(c *gin.Context) {
	now := time.Now()
	if raw := c.Query("now"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid now parameter"})
			return
		}
		now = parsed
	}

	windowDays := 0
	if raw := c.Query("window"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid window parameter"})
			return
		}
		windowDays = parsed
	}

	expiring := h.manager.ExpiringSoon(now, windowDays)
	if windowDays <= 0 {
		windowDays = h.manager.WindowDays()
	}

	items := make([]gin.H, len(expiring))
	for i, contract := range expiring {
		cls := service.Classify(now, contract.Ends, windowDays)
		items[i] = gin.H{
			"contract":       contract,
			"days_remaining": cls.DaysRemaining,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"count":         len(expiring),
		"window_days":   windowDays,
		"notifications": items,
	})
}

// Status reports the busy gate so the UI can disable its affordances and
// show the phase message.
func (h *ContractHandler) Status(c *gin.Context) {
	op, message := h.manager.Busy()
	c.JSON(http.StatusOK, gin.H{
		"busy":      op != "",
		"operation": string(op),
		"message":   message,
	})
}
