package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/SlickbitTechnologies/ContractFlow/service"
	"github.com/gin-gonic/gin"
)

// SharePointHandler exposes the document-sync integration surface: status
// check, site search, file discovery, download, and import of a discovered
// file into the contract store.
type SharePointHandler struct {
	sharepoint *service.SharePointService
	manager    *service.ContractManager
}

func NewSharePointHandler(sp *service.SharePointService, manager *service.ContractManager) *SharePointHandler {
	return &SharePointHandler{
		sharepoint: sp,
		manager:    manager,
	}
}

// Status reports whether the integration can authenticate.
func (h *SharePointHandler) Status(c *gin.Context) {
	if err := h.sharepoint.CheckStatus(c.Request.Context()); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  "disconnected",
			"message": "Failed to get access token",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "connected",
		"message": "SharePoint integration is working",
	})
}

// Sites searches for sites matching the search term.
func (h *SharePointHandler) Sites(c *gin.Context) {
	sites, err := h.sharepoint.Sites(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch SharePoint sites"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": sites})
}

// SiteFiles lists every file on the configured site.
func (h *SharePointHandler) SiteFiles(c *gin.Context) {
	files, err := h.sharepoint.SiteFiles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch site files"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": files})
}

// Download streams a file's content by drive item id.
func (h *SharePointHandler) Download(c *gin.Context) {
	content, err := h.sharepoint.Download(c.Request.Context(), c.Param("fileId"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to download file"})
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", content)
}

// Import downloads a file from SharePoint and re-packages it as a
// single-file upload batch against the contract store.
func (h *SharePointHandler) Import(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file name"})
		return
	}
	ext := strings.ToLower(filepath.Ext(name))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF, DOC and DOCX files are allowed"})
		return
	}

	content, err := h.sharepoint.Download(c.Request.Context(), c.Param("fileId"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to download file"})
		return
	}

	results, err := h.manager.Upload(c.Request.Context(), []service.UploadFile{{
		Name:        name,
		Data:        content,
		ContentType: contentType,
	}})
	if errors.Is(err, service.ErrBusy) {
		c.JSON(http.StatusConflict, gin.H{"error": "Another operation is in progress"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to refresh contracts", "results": results})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "results": results})
}
