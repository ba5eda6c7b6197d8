package handlers

import (
	"errors"
	"net/http"

	knowledgeRepo "zapagenda/database/repository/knowledge"
	"zapagenda/services/settings"
	"zapagenda/utils"

	"github.com/gin-gonic/gin"
)

// KnowledgeHandler exposes the admin CRUD over knowledge entries.
type KnowledgeHandler struct {
	Repo     knowledgeRepo.KnowledgeRepository
	Settings settings.Provider
}

// NewKnowledgeHandler constructs a KnowledgeHandler.
func NewKnowledgeHandler(repo knowledgeRepo.KnowledgeRepository, provider settings.Provider) *KnowledgeHandler {
	return &KnowledgeHandler{Repo: repo, Settings: provider}
}

// ListKnowledgeHandler handles GET /api/knowledge.
func (h *KnowledgeHandler) ListKnowledgeHandler(c *gin.Context) {
	entries, err := h.Repo.All(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list knowledge entries", err.Error())
		return
	}
	c.JSON(http.StatusOK, entries)
}

type knowledgeRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// SetKnowledgeHandler handles POST /api/knowledge.
func (h *KnowledgeHandler) SetKnowledgeHandler(c *gin.Context) {
	var req knowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid knowledge payload", err.Error())
		return
	}
	if err := h.Repo.Set(c.Request.Context(), req.Key, req.Value); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save knowledge entry", err.Error())
		return
	}
	h.Settings.Invalidate()
	c.JSON(http.StatusOK, gin.H{"saved": req.Key})
}

// DeleteKnowledgeHandler handles DELETE /api/knowledge/:key.
func (h *KnowledgeHandler) DeleteKnowledgeHandler(c *gin.Context) {
	err := h.Repo.Delete(c.Request.Context(), c.Param("key"))
	if errors.Is(err, knowledgeRepo.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "knowledge entry not found", c.Param("key"))
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete knowledge entry", err.Error())
		return
	}
	h.Settings.Invalidate()
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("key")})
}
