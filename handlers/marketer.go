package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/marketer"
	"github.com/cohortlab/cohortlab/backend/go-services/pkg/response"
)

type MarketerHandler struct {
	svc *marketer.Service
}

func NewMarketerHandler(svc *marketer.Service) *MarketerHandler {
	return &MarketerHandler{svc: svc}
}

func (h *MarketerHandler) Register(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	rg.POST("", h.Create)
	rg.GET("", guarded(admin, h.List)...)
	rg.GET("/:id", guarded(admin, h.Get)...)
	rg.PUT("/:id/status", guarded(admin, h.UpdateStatus)...)
	rg.GET("/:id/resume", guarded(admin, h.Resume)...)
	rg.DELETE("/:id", guarded(admin, h.Delete)...)
}

// Create takes the same body shapes as the developer form.
func (h *MarketerHandler) Create(c *gin.Context) {
	var in marketer.CreateInput
	if !bind(c, &in) {
		return
	}
	file, err := resumeFile(c)
	if err != nil {
		writeError(c, err)
		return
	}
	m, err := h.svc.Create(c.Request.Context(), in, file)
	recordSubmission("marketer", err)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, "Marketer application submitted successfully", m.Summary())
}

func (h *MarketerHandler) List(c *gin.Context) {
	items, meta, err := h.svc.List(c.Request.Context(), marketer.Filter{Status: c.Query("status")}, page(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Page(c, items, meta)
}

func (h *MarketerHandler) Get(c *gin.Context) {
	m, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "", m)
}

func (h *MarketerHandler) UpdateStatus(c *gin.Context) {
	var in marketer.StatusInput
	if !bind(c, &in) {
		return
	}
	m, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Marketer application status updated", m)
}

func (h *MarketerHandler) Resume(c *gin.Context) {
	rc, res, err := h.svc.OpenResume(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	streamResume(c, rc, res)
}

func (h *MarketerHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Marketer application deleted successfully", nil)
}
