package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/developer"
	"github.com/cohortlab/cohortlab/backend/go-services/pkg/response"
)

type DeveloperHandler struct {
	svc *developer.Service
}

func NewDeveloperHandler(svc *developer.Service) *DeveloperHandler {
	return &DeveloperHandler{svc: svc}
}

func (h *DeveloperHandler) Register(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	rg.POST("", h.Create)
	rg.GET("", guarded(admin, h.List)...)
	rg.GET("/:id", guarded(admin, h.Get)...)
	rg.PUT("/:id/status", guarded(admin, h.UpdateStatus)...)
	rg.GET("/:id/resume", guarded(admin, h.Resume)...)
	rg.DELETE("/:id", guarded(admin, h.Delete)...)
}

// Create accepts multipart (with an optional "resume" file) or JSON.
func (h *DeveloperHandler) Create(c *gin.Context) {
	var in developer.CreateInput
	if !bind(c, &in) {
		return
	}
	file, err := resumeFile(c)
	if err != nil {
		writeError(c, err)
		return
	}
	d, err := h.svc.Create(c.Request.Context(), in, file)
	recordSubmission("developer", err)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, "Developer application submitted successfully", d.Summary())
}

func (h *DeveloperHandler) List(c *gin.Context) {
	items, meta, err := h.svc.List(c.Request.Context(), developer.Filter{Status: c.Query("status")}, page(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Page(c, items, meta)
}

func (h *DeveloperHandler) Get(c *gin.Context) {
	d, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "", d)
}

func (h *DeveloperHandler) UpdateStatus(c *gin.Context) {
	var in developer.StatusInput
	if !bind(c, &in) {
		return
	}
	d, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Developer application status updated", d)
}

func (h *DeveloperHandler) Resume(c *gin.Context) {
	rc, res, err := h.svc.OpenResume(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	streamResume(c, rc, res)
}

func (h *DeveloperHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Developer application deleted successfully", nil)
}
