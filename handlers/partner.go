package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/partner"
	"github.com/cohortlab/cohortlab/backend/go-services/pkg/response"
)

type PartnerHandler struct {
	svc *partner.Service
}

func NewPartnerHandler(svc *partner.Service) *PartnerHandler {
	return &PartnerHandler{svc: svc}
}

func (h *PartnerHandler) Register(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	rg.POST("", h.Create)
	rg.GET("", guarded(admin, h.List)...)
	rg.GET("/:id", guarded(admin, h.Get)...)
	rg.PUT("/:id/status", guarded(admin, h.UpdateStatus)...)
	rg.PUT("/:id/partnership-type", guarded(admin, h.UpdatePartnershipType)...)
	rg.DELETE("/:id", guarded(admin, h.Delete)...)
}

func (h *PartnerHandler) Create(c *gin.Context) {
	var in partner.CreateInput
	if !bind(c, &in) {
		return
	}
	p, err := h.svc.Create(c.Request.Context(), in)
	recordSubmission("partner", err)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, "Partner application submitted successfully", p.Summary())
}

func (h *PartnerHandler) List(c *gin.Context) {
	f := partner.Filter{Status: c.Query("status"), PartnershipType: c.Query("partnershipType")}
	items, meta, err := h.svc.List(c.Request.Context(), f, page(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Page(c, items, meta)
}

func (h *PartnerHandler) Get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "", p)
}

func (h *PartnerHandler) UpdateStatus(c *gin.Context) {
	var in partner.StatusInput
	if !bind(c, &in) {
		return
	}
	p, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Partner application status updated", p)
}

func (h *PartnerHandler) UpdatePartnershipType(c *gin.Context) {
	var in struct {
		PartnershipType string `json:"partnershipType" form:"partnershipType"`
	}
	if !bind(c, &in) {
		return
	}
	p, err := h.svc.UpdatePartnershipType(c.Request.Context(), c.Param("id"), in.PartnershipType)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Partnership type updated", p)
}

func (h *PartnerHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Partner application deleted successfully", nil)
}
