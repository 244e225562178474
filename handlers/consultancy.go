package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/consultancy"
	"github.com/cohortlab/cohortlab/backend/go-services/pkg/response"
)

type ConsultancyHandler struct {
	svc *consultancy.Service
}

func NewConsultancyHandler(svc *consultancy.Service) *ConsultancyHandler {
	return &ConsultancyHandler{svc: svc}
}

func (h *ConsultancyHandler) Register(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	rg.POST("", h.Create)
	rg.GET("", guarded(admin, h.List)...)
	rg.GET("/:id", guarded(admin, h.Get)...)
	rg.PUT("/:id", guarded(admin, h.Update)...)
	rg.DELETE("/:id", guarded(admin, h.Delete)...)
}

func (h *ConsultancyHandler) Create(c *gin.Context) {
	var in consultancy.CreateInput
	if !bind(c, &in) {
		return
	}
	r, err := h.svc.Create(c.Request.Context(), in)
	recordSubmission("consultancy", err)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, "Your consultation request has been submitted successfully! We will get back to you within 24 hours.", gin.H{
		"id":              r.ID.Hex(),
		"fullName":        r.FullName,
		"email":           r.Email,
		"serviceInterest": r.ServiceInterest,
		"submittedDate":   r.SubmittedDate,
	})
}

func (h *ConsultancyHandler) List(c *gin.Context) {
	items, meta, err := h.svc.List(c.Request.Context(), consultancy.Filter{Status: c.Query("status")}, page(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Page(c, items, meta)
}

func (h *ConsultancyHandler) Get(c *gin.Context) {
	r, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "", r)
}

func (h *ConsultancyHandler) Update(c *gin.Context) {
	var in consultancy.UpdateInput
	if !bind(c, &in) {
		return
	}
	r, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Consultancy request updated successfully", r)
}

func (h *ConsultancyHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Consultancy request deleted successfully", nil)
}
