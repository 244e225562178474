package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/bookcall"
	"github.com/cohortlab/cohortlab/backend/go-services/pkg/response"
)

type BookCallHandler struct {
	svc *bookcall.Service
}

func NewBookCallHandler(svc *bookcall.Service) *BookCallHandler {
	return &BookCallHandler{svc: svc}
}

func (h *BookCallHandler) Register(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	rg.POST("", h.Create)
	rg.GET("/availability/:date", h.Availability)
	rg.GET("", guarded(admin, h.List)...)
	rg.GET("/:id", guarded(admin, h.Get)...)
	rg.PUT("/:id", guarded(admin, h.Update)...)
	rg.DELETE("/:id", guarded(admin, h.Delete)...)
}

func (h *BookCallHandler) Create(c *gin.Context) {
	var in bookcall.CreateInput
	if !bind(c, &in) {
		return
	}
	call, err := h.svc.Create(c.Request.Context(), in)
	recordSubmission("book-call", err)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, "Your call has been scheduled successfully! We will contact you to confirm the appointment.", gin.H{
		"id":                call.ID.Hex(),
		"fullName":          call.FullName,
		"email":             call.Email,
		"preferredDateTime": call.PreferredDateTime,
		"status":            call.Status,
	})
}

// List filters by status and by the UTC day given as date=YYYY-MM-DD.
func (h *BookCallHandler) List(c *gin.Context) {
	f, err := bookcall.ListFilter(c.Query("status"), c.Query("date"))
	if err != nil {
		writeError(c, err)
		return
	}
	items, meta, err := h.svc.List(c.Request.Context(), f, page(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Page(c, items, meta)
}

func (h *BookCallHandler) Get(c *gin.Context) {
	call, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "", call)
}

func (h *BookCallHandler) Update(c *gin.Context) {
	var in bookcall.UpdateInput
	if !bind(c, &in) {
		return
	}
	call, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Book call request updated successfully", call)
}

func (h *BookCallHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Book call request deleted successfully", nil)
}

func (h *BookCallHandler) Availability(c *gin.Context) {
	av, err := h.svc.Availability(c.Request.Context(), c.Param("date"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "", av)
}
