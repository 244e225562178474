package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cohortlab/cohortlab/backend/go-services/internal/newsletter"
	"github.com/cohortlab/cohortlab/backend/go-services/pkg/response"
)

type NewsletterHandler struct {
	svc *newsletter.Service
}

func NewNewsletterHandler(svc *newsletter.Service) *NewsletterHandler {
	return &NewsletterHandler{svc: svc}
}

// Register mounts the newsletter routes; admin guards the subscriber listing.
func (h *NewsletterHandler) Register(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	rg.POST("/subscribe", h.Subscribe)
	rg.POST("/unsubscribe", h.Unsubscribe)
	rg.PUT("/preferences", h.UpdatePreferences)
	rg.GET("/stats", h.Stats)
	rg.GET("/subscribers", guarded(admin, h.ListSubscribers)...)
	rg.GET("/subscribers/:id", guarded(admin, h.GetSubscriber)...)
}

type subscriberView struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	SubscriptionDate time.Time `json:"subscriptionDate"`
	Source           string    `json:"source,omitempty"`
}

func viewOf(s *newsletter.Subscriber) subscriberView {
	return subscriberView{ID: s.ID.Hex(), Name: s.Name, Email: s.Email, SubscriptionDate: s.SubscriptionDate, Source: s.Source}
}

func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var in newsletter.SubscribeInput
	if !bind(c, &in) {
		return
	}
	in.Metadata = newsletter.Metadata{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
	}

	res, err := h.svc.Subscribe(c.Request.Context(), in)
	if err != nil {
		recordSubmission("newsletter", err)
		writeError(c, err)
		return
	}
	if res.Reactivated {
		recordSubmissionOutcome("newsletter", "reactivated")
		response.OK(c, "Welcome back! Your newsletter subscription has been reactivated.", gin.H{
			"subscriber":  viewOf(res.Subscriber),
			"reactivated": true,
		})
		return
	}
	recordSubmission("newsletter", nil)
	response.Created(c, "Successfully subscribed to newsletter!", gin.H{"subscriber": viewOf(res.Subscriber)})
}

func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var in struct {
		Email string `json:"email" form:"email"`
	}
	if !bind(c, &in) {
		return
	}
	if err := h.svc.Unsubscribe(c.Request.Context(), in.Email); err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Successfully unsubscribed from newsletter", nil)
}

func (h *NewsletterHandler) UpdatePreferences(c *gin.Context) {
	var in newsletter.PreferencesInput
	if !bind(c, &in) {
		return
	}
	sub, err := h.svc.UpdatePreferences(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "Newsletter preferences updated", gin.H{"preferences": sub.Preferences})
}

func (h *NewsletterHandler) Stats(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.OK(c, "", st)
}

func (h *NewsletterHandler) ListSubscribers(c *gin.Context) {
	items, meta, err := h.svc.ListSubscribers(c.Request.Context(), page(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Page(c, items, meta)
}

func (h *NewsletterHandler) GetSubscriber(c *gin.Context) {
	sub, err := h.svc.GetSubscriber(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Send(c, http.StatusOK, response.Envelope{Data: sub})
}
