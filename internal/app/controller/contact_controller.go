package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopworks/storefront-backend/internal/app/service"
	apperrors "github.com/shopworks/storefront-backend/internal/errors"
	"github.com/shopworks/storefront-backend/internal/middleware"
)

type ContactController struct {
	contactService service.ContactService
}

func NewContactController(contactService service.ContactService) *ContactController {
	return &ContactController{
		contactService: contactService,
	}
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// SubmitContact accepts a contact form submission. Success means the
// message was validated and stored; notification delivery is best-effort.
// POST /api/v1/contact
func (ctrl *ContactController) SubmitContact(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid contact request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithValidationError(c, map[string]string{
			"form": "All fields are required and the email must be valid",
		})
		return
	}

	message, err := ctrl.contactService.SubmitMessage(service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		if errors.Is(err, service.ErrContactFieldsMissing) {
			apperrors.BadRequest(c, apperrors.ValidationRequired, "All fields are required")
			return
		}
		if errors.Is(err, service.ErrContactInvalidEmail) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid email address")
			return
		}
		log.Error("Failed to submit contact message", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "submit contact")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Thanks for reaching out. We will get back to you soon",
		"id":      message.ID,
	})
}

// ListMessages returns stored contact messages, newest first (admin only)
// GET /api/v1/contact/messages
func (ctrl *ContactController) ListMessages(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	limit := 50
	offset := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}

	messages, err := ctrl.contactService.ListMessages(limit, offset)
	if err != nil {
		log.Error("Failed to list contact messages", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list contact messages")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"count":    len(messages),
	})
}

// MarkMessageRead flags a contact message as handled (admin only)
// PUT /api/v1/contact/messages/:id/read
func (ctrl *ContactController) MarkMessageRead(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid message ID")
		return
	}

	message, err := ctrl.contactService.MarkMessageRead(uint(messageID))
	if err != nil {
		if errors.Is(err, service.ErrContactMessageNotFound) {
			apperrors.NotFound(c, apperrors.ContactMessageNotFound, "Contact message not found")
			return
		}
		log.Error("Failed to mark contact message read", err, map[string]interface{}{
			"message_id": messageID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "mark contact message read")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
