package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio/api/models"
	"portfolio/api/store"
)

type ContactHandlers struct {
	ContactStore *store.ContactStore
}

func NewContactHandlers(s *store.ContactStore) *ContactHandlers {
	return &ContactHandlers{ContactStore: s}
}

// SendMessage validates and stores a contact-form submission.
func (h *ContactHandlers) SendMessage(c *gin.Context) {
	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Error binding contact message JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	message := &models.ContactMessage{
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		IPAddress: c.ClientIP(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.ContactStore.Insert(ctx, message); err != nil {
		log.Printf("Error inserting contact message: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	// TODO: send an email notification once an SMTP sender is wired up; the
	// EMAIL_* settings are already accepted by the config.
	log.Printf("Contact message received from %s", req.Email)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Thank you %s! Your message has been sent successfully. I'll get back to you soon.", req.Name),
	})
}

// GetMessages lists messages newest-first, optionally unread only (admin use).
func (h *ContactHandlers) GetMessages(c *gin.Context) {
	limit := 50
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit' parameter. Must be a positive integer."})
			return
		}
		limit = parsed
	}

	unreadOnly := false
	if unreadParam := c.Query("unread_only"); unreadParam != "" {
		parsed, err := strconv.ParseBool(unreadParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'unread_only' parameter. Must be true or false."})
			return
		}
		unreadOnly = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	messages, err := h.ContactStore.List(ctx, limit, unreadOnly)
	if err != nil {
		log.Printf("Error listing contact messages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// MarkMessageRead flips a message to read. Marking twice succeeds both times;
// is_read is never reverted.
func (h *ContactHandlers) MarkMessageRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.ContactStore.MarkRead(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		log.Printf("Error marking message %d as read: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Message marked as read"})
}

// GetStats returns total, unread and last-30-days message counts.
func (h *ContactHandlers) GetStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	total, err := h.ContactStore.Count(ctx)
	if err != nil {
		log.Printf("Error counting contact messages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get contact stats"})
		return
	}

	unread, err := h.ContactStore.CountUnread(ctx)
	if err != nil {
		log.Printf("Error counting unread messages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get contact stats"})
		return
	}

	thirtyDaysAgo := time.Now().UTC().Add(-30 * 24 * time.Hour)
	recent, err := h.ContactStore.CountSince(ctx, thirtyDaysAgo)
	if err != nil {
		log.Printf("Error counting recent messages: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get contact stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_messages":  total,
		"unread_messages": unread,
		"recent_messages": recent,
		"last_updated":    time.Now().UTC().Format(time.RFC3339),
	})
}
