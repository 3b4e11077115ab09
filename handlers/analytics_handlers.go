package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"portfolio/api/models"
	"portfolio/api/services"
	"portfolio/api/store"
)

type AnalyticsHandlers struct {
	VisitorStore *store.VisitorStore
	Firebase     *services.FirebaseService
}

func NewAnalyticsHandlers(s *store.VisitorStore, firebase *services.FirebaseService) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		VisitorStore: s,
		Firebase:     firebase,
	}
}

// TrackVisitor records a visit locally and forwards an equivalent event to
// Firebase. The Firebase copy is best-effort: its failure never fails the
// request.
func (h *AnalyticsHandlers) TrackVisitor(c *gin.Context) {
	var req models.TrackVisitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Error binding track-visitor JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// First X-Forwarded-For entry when present, transport peer otherwise.
	clientIP := c.ClientIP()

	visitor := &models.Visitor{
		IPAddress:       clientIP,
		UserAgent:       req.UserAgent,
		Country:         req.Country,
		City:            req.City,
		Referrer:        req.Referrer,
		SessionDuration: 0,
		PagesVisited:    1,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.VisitorStore.Insert(ctx, visitor); err != nil {
		log.Printf("Error inserting visitor: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to track visitor"})
		return
	}

	event := map[string]interface{}{
		"event_id":   uuid.New().String(),
		"ip_address": clientIP,
		"user_agent": req.UserAgent,
		"country":    req.Country,
		"city":       req.City,
		"referrer":   req.Referrer,
		"timestamp":  visitor.Timestamp.Format(time.RFC3339),
	}

	go func() {
		fbCtx, fbCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer fbCancel()
		if err := h.Firebase.TrackVisitor(fbCtx, event); err != nil {
			log.Printf("Warning: failed to forward visitor event to Firebase: %v", err)
		}
	}()

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Visitor tracked successfully"})
}

// GetStats merges local visitor aggregates with whatever the Firebase
// analytics subtree currently holds.
func (h *AnalyticsHandlers) GetStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	totalVisitors, err := h.VisitorStore.Count(ctx)
	if err != nil {
		log.Printf("Error counting visitors: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get analytics"})
		return
	}

	thirtyDaysAgo := time.Now().UTC().Add(-30 * 24 * time.Hour)
	recentVisitors, err := h.VisitorStore.CountSince(ctx, thirtyDaysAgo)
	if err != nil {
		log.Printf("Error counting recent visitors: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get analytics"})
		return
	}

	topCountries, err := h.VisitorStore.TopCountries(ctx, 10)
	if err != nil {
		log.Printf("Error aggregating top countries: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get analytics"})
		return
	}

	firebaseStats, err := h.Firebase.GetAnalytics(ctx)
	if err != nil {
		log.Printf("Warning: failed to fetch Firebase analytics: %v", err)
		firebaseStats = map[string]interface{}{}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_visitors":  totalVisitors,
		"recent_visitors": recentVisitors,
		"top_countries":   topCountries,
		"firebase_stats":  firebaseStats,
		"last_updated":    time.Now().UTC().Format(time.RFC3339),
	})
}

// TrackPageView bumps the per-page counter in Firebase only; nothing is
// persisted locally.
func (h *AnalyticsHandlers) TrackPageView(c *gin.Context) {
	page := c.Query("page")
	if page == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page query parameter is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.Firebase.UpdatePageView(ctx, page); err != nil {
		log.Printf("Error tracking page view for %q: %v", page, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to track page view"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Page view tracked"})
}

// GetVisitors returns the most recent visitors, newest first (admin use).
func (h *AnalyticsHandlers) GetVisitors(c *gin.Context) {
	limit := 50
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'limit' parameter. Must be a positive integer."})
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	visitors, err := h.VisitorStore.ListRecent(ctx, limit)
	if err != nil {
		log.Printf("Error listing visitors: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get visitors"})
		return
	}

	c.JSON(http.StatusOK, visitors)
}
