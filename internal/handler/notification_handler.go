package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"workspace-service/internal/domain"
	"workspace-service/internal/middleware"
	"workspace-service/internal/service"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notificationService *service.NotificationService
	dispatchService     *service.DispatchService
	actionService       *service.ActionService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(
	notificationService *service.NotificationService,
	dispatchService *service.DispatchService,
	actionService *service.ActionService,
) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		dispatchService:     dispatchService,
		actionService:       actionService,
	}
}

// Dispatch godoc
// @Summary Dispatch a notification event
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.DispatchInput true "Event to dispatch"
// @Success 202 {object} domain.DispatchResult
// @Failure 400 {object} ErrorResponse
// @Router /notifications/dispatch [post]
func (h *NotificationHandler) Dispatch(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var input domain.DispatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidation(c, err)
		return
	}
	if input.ActorID == nil {
		input.ActorID = &userID
	}

	result, err := h.dispatchService.Dispatch(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, result)
}

// List godoc
// @Summary List the caller's notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param type query string false "Filter by notification type"
// @Param unreadOnly query bool false "Only unread notifications"
// @Param includeArchived query bool false "Include archived notifications"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} domain.PaginatedNotifications
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	filter := domain.NotificationFilter{
		UnreadOnly:      c.Query("unreadOnly") == "true",
		IncludeArchived: c.Query("includeArchived") == "true",
	}
	if t := c.Query("type"); t != "" {
		notifType := domain.NotificationType(t)
		filter.Type = &notifType
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.notificationService.List(c.Request.Context(), userID, filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UnreadCount godoc
// @Summary Get the caller's unread notification count
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int64
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	count, err := h.notificationService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkAsRead godoc
// @Summary Mark one notification as read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param notificationId path string true "Notification ID"
// @Success 200 {object} domain.Notification
// @Failure 404 {object} ErrorResponse
// @Router /notifications/{notificationId}/read [put]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	notificationID, err := uuid.Parse(c.Param("notificationId"))
	if err != nil {
		respondValidation(c, err)
		return
	}

	notification, err := h.notificationService.MarkAsRead(c.Request.Context(), notificationID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notification)
}

// MarkAllAsRead godoc
// @Summary Mark all of the caller's notifications as read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int64
// @Router /notifications/read-all [put]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	count, err := h.notificationService.MarkAllAsRead(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": count})
}

// Archive godoc
// @Summary Archive a notification
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param notificationId path string true "Notification ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /notifications/{notificationId}/archive [put]
func (h *NotificationHandler) Archive(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	notificationID, err := uuid.Parse(c.Param("notificationId"))
	if err != nil {
		respondValidation(c, err)
		return
	}

	if err := h.notificationService.Archive(c.Request.Context(), notificationID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Notification archived"})
}

// HandleAction godoc
// @Summary Execute an interactive notification action
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param notificationId path string true "Notification ID"
// @Param request body domain.ActionRequest true "Action to perform"
// @Success 200 {object} domain.ActionResult
// @Failure 400 {object} ErrorResponse
// @Router /notifications/{notificationId}/action [post]
func (h *NotificationHandler) HandleAction(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	notificationID, err := uuid.Parse(c.Param("notificationId"))
	if err != nil {
		respondValidation(c, err)
		return
	}

	var req domain.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	result, err := h.actionService.HandleAction(c.Request.Context(), notificationID, userID, req.Action)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
