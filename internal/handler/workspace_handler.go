package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"workspace-service/internal/domain"
	"workspace-service/internal/middleware"
	"workspace-service/internal/service"
)

// WorkspaceHandler handles membership lifecycle HTTP requests
type WorkspaceHandler struct {
	leaveService *service.LeaveService
}

// NewWorkspaceHandler creates a new WorkspaceHandler
func NewWorkspaceHandler(leaveService *service.LeaveService) *WorkspaceHandler {
	return &WorkspaceHandler{leaveService: leaveService}
}

// Leave godoc
// @Summary Leave a workspace with role-aware handling
// @Tags Workspaces
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Success 200 {object} domain.LeaveResult
// @Failure 409 {object} ErrorResponse
// @Router /workspaces/{workspaceId}/leave [post]
func (h *WorkspaceHandler) Leave(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		respondValidation(c, err)
		return
	}

	result, err := h.leaveService.Leave(c.Request.Context(), userID, workspaceID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// LeavePreview godoc
// @Summary Preview the consequences of leaving a workspace
// @Tags Workspaces
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Success 200 {object} domain.LeavePreview
// @Failure 404 {object} ErrorResponse
// @Router /workspaces/{workspaceId}/leave/preview [get]
func (h *WorkspaceHandler) LeavePreview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		respondValidation(c, err)
		return
	}

	preview, err := h.leaveService.Preview(c.Request.Context(), userID, workspaceID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, preview)
}

// TransferOwnership godoc
// @Summary Transfer workspace ownership to another member
// @Tags Workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param request body domain.TransferOwnershipRequest true "Transfer ownership request"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /workspaces/{workspaceId}/transfer-ownership [post]
func (h *WorkspaceHandler) TransferOwnership(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		respondValidation(c, err)
		return
	}

	var req domain.TransferOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	if err := h.leaveService.TransferOwnership(c.Request.Context(), userID, workspaceID, req.NewOwnerID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Ownership transferred successfully"})
}

// RemoveMember godoc
// @Summary Remove a member from the workspace
// @Tags Workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workspaceId path string true "Workspace ID"
// @Param userId path string true "User ID to remove"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /workspaces/{workspaceId}/members/{userId} [delete]
func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		respondValidation(c, err)
		return
	}
	targetUserID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		respondValidation(c, err)
		return
	}

	var req domain.RemoveMemberRequest
	// Body is optional; a bare DELETE means no reason given.
	_ = c.ShouldBindJSON(&req)

	if err := h.leaveService.RemoveMember(c.Request.Context(), actorID, workspaceID, targetUserID, req.Reason); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Member removed from workspace"})
}
