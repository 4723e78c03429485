package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"workspace-service/internal/domain"
)

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error      ErrorDetail                      `json:"error"`
	Successors []domain.WorkspaceMemberResponse `json:"successors,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// respondError maps domain errors to HTTP status codes. Ownership conflicts
// carry the eligible successor list so clients can offer a transfer dialog.
func respondError(c *gin.Context, err error) {
	var (
		notMember       *domain.NotMemberError
		transferNeeded  *domain.OwnershipTransferRequiredError
		noSuccessor     *domain.NoSuccessorError
		notOwner        *domain.NotWorkspaceOwnerError
		cannotRemove    *domain.CannotRemoveOwnerError
		unknownEvent    *domain.UnknownEventTypeError
		notifNotFound   *domain.NotificationNotFoundError
		unauthorized    *domain.UnauthorizedActionError
		badAction       *domain.UnsupportedActionForTypeError
		unknownScenario *domain.UnknownScenarioError
	)

	switch {
	case errors.As(err, &notMember):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: ErrorDetail{Code: "NOT_MEMBER", Message: err.Error()},
		})
	case errors.As(err, &transferNeeded):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:      ErrorDetail{Code: "OWNERSHIP_TRANSFER_REQUIRED", Message: err.Error()},
			Successors: transferNeeded.Successors,
		})
	case errors.As(err, &noSuccessor):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: ErrorDetail{Code: "NO_SUCCESSOR", Message: err.Error()},
		})
	case errors.As(err, &notOwner):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error: ErrorDetail{Code: "NOT_OWNER", Message: err.Error()},
		})
	case errors.As(err, &cannotRemove):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error: ErrorDetail{Code: "CANNOT_REMOVE_OWNER", Message: err.Error()},
		})
	case errors.As(err, &unknownEvent):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{Code: "UNKNOWN_EVENT_TYPE", Message: err.Error()},
		})
	case errors.As(err, &notifNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: ErrorDetail{Code: "NOTIFICATION_NOT_FOUND", Message: err.Error()},
		})
	case errors.As(err, &unauthorized):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error: ErrorDetail{Code: "FORBIDDEN", Message: err.Error()},
		})
	case errors.As(err, &badAction):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{Code: "UNSUPPORTED_ACTION", Message: err.Error()},
		})
	case errors.As(err, &unknownScenario):
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: "UNKNOWN_SCENARIO", Message: err.Error()},
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: "INTERNAL_ERROR", Message: err.Error()},
		})
	}
}

func respondUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Error: ErrorDetail{Code: "UNAUTHORIZED", Message: "User not authenticated"},
	})
}

func respondValidation(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{Code: "VALIDATION_ERROR", Message: err.Error()},
	})
}
