package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// NotMemberError indicates the user has no membership in the workspace.
type NotMemberError struct {
	UserID      uuid.UUID
	WorkspaceID uuid.UUID
}

func (e *NotMemberError) Error() string {
	return fmt.Sprintf("user %s is not a member of workspace %s", e.UserID, e.WorkspaceID)
}

// OwnershipTransferRequiredError blocks a sole owner from leaving before
// transferring ownership. Successors lists members eligible to take over;
// it is empty when the workspace has no collaborator to promote, in which
// case the workspace must gain a collaborator (or be deleted) first.
type OwnershipTransferRequiredError struct {
	WorkspaceID uuid.UUID
	Successors  []WorkspaceMemberResponse
}

func (e *OwnershipTransferRequiredError) Error() string {
	if len(e.Successors) == 0 {
		return fmt.Sprintf("cannot leave workspace %s: you are the only owner and no collaborator is available to take over", e.WorkspaceID)
	}
	return fmt.Sprintf("cannot leave workspace %s: you are the only owner, transfer ownership first (%d eligible successors)", e.WorkspaceID, len(e.Successors))
}

// NoSuccessorError indicates an admin sole owner leaving a workspace that has
// no collaborator to auto-promote.
type NoSuccessorError struct {
	WorkspaceID uuid.UUID
}

func (e *NoSuccessorError) Error() string {
	return fmt.Sprintf("cannot leave workspace %s: no collaborator available to promote to owner", e.WorkspaceID)
}

// CannotRemoveOwnerError indicates an attempt to kick a workspace owner.
// Owners must transfer or give up ownership before they can be removed.
type CannotRemoveOwnerError struct {
	UserID      uuid.UUID
	WorkspaceID uuid.UUID
}

func (e *CannotRemoveOwnerError) Error() string {
	return fmt.Sprintf("cannot remove user %s from workspace %s: owners cannot be removed", e.UserID, e.WorkspaceID)
}

// NotWorkspaceOwnerError indicates the caller does not hold the owner role.
type NotWorkspaceOwnerError struct {
	UserID      uuid.UUID
	WorkspaceID uuid.UUID
}

func (e *NotWorkspaceOwnerError) Error() string {
	return fmt.Sprintf("user %s is not an owner of workspace %s", e.UserID, e.WorkspaceID)
}

// UnknownScenarioError indicates a (systemRole, workspaceRole) pair missing
// from the leave matrix. This is a programming error, never a user error.
type UnknownScenarioError struct {
	Scenario ScenarioKey
}

func (e *UnknownScenarioError) Error() string {
	return fmt.Sprintf("unknown leave scenario %q", e.Scenario.String())
}

// UnknownEventTypeError indicates an event type missing from the event table.
type UnknownEventTypeError struct {
	EventType EventType
}

func (e *UnknownEventTypeError) Error() string {
	return fmt.Sprintf("unknown notification event type %q", e.EventType)
}

// NotificationNotFoundError indicates the notification does not exist or is
// not owned by the requesting user.
type NotificationNotFoundError struct {
	NotificationID uuid.UUID
}

func (e *NotificationNotFoundError) Error() string {
	return fmt.Sprintf("notification %s not found", e.NotificationID)
}

// UnauthorizedActionError indicates a user acting on a notification addressed
// to somebody else.
type UnauthorizedActionError struct {
	NotificationID uuid.UUID
	UserID         uuid.UUID
}

func (e *UnauthorizedActionError) Error() string {
	return fmt.Sprintf("user %s is not authorized to act on notification %s", e.UserID, e.NotificationID)
}

// UnsupportedActionForTypeError indicates a (type, action) pair the action
// dispatcher has no handler for.
type UnsupportedActionForTypeError struct {
	Type   NotificationType
	Action string
}

func (e *UnsupportedActionForTypeError) Error() string {
	return fmt.Sprintf("action %q is not supported for notification type %q", e.Action, e.Type)
}
