package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventType is the wire name of a dispatchable notification event.
type EventType string

const (
	EventWorkspaceInvite    EventType = "WORKSPACE_INVITE"
	EventSurveyResponse     EventType = "SURVEY_RESPONSE"
	EventAnalysisCompleted  EventType = "ANALYSIS_COMPLETED"
	EventRoleRequest        EventType = "ROLE_REQUEST"
	EventSystemAlert        EventType = "SYSTEM_ALERT"
	EventDeadlineReminder   EventType = "DEADLINE_REMINDER"
	EventRoleChangeApproved EventType = "ROLE_CHANGE_APPROVED"
)

// Action identifiers carried in notification metadata and accepted by the
// action endpoint.
const (
	ActionAcceptInvite       = "accept_workspace_invite"
	ActionRejectInvite       = "reject_workspace_invite"
	ActionApproveRoleRequest = "approve_role_request"
	ActionRejectRoleRequest  = "reject_role_request"
	ActionViewResults        = "view_results"
	ActionViewAnalysis       = "view_analysis"
)

// EventAction is a clickable action attached to a notification.
type EventAction struct {
	ID    string
	Label string
}

// EventConfig declares routing, grouping and delivery behavior for one
// event type. Recipient selection: DirectTarget events go to the payload's
// target user; otherwise recipients are workspace members matching the role
// filters (both filters must match when both are set, empty filters match
// every member except the actor).
type EventConfig struct {
	Type                    NotificationType
	Priority                Priority
	DirectTarget            bool
	RecipientWorkspaceRoles []WorkspaceRole
	RecipientSystemRoles    []SystemRole
	Groupable               bool
	GroupWindow             time.Duration
	MaxGroupSize            int
	RealTime                bool
	RevokeAccess            bool
	ForceRedirect           bool
	PrimaryAction           *EventAction
	SecondaryAction         *EventAction
	URLTemplate             string
}

var eventConfigs = map[EventType]EventConfig{
	EventWorkspaceInvite: {
		Type:            TypeWorkspaceInvite,
		Priority:        PriorityHigh,
		DirectTarget:    true,
		RealTime:        true,
		PrimaryAction:   &EventAction{ID: ActionAcceptInvite, Label: "Accept"},
		SecondaryAction: &EventAction{ID: ActionRejectInvite, Label: "Decline"},
		URLTemplate:     "/workspaces/{workspaceId}/invite",
	},
	EventSurveyResponse: {
		Type:                    TypeSurveyResponse,
		Priority:                PriorityNormal,
		RecipientWorkspaceRoles: []WorkspaceRole{RoleOwner, RoleCollaborator},
		Groupable:               true,
		GroupWindow:             5 * time.Minute,
		MaxGroupSize:            10,
		RealTime:                true,
		PrimaryAction:           &EventAction{ID: ActionViewResults, Label: "View results"},
		URLTemplate:             "/surveys/{surveyId}/results",
	},
	EventAnalysisCompleted: {
		Type:          TypeAnalysisCompleted,
		Priority:      PriorityNormal,
		DirectTarget:  true,
		RealTime:      true,
		PrimaryAction: &EventAction{ID: ActionViewAnalysis, Label: "View analysis"},
		URLTemplate:   "/surveys/{surveyId}/analysis",
	},
	EventRoleRequest: {
		Type:                    TypeRoleRequest,
		Priority:                PriorityHigh,
		RecipientWorkspaceRoles: []WorkspaceRole{RoleOwner},
		RecipientSystemRoles:    []SystemRole{SystemRoleCreator},
		RealTime:                true,
		PrimaryAction:           &EventAction{ID: ActionApproveRoleRequest, Label: "Approve"},
		SecondaryAction:         &EventAction{ID: ActionRejectRoleRequest, Label: "Reject"},
		URLTemplate:             "/workspaces/{workspaceId}/members",
	},
	EventSystemAlert: {
		Type:          TypeSystemAlert,
		Priority:      PriorityCritical,
		DirectTarget:  true,
		RealTime:      true,
		RevokeAccess:  true,
		ForceRedirect: true,
		URLTemplate:   "/dashboard",
	},
	EventDeadlineReminder: {
		Type:         TypeDeadlineReminder,
		Priority:     PriorityHigh,
		DirectTarget: true,
		RealTime:     true,
		URLTemplate:  "/surveys/{surveyId}",
	},
	EventRoleChangeApproved: {
		Type:         TypeRoleChangeApproved,
		Priority:     PriorityNormal,
		DirectTarget: true,
		RealTime:     true,
		URLTemplate:  "/workspaces/{workspaceId}",
	},
}

// ConfigForEvent resolves the declaration for an event type.
func ConfigForEvent(eventType EventType) (EventConfig, error) {
	cfg, ok := eventConfigs[eventType]
	if !ok {
		return EventConfig{}, &UnknownEventTypeError{EventType: eventType}
	}
	return cfg, nil
}

// AllEventTypes returns every declared event type.
func AllEventTypes() []EventType {
	types := make([]EventType, 0, len(eventConfigs))
	for t := range eventConfigs {
		types = append(types, t)
	}
	return types
}

// BuildActionURL substitutes {param} placeholders in a URL template.
// Placeholders without a matching param are left untouched.
func BuildActionURL(template string, params map[string]string) string {
	url := template
	for key, value := range params {
		url = strings.ReplaceAll(url, "{"+key+"}", value)
	}
	return url
}

// DispatchInput is one event handed to the dispatch engine.
type DispatchInput struct {
	EventType    EventType      `json:"eventType" binding:"required"`
	WorkspaceID  *uuid.UUID     `json:"workspaceId,omitempty"`
	TargetUserID *uuid.UUID     `json:"targetUserId,omitempty"`
	ActorID      *uuid.UUID     `json:"actorId,omitempty"`
	SurveyID     *uuid.UUID     `json:"surveyId,omitempty"`
	Title        string         `json:"title" binding:"required"`
	Message      string         `json:"message" binding:"required"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// DispatchResult summarizes what the engine did with one event.
type DispatchResult struct {
	EventType  EventType `json:"eventType"`
	Recipients int       `json:"recipients"`
	Created    int       `json:"created"`
	Buffered   int       `json:"buffered"`
}
