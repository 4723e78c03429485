package domain

import "github.com/google/uuid"

// LeaveResult is returned to the client after a completed leave.
type LeaveResult struct {
	Success        bool       `json:"success"`
	Message        string     `json:"message"`
	DataIntegrity  string     `json:"dataIntegrity"`
	AccessChanges  string     `json:"accessChanges"`
	NextAction     string     `json:"nextAction"`
	PromotedUserID *uuid.UUID `json:"promotedUserId,omitempty"`
}

// DataImpact carries the live counts shown in a leave preview.
type DataImpact struct {
	SurveysCreated int64 `json:"surveysCreated"`
	ResponsesGiven int64 `json:"responsesGiven"`
}

// LeavePreview describes what would happen if the user left right now,
// without mutating anything.
type LeavePreview struct {
	Scenario      string        `json:"scenario"`
	SystemRole    SystemRole    `json:"systemRole"`
	WorkspaceRole WorkspaceRole `json:"workspaceRole"`
	DataImpact    DataImpact    `json:"dataImpact"`
	DataIntegrity string        `json:"dataIntegrity"`
	AccessChanges string        `json:"accessChanges"`
	CanLeave      bool          `json:"canLeave"`
	Warning       string        `json:"warning,omitempty"`
}
