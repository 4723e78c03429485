package domain

import (
	"time"

	"github.com/google/uuid"
)

// Survey represents an artifact attributable to a workspace.
// CreatedBy and WorkspaceID are sticky: they are never reassigned when the
// creator leaves the workspace, so team data survives departures.
type Survey struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"surveyId"`
	Title       string     `gorm:"not null" json:"title"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null;index" json:"createdBy"`
	WorkspaceID *uuid.UUID `gorm:"type:uuid;index" json:"workspaceId,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updatedAt"`

	// Relations
	Creator   *User      `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Workspace *Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
}

// TableName specifies the table name for Survey
func (Survey) TableName() string {
	return "surveys"
}

// SurveyResponse represents a respondent's submission.
// Responses are preserved indefinitely so research samples stay intact even
// after the respondent leaves the workspace.
type SurveyResponse struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"responseId"`
	SurveyID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"surveyId"`
	RespondentID *uuid.UUID `gorm:"type:uuid;index" json:"respondentId,omitempty"`
	SubmittedAt  time.Time  `gorm:"not null" json:"submittedAt"`

	// Relations
	Survey *Survey `gorm:"foreignKey:SurveyID" json:"survey,omitempty"`
}

// TableName specifies the table name for SurveyResponse
func (SurveyResponse) TableName() string {
	return "survey_responses"
}
