package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEventConfigsAreWellFormed(t *testing.T) {
	for _, eventType := range AllEventTypes() {
		cfg, err := ConfigForEvent(eventType)
		assert.NoError(t, err)
		assert.NotEmpty(t, cfg.Type, "event %s", eventType)
		assert.NotEmpty(t, cfg.Priority, "event %s", eventType)
		assert.NotEmpty(t, cfg.URLTemplate, "event %s", eventType)

		if cfg.Groupable {
			assert.Greater(t, cfg.GroupWindow.Seconds(), 0.0, "event %s", eventType)
			assert.Greater(t, cfg.MaxGroupSize, 1, "event %s", eventType)
		}
		if cfg.DirectTarget {
			assert.Empty(t, cfg.RecipientWorkspaceRoles, "event %s", eventType)
			assert.Empty(t, cfg.RecipientSystemRoles, "event %s", eventType)
		} else {
			assert.NotEmpty(t, cfg.RecipientWorkspaceRoles, "event %s", eventType)
		}
	}
}

func TestEventTableCoversEveryNotificationType(t *testing.T) {
	seen := map[NotificationType]bool{}
	for _, eventType := range AllEventTypes() {
		cfg, _ := ConfigForEvent(eventType)
		seen[cfg.Type] = true
	}

	for _, notifType := range []NotificationType{
		TypeWorkspaceInvite, TypeSurveyResponse, TypeAnalysisCompleted,
		TypeRoleRequest, TypeSystemAlert, TypeDeadlineReminder, TypeRoleChangeApproved,
	} {
		assert.True(t, seen[notifType], "no event declares notification type %s", notifType)
	}
}

func TestOnlySurveyResponseGrouped(t *testing.T) {
	for _, eventType := range AllEventTypes() {
		cfg, _ := ConfigForEvent(eventType)
		assert.Equal(t, eventType == EventSurveyResponse, cfg.Groupable, "event %s", eventType)
	}
}

func TestOnlySystemAlertRevokesAccess(t *testing.T) {
	for _, eventType := range AllEventTypes() {
		cfg, _ := ConfigForEvent(eventType)
		assert.Equal(t, eventType == EventSystemAlert, cfg.RevokeAccess, "event %s", eventType)
		assert.Equal(t, eventType == EventSystemAlert, cfg.ForceRedirect, "event %s", eventType)
	}
}

func TestConfigForUnknownEvent(t *testing.T) {
	_, err := ConfigForEvent("PASSWORD_RESET")

	var unknown *UnknownEventTypeError
	assert.ErrorAs(t, err, &unknown)
}

func TestBuildActionURL(t *testing.T) {
	workspaceID := uuid.New()
	surveyID := uuid.New()

	url := BuildActionURL("/workspaces/{workspaceId}/surveys/{surveyId}", map[string]string{
		"workspaceId": workspaceID.String(),
		"surveyId":    surveyID.String(),
	})

	assert.Equal(t, "/workspaces/"+workspaceID.String()+"/surveys/"+surveyID.String(), url)
}

func TestBuildActionURLLeavesUnmatchedPlaceholders(t *testing.T) {
	url := BuildActionURL("/surveys/{surveyId}/results", map[string]string{
		"workspaceId": uuid.New().String(),
	})

	assert.Equal(t, "/surveys/{surveyId}/results", url)
}
