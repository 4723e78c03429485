package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"workspace-service/internal/domain"
)

// SurveyRepository defines the interface for survey data access. The leave
// flow only reads counts; surveys and responses are never deleted here.
type SurveyRepository interface {
	CountByCreator(ctx context.Context, workspaceID, userID uuid.UUID) (int64, error)
	CountResponsesByRespondent(ctx context.Context, workspaceID, userID uuid.UUID) (int64, error)
}

type surveyRepositoryImpl struct {
	db *gorm.DB
}

// NewSurveyRepository creates a new instance of SurveyRepository
func NewSurveyRepository(db *gorm.DB) SurveyRepository {
	return &surveyRepositoryImpl{db: db}
}

func (r *surveyRepositoryImpl) CountByCreator(ctx context.Context, workspaceID, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Survey{}).
		Where("workspace_id = ? AND created_by = ?", workspaceID, userID).
		Count(&count).Error
	return count, err
}

func (r *surveyRepositoryImpl) CountResponsesByRespondent(ctx context.Context, workspaceID, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.SurveyResponse{}).
		Joins("JOIN surveys ON surveys.id = survey_responses.survey_id").
		Where("surveys.workspace_id = ? AND survey_responses.respondent_id = ?", workspaceID, userID).
		Count(&count).Error
	return count, err
}
