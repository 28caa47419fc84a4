package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InterviewReport struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Topic           string         `gorm:"type:text;not null"`
	QuestionStyle   string         `gorm:"type:varchar(32);not null"`
	Steps           int            `gorm:"not null"`
	Transcript      datatypes.JSON `gorm:"type:jsonb"`
	Feedback        datatypes.JSON `gorm:"type:jsonb"`
	FinalEvaluation datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (InterviewReport) TableName() string {
	return "interview_reports"
}
