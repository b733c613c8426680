package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ProjectStatusConcept       = "concept"
	ProjectStatusPreProduction = "pre-production"
	ProjectStatusProduction    = "production"
	ProjectStatusPaused        = "paused"
	ProjectStatusReleased      = "released"
)

var ProjectStatuses = []string{
	ProjectStatusConcept,
	ProjectStatusPreProduction,
	ProjectStatusProduction,
	ProjectStatusPaused,
	ProjectStatusReleased,
}

func IsProjectStatus(s string) bool {
	for _, v := range ProjectStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`

	Genres         datatypes.JSONSlice[string] `json:"genres"`
	Platforms      datatypes.JSONSlice[string] `json:"platforms"`
	TargetAudience string                      `gorm:"type:text" json:"targetAudience"`
	CoreMechanic   string                      `gorm:"type:text" json:"coreMechanic"`
	ArtStyle       string                      `gorm:"type:text" json:"artStyle"`
	Monetization   string                      `gorm:"type:text" json:"monetization"`

	LegacyGenre    *string `gorm:"column:genre;type:text" json:"-"`
	LegacyPlatform *string `gorm:"column:platform;type:text" json:"-"`

	Status string `gorm:"type:text;not null;default:'concept';check:status IN ('concept','pre-production','production','paused','released')" json:"status"`

	// SourceIdeaID is unique so an idea yields at most one project
	SourceIdeaID      *uuid.UUID         `gorm:"type:uuid;uniqueIndex:uq_project_source_idea" json:"sourceIdea"`
	SuccessPrediction *SuccessPrediction `gorm:"type:jsonb;serializer:json" json:"successPrediction,omitempty"`

	OwnerID uuid.UUID `gorm:"type:uuid;not null;index:ix_project_owner_updated,priority:1" json:"owner"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP;index:ix_project_owner_updated,priority:2" json:"updatedAt"`

	// Project <-> Idea, loaded only by single-project reads
	Idea *Idea `gorm:"foreignKey:SourceIdeaID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"idea,omitempty"`

	// Project <-> User
	Owner *User `gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Project <-> Task
	Tasks []Task `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Project <-> Doc
	Docs []Doc `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

// SuccessPrediction is the last result returned by the success predictor.
type SuccessPrediction struct {
	Probability  float64   `json:"probability"`
	Confidence   string    `json:"confidence"`
	Verdict      string    `json:"verdict"`
	ModelVersion string    `json:"modelVersion"`
	PredictedAt  time.Time `json:"predictedAt"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = ProjectStatusConcept
	}
	p.Normalize()
	return nil
}

func (p *Project) AfterFind(*gorm.DB) error {
	p.Normalize()
	return nil
}

func (p *Project) Normalize() {
	p.Genres = NormalizeList(p.Genres, p.LegacyGenre)
	p.Platforms = NormalizeList(p.Platforms, p.LegacyPlatform)
}
