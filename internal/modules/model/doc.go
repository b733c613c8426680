package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DocTypeGDD         = "GDD"
	DocTypeDesignNotes = "Design Notes"
	DocTypeTechNotes   = "Tech Notes"
	DocTypeAIOutput    = "AI Output"
)

func IsDocType(s string) bool {
	switch s {
	case DocTypeGDD, DocTypeDesignNotes, DocTypeTechNotes, DocTypeAIOutput:
		return true
	}
	return false
}

type Doc struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:ix_doc_project_id" json:"project"`

	Type          string `gorm:"type:text;not null;check:type IN ('GDD','Design Notes','Tech Notes','AI Output')" json:"type"`
	Title         string `gorm:"type:text" json:"title"`
	Content       string `gorm:"type:text" json:"content"`
	GeneratedByAI bool   `gorm:"not null;default:false" json:"generatedByAI"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`

	// Doc <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Doc) TableName() string { return "docs" }

func (d *Doc) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
