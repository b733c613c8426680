package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Idea struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title   string    `gorm:"type:text" json:"title"`
	Content string    `gorm:"type:text;not null" json:"content"`

	Genres         datatypes.JSONSlice[string] `json:"genres"`
	Platforms      datatypes.JSONSlice[string] `json:"platforms"`
	TargetAudience string                      `gorm:"type:text" json:"targetAudience"`
	CoreMechanic   string                      `gorm:"type:text" json:"coreMechanic"`
	ArtStyle       string                      `gorm:"type:text" json:"artStyle"`
	Monetization   string                      `gorm:"type:text" json:"monetization"`

	// single-valued columns written by older clients, read through NormalizeList
	LegacyGenre    *string `gorm:"column:genre;type:text" json:"-"`
	LegacyPlatform *string `gorm:"column:platform;type:text" json:"-"`

	FeasibilityScore *int                        `json:"feasibilityScore,omitempty"`
	Risks            datatypes.JSONSlice[string] `json:"risks"`

	IsConvertedToProject bool      `gorm:"not null;default:false" json:"isConvertedToProject"`
	CreatedBy            uuid.UUID `gorm:"type:uuid;not null;index:ix_idea_created_by" json:"createdBy"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`

	// Idea <-> User
	Owner *User `gorm:"foreignKey:CreatedBy;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Idea) TableName() string { return "ideas" }

func (i *Idea) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	i.Normalize()
	return nil
}

func (i *Idea) AfterFind(*gorm.DB) error {
	i.Normalize()
	return nil
}

// Normalize folds the legacy scalar columns into the list fields.
func (i *Idea) Normalize() {
	i.Genres = NormalizeList(i.Genres, i.LegacyGenre)
	i.Platforms = NormalizeList(i.Platforms, i.LegacyPlatform)
	if i.Risks == nil {
		i.Risks = []string{}
	}
}
