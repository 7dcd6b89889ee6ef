package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/toqaosama/portfolio-backend/normalize"
)

// ProjectRow is a projects row as the store holds it. Every column except
// the id may be null or hold an unexpected shape.
type ProjectRow struct {
	ID           uuid.UUID      `json:"id" db:"id" gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title        *string        `json:"title" db:"title" gorm:"column:title;type:text"`
	Description  *string        `json:"description" db:"description" gorm:"column:description;type:text"`
	Technologies datatypes.JSON `json:"technologies" db:"technologies" gorm:"column:technologies;type:jsonb"`
	Images       datatypes.JSON `json:"images" db:"images" gorm:"column:images;type:jsonb"`
	LiveURL      *string        `json:"live_url" db:"live_url" gorm:"column:live_url;type:text"`
	Featured     *bool          `json:"featured" db:"featured" gorm:"column:featured;default:false"`
	Category     *string        `json:"category" db:"category" gorm:"column:category;type:text"`
	CreatedAt    *time.Time     `json:"created_at" db:"created_at" gorm:"column:created_at;type:timestamptz;default:now()"`
}

func (ProjectRow) TableName() string { return "projects" }

// Project is the canonical, fully normalized project record.
type Project struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Technologies []string   `json:"technologies"`
	Images       []string   `json:"images"`
	LiveURL      string     `json:"live_url,omitempty"`
	Featured     bool       `json:"featured"`
	Category     string     `json:"category"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

func (r ProjectRow) Normalize() Project {
	return Project{
		ID:           r.ID,
		Title:        normalize.ToText(r.Title),
		Description:  normalize.ToText(r.Description),
		Technologies: stringList(r.Technologies),
		Images:       stringList(r.Images),
		LiveURL:      normalize.ToLink(r.LiveURL),
		Featured:     normalize.ToFlag(r.Featured),
		Category:     NormalizeProjectCategory(r.Category),
		CreatedAt:    r.CreatedAt,
	}
}

// Row returns the declared column set for an insert or update.
func (p Project) Row() ProjectRow {
	return ProjectRow{
		ID:           p.ID,
		Title:        textPtr(p.Title),
		Description:  textPtr(p.Description),
		Technologies: encodeList(p.Technologies),
		Images:       encodeList(p.Images),
		LiveURL:      optionalText(normalize.ToLink(p.LiveURL)),
		Featured:     boolPtr(p.Featured),
		Category:     textPtr(NormalizeProjectCategory(p.Category)),
		CreatedAt:    p.CreatedAt,
	}
}

// Cover returns the first image, or the shared placeholder.
func (p Project) Cover() string {
	if len(p.Images) > 0 && p.Images[0] != "" {
		return p.Images[0]
	}
	return PlaceholderImage
}

// Gallery returns the carousel entries; a project without images shows the
// placeholder as its only entry.
func (p Project) Gallery() []string {
	if len(p.Images) == 0 {
		return []string{PlaceholderImage}
	}
	return p.Images
}

// ProjectForm is the admin payload for creating or replacing a project.
type ProjectForm struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies FlexList `json:"technologies"`
	Images       FlexList `json:"images"`
	LiveURL      string   `json:"live_url"`
	Featured     bool     `json:"featured"`
	Category     string   `json:"category"`
}

func (f ProjectForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&f.LiveURL, validation.When(normalize.ToLink(f.LiveURL) != "", is.URL)),
	)
}

func (f ProjectForm) Project() Project {
	return Project{
		Title:        f.Title,
		Description:  f.Description,
		Technologies: f.Technologies.Strings(),
		Images:       f.Images.Strings(),
		LiveURL:      normalize.ToLink(f.LiveURL),
		Featured:     f.Featured,
		Category:     NormalizeProjectCategory(f.Category),
	}
}
