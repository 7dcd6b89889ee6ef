package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/toqaosama/portfolio-backend/normalize"
)

type SkillRow struct {
	ID       uuid.UUID      `json:"id" db:"id" gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title    *string        `json:"title" db:"title" gorm:"column:title;type:text"`
	Category *string        `json:"category" db:"category" gorm:"column:category;type:text"`
	Skills   datatypes.JSON `json:"skills" db:"skills" gorm:"column:skills;type:jsonb"`
	IconName *string        `json:"icon_name" db:"icon_name" gorm:"column:icon_name;type:text"`
	Color    *string        `json:"color" db:"color" gorm:"column:color;type:text"`
}

func (SkillRow) TableName() string { return "skills" }

// SkillCategory groups related skills under one card on the public page.
type SkillCategory struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Category string    `json:"category"`
	Skills   []string  `json:"skills"`
	IconName string    `json:"icon_name"`
	Color    string    `json:"color"`
}

func (r SkillRow) Normalize() SkillCategory {
	return SkillCategory{
		ID:       r.ID,
		Title:    normalize.ToText(r.Title),
		Category: normalize.ToText(r.Category),
		Skills:   stringList(r.Skills),
		IconName: NormalizeSkillIcon(r.IconName),
		Color:    NormalizeSkillColor(r.Color),
	}
}

func (s SkillCategory) Row() SkillRow {
	return SkillRow{
		ID:       s.ID,
		Title:    textPtr(s.Title),
		Category: textPtr(s.Category),
		Skills:   encodeList(s.Skills),
		IconName: textPtr(NormalizeSkillIcon(s.IconName)),
		Color:    textPtr(NormalizeSkillColor(s.Color)),
	}
}

type SkillForm struct {
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Skills   FlexList `json:"skills"`
	IconName string   `json:"icon_name"`
	Color    string   `json:"color"`
}

func (f SkillForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required, validation.Length(1, 200)),
	)
}

func (f SkillForm) SkillCategory() SkillCategory {
	return SkillCategory{
		Title:    f.Title,
		Category: f.Category,
		Skills:   f.Skills.Strings(),
		IconName: NormalizeSkillIcon(f.IconName),
		Color:    NormalizeSkillColor(f.Color),
	}
}
