package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/toqaosama/portfolio-backend/normalize"
)

type ExperienceRow struct {
	ID           uuid.UUID      `json:"id" db:"id" gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title        *string        `json:"title" db:"title" gorm:"column:title;type:text"`
	Company      *string        `json:"company" db:"company" gorm:"column:company;type:text"`
	Period       *string        `json:"period" db:"period" gorm:"column:period;type:text"`
	Location     *string        `json:"location" db:"location" gorm:"column:location;type:text"`
	Type         *string        `json:"type" db:"type" gorm:"column:type;type:text"`
	Description  *string        `json:"description" db:"description" gorm:"column:description;type:text"`
	Technologies datatypes.JSON `json:"technologies" db:"technologies" gorm:"column:technologies;type:jsonb"`
	Link         *string        `json:"link" db:"link" gorm:"column:link;type:text"`
}

func (ExperienceRow) TableName() string { return "experiences" }

// Experience is one position on the timeline. Period is display text, not a
// parsed date range.
type Experience struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Period       string    `json:"period"`
	Location     string    `json:"location"`
	Type         string    `json:"type"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	Link         string    `json:"link,omitempty"`
}

func (r ExperienceRow) Normalize() Experience {
	return Experience{
		ID:           r.ID,
		Title:        normalize.ToText(r.Title),
		Company:      normalize.ToText(r.Company),
		Period:       normalize.ToText(r.Period),
		Location:     normalize.ToText(r.Location),
		Type:         NormalizeExperienceType(r.Type),
		Description:  normalize.ToText(r.Description),
		Technologies: stringList(r.Technologies),
		Link:         normalize.ToLink(r.Link),
	}
}

func (e Experience) Row() ExperienceRow {
	return ExperienceRow{
		ID:           e.ID,
		Title:        textPtr(e.Title),
		Company:      textPtr(e.Company),
		Period:       textPtr(e.Period),
		Location:     textPtr(e.Location),
		Type:         textPtr(NormalizeExperienceType(e.Type)),
		Description:  textPtr(e.Description),
		Technologies: encodeList(e.Technologies),
		Link:         optionalText(normalize.ToLink(e.Link)),
	}
}

type ExperienceForm struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Period       string   `json:"period"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Description  string   `json:"description"`
	Technologies FlexList `json:"technologies"`
	Link         string   `json:"link"`
}

func (f ExperienceForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&f.Company, validation.Required),
		validation.Field(&f.Period, validation.Required),
		validation.Field(&f.Link, validation.When(normalize.ToLink(f.Link) != "", is.URL)),
	)
}

func (f ExperienceForm) Experience() Experience {
	return Experience{
		Title:        f.Title,
		Company:      f.Company,
		Period:       f.Period,
		Location:     f.Location,
		Type:         NormalizeExperienceType(f.Type),
		Description:  f.Description,
		Technologies: f.Technologies.Strings(),
		Link:         normalize.ToLink(f.Link),
	}
}
