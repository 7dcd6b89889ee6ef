package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestProjectRowNormalize(t *testing.T) {
	t.Run("garbage columns", func(t *testing.T) {
		row := ProjectRow{
			Technologies: datatypes.JSON(`"React"`),
			Images:       datatypes.JSON(`{"0":"a.png"}`),
			Category:     textPtr("Photography"),
			LiveURL:      textPtr("null"),
		}
		p := row.Normalize()

		assert.Equal(t, []string{}, p.Technologies)
		assert.Equal(t, []string{}, p.Images)
		assert.Equal(t, DefaultProjectCategory, p.Category)
		assert.Empty(t, p.LiveURL)
		assert.False(t, p.Featured)
		assert.Equal(t, PlaceholderImage, p.Cover())
		assert.Equal(t, []string{PlaceholderImage}, p.Gallery())
	})

	t.Run("well formed", func(t *testing.T) {
		row := ProjectRow{
			Title:        textPtr("Shop"),
			Technologies: datatypes.JSON(`["Liquid", 3, "CSS"]`),
			Images:       datatypes.JSON(`["a.png","b.png"]`),
			Category:     textPtr(" Shopify "),
			Featured:     boolPtr(true),
		}
		p := row.Normalize()

		assert.Equal(t, "Shop", p.Title)
		assert.Equal(t, []string{"Liquid", "CSS"}, p.Technologies)
		assert.Equal(t, "shopify", p.Category)
		assert.True(t, p.Featured)
		assert.Equal(t, "a.png", p.Cover())
		assert.Equal(t, []string{"a.png", "b.png"}, p.Gallery())
	})

	t.Run("idempotent", func(t *testing.T) {
		row := ProjectRow{Technologies: datatypes.JSON(`["Go"]`), Category: textPtr("DESIGN")}
		once := row.Normalize()
		assert.Equal(t, once, once.Row().Normalize())
	})
}

func TestProjectFormAcceptsCommaSeparatedTechnologies(t *testing.T) {
	var form ProjectForm
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Site","technologies":"React, Node","live_url":"null"}`), &form))
	require.NoError(t, form.Validate())

	p := form.Project()
	assert.Equal(t, []string{"React", "Node"}, p.Technologies)
	assert.Equal(t, []string{}, p.Images)
	assert.Empty(t, p.LiveURL)
	assert.Nil(t, p.Row().LiveURL)

	stored := p.Row().Normalize()
	assert.Equal(t, []string{"React", "Node"}, stored.Technologies)
}

func TestProjectFormRejectsBadInput(t *testing.T) {
	assert.Error(t, ProjectForm{}.Validate())
	assert.Error(t, ProjectForm{Title: "x", LiveURL: "not a url"}.Validate())
	assert.NoError(t, ProjectForm{Title: "x", LiveURL: "https://example.com"}.Validate())
}

func TestFlexListArray(t *testing.T) {
	var l FlexList
	require.NoError(t, json.Unmarshal([]byte(`[" Go ", "", 4, "SQL"]`), &l))
	assert.Equal(t, []string{"Go", "SQL"}, l.Strings())

	var empty FlexList
	assert.Equal(t, []string{}, empty.Strings())
}

func TestExperienceNormalize(t *testing.T) {
	row := ExperienceRow{
		Title: textPtr("Engineer"),
		Type:  textPtr("freelance"),
		Link:  textPtr("null"),
	}
	e := row.Normalize()
	assert.Equal(t, "Freelance", e.Type)
	assert.Empty(t, e.Link)
	assert.Equal(t, []string{}, e.Technologies)

	assert.Equal(t, DefaultExperienceType, ExperienceRow{}.Normalize().Type)
}

func TestSkillNormalize(t *testing.T) {
	s := SkillRow{IconName: textPtr("rocket"), Color: textPtr("Accent")}.Normalize()
	assert.Equal(t, DefaultSkillIcon, s.IconName)
	assert.Equal(t, "accent", s.Color)
	assert.Equal(t, []string{}, s.Skills)
}

func TestContactSubmissionValidate(t *testing.T) {
	ok := ContactSubmission{Name: "Ada", Email: "ada@example.com", Message: "Hello"}
	assert.NoError(t, ok.Validate())

	assert.Error(t, ContactSubmission{Name: "Ada", Email: "nope", Message: "Hello"}.Validate())
	assert.Error(t, ContactSubmission{Email: "ada@example.com", Message: "Hello"}.Validate())
	assert.Error(t, ContactSubmission{Name: "Ada", Email: "ada@example.com"}.Validate())

	msg := ContactSubmission{Name: " Ada ", Email: "ada@example.com", Message: " hi "}.ContactMessage()
	assert.Equal(t, "Ada", msg.Name)
	assert.Equal(t, "hi", msg.Message)
}

func longEmail(local, labels int) string {
	parts := []string{strings.Repeat("a", labels), strings.Repeat("b", labels), strings.Repeat("c", labels), "com"}
	return strings.Repeat("x", local) + "@" + strings.Join(parts, ".")
}

func TestContactSubmissionAtMaximumSize(t *testing.T) {
	largest := ContactSubmission{
		Name:    strings.Repeat("n", 200),
		Email:   longEmail(64, 60),
		Subject: strings.Repeat("s", 300),
		Message: strings.Repeat("m", 5000),
	}
	require.LessOrEqual(t, len(largest.Email), 254)
	assert.NoError(t, largest.Validate())

	tooLong := largest
	tooLong.Email = longEmail(64, 63)
	require.Greater(t, len(tooLong.Email), 254)
	assert.Error(t, tooLong.Validate())
}

func TestContactNotifyTriggerSendsOnlyRowKey(t *testing.T) {
	assert.Contains(t, contactNotifySQL, "json_build_object('id', NEW.id, 'created_at', NEW.created_at)")
	assert.NotContains(t, contactNotifySQL, "row_to_json")
}

func TestCompareColumns(t *testing.T) {
	drift := CompareColumns("skills", []string{"id", "title", "slug"}, ModelColumns(SkillRow{}))
	assert.True(t, drift.Exists)
	assert.Equal(t, []string{"slug"}, drift.Extra)
	assert.Equal(t, []string{"category", "skills", "icon_name", "color"}, drift.Missing)
	assert.False(t, drift.Clean())

	clean := CompareColumns("skills", ModelColumns(SkillRow{}), ModelColumns(SkillRow{}))
	assert.True(t, clean.Clean())
}
