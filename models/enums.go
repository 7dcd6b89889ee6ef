package models

import "github.com/toqaosama/portfolio-backend/normalize"

// PlaceholderImage is shown wherever a project has no uploaded image.
const PlaceholderImage = "/placeholder.svg"

// Project categories.
const (
	CategoryWordPress = "wordpress"
	CategoryCoding    = "coding"
	CategoryDesign    = "design"
	CategoryShopify   = "shopify"

	DefaultProjectCategory = CategoryCoding
)

var ProjectCategories = []string{CategoryCoding, CategoryWordPress, CategoryDesign, CategoryShopify}

// Skill icons, named after the icon set the front end renders.
var SkillIcons = []string{"Code", "Server", "Brain", "Wrench", "Palette", "Database"}

const DefaultSkillIcon = "Code"

var SkillColors = []string{"primary", "secondary", "accent"}

const DefaultSkillColor = "primary"

var ExperienceTypes = []string{"Full-time", "Part-time", "Contract", "Freelance", "Internship", "Volunteer"}

const DefaultExperienceType = "Full-time"

func NormalizeProjectCategory(v any) string {
	return normalize.ToCategory(v, ProjectCategories, DefaultProjectCategory)
}

func NormalizeSkillIcon(v any) string {
	return normalize.ToCategory(v, SkillIcons, DefaultSkillIcon)
}

func NormalizeSkillColor(v any) string {
	return normalize.ToCategory(v, SkillColors, DefaultSkillColor)
}

func NormalizeExperienceType(v any) string {
	return normalize.ToCategory(v, ExperienceTypes, DefaultExperienceType)
}
