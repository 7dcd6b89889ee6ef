package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"github.com/toqaosama/portfolio-backend/models"
)

type Database struct {
	projectRepo        *ProjectRepo
	skillRepo          *SkillRepo
	experienceRepo     *ExperienceRepo
	contactMessageRepo *ContactMessageRepo
	adminUserRepo      *AdminUserRepo
	err                error
}

// Tables is the set of store tables a Database is built from.
type Tables struct {
	Projects        Table[models.ProjectRow]
	Skills          Table[models.SkillRow]
	Experiences     Table[models.ExperienceRow]
	ContactMessages Table[models.ContactMessageRow]
	AdminUsers      Table[models.AdminUser]
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return FromTables(Tables{
		Projects:        NewGormTable[models.ProjectRow](db),
		Skills:          NewGormTable[models.SkillRow](db),
		Experiences:     NewGormTable[models.ExperienceRow](db),
		ContactMessages: NewGormTable[models.ContactMessageRow](db),
		AdminUsers:      NewGormTable[models.AdminUser](db),
	})
}

func FromTables(t Tables) Database {
	return Database{
		projectRepo:        NewProjectRepo(t.Projects),
		skillRepo:          NewSkillRepo(t.Skills),
		experienceRepo:     NewExperienceRepo(t.Experiences),
		contactMessageRepo: NewContactMessageRepo(t.ContactMessages),
		adminUserRepo:      NewAdminUserRepo(t.AdminUsers),
	}
}

// Unconfigured returns a Database whose every operation fails with err. It
// lets the service start and render static content while the store settings
// are missing.
func Unconfigured(err error) Database {
	d := FromTables(Tables{
		Projects:        unconfiguredTable[models.ProjectRow]{err},
		Skills:          unconfiguredTable[models.SkillRow]{err},
		Experiences:     unconfiguredTable[models.ExperienceRow]{err},
		ContactMessages: unconfiguredTable[models.ContactMessageRow]{err},
		AdminUsers:      unconfiguredTable[models.AdminUser]{err},
	})
	d.err = err
	return d
}

// Err returns the configuration error for an Unconfigured database.
func (d Database) Err() error {
	return d.err
}

func (d Database) Configured() bool {
	return d.err == nil
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) ExperienceRepo() *ExperienceRepo {
	return d.experienceRepo
}

func (d Database) ContactMessageRepo() *ContactMessageRepo {
	return d.contactMessageRepo
}

func (d Database) AdminUserRepo() *AdminUserRepo {
	return d.adminUserRepo
}

// UseReplicas routes reads to the replica DSNs. Writes and reads inside a
// transaction stay on the primary.
func UseReplicas(db *gorm.DB, replicaDSNs ...string) error {
	if len(replicaDSNs) == 0 {
		return nil
	}
	replicas := make([]gorm.Dialector, 0, len(replicaDSNs))
	for _, dsn := range replicaDSNs {
		replicas = append(replicas, postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}))
	}
	return db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: replicas,
		Policy:   dbresolver.RandomPolicy{},
	}))
}
