package models

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
)

/*
Schema drift report usage:

Set SCHEMA_REPORT=true and start the service. For each table the report lists
columns that exist in the database but have no field in the Go row struct, and
fields whose column is missing from the database. Missing columns are the ones
that make the ordered list queries fall back, so check this report first when
the logs show "ordered list failed".

Example output:
	table=projects extra=[slug] missing=[]
	table=skills   extra=[] missing=[icon_name]
*/

// Tables maps each managed table to the row struct that describes it.
var Tables = map[string]any{
	"projects":         ProjectRow{},
	"skills":           SkillRow{},
	"experiences":      ExperienceRow{},
	"contact_messages": ContactMessageRow{},
	"admin_users":      AdminUser{},
}

// ContactNotifyChannel is the LISTEN channel the contact_messages trigger
// notifies on every insert. The payload carries only the row id and
// created_at; NOTIFY payloads must stay under 8000 bytes and a trigger
// error would abort the insert.
const ContactNotifyChannel = "contact_messages"

const contactNotifySQL = `
CREATE OR REPLACE FUNCTION notify_contact_message() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify('contact_messages', json_build_object('id', NEW.id, 'created_at', NEW.created_at)::text);
	RETURN NEW;
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS contact_messages_notify ON contact_messages;
CREATE TRIGGER contact_messages_notify AFTER INSERT ON contact_messages
	FOR EACH ROW EXECUTE FUNCTION notify_contact_message();
`

// Migrate creates or alters the managed tables and installs the insert
// notification trigger on contact_messages.
func Migrate(db *gorm.DB) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	log.Info().Msg("Migrating models...")
	if err := migrateDB.AutoMigrate(
		&ProjectRow{},
		&SkillRow{},
		&ExperienceRow{},
		&ContactMessageRow{},
		&AdminUser{},
	); err != nil {
		return fmt.Errorf("error during models migration: %w", err)
	}

	if err := migrateDB.Exec(contactNotifySQL).Error; err != nil {
		return fmt.Errorf("error installing contact notify trigger: %w", err)
	}

	log.Info().Msg("Database migration completed successfully")
	return nil
}

// GenerateQueries writes typed gorm/gen query code for the row structs.
func GenerateQueries(db *gorm.DB, outPath string) {
	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(
		ProjectRow{},
		SkillRow{},
		ExperienceRow{},
		ContactMessageRow{},
		AdminUser{},
	)
	g.Execute()
	log.Info().Str("outPath", outPath).Msg("Query generation complete")
}

// TableDrift lists the differences between one table and its row struct.
type TableDrift struct {
	Table   string
	Exists  bool
	Extra   []string // in the database, not in the struct
	Missing []string // in the struct, not in the database
}

func (d TableDrift) Clean() bool {
	return d.Exists && len(d.Extra) == 0 && len(d.Missing) == 0
}

// SchemaDriftReport compares every managed table with its row struct and logs
// the result.
func SchemaDriftReport(db *gorm.DB) ([]TableDrift, error) {
	names := make([]string, 0, len(Tables))
	for name := range Tables {
		names = append(names, name)
	}
	sort.Strings(names)

	report := make([]TableDrift, 0, len(names))
	for _, name := range names {
		dbColumns, exists, err := getTableColumns(db, name)
		if err != nil {
			return nil, err
		}
		drift := CompareColumns(name, dbColumns, ModelColumns(Tables[name]))
		drift.Exists = exists

		event := log.Info()
		if !drift.Clean() {
			event = log.Warn()
		}
		event.Str("table", name).
			Bool("exists", exists).
			Strs("extra", drift.Extra).
			Strs("missing", drift.Missing).
			Msg("schema drift")
		report = append(report, drift)
	}
	return report, nil
}

func getTableColumns(db *gorm.DB, tableName string) ([]string, bool, error) {
	var columns []string
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = ?
		AND table_schema = CURRENT_SCHEMA()
		ORDER BY ordinal_position
	`
	if err := db.Raw(query, tableName).Scan(&columns).Error; err != nil {
		return nil, false, fmt.Errorf("error querying columns for table %s: %w", tableName, err)
	}
	return columns, len(columns) > 0, nil
}

// ModelColumns returns the gorm column names declared on a row struct.
func ModelColumns(model any) []string {
	var fields []string
	t := reflect.TypeOf(model)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			continue
		}
		if column := extractColumnNameFromGormTag(field.Tag.Get("gorm")); column != "" {
			fields = append(fields, column)
		}
	}
	return fields
}

func extractColumnNameFromGormTag(gormTag string) string {
	for _, part := range strings.Split(gormTag, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "column:") {
			return strings.TrimPrefix(part, "column:")
		}
	}
	return ""
}

// CompareColumns diffs database columns against model columns.
func CompareColumns(table string, dbColumns, modelColumns []string) TableDrift {
	drift := TableDrift{Table: table, Exists: len(dbColumns) > 0}
	inDB := make(map[string]bool, len(dbColumns))
	for _, c := range dbColumns {
		inDB[c] = true
	}
	inModel := make(map[string]bool, len(modelColumns))
	for _, c := range modelColumns {
		inModel[c] = true
		if !inDB[c] {
			drift.Missing = append(drift.Missing, c)
		}
	}
	for _, c := range dbColumns {
		if !inModel[c] {
			drift.Extra = append(drift.Extra, c)
		}
	}
	return drift
}
