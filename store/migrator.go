package store

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/repgenie/repgenie/internal/version"
)

// Schema creation is idempotent: LATEST.sql uses CREATE ... IF NOT EXISTS
// throughout, so it is applied on every startup. The applied schema version
// is recorded in system_setting and compared with semver so a downgraded
// binary refuses to touch a newer database.

//go:embed migration
var migrationFS embed.FS

const (
	// LatestSchemaFileName is the full schema applied at startup.
	LatestSchemaFileName = "LATEST.sql"
	// SchemaVersionSettingName keys the recorded schema version.
	SchemaVersionSettingName = "schema_version"
)

// Migrate brings the database schema up to the current version.
func (s *Store) Migrate(ctx context.Context) error {
	currentVersion := version.GetCurrentVersion(s.profile.Mode)

	storedVersion, err := s.driver.GetSystemSetting(ctx, SchemaVersionSettingName)
	if err != nil {
		// A fresh database has no system_setting table yet.
		storedVersion = ""
	}
	if storedVersion != "" && version.IsVersionGreaterThan(storedVersion, currentVersion) {
		return errors.Errorf("database schema version %s is newer than server version %s, refusing to start", storedVersion, currentVersion)
	}

	latest, err := s.latestSchema()
	if err != nil {
		return err
	}
	if _, err := s.driver.GetDB().ExecContext(ctx, latest); err != nil {
		return errors.Wrap(err, "failed to apply latest schema")
	}

	if err := s.driver.UpsertSystemSetting(ctx, SchemaVersionSettingName, currentVersion); err != nil {
		return errors.Wrap(err, "failed to record schema version")
	}

	slog.Info("database schema up to date",
		slog.String("driver", s.profile.Driver),
		slog.String("version", currentVersion))
	return nil
}

func (s *Store) latestSchema() (string, error) {
	path := fmt.Sprintf("migration/%s/%s", s.profile.Driver, LatestSchemaFileName)
	buf, err := migrationFS.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read latest schema for driver %q", s.profile.Driver)
	}
	return string(buf), nil
}
