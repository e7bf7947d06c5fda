package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/studio-publisher/internal/exportschema"
)

// NewExportDatabase opens a fresh sqlite database at path and creates the
// export schema in it. Each publish gets its own file; nothing is ever
// updated incrementally, so an existing file at path is clobbered by the
// caller choosing a new temp path.
func NewExportDatabase(path string) (*gorm.DB, error) {
	gormDB, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open export database at %s: %w", path, err)
	}

	if err := gormDB.AutoMigrate(
		&exportschema.Language{},
		&exportschema.License{},
		&exportschema.ContentTag{},
		&exportschema.ContentNode{},
		&exportschema.File{},
		&exportschema.AssessmentMetaData{},
		&exportschema.ChannelMetadata{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate export schema: %w", err)
	}
	return gormDB, nil
}

// CloseExportDatabase releases the sqlite handle so the file can be copied.
func CloseExportDatabase(gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
