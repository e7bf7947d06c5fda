package app

import (
	"github.com/yungbote/studio-publisher/internal/pkg/logger"
	"github.com/yungbote/studio-publisher/internal/utils"
)

type Config struct {
	StorageRoot  string
	ExportDBRoot string
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		StorageRoot:  utils.GetEnv("STORAGE_ROOT", "storage", log),
		ExportDBRoot: utils.GetEnv("EXPORT_DB_ROOT", "exportdbs", log),
	}
}
