package versions

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func Migration1(db *gorm.DB) error {
	type MergeLog struct {
		Id uuid.UUID `gorm:"type:uuid;primaryKey"`

		TargetId uint `gorm:"not null;index"`
		SourceId uint `gorm:"not null"`

		SourceName string `gorm:"size:200"`

		Moved   int
		Dropped int

		CreatedAt time.Time
	}

	return db.AutoMigrate(&MergeLog{})
}

func Rollback1(db *gorm.DB) error {
	return db.Migrator().DropTable("merge_logs")
}
