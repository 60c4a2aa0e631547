package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/caresync-health/clinic-scheduler/internal/models"
)

// Sink receives audit events. The DB logger is the production sink;
// tests substitute their own.
type Sink interface {
	Log(actorID *uint, actorRole, action, entity string, entityID *uint, metadata any) error
}

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(
	actorID *uint,
	actorRole string,
	action string,
	entity string,
	entityID *uint,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		ActorID:   actorID,
		ActorRole: actorRole,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Metadata:  metaJSON,
	}

	return l.db.Create(&entry).Error
}
