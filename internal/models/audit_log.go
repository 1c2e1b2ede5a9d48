package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog is one successful write to the Entregas sheet.
type AuditLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Token'daki istemci adı; JWT kapalıysa boş
	Client string `gorm:"size:100" json:"client"`

	// register / payment_update / delivery_update
	Action string `gorm:"size:30;index" json:"action"`

	Code  string `gorm:"size:100;index" json:"code"`
	Row   int    `json:"row"` // kayıt işlemlerinde 0
	Value string `gorm:"size:50" json:"value"`

	// Yazılan satırın JSON hali
	Data string `gorm:"type:jsonb" json:"data"`
}

func (l *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
