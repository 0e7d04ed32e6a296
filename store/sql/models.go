package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type settingRecord struct {
	bun.BaseModel `bun:"table:agentforce_settings,alias:afs"`

	ID        string    `bun:"id,pk"`
	Namespace string    `bun:"namespace,notnull"`
	Key       string    `bun:"key,notnull"`
	Value     string    `bun:"value,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
