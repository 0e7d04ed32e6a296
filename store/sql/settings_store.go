package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-agentforce/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SettingsStore persists bridge settings as namespaced key-value rows. One
// namespace per bridge instance keeps multi-tenant hosts from colliding.
type SettingsStore struct {
	db        *bun.DB
	repo      repository.Repository[*settingRecord]
	namespace string
}

func NewSettingsStore(db *bun.DB, namespace string) (*SettingsStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = core.DefaultSettingsNamespace
	}
	repo := repository.NewRepository[*settingRecord](db, settingHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid settings repository wiring: %w", err)
		}
	}
	return &SettingsStore{
		db:        db,
		repo:      repo,
		namespace: namespace,
	}, nil
}

func (s *SettingsStore) Namespace() string {
	if s == nil {
		return ""
	}
	return s.namespace
}

func (s *SettingsStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.db == nil {
		return "", false, fmt.Errorf("sqlstore: settings store is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false, fmt.Errorf("sqlstore: settings key is required")
	}

	record := &settingRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.namespace = ?", s.namespace).
		Where("?TableAlias.key = ?", key).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	return record.Value, true, nil
}

func (s *SettingsStore) Set(ctx context.Context, key string, value string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: settings store is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("sqlstore: settings key is required")
	}
	now := time.Now().UTC()

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record, err := findSettingTx(ctx, tx, s.namespace, key)
		if err != nil {
			return err
		}
		if record == nil {
			record = &settingRecord{
				ID:        uuid.NewString(),
				Namespace: s.namespace,
				Key:       key,
				Value:     value,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if _, insertErr := tx.NewInsert().Model(record).Exec(ctx); insertErr != nil {
				if !isUniqueViolation(insertErr) {
					return insertErr
				}
				record, err = findSettingTx(ctx, tx, s.namespace, key)
				if err != nil {
					return err
				}
				if record == nil {
					return insertErr
				}
			} else {
				return nil
			}
		}

		record.Value = value
		record.UpdatedAt = now
		if _, updateErr := tx.NewUpdate().Model(record).Where("id = ?", record.ID).Exec(ctx); updateErr != nil {
			return updateErr
		}
		return nil
	})
}

func (s *SettingsStore) Delete(ctx context.Context, key string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: settings store is not configured")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("sqlstore: settings key is required")
	}
	_, err := s.db.NewDelete().
		Model((*settingRecord)(nil)).
		Where("namespace = ?", s.namespace).
		Where("key = ?", key).
		Exec(ctx)
	return err
}

// Reset removes every key in the store's namespace; other namespaces are
// untouched.
func (s *SettingsStore) Reset(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: settings store is not configured")
	}
	_, err := s.db.NewDelete().
		Model((*settingRecord)(nil)).
		Where("namespace = ?", s.namespace).
		Exec(ctx)
	return err
}

func findSettingTx(ctx context.Context, tx bun.Tx, namespace string, key string) (*settingRecord, error) {
	record := &settingRecord{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.namespace = ?", namespace).
		Where("?TableAlias.key = ?", key).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

func isUniqueViolation(err error) bool {
	message := strings.ToLower(strings.TrimSpace(err.Error()))
	return strings.Contains(message, "unique constraint failed") ||
		strings.Contains(message, "duplicate key value violates unique constraint")
}

var _ core.SettingsStore = (*SettingsStore)(nil)
