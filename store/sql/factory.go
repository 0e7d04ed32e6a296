package sqlstore

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-agentforce/core"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"
)

// RepositoryFactory builds the sql-backed stores once a persistence client is
// available and hands them to the bridge service as a core.StoreProvider.
type RepositoryFactory struct {
	db        *bun.DB
	namespace string

	settingsStore *SettingsStore
}

type FactoryOption func(*RepositoryFactory)

func WithNamespace(namespace string) FactoryOption {
	return func(f *RepositoryFactory) {
		if trimmed := strings.TrimSpace(namespace); trimmed != "" {
			f.namespace = trimmed
		}
	}
}

func NewRepositoryFactory(opts ...FactoryOption) *RepositoryFactory {
	factory := &RepositoryFactory{namespace: core.DefaultSettingsNamespace}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(factory)
	}
	return factory
}

func NewRepositoryFactoryFromPersistence(client *persistence.Client, opts ...FactoryOption) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory(opts...)
	if _, err := factory.BuildStores(client); err != nil {
		return nil, err
	}
	return factory, nil
}

func NewRepositoryFactoryFromDB(db *bun.DB, opts ...FactoryOption) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory(opts...)
	if _, err := factory.BuildStores(db); err != nil {
		return nil, err
	}
	return factory, nil
}

func (f *RepositoryFactory) BuildStores(persistenceClient any) (core.StoreProvider, error) {
	if f == nil {
		return nil, fmt.Errorf("sqlstore: repository factory is nil")
	}
	if f.db == nil {
		db, err := resolveBunDB(persistenceClient)
		if err != nil {
			return nil, err
		}
		f.db = db
	}
	if f.settingsStore != nil {
		return f, nil
	}
	settingsStore, err := NewSettingsStore(f.db, f.namespace)
	if err != nil {
		return nil, err
	}
	f.settingsStore = settingsStore
	return f, nil
}

func (f *RepositoryFactory) SettingsStore() core.SettingsStore {
	if f == nil || f.settingsStore == nil {
		return nil
	}
	return f.settingsStore
}

func (f *RepositoryFactory) DB() *bun.DB {
	if f == nil {
		return nil
	}
	return f.db
}

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	case *bun.DB:
		return typed, nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported persistence client type %T", candidate)
	}
}

var _ core.StoreProvider = (*RepositoryFactory)(nil)
