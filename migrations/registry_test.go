package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"testing"
	"testing/fstest"
)

func TestFilesystems_DefaultEmbeddedSet(t *testing.T) {
	filesystems, err := Filesystems()
	if err != nil {
		t.Fatalf("filesystems: %v", err)
	}
	if len(filesystems) != 2 {
		t.Fatalf("expected postgres and sqlite filesystems, got %d", len(filesystems))
	}

	byDialect := map[string]FilesystemSpec{}
	for _, spec := range filesystems {
		byDialect[spec.Dialect] = spec
	}
	for _, dialect := range []string{DialectPostgres, DialectSQLite} {
		spec, ok := byDialect[dialect]
		if !ok {
			t.Fatalf("missing %s filesystem", dialect)
		}
		matches, globErr := fs.Glob(spec.FS, "*.up.sql")
		if globErr != nil {
			t.Fatalf("glob %s: %v", dialect, globErr)
		}
		if len(matches) == 0 {
			t.Fatalf("%s filesystem has no up migrations", dialect)
		}
	}
	if byDialect[DialectSQLite].Path != "data/sql/migrations/sqlite" {
		t.Fatalf("unexpected sqlite path %q", byDialect[DialectSQLite].Path)
	}
}

func TestFilesystems_FlatSourceRoot(t *testing.T) {
	source := fstest.MapFS{
		"001_init.up.sql":          {Data: []byte("create table t (id text);")},
		"001_init.down.sql":        {Data: []byte("drop table t;")},
		"sqlite/001_init.up.sql":   {Data: []byte("create table t (id text);")},
		"sqlite/001_init.down.sql": {Data: []byte("drop table t;")},
	}

	filesystems, err := Filesystems(source)
	if err != nil {
		t.Fatalf("filesystems: %v", err)
	}
	if len(filesystems) != 2 {
		t.Fatalf("expected two filesystems, got %d", len(filesystems))
	}
	if filesystems[0].Path != "." {
		t.Fatalf("flat root must keep path %q, got %q", ".", filesystems[0].Path)
	}
	if filesystems[1].Path != "sqlite" {
		t.Fatalf("unexpected sqlite path %q", filesystems[1].Path)
	}
}

func TestFilesystems_MissingUpMigrationsFails(t *testing.T) {
	source := fstest.MapFS{
		"001_init.up.sql":          {Data: []byte("create table t (id text);")},
		"sqlite/001_init.down.sql": {Data: []byte("drop table t;")},
	}

	if _, err := Filesystems(source); err == nil {
		t.Fatalf("expected error when a dialect has no up migrations")
	}
}

func TestRegister_InvokesPerDialect(t *testing.T) {
	type call struct {
		dialect string
		label   string
	}
	var calls []call
	registerFn := func(_ context.Context, dialect string, label string, fsys fs.FS) error {
		if fsys == nil {
			t.Fatalf("register received nil filesystem for %s", dialect)
		}
		calls = append(calls, call{dialect: dialect, label: label})
		return nil
	}

	reg, err := Register(context.Background(), registerFn)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.SourceLabel != "go-agentforce" {
		t.Fatalf("unexpected source label %q", reg.SourceLabel)
	}
	if len(calls) != 2 {
		t.Fatalf("expected two register calls, got %d", len(calls))
	}
	seen := map[string]bool{}
	for _, c := range calls {
		if c.label != "go-agentforce" {
			t.Fatalf("unexpected label %q", c.label)
		}
		seen[c.dialect] = true
	}
	if !seen[DialectPostgres] || !seen[DialectSQLite] {
		t.Fatalf("expected both dialects registered, got %#v", seen)
	}
}

func TestRegister_ValidationTargetFilter(t *testing.T) {
	var dialects []string
	registerFn := func(_ context.Context, dialect string, _ string, _ fs.FS) error {
		dialects = append(dialects, dialect)
		return nil
	}

	reg, err := Register(context.Background(), registerFn, WithValidationTargets(DialectSQLite))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(reg.ValidationTargets) != 1 || reg.ValidationTargets[0] != DialectSQLite {
		t.Fatalf("unexpected targets: %#v", reg.ValidationTargets)
	}
	if len(dialects) != 1 || dialects[0] != DialectSQLite {
		t.Fatalf("expected sqlite-only registration, got %#v", dialects)
	}
}

func TestRegister_CustomSourceLabel(t *testing.T) {
	var label string
	registerFn := func(_ context.Context, _ string, sourceLabel string, _ fs.FS) error {
		label = sourceLabel
		return nil
	}

	if _, err := Register(context.Background(), registerFn, WithDialectSourceLabel("  custom-bridge  ")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if label != "custom-bridge" {
		t.Fatalf("expected trimmed custom label, got %q", label)
	}
}

func TestRegister_PropagatesRegisterError(t *testing.T) {
	registerFn := func(_ context.Context, _ string, _ string, _ fs.FS) error {
		return fmt.Errorf("registration rejected")
	}

	if _, err := Register(context.Background(), registerFn); err == nil {
		t.Fatalf("expected register error to propagate")
	}
}

func TestRegister_RequiresRegisterFunc(t *testing.T) {
	if _, err := Register(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil register function")
	}
}

func TestWithFilesystems_ReplacesSet(t *testing.T) {
	custom := fstest.MapFS{
		"001_init.up.sql": {Data: []byte("create table t (id text);")},
	}
	var dialects []string
	registerFn := func(_ context.Context, dialect string, _ string, _ fs.FS) error {
		dialects = append(dialects, dialect)
		return nil
	}

	reg, err := Register(context.Background(), registerFn,
		WithFilesystems(FilesystemSpec{Dialect: DialectSQLite, Path: "custom", FS: custom}),
		WithValidationTargets(DialectSQLite),
	)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(reg.Filesystems) != 1 || reg.Filesystems[0].Path != "custom" {
		t.Fatalf("unexpected filesystems: %#v", reg.Filesystems)
	}
	if len(dialects) != 1 || dialects[0] != DialectSQLite {
		t.Fatalf("expected custom sqlite registration, got %#v", dialects)
	}
}
