package db

import (
	"testing"

	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

func TestSQLiteDSN(t *testing.T) {
	cases := map[string]string{
		"":                           "storefront.db?_foreign_keys=1",
		"local.db":                   "local.db?_foreign_keys=1",
		"file::memory:?cache=shared": "file::memory:?cache=shared&_foreign_keys=1",
	}
	for in, want := range cases {
		if got := SQLiteDSN(in); got != want {
			t.Fatalf("SQLiteDSN(%q): want=%q got=%q", in, want, got)
		}
	}
}

func TestConfigFromEnvPrefersDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://u:p@db:5432/shop")
	t.Setenv("DB_DRIVER", "POSTGRES")
	cfg := ConfigFromEnv(logger.Nop())
	if cfg.DSN != "postgres://u:p@db:5432/shop" {
		t.Fatalf("dsn: got=%q", cfg.DSN)
	}
	if cfg.Driver != DriverPostgres {
		t.Fatalf("driver: got=%q", cfg.Driver)
	}
}

func TestConfigFromEnvBuildsDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("POSTGRES_USER", "shop")
	t.Setenv("POSTGRES_PASSWORD", "pw")
	t.Setenv("POSTGRES_HOST", "pg")
	t.Setenv("POSTGRES_PORT", "6543")
	t.Setenv("POSTGRES_NAME", "catalog")
	cfg := ConfigFromEnv(logger.Nop())
	want := "postgres://shop:pw@pg:6543/catalog?sslmode=disable"
	if cfg.DSN != want {
		t.Fatalf("dsn: want=%q got=%q", want, cfg.DSN)
	}
}

func TestOpenSQLiteMigrates(t *testing.T) {
	svc, err := Open(Config{Driver: DriverSQLite, SQLitePath: "file:db_open_test?mode=memory&cache=shared"}, logger.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	if err := AutoMigrateAll(svc.DB()); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}
	for _, table := range []string{"collection", "product", "customer", "customer_order", "order_item", "review", "tag", "tagged_item", "admin_log_entry"} {
		if !svc.DB().Migrator().HasTable(table) {
			t.Fatalf("missing table %s", table)
		}
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(Config{Driver: "mysql"}, logger.Nop()); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}
