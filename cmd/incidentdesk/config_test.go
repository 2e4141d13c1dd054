package main

import (
	"testing"

	"incidentdesk/pkg/types"
)

func TestLoadConfigDefaults(t *testing.T) {
	c, err := loadConfig("TEST")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if c.StoreDriver != types.StoreDriverBadger || c.DataDir != "./data" {
		t.Errorf("unexpected store defaults %q %q", c.StoreDriver, c.DataDir)
	}
	if c.ServerPort != 8080 || c.SessionsPerMonth != 1000 {
		t.Errorf("unexpected defaults port=%d sessions=%d", c.ServerPort, c.SessionsPerMonth)
	}
	if !c.IsDevelopment() {
		t.Error("default environment should be development")
	}
}

func TestLoadConfigPrefix(t *testing.T) {
	t.Setenv("TEST_SERVER_PORT", "9090")
	t.Setenv("TEST_SESSIONS_PER_MONTH", "1500")

	c, err := loadConfig("TEST")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if c.ServerPort != 9090 || c.SessionsPerMonth != 1500 {
		t.Errorf("prefixed variables ignored: port=%d sessions=%d", c.ServerPort, c.SessionsPerMonth)
	}
}

func TestLoadConfigPostgresNeedsURL(t *testing.T) {
	t.Setenv("TEST_STORE_DRIVER", types.StoreDriverPostgres)
	t.Setenv("TEST_DATABASE_URL", "")

	if _, err := loadConfig("TEST"); err == nil {
		t.Error("expected error without DATABASE_URL")
	}
}

func TestLoadConfigUnknownDriver(t *testing.T) {
	t.Setenv("TEST_STORE_DRIVER", "sqlite")

	if _, err := loadConfig("TEST"); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := newLogger(&types.Config{LogLevel: "loud"}); err == nil {
		t.Error("expected error for invalid level")
	}

	logger, err := newLogger(&types.Config{Environment: "production", LogLevel: "debug"})
	if err != nil {
		t.Fatal(err)
	}
	if logger.GetLevel().String() != "debug" {
		t.Errorf("unexpected level %s", logger.GetLevel())
	}
}
