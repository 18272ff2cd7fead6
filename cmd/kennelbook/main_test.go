package main

import (
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/kennelbook/internal/api"
	"github.com/terraincognita07/kennelbook/internal/db"
)

func TestMustLoadLocationFallsBackToUTC(t *testing.T) {
	location := mustLoadLocation("Not/AZone")
	if location != time.UTC {
		t.Fatalf("expected UTC fallback, got %s", location)
	}

	berlin := mustLoadLocation("Europe/Berlin")
	if berlin.String() != "Europe/Berlin" {
		t.Fatalf("expected Europe/Berlin, got %s", berlin)
	}
}

func TestNewAppServesHealthCheck(t *testing.T) {
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "kennelbook.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	handler, err := api.NewHandler(database, time.UTC)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	app := newApp(handler)
	response, err := app.Test(httptest.NewRequest("GET", "/healthz", nil), -1)
	if err != nil {
		t.Fatalf("healthz request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != 200 {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
}
