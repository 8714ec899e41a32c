package creds

import (
	"testing"

	"github.com/zalando/go-keyring"
)

func TestSaveLoadDeleteRoundtrip(t *testing.T) {
	keyring.MockInit()

	if err := Save(Credentials{Username: "jane@example.com", Password: "hunter2"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c == nil || c.Username != "jane@example.com" || c.Password != "hunter2" {
		t.Errorf("loaded = %+v", c)
	}

	if err := Delete(); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	c, err = Load()
	if err != nil {
		t.Fatalf("Load after delete failed: %v", err)
	}
	if c != nil {
		t.Errorf("Load after delete = %+v, want nil", c)
	}
}

func TestLoadEnvOverridesKeyring(t *testing.T) {
	keyring.MockInit()

	if err := Save(Credentials{Username: "keyring-user", Password: "keyring-pass"}); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PROSPECT_USERNAME", "env-user")
	t.Setenv("PROSPECT_PASSWORD", "env-pass")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c == nil || c.Username != "env-user" || c.Password != "env-pass" {
		t.Errorf("loaded = %+v, want env credentials", c)
	}
}

func TestSaveRejectsIncomplete(t *testing.T) {
	if err := Save(Credentials{Username: "only-user"}); err == nil {
		t.Error("Expected error for missing password")
	}
}

func TestDeleteWhenEmpty(t *testing.T) {
	keyring.MockInit()

	if err := Delete(); err != nil {
		t.Errorf("Delete on empty keyring should be a no-op, got %v", err)
	}
}
