package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTeamsNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "league.yaml")
	data := `
teams:
  - name: " Alpha FC "
    short_code: alp
    role_id: "R1"
  - name: Bravo
    short_code: brv
    role_id: "R2"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := loadTeams(path)
	if err != nil {
		t.Fatalf("loadTeams: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("teams = %d", len(got))
	}
	if got[0].Name != "Alpha FC" || got[0].ShortCode != "ALP" {
		t.Fatalf("first team = %+v", got[0])
	}
}

func TestLoadTeamsRejectsDuplicateRoles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "league.yaml")
	data := `
teams:
  - {name: Alpha, role_id: "R1"}
  - {name: Bravo, role_id: "R1"}
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadTeams(path); err == nil {
		t.Fatal("expected duplicate role error")
	}
}
