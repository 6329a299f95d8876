package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateShippedCatalog(t *testing.T) {
	out, err := run(t, "validate", filepath.Join("..", "..", "configs", "roles.yaml"))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "ok: 6 roles") {
		t.Fatalf("output=%q", out)
	}
}

func TestRankAgainstSkillsFile(t *testing.T) {
	dir := t.TempDir()
	skills := filepath.Join(dir, "skills.yaml")
	content := "- {name: React, category: technical, proficiencyScore: 80}\n- {name: Node.js, category: technical, proficiencyScore: 40}\n"
	if err := os.WriteFile(skills, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := run(t, "rank", "--catalog", filepath.Join("..", "..", "configs", "roles.yaml"), "--skills", skills)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if !strings.Contains(out, "fullstack-developer") || !strings.Contains(out, " 75  6-12 months") {
		t.Fatalf("output=%q", out)
	}
}

func TestValidateRejectsBadWeights(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`[{"id":"x","title":"X","idealSkills":[{"name":"Go","weight":0.3,"idealScore":80}]}]`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := run(t, "validate", path); err == nil {
		t.Fatal("bad catalog accepted")
	}
}

func TestTier(t *testing.T) {
	out, err := run(t, "tier", "799")
	if err != nil {
		t.Fatalf("tier: %v", err)
	}
	if strings.TrimSpace(out) != "tier=Novice next=Intermediate progress=99.8%" {
		t.Fatalf("output=%q", out)
	}
}
