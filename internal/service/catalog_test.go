package service

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/util"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeCatalogFormats(t *testing.T) {
	yamlWrapped := []byte(`
roles:
  - id: qa
    title: QA Engineer
    idealSkills:
      - {name: Testing, weight: 1, idealScore: 70}
`)
	yamlList := []byte(`
- id: qa
  title: QA Engineer
  idealSkills:
    - {name: Testing, weight: 1, idealScore: 70}
`)
	jsonWrapped := []byte(`{"roles":[{"id":"qa","title":"QA Engineer","idealSkills":[{"name":"Testing","weight":1,"idealScore":70}]}]}`)
	jsonList := []byte(`[{"id":"qa","title":"QA Engineer","idealSkills":[{"name":"Testing","weight":1,"idealScore":70}]}]`)

	cases := []struct {
		name string
		data []byte
	}{
		{"roles.yaml", yamlWrapped},
		{"roles.yml", yamlList},
		{"roles.json", jsonWrapped},
		{"roles.json", jsonList},
	}
	for _, tc := range cases {
		roles, err := DecodeCatalog(tc.name, tc.data)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if len(roles) != 1 || roles[0].ID != "qa" || roles[0].IdealSkills[0].IdealScore != 70 {
			t.Fatalf("%s: decoded %+v", tc.name, roles)
		}
	}

	if _, err := DecodeCatalog("roles.toml", yamlWrapped); !errors.Is(err, util.ErrInvalidInput) {
		t.Fatalf("toml err=%v", err)
	}
	if _, err := DecodeCatalog("roles.json", []byte("{")); !errors.Is(err, util.ErrInvalidInput) {
		t.Fatalf("broken json err=%v", err)
	}
}

func TestValidateCatalogNormalizesWeights(t *testing.T) {
	roles := []model.RoleProfile{{
		ID:    " pm ",
		Title: "PM",
		IdealSkills: []model.IdealSkill{
			{Name: "Communication", Weight: 0.333, IdealScore: 80},
			{Name: "Leadership", Weight: 0.333, IdealScore: 80},
			{Name: "SQL", Weight: 0.333, IdealScore: 50},
		},
	}}
	out, err := ValidateCatalog(roles, 0.01)
	if err != nil {
		t.Fatalf("ValidateCatalog: %v", err)
	}
	if out[0].ID != "pm" {
		t.Fatalf("id not trimmed: %q", out[0].ID)
	}
	sum := 0.0
	for _, s := range out[0].IdealSkills {
		sum += s.Weight
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("sum=%v after normalization", sum)
	}
	if roles[0].IdealSkills[0].Weight != 0.333 {
		t.Fatalf("input mutated")
	}
}

func TestValidateCatalogRejects(t *testing.T) {
	good := model.RoleProfile{ID: "x", Title: "X", IdealSkills: []model.IdealSkill{{Name: "Go", Weight: 1, IdealScore: 80}}}

	cases := map[string][]model.RoleProfile{
		"weights off": {{ID: "x", Title: "X", IdealSkills: []model.IdealSkill{
			{Name: "Go", Weight: 0.5, IdealScore: 80},
			{Name: "SQL", Weight: 0.3, IdealScore: 80},
		}}},
		"duplicate id":    {good, good},
		"duplicate skill": {{ID: "x", Title: "X", IdealSkills: []model.IdealSkill{{Name: "Go", Weight: 0.5, IdealScore: 80}, {Name: "go", Weight: 0.5, IdealScore: 80}}}},
		"no skills":       {{ID: "x", Title: "X"}},
		"no id":           {{Title: "X", IdealSkills: good.IdealSkills}},
		"negative weight": {{ID: "x", Title: "X", IdealSkills: []model.IdealSkill{{Name: "Go", Weight: 1.5, IdealScore: 80}, {Name: "SQL", Weight: -0.5, IdealScore: 80}}}},
		"ideal over 100":  {{ID: "x", Title: "X", IdealSkills: []model.IdealSkill{{Name: "Go", Weight: 1, IdealScore: 120}}}},
	}
	for name, roles := range cases {
		_, err := ValidateCatalog(roles, 0.01)
		if err == nil {
			t.Errorf("%s: accepted", name)
			continue
		}
		// 没有技能的岗位单独归类为 ErrInvalidRole，其余是 ErrInvalidInput
		wantRole := name == "no skills"
		if errors.Is(err, util.ErrInvalidRole) != wantRole || errors.Is(err, util.ErrInvalidInput) == wantRole {
			t.Errorf("%s: err=%v misclassified", name, err)
		}
	}
}

func TestShippedCatalogIsValid(t *testing.T) {
	path := filepath.Join("..", "..", "configs", "roles.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	roles, err := DecodeCatalog(path, data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, err := ValidateCatalog(roles, DefaultWeightTolerance); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestCatalogServiceKeepsPreviousOnBadReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roles.yaml")
	writeFile(t, path, `
roles:
  - id: qa
    title: QA Engineer
    idealSkills:
      - {name: Testing, weight: 1, idealScore: 70}
`)
	svc := NewCatalogService(&LocalCatalogSource{Path: path}, 0.01)
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := svc.Get("qa"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := svc.Get("missing"); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("missing role err=%v", err)
	}

	writeFile(t, path, `
roles:
  - id: qa
    title: QA Engineer
    idealSkills:
      - {name: Testing, weight: 0.4, idealScore: 70}
`)
	if err := svc.Load(context.Background()); err == nil {
		t.Fatalf("invalid catalog accepted")
	}
	svc.Reload()
	if roles := svc.List(); len(roles) != 1 || roles[0].IdealSkills[0].Weight != 1 {
		t.Fatalf("previous catalog lost: %+v", roles)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
