package service

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/util"
	"context"
	"errors"
	"testing"
)

func TestValidateSkills(t *testing.T) {
	ok := []SkillInput{
		{Name: " Go ", Category: model.SkillTechnical, ProficiencyScore: 70},
		{Name: "English", Category: model.SkillLanguages, ProficiencyScore: 100},
	}
	skills, err := ValidateSkills(ok)
	if err != nil {
		t.Fatalf("ValidateSkills: %v", err)
	}
	if skills[0].Name != "Go" || skills[0].NameKey != "go" {
		t.Fatalf("skill not normalized: %+v", skills[0])
	}

	bad := map[string][]SkillInput{
		"empty name": {{Name: "  ", Category: model.SkillSoft, ProficiencyScore: 10}},
		"bad score":  {{Name: "Go", Category: model.SkillTechnical, ProficiencyScore: 101}},
		"negative":   {{Name: "Go", Category: model.SkillTechnical, ProficiencyScore: -1}},
		"bad cat":    {{Name: "Go", Category: "magic", ProficiencyScore: 10}},
		"duplicate":  {{Name: "Go", Category: model.SkillTechnical, ProficiencyScore: 10}, {Name: "GO", Category: model.SkillTools, ProficiencyScore: 20}},
	}
	for name, in := range bad {
		if _, err := ValidateSkills(in); !errors.Is(err, util.ErrInvalidInput) {
			t.Errorf("%s: err=%v, want ErrInvalidInput", name, err)
		}
	}
}

func TestProfileServiceSkillLifecycle(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	u := f.createUser(t, "grace", 0)
	svc := NewProfileService(f.users, f.skills, f.ledger)

	skills, err := svc.ReplaceSkills(ctx, u.ID, []SkillInput{
		{Name: "React", Category: model.SkillTechnical, ProficiencyScore: 60},
		{Name: "Communication", Category: model.SkillSoft, ProficiencyScore: 70},
	})
	if err != nil {
		t.Fatalf("ReplaceSkills: %v", err)
	}
	if len(skills) != 2 {
		t.Fatalf("skills=%+v", skills)
	}

	if _, err := svc.UpsertSkill(ctx, u.ID, SkillInput{Name: "react", Category: model.SkillTechnical, ProficiencyScore: 85}); err != nil {
		t.Fatalf("UpsertSkill: %v", err)
	}
	skills, err = svc.GetSkills(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetSkills: %v", err)
	}
	if len(skills) != 2 {
		t.Fatalf("upsert created duplicate: %+v", skills)
	}
	for _, s := range skills {
		if s.NameKey == "react" && s.ProficiencyScore != 85 {
			t.Fatalf("react not updated: %+v", s)
		}
	}

	if err := svc.DeleteSkill(ctx, u.ID, "COMMUNICATION"); err != nil {
		t.Fatalf("DeleteSkill: %v", err)
	}
	if err := svc.DeleteSkill(ctx, u.ID, "Communication"); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("second delete err=%v", err)
	}

	// 两次技能写入各记录一次 PROFILE_UPDATE
	state, _, err := f.ledger.GetProgression(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetProgression: %v", err)
	}
	if state.Points != 10 {
		t.Fatalf("points=%d, want 10", state.Points)
	}

	if _, err := svc.GetSkills(ctx, 4242); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("unknown user err=%v", err)
	}
}
