package service

import (
	"career_coach_backend/internal/config"
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/util"
	"errors"
	"testing"
)

func fullstackRole() model.RoleProfile {
	return model.RoleProfile{
		ID:    "fullstack-developer",
		Title: "Full Stack Developer",
		IdealSkills: []model.IdealSkill{
			{Name: "React", Weight: 0.5, IdealScore: 80},
			{Name: "Node.js", Weight: 0.5, IdealScore: 80},
		},
	}
}

func skills(pairs ...interface{}) []model.UserSkill {
	out := make([]model.UserSkill, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, model.UserSkill{
			Name:             pairs[i].(string),
			ProficiencyScore: pairs[i+1].(int),
			Category:         model.SkillTechnical,
		})
	}
	return out
}

func TestScoreFitPartialMatch(t *testing.T) {
	scorer := NewFitScorer(DefaultScoringPolicy())
	res, err := scorer.ScoreFit(skills("React", 80, "Node.js", 40), fullstackRole())
	if err != nil {
		t.Fatalf("ScoreFit: %v", err)
	}
	if res.FitScore != 75 {
		t.Fatalf("fitScore=%d, want 75", res.FitScore)
	}
	if res.PrepWindow != "6-12 months" {
		t.Fatalf("prepWindow=%q", res.PrepWindow)
	}
	if len(res.PerSkill) != 2 {
		t.Fatalf("perSkill=%v", res.PerSkill)
	}
	react, node := res.PerSkill[0], res.PerSkill[1]
	if react.Name != "React" || !react.HasSkill || !react.IsReady {
		t.Fatalf("react=%+v", react)
	}
	if node.Name != "Node.js" || !node.HasSkill || node.IsReady {
		t.Fatalf("node=%+v", node)
	}
}

func TestScoreFitBounds(t *testing.T) {
	scorer := NewFitScorer(DefaultScoringPolicy())

	full, err := scorer.ScoreFit(skills("React", 100, "Node.js", 95), fullstackRole())
	if err != nil {
		t.Fatalf("ScoreFit: %v", err)
	}
	if full.FitScore != 100 || full.PrepWindow != "1-3 months" {
		t.Fatalf("over-qualified=%d %q, want 100 capped", full.FitScore, full.PrepWindow)
	}

	none, err := scorer.ScoreFit(nil, fullstackRole())
	if err != nil {
		t.Fatalf("ScoreFit: %v", err)
	}
	if none.FitScore != 0 || none.PrepWindow != "12-18 months" {
		t.Fatalf("no skills=%d %q", none.FitScore, none.PrepWindow)
	}
	for _, s := range none.PerSkill {
		if s.HasSkill || s.IsReady || s.UserScore != 0 {
			t.Fatalf("missing skill reported as present: %+v", s)
		}
	}
}

func TestScoreFitMatchesNamesCaseInsensitively(t *testing.T) {
	scorer := NewFitScorer(DefaultScoringPolicy())
	res, err := scorer.ScoreFit(skills(" react ", 80, "NODE.JS", 80), fullstackRole())
	if err != nil {
		t.Fatalf("ScoreFit: %v", err)
	}
	if res.FitScore != 100 {
		t.Fatalf("fitScore=%d, want 100", res.FitScore)
	}
}

func TestScoreFitRejectsInvalidInput(t *testing.T) {
	scorer := NewFitScorer(DefaultScoringPolicy())

	if _, err := scorer.ScoreFit(nil, model.RoleProfile{ID: "empty"}); !errors.Is(err, util.ErrInvalidRole) {
		t.Fatalf("empty role err=%v, want ErrInvalidRole", err)
	}

	bad := fullstackRole()
	bad.IdealSkills[0].IdealScore = 0
	if _, err := scorer.ScoreFit(nil, bad); !errors.Is(err, util.ErrInvalidInput) {
		t.Fatalf("idealScore 0 err=%v", err)
	}

	if _, err := scorer.ScoreFit(skills("React", 120), fullstackRole()); !errors.Is(err, util.ErrInvalidInput) {
		t.Fatalf("proficiency 120 err=%v", err)
	}
}

func TestPrepWindowBreakpoints(t *testing.T) {
	p := DefaultScoringPolicy()
	cases := map[int]string{
		100: "1-3 months",
		91:  "1-3 months",
		90:  "3-6 months",
		80:  "3-6 months",
		79:  "6-12 months",
		60:  "6-12 months",
		59:  "12-18 months",
		0:   "12-18 months",
	}
	for fit, want := range cases {
		if got := p.PrepWindow(fit); got != want {
			t.Errorf("PrepWindow(%d)=%q, want %q", fit, got, want)
		}
	}
}

func TestScoringPolicyFromConfig(t *testing.T) {
	p := ScoringPolicyFromConfig(config.ScoringConfig{
		ReadinessRatio: 0.5,
		PrepWindows: []config.PrepWindowConfig{
			{MinGap: 0, Label: "soon"},
			{MinGap: 50, Label: "later"},
		},
	})
	if p.ReadinessRatio != 0.5 {
		t.Fatalf("readiness=%v", p.ReadinessRatio)
	}
	if got := p.PrepWindow(40); got != "later" {
		t.Fatalf("gap 60 -> %q", got)
	}
	if got := p.PrepWindow(100); got != "soon" {
		t.Fatalf("gap 0 -> %q", got)
	}

	d := ScoringPolicyFromConfig(config.ScoringConfig{})
	if d.ReadinessRatio != DefaultReadinessRatio || len(d.PrepWindows) != len(DefaultPrepWindows) {
		t.Fatalf("defaults not applied: %+v", d)
	}
}

func TestRankRolesDeterministic(t *testing.T) {
	roles := []model.RoleProfile{
		{ID: "b", Title: "Beta", IdealSkills: []model.IdealSkill{{Name: "Go", Weight: 1, IdealScore: 80}}},
		{ID: "a", Title: "Alpha", IdealSkills: []model.IdealSkill{{Name: "Go", Weight: 1, IdealScore: 80}}},
		{ID: "c", Title: "Gamma", IdealSkills: []model.IdealSkill{{Name: "SQL", Weight: 1, IdealScore: 80}}},
		{ID: "d", Title: "Alpha", IdealSkills: []model.IdealSkill{{Name: "Go", Weight: 1, IdealScore: 80}}},
	}
	scorer := NewFitScorer(DefaultScoringPolicy())
	res, err := scorer.RankRoles(skills("Go", 40, "SQL", 80), roles)
	if err != nil {
		t.Fatalf("RankRoles: %v", err)
	}
	got := make([]string, len(res))
	for i, r := range res {
		got[i] = r.RoleID
	}
	want := []string{"c", "a", "d", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order=%v, want %v", got, want)
		}
	}
}
