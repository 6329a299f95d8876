package service

import (
	"career_coach_backend/internal/config"
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/util"
	"math"
	"sort"
)

// PrepWindowRule gap >= MinGap 时使用 Label，规则按 MinGap 降序匹配
type PrepWindowRule struct {
	MinGap int
	Label  string
}

// DefaultPrepWindows gap>40 / 20<gap<=40 / 10<=gap<=20 / gap<10
var DefaultPrepWindows = []PrepWindowRule{
	{MinGap: 41, Label: "12-18 months"},
	{MinGap: 21, Label: "6-12 months"},
	{MinGap: 10, Label: "3-6 months"},
	{MinGap: math.MinInt, Label: "1-3 months"},
}

const DefaultReadinessRatio = 0.6

// ScoringPolicy 匹配度计算策略
type ScoringPolicy struct {
	ReadinessRatio float64
	PrepWindows    []PrepWindowRule
}

func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		ReadinessRatio: DefaultReadinessRatio,
		PrepWindows:    DefaultPrepWindows,
	}
}

// ScoringPolicyFromConfig 未配置的项使用默认值
func ScoringPolicyFromConfig(cfg config.ScoringConfig) ScoringPolicy {
	p := DefaultScoringPolicy()
	if cfg.ReadinessRatio > 0 {
		p.ReadinessRatio = cfg.ReadinessRatio
	}
	if len(cfg.PrepWindows) > 0 {
		rules := make([]PrepWindowRule, 0, len(cfg.PrepWindows))
		for _, w := range cfg.PrepWindows {
			rules = append(rules, PrepWindowRule{MinGap: w.MinGap, Label: w.Label})
		}
		sort.SliceStable(rules, func(i, j int) bool { return rules[i].MinGap > rules[j].MinGap })
		// 最后一条兜底所有更小的 gap
		rules[len(rules)-1].MinGap = math.MinInt
		p.PrepWindows = rules
	}
	return p
}

// PrepWindow 根据 gap = 100 - fitScore 选择准备周期
func (p ScoringPolicy) PrepWindow(fitScore int) string {
	gap := 100 - fitScore
	for _, r := range p.PrepWindows {
		if gap >= r.MinGap {
			return r.Label
		}
	}
	return ""
}

// SkillFit 单项技能的匹配情况
type SkillFit struct {
	Name       string  `json:"name"`
	HasSkill   bool    `json:"hasSkill"`
	IsReady    bool    `json:"isReady"`
	UserScore  int     `json:"userScore"`
	IdealScore int     `json:"idealScore"`
	Weight     float64 `json:"weight"`
}

// FitResult 单个岗位的匹配结果，不落库
type FitResult struct {
	RoleID     string     `json:"roleId"`
	Title      string     `json:"title"`
	FitScore   int        `json:"fitScore"`
	PerSkill   []SkillFit `json:"perSkill"`
	PrepWindow string     `json:"prepWindowBucket"`
}

// FitScorer 纯计算，无状态，可并发调用
type FitScorer struct {
	Policy ScoringPolicy
}

func NewFitScorer(policy ScoringPolicy) *FitScorer {
	return &FitScorer{Policy: policy}
}

// ScoreFit 计算用户技能与岗位理想技能向量的加权匹配度
func (s *FitScorer) ScoreFit(userSkills []model.UserSkill, role model.RoleProfile) (*FitResult, error) {
	if len(role.IdealSkills) == 0 {
		return nil, util.ErrInvalidRole
	}
	if err := validateIdealSkills(role); err != nil {
		return nil, err
	}

	// 第一个同名技能生效
	byKey := make(map[string]int, len(userSkills))
	for _, us := range userSkills {
		if us.ProficiencyScore < 0 || us.ProficiencyScore > 100 {
			return nil, util.InvalidInputf("skill %q proficiency %d out of range [0,100]", us.Name, us.ProficiencyScore)
		}
		key := model.SkillKey(us.Name)
		if _, seen := byKey[key]; !seen {
			byKey[key] = us.ProficiencyScore
		}
	}

	total := 0.0
	perSkill := make([]SkillFit, 0, len(role.IdealSkills))
	for _, ideal := range role.IdealSkills {
		userScore, has := byKey[model.SkillKey(ideal.Name)]
		capped := math.Min(float64(userScore), float64(ideal.IdealScore))
		total += capped / float64(ideal.IdealScore) * ideal.Weight * 100

		perSkill = append(perSkill, SkillFit{
			Name:       ideal.Name,
			HasSkill:   has,
			IsReady:    float64(userScore) >= float64(ideal.IdealScore)*s.Policy.ReadinessRatio,
			UserScore:  userScore,
			IdealScore: ideal.IdealScore,
			Weight:     ideal.Weight,
		})
	}

	fit := int(math.Round(total))
	return &FitResult{
		RoleID:     role.ID,
		Title:      role.Title,
		FitScore:   fit,
		PerSkill:   perSkill,
		PrepWindow: s.Policy.PrepWindow(fit),
	}, nil
}

// RankRoles 对所有岗位打分，按匹配度降序，分数相同按标题、ID 升序
func (s *FitScorer) RankRoles(userSkills []model.UserSkill, roles []model.RoleProfile) ([]FitResult, error) {
	results := make([]FitResult, 0, len(roles))
	for _, role := range roles {
		r, err := s.ScoreFit(userSkills, role)
		if err != nil {
			return nil, err
		}
		results = append(results, *r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.FitScore != b.FitScore {
			return a.FitScore > b.FitScore
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		return a.RoleID < b.RoleID
	})
	return results, nil
}

func validateIdealSkills(role model.RoleProfile) error {
	for _, ideal := range role.IdealSkills {
		if model.SkillKey(ideal.Name) == "" {
			return util.InvalidInputf("role %q has an ideal skill without name", role.ID)
		}
		if ideal.Weight < 0 || math.IsNaN(ideal.Weight) || math.IsInf(ideal.Weight, 0) {
			return util.InvalidInputf("role %q skill %q has invalid weight %v", role.ID, ideal.Name, ideal.Weight)
		}
		if ideal.IdealScore <= 0 || ideal.IdealScore > 100 {
			return util.InvalidInputf("role %q skill %q idealScore %d out of range (0,100]", role.ID, ideal.Name, ideal.IdealScore)
		}
	}
	return nil
}
