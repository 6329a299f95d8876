package service

import (
	"bytes"
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/util"
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultWeightTolerance 权重之和允许偏离 1.0 的范围
const DefaultWeightTolerance = 0.01

// DecodeCatalog 按扩展名解析 YAML/JSON 目录文件。
// 同时接受顶层 {roles: [...]} 和直接的数组。
func DecodeCatalog(name string, data []byte) ([]model.RoleProfile, error) {
	ext := strings.ToLower(filepath.Ext(name))
	trimmed := bytes.TrimSpace(data)

	var catalog model.RoleCatalog
	switch ext {
	case ".json":
		if len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &catalog.Roles); err != nil {
				return nil, util.InvalidInputf("decode catalog %s: %v", name, err)
			}
			return catalog.Roles, nil
		}
		if err := json.Unmarshal(trimmed, &catalog); err != nil {
			return nil, util.InvalidInputf("decode catalog %s: %v", name, err)
		}
	case ".yaml", ".yml", "":
		if len(trimmed) > 0 && trimmed[0] == '-' {
			if err := yaml.Unmarshal(trimmed, &catalog.Roles); err != nil {
				return nil, util.InvalidInputf("decode catalog %s: %v", name, err)
			}
			return catalog.Roles, nil
		}
		if err := yaml.Unmarshal(trimmed, &catalog); err != nil {
			return nil, util.InvalidInputf("decode catalog %s: %v", name, err)
		}
	default:
		return nil, util.InvalidInputf("unsupported catalog format %q", ext)
	}
	return catalog.Roles, nil
}

// ValidateCatalog 校验外部岗位目录并把权重归一化为 1.0，返回新切片，不修改入参。
// 权重之和偏离 1.0 超过 tolerance 的岗位直接拒绝。
func ValidateCatalog(roles []model.RoleProfile, tolerance float64) ([]model.RoleProfile, error) {
	if tolerance <= 0 {
		tolerance = DefaultWeightTolerance
	}

	out := make([]model.RoleProfile, 0, len(roles))
	seenIDs := make(map[string]struct{}, len(roles))
	for i, role := range roles {
		normalized, err := ValidateRole(role, tolerance)
		if err != nil {
			return nil, fmt.Errorf("role #%d: %w", i, err)
		}
		if _, dup := seenIDs[normalized.ID]; dup {
			return nil, util.InvalidInputf("duplicate role id %q", normalized.ID)
		}
		seenIDs[normalized.ID] = struct{}{}
		out = append(out, normalized)
	}
	return out, nil
}

// ValidateRole 校验单个岗位
func ValidateRole(role model.RoleProfile, tolerance float64) (model.RoleProfile, error) {
	role.ID = strings.TrimSpace(role.ID)
	role.Title = strings.TrimSpace(role.Title)
	if role.ID == "" {
		return role, util.InvalidInputf("role id is required")
	}
	if role.Title == "" {
		return role, util.InvalidInputf("role %q title is required", role.ID)
	}
	if len(role.IdealSkills) == 0 {
		return role, fmt.Errorf("role %q: %w", role.ID, util.ErrInvalidRole)
	}
	if err := validateIdealSkills(role); err != nil {
		return role, err
	}

	sum := 0.0
	seen := make(map[string]struct{}, len(role.IdealSkills))
	for _, s := range role.IdealSkills {
		key := model.SkillKey(s.Name)
		if _, dup := seen[key]; dup {
			return role, util.InvalidInputf("role %q lists skill %q twice", role.ID, s.Name)
		}
		seen[key] = struct{}{}
		sum += s.Weight
	}
	if sum <= 0 || math.Abs(sum-1) > tolerance {
		return role, util.InvalidInputf("role %q weights sum to %.4f, expected 1.0", role.ID, sum)
	}

	skills := make([]model.IdealSkill, len(role.IdealSkills))
	for i, s := range role.IdealSkills {
		skills[i] = model.IdealSkill{
			Name:       strings.TrimSpace(s.Name),
			Weight:     s.Weight / sum,
			IdealScore: s.IdealScore,
		}
	}
	role.IdealSkills = skills
	return role, nil
}
