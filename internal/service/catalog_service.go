package service

import (
	"career_coach_backend/internal/model"
	"career_coach_backend/internal/util"
	"career_coach_backend/pkg/logger"
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CatalogService 持有当前生效的岗位目录，重新加载失败时保留旧目录
type CatalogService struct {
	source    CatalogSource
	tolerance float64

	mu       sync.RWMutex
	roles    []model.RoleProfile
	byID     map[string]model.RoleProfile
	loadedAt time.Time
}

func NewCatalogService(source CatalogSource, tolerance float64) *CatalogService {
	return &CatalogService{
		source:    source,
		tolerance: tolerance,
		byID:      map[string]model.RoleProfile{},
	}
}

// Load 从来源读取、校验并替换目录
func (s *CatalogService) Load(ctx context.Context) error {
	if s.source == nil {
		return errors.New("role catalog has no source configured")
	}
	data, err := s.source.Read(ctx)
	if err != nil {
		return err
	}
	roles, err := DecodeCatalog(s.source.Name(), data)
	if err != nil {
		return err
	}
	if err := s.Replace(roles); err != nil {
		return err
	}
	logger.Log.Info("role catalog loaded",
		zap.String("source", s.source.Name()),
		zap.Int("roles", len(roles)))
	return nil
}

// Replace 校验后整体替换目录
func (s *CatalogService) Replace(roles []model.RoleProfile) error {
	validated, err := ValidateCatalog(roles, s.tolerance)
	if err != nil {
		return err
	}

	byID := make(map[string]model.RoleProfile, len(validated))
	for _, r := range validated {
		byID[r.ID] = r
	}

	s.mu.Lock()
	s.roles = validated
	s.byID = byID
	s.loadedAt = time.Now()
	s.mu.Unlock()
	return nil
}

// Reload 供文件监听回调使用，失败只记录日志
func (s *CatalogService) Reload() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Load(ctx); err != nil {
		logger.Log.Error("role catalog reload failed, keeping previous catalog", zap.Error(err))
	}
}

// List 返回目录副本
func (s *CatalogService) List() []model.RoleProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.RoleProfile, len(s.roles))
	copy(out, s.roles)
	return out
}

func (s *CatalogService) Get(id string) (model.RoleProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byID[id]
	if !ok {
		return model.RoleProfile{}, util.ErrRoleNotFound
	}
	return r, nil
}

func (s *CatalogService) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Tolerance 目录权重容差，临时岗位校验时复用
func (s *CatalogService) Tolerance() float64 {
	return s.tolerance
}
