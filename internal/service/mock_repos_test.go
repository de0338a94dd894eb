package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"rollcall/internal/model"
	"rollcall/internal/repository"
)

// ── Mock AdminRepository ──

type mockAdminRepo struct {
	admins map[string]*model.Admin
	seq    int
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{admins: make(map[string]*model.Admin)}
}

func (m *mockAdminRepo) Create(_ context.Context, admin *model.Admin) error {
	if admin.AdminID == "" {
		m.seq++
		admin.AdminID = fmt.Sprintf("admin-%03d", m.seq)
	}
	m.admins[admin.AdminID] = admin
	return nil
}

func (m *mockAdminRepo) GetByID(_ context.Context, id string) (*model.Admin, error) {
	if a, ok := m.admins[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	for _, a := range m.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) GetByMobile(_ context.Context, mobile string) (*model.Admin, error) {
	for _, a := range m.admins {
		if a.Mobile == mobile {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) List(_ context.Context) ([]model.Admin, error) {
	var result []model.Admin
	for _, a := range m.admins {
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAdminRepo) Delete(_ context.Context, id string) error {
	delete(m.admins, id)
	return nil
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	teachers map[string]*model.Teacher
	seq      int
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{teachers: make(map[string]*model.Teacher)}
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	if teacher.TeacherID == "" {
		m.seq++
		teacher.TeacherID = fmt.Sprintf("teacher-%03d", m.seq)
	}
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) GetByEmail(_ context.Context, email string) (*model.Teacher, error) {
	for _, t := range m.teachers {
		if t.Email == email {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) GetByMobile(_ context.Context, mobile string) (*model.Teacher, error) {
	for _, t := range m.teachers {
		if t.Mobile == mobile {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) List(_ context.Context) ([]model.Teacher, error) {
	var result []model.Teacher
	for _, t := range m.teachers {
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTeacherRepo) ListByIDs(_ context.Context, ids []string) ([]model.Teacher, error) {
	var result []model.Teacher
	for _, id := range ids {
		if t, ok := m.teachers[id]; ok {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTeacherRepo) Update(_ context.Context, teacher *model.Teacher) error {
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) Delete(_ context.Context, id string) error {
	delete(m.teachers, id)
	return nil
}

// ── Mock DepartmentRepository ──

type mockDeptRepo struct {
	departments   map[string]*model.Department
	sessionCounts map[string]int64
	seq           int
}

func newMockDeptRepo() *mockDeptRepo {
	return &mockDeptRepo{
		departments:   make(map[string]*model.Department),
		sessionCounts: make(map[string]int64),
	}
}

func (m *mockDeptRepo) Create(_ context.Context, dept *model.Department) error {
	if dept.DepartmentID == "" {
		m.seq++
		dept.DepartmentID = fmt.Sprintf("dept-%03d", m.seq)
	}
	m.departments[dept.DepartmentID] = dept
	return nil
}

func (m *mockDeptRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	if d, ok := m.departments[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) GetByName(_ context.Context, name string) (*model.Department, error) {
	for _, d := range m.departments {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) List(_ context.Context) ([]model.Department, error) {
	var result []model.Department
	for _, d := range m.departments {
		result = append(result, *d)
	}
	return result, nil
}

func (m *mockDeptRepo) Update(_ context.Context, dept *model.Department) error {
	m.departments[dept.DepartmentID] = dept
	return nil
}

func (m *mockDeptRepo) Delete(_ context.Context, id string) error {
	delete(m.departments, id)
	return nil
}

func (m *mockDeptRepo) CountSessions(_ context.Context, departmentID string) (int64, error) {
	return m.sessionCounts[departmentID], nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
	seq      int
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.StudentID == "" {
		m.seq++
		student.StudentID = fmt.Sprintf("student-%03d", m.seq)
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.students {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id string) error {
	delete(m.students, id)
	return nil
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions map[string]*model.Session
	seq      int
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.Session)}
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.Session) error {
	if session.SessionID == "" {
		m.seq++
		session.SessionID = fmt.Sprintf("session-%03d", m.seq)
	}
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) List(_ context.Context) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSessionRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		if s.TeacherID == teacherID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSessionRepo) ListByStudent(_ context.Context, studentID string) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		if s.StudentIDs.Contains(studentID) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSessionRepo) Update(_ context.Context, session *model.Session) error {
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockSessionRepo) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records map[string]*model.AttendanceRecord
	seq     int

	// dupOnNextCreate 置位时下一次 Create 返回 gorm.ErrDuplicatedKey，
	// 模拟预检与插入之间被并发写入抢先的竞态
	dupOnNextCreate bool
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[string]*model.AttendanceRecord)}
}

func (m *mockAttendanceRepo) Create(_ context.Context, record *model.AttendanceRecord) error {
	if m.dupOnNextCreate {
		m.dupOnNextCreate = false
		return gorm.ErrDuplicatedKey
	}
	// 模拟 UNIQUE(session_id, date) 约束
	for _, r := range m.records {
		if r.SessionID == record.SessionID && r.Date == record.Date {
			return gorm.ErrDuplicatedKey
		}
	}
	if record.RecordID == "" {
		m.seq++
		record.RecordID = fmt.Sprintf("record-%03d", m.seq)
	}
	m.records[record.RecordID] = record
	return nil
}

func (m *mockAttendanceRepo) GetByID(_ context.Context, id string) (*model.AttendanceRecord, error) {
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) GetBySessionAndDate(_ context.Context, sessionID, date string) (*model.AttendanceRecord, error) {
	for _, r := range m.records {
		if r.SessionID == sessionID && r.Date == date {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) ListByFilters(_ context.Context, filters *repository.AttendanceFilters) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if filters != nil {
			if filters.StartDate != "" && r.Date < filters.StartDate {
				continue
			}
			if filters.EndDate != "" && r.Date > filters.EndDate {
				continue
			}
			if filters.TeacherID != "" && r.TeacherID != filters.TeacherID {
				continue
			}
			if filters.SessionID != "" && r.SessionID != filters.SessionID {
				continue
			}
			if filters.StudentID != "" && !r.PresentStudentIDs.Contains(filters.StudentID) {
				continue
			}
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListBySessionIDs(_ context.Context, sessionIDs []string, startDate, endDate string) ([]model.AttendanceRecord, error) {
	idSet := make(map[string]bool, len(sessionIDs))
	for _, id := range sessionIDs {
		idSet[id] = true
	}
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if !idSet[r.SessionID] {
			continue
		}
		if startDate != "" && r.Date < startDate {
			continue
		}
		if endDate != "" && r.Date > endDate {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockAttendanceRepo) Update(_ context.Context, record *model.AttendanceRecord) error {
	m.records[record.RecordID] = record
	return nil
}

func (m *mockAttendanceRepo) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
