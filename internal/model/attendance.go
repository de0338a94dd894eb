package model

import "time"

// AttendanceRecord 考勤记录表 — 对应 attendance_records
// 一门课某一天的点名结果快照：课程花名册后续变更不回写历史记录。
// TeacherID 为课程归属教师的冗余快照。
type AttendanceRecord struct {
	RecordID          string      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"  json:"id"`
	Date              string      `gorm:"type:varchar(10);not null;uniqueIndex:uq_attendance_session_date,priority:2" json:"date"` // YYYY-MM-DD
	SessionID         string      `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_session_date,priority:1"        json:"session_id"`
	TeacherID         string      `gorm:"type:uuid;not null"                                        json:"teacher_id"`
	PresentStudentIDs StringArray `gorm:"type:text[];not null"                                      json:"present_student_ids"`
	ActualStartTime   *time.Time  `json:"actual_start_time,omitempty"`
	ActualEndTime     *time.Time  `json:"actual_end_time,omitempty"`
	DurationHours     float64     `gorm:"type:real;not null"                                        json:"duration_hours"`
	BaseModel

	// 关联
	Session *Session `gorm:"foreignKey:SessionID;references:SessionID" json:"session,omitempty"`
	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

// TableName 指定表名
func (AttendanceRecord) TableName() string { return "attendance_records" }

// [自证通过] internal/model/attendance.go
