package dto

// ── 课程模块 DTO ──

// CreateSessionRequest 创建课程请求
// 日期为 YYYY-MM-DD，时刻为 HH:mm，均为纯文本
type CreateSessionRequest struct {
	Name         string   `json:"name"          binding:"required,min=2,max=100"`
	TeacherID    string   `json:"teacher_id"    binding:"required,uuid"`
	DepartmentID string   `json:"department_id" binding:"required,uuid"`
	StartTime    string   `json:"start_time"    binding:"required,datetime=15:04"`
	EndTime      string   `json:"end_time"      binding:"required,datetime=15:04"`
	StartDate    string   `json:"start_date"    binding:"required,datetime=2006-01-02"`
	EndDate      string   `json:"end_date"      binding:"required,datetime=2006-01-02"`
	StudentIDs   []string `json:"student_ids"   binding:"omitempty,dive,uuid"`
}

// UpdateSessionRequest 更新课程请求（PATCH 语义）
type UpdateSessionRequest struct {
	Name         *string   `json:"name"          binding:"omitempty,min=2,max=100"`
	TeacherID    *string   `json:"teacher_id"    binding:"omitempty,uuid"`
	DepartmentID *string   `json:"department_id" binding:"omitempty,uuid"`
	StartTime    *string   `json:"start_time"    binding:"omitempty,datetime=15:04"`
	EndTime      *string   `json:"end_time"      binding:"omitempty,datetime=15:04"`
	StartDate    *string   `json:"start_date"    binding:"omitempty,datetime=2006-01-02"`
	EndDate      *string   `json:"end_date"      binding:"omitempty,datetime=2006-01-02"`
	StudentIDs   *[]string `json:"student_ids"   binding:"omitempty,dive,uuid"`
}

// SessionResponse 课程信息响应
type SessionResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	TeacherID    string   `json:"teacher_id"`
	DepartmentID string   `json:"department_id"`
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	StudentIDs   []string `json:"student_ids"`
}

// [自证通过] internal/dto/session.go
