package dto

// ── 学生模块 DTO ──

// CreateStudentRequest 创建学生请求
type CreateStudentRequest struct {
	Name  string `json:"name"  binding:"required,min=2,max=100"`
	Grade string `json:"grade" binding:"required,max=50"`
}

// UpdateStudentRequest 更新学生请求
type UpdateStudentRequest struct {
	Name  *string `json:"name"  binding:"omitempty,min=2,max=100"`
	Grade *string `json:"grade" binding:"omitempty,max=50"`
}

// StudentResponse 学生信息响应
type StudentResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Grade string `json:"grade"`
}

// [自证通过] internal/dto/student.go
