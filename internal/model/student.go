package model

// Student 学生表 — 对应 students
// 学生没有登录身份，仅作为花名册条目
type Student struct {
	StudentID string `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string `gorm:"type:varchar(100);not null"                               json:"name"`
	Grade     string `gorm:"type:varchar(50);not null"                                json:"grade"`
	BaseModel
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// [自证通过] internal/model/student.go
