package model

// User 用户表，对应 users
// 注册后不可修改
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Timezone     string `gorm:"type:varchar(64);not null;default:'UTC'"        json:"timezone"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }
