package model

// Event 时间槽表，对应 events
// StartTime/EndTime 为调用方提供的原始字符串，服务端不解析、不校验先后顺序
type Event struct {
	EventID   string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    string      `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Title     string      `gorm:"type:varchar(200);not null"                     json:"title"`
	StartTime string      `gorm:"type:varchar(64);not null"                      json:"start_time"`
	EndTime   string      `gorm:"type:varchar(64);not null"                      json:"end_time"`
	Status    EventStatus `gorm:"type:varchar(20);not null;default:'BUSY';index" json:"status"`
	VersionedModel
}

// TableName 指定表名
func (Event) TableName() string { return "events" }
