package model

// User owns zero or more playlists. PasswordHash is opaque to the catalog.
type User struct {
	ID           int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Username     string `json:"username" gorm:"column:username"`
	Email        string `json:"email" gorm:"column:email"`
	PasswordHash string `json:"-" gorm:"column:password_hash"` // Not exposed in API responses
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
