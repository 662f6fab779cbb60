package model

// Artist represents a performer. Name is unique across artists.
type Artist struct {
	ID   int64   `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name string  `json:"name" gorm:"column:name"`
	Bio  *string `json:"bio" gorm:"column:bio"`
}

// TableName 指定表名
func (Artist) TableName() string {
	return "artists"
}
