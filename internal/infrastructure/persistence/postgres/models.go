package postgres

import "time"

// UserModel é o model GORM para usuários. O endereço é achatado em colunas;
// a unicidade de email vale só para registros vivos (índice parcial na migration).
type UserModel struct {
	ID             string     `gorm:"type:uuid;primaryKey"`
	Name           string     `gorm:"type:varchar(255);not null"`
	Email          string     `gorm:"type:varchar(255);not null"`
	Phone          string     `gorm:"type:varchar(32);not null"`
	Company        string     `gorm:"type:varchar(255);not null;index"`
	Role           string     `gorm:"type:varchar(20);not null;index"`
	AddressStreet  string     `gorm:"type:varchar(255);not null"`
	AddressCity    string     `gorm:"type:varchar(120);not null"`
	AddressZipcode string     `gorm:"type:varchar(20);not null"`
	GeoLat         string     `gorm:"type:varchar(32);not null"`
	GeoLng         string     `gorm:"type:varchar(32);not null"`
	AvatarURL      *string    `gorm:"type:varchar(500)"`
	CreatedAt      time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`
	DeletedAt      *time.Time `gorm:"index"` // Soft delete
}

func (UserModel) TableName() string {
	return "users"
}
