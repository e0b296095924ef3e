package entity

import (
	"time"
)

// Role 사용자 역할
const (
	RoleSystemAdmin = "system_admin"
	RoleAdmin       = "admin"
	RoleUser        = "user"
)

// ValidRole 알려진 역할인지 검사
func ValidRole(role string) bool {
	switch role {
	case RoleSystemAdmin, RoleAdmin, RoleUser:
		return true
	}
	return false
}

// User 로그인 계정
type User struct {
	UserID       int64      `json:"user_id" gorm:"primaryKey;autoIncrement"`
	Username     string     `json:"username" gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string     `json:"-" gorm:"size:100;not null"`
	FullName     string     `json:"full_name" gorm:"size:100"`
	Email        string     `json:"email" gorm:"size:100"`
	Role         string     `json:"role" gorm:"size:20;not null;default:user"`
	IsActive     bool       `json:"is_active" gorm:"not null;default:true"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
