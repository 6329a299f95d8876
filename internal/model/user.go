package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"size:20;default:'student'" json:"role"`

	// 成长状态，只能通过活动记录修改
	Points     int       `gorm:"not null;default:0" json:"points"`
	Streak     int       `gorm:"not null;default:0" json:"streak"`
	LastActive time.Time `json:"lastActive"`
	Version    int64     `gorm:"not null;default:0" json:"-"` // 乐观锁

	Skills []UserSkill `gorm:"foreignKey:UserID" json:"skills,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate 新账号的 LastActive 默认为创建时间
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.LastActive.IsZero() {
		if u.CreatedAt.IsZero() {
			u.CreatedAt = time.Now()
		}
		u.LastActive = u.CreatedAt
	}
	if u.Role == "" {
		u.Role = Student
	}
	return nil
}
