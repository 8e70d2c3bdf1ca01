package model

import "time"

// Role is the account role stored in users.role
type Role string

const (
	RoleCustomer Role = "USER"
	RoleMerchant Role = "MERCHANT"
	RoleAdmin    Role = "ADMIN"
)

// UserStatusActive is the only status the seeder assigns
const UserStatusActive = "ACTIVE"

// User is a row of the users table
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Username  string    `json:"username" gorm:"type:varchar(100);uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null"`
	Password  string    `json:"password,omitempty" gorm:"type:varchar(255);not null"`
	Nickname  string    `json:"nickname" gorm:"type:varchar(100)"`
	Avatar    *string   `json:"avatar" gorm:"type:varchar(255)"`
	Role      Role      `json:"role" gorm:"type:varchar(20);not null;index"`
	Status    string    `json:"status" gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
