package models

import "time"

type User struct {
	ID           string     `db:"id" json:"id"`
	Fullname     string     `db:"fullname" json:"fullname"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password" json:"-"`
	Role         string     `db:"role" json:"role"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	DeletedAt    *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

type Driver struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Phone         string    `db:"phone" json:"phone"`
	LicenseNumber string    `db:"license_number" json:"license_number"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
