package model

import (
	"atrium/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID         = "id"
	FieldEmail      = "email"
	FieldFullName   = "full_name"
	FieldRole       = "role"
	FieldStatus     = "status"
	FieldDepartment = "department"
	FieldPhone      = "phone"
)

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

type User struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	FullName     string `db:"full_name"`
	Role         string `db:"role"`
	Status       string `db:"status"`
	Department   string `db:"department"`
	Phone        string `db:"phone"`
	model.Metadata
}
