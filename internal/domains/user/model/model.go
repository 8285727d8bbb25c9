package model

import (
	"time"

	"rentwheels/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldName      = "name"
	FieldEmail     = "email"
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldLastLogin = "last_login"
)

const (
	CacheGetUser    = "user:get"
	CacheGetAllUser = "user:gets"
	CacheCountUser  = "user:count"
)

var SortableFields = []string{FieldName, FieldUsername, FieldEmail, "created_at"}

type User struct {
	ID        string     `db:"id"`
	Name      string     `db:"name"`
	Email     string     `db:"email"`
	Username  string     `db:"username"`
	Password  string     `db:"password"`
	Role      string     `db:"role"`
	LastLogin *time.Time `db:"last_login"`
	model.Metadata
}
