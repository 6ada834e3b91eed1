package model

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
