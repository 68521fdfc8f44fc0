package models

import "time"

// UserRole is the platform role stored in usuario.rol.
type UserRole string

const (
	RoleAdmin   UserRole = "administrador"
	RoleTeacher UserRole = "profesor"
	RoleStudent UserRole = "estudiante"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// User is a row of the shared usuario table.
type User struct {
	ID           string     `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password" json:"-"`
	FullName     *string    `db:"nombre_completo" json:"nombre_completo"`
	Role         UserRole   `db:"rol" json:"rol"`
	AvatarURL    *string    `db:"avatar_url" json:"avatar_url"`
	Active       bool       `db:"activo" json:"activo"`
	LastAccess   *time.Time `db:"ultimo_acceso" json:"ultimo_acceso"`
	CreatedAt    time.Time  `db:"fecha_creacion" json:"fecha_creacion"`
	UpdatedAt    time.Time  `db:"fecha_actualizacion" json:"fecha_actualizacion"`
}

// DisplayName prefers the full name and falls back to the username.
func (u User) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Username
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Role      *UserRole
	Active    *bool
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// CreateUserRequest is the admin payload for creating a user.
type CreateUserRequest struct {
	Username  string   `json:"username" validate:"required,min=3,max=150"`
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=8"`
	FullName  string   `json:"nombre_completo" validate:"omitempty,max=255"`
	Role      UserRole `json:"rol" validate:"required,oneof=administrador profesor estudiante"`
	AvatarURL string   `json:"avatar_url" validate:"omitempty,url"`
	Active    *bool    `json:"activo"`
}

// UpdateUserRequest is a partial update; nil fields are left unchanged.
type UpdateUserRequest struct {
	Username  *string   `json:"username" validate:"omitempty,min=3,max=150"`
	Email     *string   `json:"email" validate:"omitempty,email"`
	Password  *string   `json:"password" validate:"omitempty,min=8"`
	FullName  *string   `json:"nombre_completo" validate:"omitempty,max=255"`
	Role      *UserRole `json:"rol" validate:"omitempty,oneof=administrador profesor estudiante"`
	AvatarURL *string   `json:"avatar_url" validate:"omitempty,url"`
	Active    *bool     `json:"activo"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
