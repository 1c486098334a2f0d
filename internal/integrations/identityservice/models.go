package identityservice

// Роли пользователей в IdentityService
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User модель пользователя из IdentityService
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"` // admin или user
}

// IsAdmin returns true if the user has the administrator role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ErrorResponse модель ошибки от IdentityService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
