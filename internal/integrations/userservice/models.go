package userservice

// Resident модель жителя из UserService
type Resident struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Building string   `json:"building"` // Корпус жилого комплекса
	Unit     string   `json:"unit"`
	Roles    []string `json:"roles"`
}

// IsAdmin проверяет, есть ли у жителя роль администратора
func (r *Resident) IsAdmin() bool {
	for _, role := range r.Roles {
		if role == RoleAdmin || role == RoleManager {
			return true
		}
	}
	return false
}

// Роли пользователей в UserService
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
