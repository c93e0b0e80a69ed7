package domain

type Role string

const (
	RoleStudent    Role = "student"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

// Identity is the authenticated caller.
type Identity struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

// CanReadStudent reports whether the caller may see the student's data.
// Students only see their own.
func (i Identity) CanReadStudent(studentID string) bool {
	return i.Role != RoleStudent || i.UserID == studentID
}
