package entity

type UserRole string

const (
	RoleContractor UserRole = "contractor"
	RoleLandlord   UserRole = "landlord"
	RoleAdmin      UserRole = "admin"
)

type User struct {
	Base
	FullName     string   `db:"full_name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Phone        *string  `db:"phone"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}
