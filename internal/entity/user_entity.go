package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleCustomer    UserRole = "customer"
	UserRoleGymOwner    UserRole = "gym_owner"
	UserRoleFreelancePt UserRole = "freelance_pt"
	UserRoleAdmin       UserRole = "admin"
)

type User struct {
	Id        uuid.UUID
	Email     string
	FullName  string
	Phone     string
	Role      UserRole
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
