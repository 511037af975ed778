package models

import "medportal-service/internal/pkg/constvars"

type UserType string

const (
	UserTypePatient      UserType = constvars.UserTypePatient
	UserTypeDoctor       UserType = constvars.UserTypeDoctor
	UserTypeReceptionist UserType = constvars.UserTypeReceptionist
)

func ParseUserType(value string) (UserType, bool) {
	userType := UserType(value)
	return userType, userType.IsValid()
}

func (u UserType) IsValid() bool {
	switch u {
	case UserTypePatient, UserTypeDoctor, UserTypeReceptionist:
		return true
	default:
		return false
	}
}

func (u UserType) String() string {
	return string(u)
}
