package models

// Session is the authenticated identity of one browser session.
// Exactly one of DoctorID, PatientID and ReceptionistID is set for a logged in user,
// matching UserType. AssignedDoctorID only carries meaning for receptionists.
type Session struct {
	IsLoggedIn       bool
	UserType         UserType
	UserID           string
	AccessToken      string
	RefreshToken     string
	UserFullName     string
	ProfilePhotoURL  string
	DoctorID         string
	PatientID        string
	ReceptionistID   string
	AssignedDoctorID string
}

// RoleID returns the role-specific identifier matching UserType.
func (s Session) RoleID() string {
	switch s.UserType {
	case UserTypeDoctor:
		return s.DoctorID
	case UserTypePatient:
		return s.PatientID
	case UserTypeReceptionist:
		return s.ReceptionistID
	default:
		return ""
	}
}

func (s Session) IsAssignedReceptionist() bool {
	return s.UserType == UserTypeReceptionist && s.AssignedDoctorID != ""
}
