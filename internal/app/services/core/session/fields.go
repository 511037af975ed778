package session

import (
	"medportal-service/internal/app/models"
	"medportal-service/internal/pkg/constvars"
)

func setSessionField(session *models.Session, key, value string) bool {
	switch key {
	case constvars.SessionKeyToken:
		session.AccessToken = value
	case constvars.SessionKeyRefreshToken:
		session.RefreshToken = value
	case constvars.SessionKeyUserType:
		session.UserType = models.UserType(value)
	case constvars.SessionKeyUserID:
		session.UserID = value
	case constvars.SessionKeyUserFullName:
		session.UserFullName = value
	case constvars.SessionKeyUserProfilePictureURL:
		session.ProfilePhotoURL = value
	case constvars.SessionKeyDoctorID:
		session.DoctorID = value
	case constvars.SessionKeyPatientID:
		session.PatientID = value
	case constvars.SessionKeyReceptionistID:
		session.ReceptionistID = value
	case constvars.SessionKeyAssignedDoctorID:
		session.AssignedDoctorID = value
	default:
		return false
	}
	return true
}

func sessionValues(session models.Session) map[string]string {
	return map[string]string{
		constvars.SessionKeyToken:                 session.AccessToken,
		constvars.SessionKeyRefreshToken:          session.RefreshToken,
		constvars.SessionKeyUserType:              session.UserType.String(),
		constvars.SessionKeyUserID:                session.UserID,
		constvars.SessionKeyUserFullName:          session.UserFullName,
		constvars.SessionKeyUserProfilePictureURL: session.ProfilePhotoURL,
		constvars.SessionKeyDoctorID:              session.DoctorID,
		constvars.SessionKeyPatientID:             session.PatientID,
		constvars.SessionKeyReceptionistID:        session.ReceptionistID,
		constvars.SessionKeyAssignedDoctorID:      session.AssignedDoctorID,
	}
}
