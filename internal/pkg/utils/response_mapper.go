package utils

import (
	"medportal-service/internal/app/models"
	"medportal-service/internal/pkg/dto/responses"
)

// BuildSessionResponse maps a session to its browser view, leaving the tokens out.
func BuildSessionResponse(session models.Session) responses.Session {
	if !session.IsLoggedIn {
		return responses.Session{}
	}
	return responses.Session{
		IsLoggedIn:       true,
		UserType:         session.UserType.String(),
		UserID:           session.UserID,
		UserFullName:     session.UserFullName,
		ProfilePhotoURL:  session.ProfilePhotoURL,
		DoctorID:         session.DoctorID,
		PatientID:        session.PatientID,
		ReceptionistID:   session.ReceptionistID,
		AssignedDoctorID: session.AssignedDoctorID,
	}
}
