package constvars

// Persisted session store keys.
const (
	SessionKeyToken                 = "token"
	SessionKeyRefreshToken          = "refreshToken"
	SessionKeyUserType              = "userType"
	SessionKeyUserID                = "userId"
	SessionKeyUserFullName          = "userFullName"
	SessionKeyUserProfilePictureURL = "userProfilePictureUrl"
	SessionKeyDoctorID              = "doctorId"
	SessionKeyPatientID             = "patientId"
	SessionKeyReceptionistID        = "receptionistId"
	SessionKeyAssignedDoctorID      = "assignedDoctorId"
)

var SessionKeys = []string{
	SessionKeyToken,
	SessionKeyRefreshToken,
	SessionKeyUserType,
	SessionKeyUserID,
	SessionKeyUserFullName,
	SessionKeyUserProfilePictureURL,
	SessionKeyDoctorID,
	SessionKeyPatientID,
	SessionKeyReceptionistID,
	SessionKeyAssignedDoctorID,
}

const (
	BrowserSessionCookieName = "portal_sid"
	BrowserSessionClaimID    = "session_id"
	RedisSessionKeyFormat    = "portal:session:%s"
)

const (
	PathHome                  = "/"
	PathLogin                 = "/login"
	PathDoctorDashboard       = "/doctor-dashboard"
	PathPatientDashboard      = "/patient-dashboard"
	PathReceptionistDashboard = "/receptionist-dashboard"
	PathReceptionistJobOffers = "/receptionist/job-offers"
)
