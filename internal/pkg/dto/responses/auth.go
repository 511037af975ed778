package responses

// NormalizedLogin is the role-independent shape of a backend login response.
type NormalizedLogin struct {
	AccessToken       string `json:"accessToken"`
	RefreshToken      string `json:"refreshToken"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
	DoctorID          string `json:"doctorId,omitempty"`
	PatientID         string `json:"patientId,omitempty"`
	ReceptionistID    string `json:"receptionistId,omitempty"`
	AssignedDoctorID  string `json:"assignedDoctorId,omitempty"`
}

type RefreshedTokens struct {
	AccessToken  string
	RefreshToken string
}

type Login struct {
	RedirectTo string  `json:"redirect"`
	Session    Session `json:"session"`
}

// Session is the browser-visible view of a session. Tokens never leave the portal.
type Session struct {
	IsLoggedIn       bool   `json:"is_logged_in"`
	UserType         string `json:"user_type,omitempty"`
	UserID           string `json:"user_id,omitempty"`
	UserFullName     string `json:"user_full_name,omitempty"`
	ProfilePhotoURL  string `json:"profile_photo_url,omitempty"`
	DoctorID         string `json:"doctor_id,omitempty"`
	PatientID        string `json:"patient_id,omitempty"`
	ReceptionistID   string `json:"receptionist_id,omitempty"`
	AssignedDoctorID string `json:"assigned_doctor_id,omitempty"`
}
