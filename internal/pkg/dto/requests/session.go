package requests

// SessionAssignment records the doctor a receptionist works for. An empty id clears it.
type SessionAssignment struct {
	AssignedDoctorID string `json:"assigned_doctor_id" validate:"omitempty,max=64"`
}
