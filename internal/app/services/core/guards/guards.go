package guards

import (
	"context"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/app/models"
	"medportal-service/internal/pkg/constvars"
)

type Capability string

const (
	CapabilityPublic               Capability = "public"
	CapabilityAuthenticated        Capability = "authenticated"
	CapabilityDoctor               Capability = "doctor"
	CapabilityReceptionist         Capability = "receptionist"
	CapabilityAssignedReceptionist Capability = "assigned_receptionist"
)

type Decision struct {
	Allow      bool
	RedirectTo string
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(path string) Decision {
	return Decision{RedirectTo: path}
}

// Evaluate decides whether session may open a page requiring capability.
// Checks run in order: logged out, role mismatch, missing assignment.
func Evaluate(session models.Session, capability Capability) Decision {
	if capability == CapabilityPublic {
		return allow()
	}
	if !session.IsLoggedIn {
		return redirect(constvars.PathLogin)
	}

	switch capability {
	case CapabilityAuthenticated:
		return allow()
	case CapabilityDoctor:
		if session.UserType != models.UserTypeDoctor {
			return redirect(HomePath(session))
		}
		return allow()
	case CapabilityReceptionist:
		if session.UserType != models.UserTypeReceptionist {
			return redirect(HomePath(session))
		}
		return allow()
	case CapabilityAssignedReceptionist:
		if session.UserType != models.UserTypeReceptionist {
			return redirect(HomePath(session))
		}
		if session.AssignedDoctorID == "" {
			return redirect(constvars.PathReceptionistJobOffers)
		}
		return allow()
	default:
		return redirect(constvars.PathLogin)
	}
}

// EvaluateContext evaluates against the live Session Context. A receptionist
// whose assignment is missing in memory is checked against the persisted store
// and the context is hydrated on a hit.
func EvaluateContext(ctx context.Context, sessionContext contracts.SessionContext, capability Capability) Decision {
	session := sessionContext.Snapshot()
	decision := Evaluate(session, capability)
	if decision.Allow || capability != CapabilityAssignedReceptionist || decision.RedirectTo != constvars.PathReceptionistJobOffers {
		return decision
	}

	assignedDoctorID, ok := sessionContext.LoadPersisted(ctx, constvars.SessionKeyAssignedDoctorID)
	if !ok {
		return decision
	}
	sessionContext.Hydrate(constvars.SessionKeyAssignedDoctorID, assignedDoctorID)
	return Evaluate(sessionContext.Snapshot(), capability)
}

// HomePath is the landing page for the session's role.
func HomePath(session models.Session) string {
	if !session.IsLoggedIn {
		return constvars.PathLogin
	}
	switch session.UserType {
	case models.UserTypeDoctor:
		return constvars.PathDoctorDashboard
	case models.UserTypePatient:
		return constvars.PathPatientDashboard
	case models.UserTypeReceptionist:
		if !session.IsAssignedReceptionist() {
			return constvars.PathReceptionistJobOffers
		}
		return constvars.PathReceptionistDashboard
	default:
		return constvars.PathLogin
	}
}
