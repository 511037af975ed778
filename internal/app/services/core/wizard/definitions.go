package wizard

import (
	"medportal-service/internal/app/models"
	"medportal-service/internal/pkg/validators"
)

// Rule validates one field of a step against every field collected so far.
type Rule func(fields map[string]string) validators.Result

type Step struct {
	Name   string
	Fields []string
	Rules  []Rule
	// Photo steps accept the optional profile picture and carry no fields.
	Photo bool
}

type Definition struct {
	UserType models.UserType
	Steps    []Step
}

func (d Definition) StepNames() []string {
	names := make([]string, len(d.Steps))
	for i, step := range d.Steps {
		names[i] = step.Name
	}
	return names
}

func (d Definition) lastStep() int {
	return len(d.Steps) - 1
}

func field(name string, validate func(field, value string) validators.Result) Rule {
	return func(fields map[string]string) validators.Result {
		return validate(name, fields[name])
	}
}

var (
	accountStep = Step{
		Name:   "account",
		Fields: []string{"username", "email", "password", "confirmPassword"},
		Rules: []Rule{
			field("username", validators.Username),
			field("email", validators.Email),
			field("password", validators.Password),
			func(fields map[string]string) validators.Result {
				return validators.Match("confirmPassword", fields["confirmPassword"], "password", fields["password"])
			},
		},
	}

	personalStep = Step{
		Name:   "personal",
		Fields: []string{"firstName", "lastName", "phone"},
		Rules: []Rule{
			field("firstName", validators.Required),
			field("lastName", validators.Required),
			field("phone", validators.Phone),
		},
	}

	patientPersonalStep = Step{
		Name:   "personal",
		Fields: []string{"firstName", "lastName", "phone", "dateOfBirth", "gender"},
		Rules: []Rule{
			field("firstName", validators.Required),
			field("lastName", validators.Required),
			field("phone", validators.Phone),
			field("dateOfBirth", validators.Date),
			func(fields map[string]string) validators.Result {
				return validators.OneOf("gender", fields["gender"], "male", "female", "other")
			},
		},
	}

	professionalStep = Step{
		Name:   "professional",
		Fields: []string{"specialization", "licenseNumber"},
		Rules: []Rule{
			field("specialization", validators.Required),
			field("licenseNumber", validators.Required),
		},
	}

	photoStep = Step{Name: "photo", Photo: true}
)

var definitions = map[models.UserType]Definition{
	models.UserTypeDoctor: {
		UserType: models.UserTypeDoctor,
		Steps:    []Step{accountStep, personalStep, professionalStep, photoStep},
	},
	models.UserTypePatient: {
		UserType: models.UserTypePatient,
		Steps:    []Step{accountStep, patientPersonalStep, photoStep},
	},
	models.UserTypeReceptionist: {
		UserType: models.UserTypeReceptionist,
		Steps:    []Step{accountStep, personalStep, photoStep},
	},
}

func DefinitionFor(userType models.UserType) (Definition, bool) {
	definition, ok := definitions[userType]
	return definition, ok
}
