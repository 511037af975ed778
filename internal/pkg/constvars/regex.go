package constvars

const (
	RegexContainAtLeastOneSpecialChar = `.*[!@#$%^&*(),.?":{}|<>_\-].*`
	RegexContainAtLeastOneUppercase   = `.*[A-Z].*`
	RegexContainAtLeastOneLowercase   = `.*[a-z].*`
	RegexContainAtLeastOneDigit       = `.*\d.*`
	RegexEmail                        = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	RegexUsername                     = `^[a-zA-Z0-9_]{3,20}$`
	RegexPhoneNumber                  = `^\+?[0-9]{10,15}$`
	RegexDateYYYYMMDD                 = `^\d{4}-\d{2}-\d{2}$`
	RegexResourceID                   = `^[a-zA-Z0-9_-]{1,64}$`
)
