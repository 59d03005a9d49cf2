package entity

import "time"

// Sub-form discriminators for asiacrypt_visa_request.type.
const (
	VisaRequestTypeInvitation    int32 = 1
	VisaRequestTypeTravelStipend int32 = 2
	VisaRequestTypeStudentWaiver int32 = 3
)

// VisaRequest is a visa-invitation, travel-stipend, or student-waiver
// application. Created once at submission, never mutated.
type VisaRequest struct {
	ID uint64

	Type int32

	Title      string
	OtherTitle *string
	FirstName  string
	MiddleName *string
	LastName   string
	Email      string

	DateOfBirth *time.Time
	Nationality *string
	Institute   *string

	PaperTitle          *string
	AcademicProfile     *string
	ConferenceInterests *string
	IACRExperience      *string

	FileKey  *string
	FileName *string

	CreatedAt time.Time
}
