package repository

import (
	"context"

	"github.com/anseninnov/conference-registration/app/entity"
)

type VisaRequestRepository struct {
	db DBTX
}

func NewVisaRequestRepository(db DBTX) *VisaRequestRepository {
	return &VisaRequestRepository{db: db}
}

func (r *VisaRequestRepository) Create(ctx context.Context, request *entity.VisaRequest) error {
	query := `
		INSERT INTO asiacrypt_visa_request (
			type, title, other_title, first_name, middle_name, last_name, email,
			date_of_birth, nationality, institute, paper_title, academic_profile,
			conference_interests, iacr_experience, file_key, file_name, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		request.Type,
		request.Title,
		nullableStringValue(request.OtherTitle),
		request.FirstName,
		nullableStringValue(request.MiddleName),
		request.LastName,
		request.Email,
		nullableTimeValue(request.DateOfBirth),
		nullableStringValue(request.Nationality),
		nullableStringValue(request.Institute),
		nullableStringValue(request.PaperTitle),
		nullableStringValue(request.AcademicProfile),
		nullableStringValue(request.ConferenceInterests),
		nullableStringValue(request.IACRExperience),
		nullableStringValue(request.FileKey),
		nullableStringValue(request.FileName),
		request.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	request.ID = uint64(id)

	return nil
}
