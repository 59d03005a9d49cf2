package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/anseninnov/conference-registration/app/entity"
	"github.com/anseninnov/conference-registration/app/factory"
	"github.com/anseninnov/conference-registration/app/types"
)

type visaRequestStore interface {
	Create(ctx context.Context, request *entity.VisaRequest) error
}

// VisaService stores visa invitation, travel stipend and student
// waiver requests.
type VisaService struct {
	requests visaRequestStore
	logger   logrus.FieldLogger
	now      func() time.Time
}

func NewVisaService(requests visaRequestStore) *VisaService {
	return &VisaService{
		requests: requests,
		logger:   factory.NewModuleLogger("visa_service"),
		now:      time.Now,
	}
}

func (s *VisaService) CreateVisaRequest(ctx context.Context, req *types.CreateVisaRequestRequest) (uint64, error) {
	dateOfBirth, err := req.ParsedDateOfBirth()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	request := &entity.VisaRequest{
		Type:                req.Type,
		Title:               req.Title,
		OtherTitle:          optionalString(req.OtherTitle),
		FirstName:           req.FirstName,
		MiddleName:          optionalString(req.MiddleName),
		LastName:            req.LastName,
		Email:               req.Email,
		DateOfBirth:         dateOfBirth,
		Nationality:         optionalString(req.Nationality),
		Institute:           optionalString(req.Institute),
		PaperTitle:          optionalString(req.PaperTitle),
		AcademicProfile:     optionalString(req.AcademicProfile),
		ConferenceInterests: optionalString(req.ConferenceInterests),
		IACRExperience:      optionalString(req.IACRExperience),
		FileKey:             optionalString(req.FileKey),
		FileName:            optionalString(req.FileName),
		CreatedAt:           s.now().UTC(),
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return 0, fmt.Errorf("create visa request: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"visa_request_id": request.ID,
		"type":            request.Type,
	}).Info("visa request created")

	return request.ID, nil
}
