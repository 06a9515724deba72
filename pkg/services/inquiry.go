package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"YSFinancials/models"
	"YSFinancials/pkg/errs"
	"YSFinancials/pkg/metrics"
	"YSFinancials/pkg/store"
	"YSFinancials/pkg/validation"
)

// InquiryService validates submissions and writes the valid ones, one insert each.
type InquiryService struct {
	store     store.InquiryStore
	validator *validation.Validator
	timeout   time.Duration
	now       func() time.Time
	log       *zap.Logger
}

// NewInquiryService creates the service. timeout bounds every insert.
func NewInquiryService(st store.InquiryStore, timeout time.Duration, log *zap.Logger) *InquiryService {
	return &InquiryService{
		store:     st,
		validator: validation.New(),
		timeout:   timeout,
		now:       time.Now,
		log:       log,
	}
}

// Submit validates sub and stores it. Validation failures come back as an
// errs.KindValidation error wrapping validation.Errors; store failures as
// errs.KindPersistence. Nothing is written unless every rule passes.
func (s *InquiryService) Submit(ctx context.Context, sub validation.Submission) (*models.Inquiry, error) {
	if verrs := s.validator.Validate(sub); len(verrs) > 0 {
		metrics.RecordRejection(metrics.ReasonValidation)
		return nil, errs.Wrap(errs.KindValidation, "invalid submission", verrs)
	}

	inq := models.NewInquiry(sub.Name, sub.Email, sub.Message, s.now())

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.store.Insert(ctx, inq); err != nil {
		metrics.RecordRejection(metrics.ReasonStore)
		s.log.Error("failed to save inquiry", zap.String("email", inq.Email), zap.Error(err))
		return nil, errs.Wrap(errs.KindPersistence, "failed to save inquiry", err)
	}

	metrics.RecordContactSubmission()
	s.log.Info("inquiry saved", zap.String("id", inq.ID), zap.String("email", inq.Email))
	return inq, nil
}
