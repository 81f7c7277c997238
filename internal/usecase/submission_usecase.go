package usecase

import (
	"context"
	"errors"
	"interview-experience-backend/internal/domain"
	"interview-experience-backend/pkg/apperror"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type submissionUsecase struct {
	submissionRepo domain.SubmissionRepository
}

func NewSubmissionUsecase(submissionRepo domain.SubmissionRepository) domain.SubmissionUsecase {
	return &submissionUsecase{submissionRepo: submissionRepo}
}

func (u *submissionUsecase) Create(ctx context.Context, userID string, fields domain.SubmissionFields) (*domain.Submission, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	now := time.Now().UTC()
	s := &domain.Submission{
		ID:        uuid.NewString(),
		Name:      fields.Name,
		Country:   fields.Country,
		Company:   fields.Company,
		Questions: normalizeQuestions(fields.Questions),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.submissionRepo.Create(ctx, s); err != nil {
		return nil, apperror.New(http.StatusBadRequest, "Error creating submission", err)
	}
	return s, nil
}

// List returns submissions of every user. A non-blank company narrows the
// result to case-insensitive substring matches.
func (u *submissionUsecase) List(ctx context.Context, company string) ([]domain.Submission, error) {
	submissions, err := u.submissionRepo.FindAll(ctx, strings.TrimSpace(company))
	if err != nil {
		return nil, apperror.Internal("Error retrieving submissions", err)
	}
	if submissions == nil {
		submissions = []domain.Submission{}
	}
	return submissions, nil
}

func (u *submissionUsecase) Get(ctx context.Context, id, userID string) (*domain.Submission, error) {
	if uuid.Validate(id) != nil {
		return nil, errSubmissionNotFound()
	}

	s, err := u.submissionRepo.FindOneOwned(ctx, id, userID)
	if err != nil {
		return nil, mapOwnedErr(err, "Error retrieving submission")
	}
	return s, nil
}

func (u *submissionUsecase) Update(ctx context.Context, id, userID string, fields domain.SubmissionFields) (*domain.Submission, error) {
	if uuid.Validate(id) != nil {
		return nil, errSubmissionNotFound()
	}

	fields.Questions = normalizeQuestions(fields.Questions)
	s, err := u.submissionRepo.UpdateOwned(ctx, id, userID, fields, time.Now().UTC())
	if err != nil {
		return nil, mapOwnedErr(err, "Error updating submission")
	}
	return s, nil
}

func (u *submissionUsecase) Delete(ctx context.Context, id, userID string) error {
	if uuid.Validate(id) != nil {
		return errSubmissionNotFound()
	}

	if _, err := u.submissionRepo.DeleteOwned(ctx, id, userID); err != nil {
		return mapOwnedErr(err, "Error deleting submission")
	}
	return nil
}

// Records owned by someone else are reported exactly like missing ones.
func errSubmissionNotFound() error {
	return apperror.NotFound("Submission not found")
}

func mapOwnedErr(err error, message string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return errSubmissionNotFound()
	}
	return apperror.Internal(message, err)
}

func normalizeQuestions(q []string) []string {
	if q == nil {
		return []string{}
	}
	return q
}
