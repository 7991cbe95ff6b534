package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vrecruit/recruit-backend/internal/dto"
	"github.com/vrecruit/recruit-backend/internal/util"
)

const (
	candidateRole        = "candidate"
	temporaryEmailDomain = "candidate.vit.edu.in"
)

var (
	ErrMissingName    = errors.New("first name and surname are required")
	ErrAuthUserCreate = errors.New("failed to create authentication user")
	ErrProfileSave    = errors.New("failed to save candidate profile")
)

// CandidateStore provisions candidate logins and profile rows.
type CandidateStore interface {
	CreateAuthUser(ctx context.Context, payload dto.AuthUserPayload) (string, error)
	InsertProfile(ctx context.Context, payload dto.CandidateProfilePayload) error
	DeleteAuthUser(ctx context.Context, userID string) error
}

type CandidateUsecase struct {
	store    CandidateStore
	validate *validator.Validate
	metrics  Metrics
	logger   *zap.Logger
}

func NewCandidateUsecase(store CandidateStore, metrics Metrics, logger *zap.Logger) *CandidateUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &CandidateUsecase{
		store:    store,
		validate: validator.New(),
		metrics:  metrics,
		logger:   logger,
	}
}

// AddCandidate creates the auth user and then the profile row, returning the new user id.
// If the profile cannot be saved the auth user is removed again.
func (uc *CandidateUsecase) AddCandidate(ctx context.Context, req dto.AddCandidateRequest) (string, error) {
	if err := uc.validate.Struct(req); err != nil {
		uc.metrics.RecordCandidateCreate(OutcomeInvalid)
		return "", validationError(err)
	}

	fullName := req.FullName()
	if fullName == "" {
		uc.metrics.RecordCandidateCreate(OutcomeInvalid)
		return "", ErrMissingName
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = TemporaryEmail()
	}

	userID, err := uc.store.CreateAuthUser(ctx, dto.AuthUserPayload{
		Email:        email,
		Password:     uuid.NewString(),
		EmailConfirm: true,
		UserMetadata: dto.UserMetadata{FullName: fullName, Role: candidateRole},
	})
	if err != nil {
		uc.metrics.RecordCandidateCreate(OutcomeAuthError)
		return "", fmt.Errorf("%w: %w", ErrAuthUserCreate, err)
	}

	if err := uc.store.InsertProfile(ctx, dto.NewCandidateProfilePayload(userID, &req)); err != nil {
		uc.logger.Error("profile insert failed, removing auth user",
			zap.String("user_id", userID),
			zap.Error(err))
		if delErr := uc.store.DeleteAuthUser(context.WithoutCancel(ctx), userID); delErr != nil {
			uc.logger.Warn("failed to remove orphaned auth user",
				zap.String("user_id", userID),
				zap.Error(delErr))
		}
		uc.metrics.RecordCandidateCreate(OutcomeSaveError)
		return "", fmt.Errorf("%w: %w", ErrProfileSave, err)
	}

	uc.logger.Info("candidate created", zap.String("user_id", userID))
	uc.metrics.RecordCandidateCreate(OutcomeSuccess)
	return userID, nil
}

// TemporaryEmail generates a placeholder login for candidates registered without an e-mail.
func TemporaryEmail() string {
	return fmt.Sprintf("temp_%s@%s", strings.ReplaceAll(uuid.NewString(), "-", "")[:8], temporaryEmailDomain)
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return util.NewFormError("Invalid candidate payload.", fields)
}
