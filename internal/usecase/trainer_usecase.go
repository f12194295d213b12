package usecase

import (
	"context"

	"github.com/pawbook/pawbook/internal/converter"
	"github.com/pawbook/pawbook/internal/delivery/dto"
	"github.com/pawbook/pawbook/internal/domain/repository"
	"github.com/pawbook/pawbook/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrTrainerNotFound = apperror.NotFound("trainer not found")

type TrainerUsecase interface {
	GetTrainers(ctx context.Context) (*dto.TrainerListResponse, error)
	GetTrainer(ctx context.Context, trainerID uuid.UUID) (*dto.TrainerResponse, error)
	UpdateMyProfile(ctx context.Context, trainerID uuid.UUID, req *dto.UpdateTrainerProfileRequest) (*dto.TrainerResponse, error)
}

type trainerUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	trainerProfileRepo repository.TrainerProfileRepository
}

func NewTrainerUsecase(db *gorm.DB, log *logrus.Logger, trainerProfileRepo repository.TrainerProfileRepository) TrainerUsecase {
	return &trainerUsecase{
		db:                 db,
		log:                log,
		trainerProfileRepo: trainerProfileRepo,
	}
}

func (u *trainerUsecase) GetTrainers(ctx context.Context) (*dto.TrainerListResponse, error) {
	profiles, err := u.trainerProfileRepo.FindAllActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list trainers: %+v", err)
		return nil, err
	}

	return &dto.TrainerListResponse{
		Trainers: converter.TrainerProfilesToResponses(profiles),
		Total:    len(profiles),
	}, nil
}

func (u *trainerUsecase) GetTrainer(ctx context.Context, trainerID uuid.UUID) (*dto.TrainerResponse, error) {
	profile, err := u.trainerProfileRepo.FindByUserID(u.db.WithContext(ctx), trainerID)
	if err != nil {
		u.log.Warnf("Failed to find trainer %s: %+v", trainerID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrTrainerNotFound
	}

	return converter.TrainerProfileToResponse(profile), nil
}

func (u *trainerUsecase) UpdateMyProfile(ctx context.Context, trainerID uuid.UUID, req *dto.UpdateTrainerProfileRequest) (*dto.TrainerResponse, error) {
	profile, err := u.trainerProfileRepo.FindByUserID(u.db.WithContext(ctx), trainerID)
	if err != nil {
		u.log.Warnf("Failed to find trainer %s: %+v", trainerID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrTrainerNotFound
	}

	profile.BusinessName = req.BusinessName
	profile.Bio = req.Bio
	profile.Specialties = req.Specialties

	if err := u.trainerProfileRepo.Update(u.db.WithContext(ctx), profile); err != nil {
		u.log.Warnf("Failed to update trainer profile %s: %+v", trainerID, err)
		return nil, err
	}

	return converter.TrainerProfileToResponse(profile), nil
}
