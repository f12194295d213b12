package usecase

import (
	"context"
	"time"

	"github.com/pawbook/pawbook/internal/converter"
	"github.com/pawbook/pawbook/internal/delivery/dto"
	"github.com/pawbook/pawbook/internal/domain/entity"
	"github.com/pawbook/pawbook/internal/domain/repository"
	"github.com/pawbook/pawbook/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDogNotFound = apperror.NotFound("dog not found")
	ErrDogNotOwned = apperror.Authorization("dog does not belong to you")
)

type DogUsecase interface {
	CreateDog(ctx context.Context, ownerID uuid.UUID, req *dto.CreateDogRequest) (*dto.DogResponse, error)
	GetDog(ctx context.Context, ownerID, dogID uuid.UUID) (*dto.DogResponse, error)
	GetMyDogs(ctx context.Context, ownerID uuid.UUID) (*dto.DogListResponse, error)
	UpdateDog(ctx context.Context, ownerID, dogID uuid.UUID, req *dto.UpdateDogRequest) (*dto.DogResponse, error)
	DeleteDog(ctx context.Context, ownerID, dogID uuid.UUID) error
}

type dogUsecase struct {
	db      *gorm.DB
	log     *logrus.Logger
	dogRepo repository.DogRepository
}

func NewDogUsecase(db *gorm.DB, log *logrus.Logger, dogRepo repository.DogRepository) DogUsecase {
	return &dogUsecase{
		db:      db,
		log:     log,
		dogRepo: dogRepo,
	}
}

func (u *dogUsecase) CreateDog(ctx context.Context, ownerID uuid.UUID, req *dto.CreateDogRequest) (*dto.DogResponse, error) {
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	dog := &entity.Dog{
		OwnerID:   ownerID,
		Name:      req.Name,
		Breed:     req.Breed,
		BirthDate: birthDate,
		Notes:     req.Notes,
	}

	if err := u.dogRepo.Create(u.db.WithContext(ctx), dog); err != nil {
		u.log.Warnf("Failed to create dog: %+v", err)
		return nil, err
	}

	return converter.DogToResponse(dog), nil
}

func (u *dogUsecase) GetDog(ctx context.Context, ownerID, dogID uuid.UUID) (*dto.DogResponse, error) {
	dog, err := u.findOwnedDog(ctx, ownerID, dogID)
	if err != nil {
		return nil, err
	}
	return converter.DogToResponse(dog), nil
}

func (u *dogUsecase) GetMyDogs(ctx context.Context, ownerID uuid.UUID) (*dto.DogListResponse, error) {
	dogs, err := u.dogRepo.FindByOwnerID(u.db.WithContext(ctx), ownerID)
	if err != nil {
		u.log.Warnf("Failed to find dogs for owner %s: %+v", ownerID, err)
		return nil, err
	}

	return &dto.DogListResponse{
		Dogs:  converter.DogsToResponses(dogs),
		Total: len(dogs),
	}, nil
}

func (u *dogUsecase) UpdateDog(ctx context.Context, ownerID, dogID uuid.UUID, req *dto.UpdateDogRequest) (*dto.DogResponse, error) {
	dog, err := u.findOwnedDog(ctx, ownerID, dogID)
	if err != nil {
		return nil, err
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	dog.Name = req.Name
	dog.Breed = req.Breed
	dog.BirthDate = birthDate
	dog.Notes = req.Notes

	if err := u.dogRepo.Update(u.db.WithContext(ctx), dog); err != nil {
		u.log.Warnf("Failed to update dog %s: %+v", dogID, err)
		return nil, err
	}

	return converter.DogToResponse(dog), nil
}

func (u *dogUsecase) DeleteDog(ctx context.Context, ownerID, dogID uuid.UUID) error {
	if _, err := u.findOwnedDog(ctx, ownerID, dogID); err != nil {
		return err
	}

	if _, err := u.dogRepo.Delete(u.db.WithContext(ctx), dogID); err != nil {
		u.log.Warnf("Failed to delete dog %s: %+v", dogID, err)
		return err
	}

	return nil
}

func (u *dogUsecase) findOwnedDog(ctx context.Context, ownerID, dogID uuid.UUID) (*entity.Dog, error) {
	dog, err := u.dogRepo.FindByID(u.db.WithContext(ctx), dogID)
	if err != nil {
		u.log.Warnf("Failed to find dog %s: %+v", dogID, err)
		return nil, err
	}
	if dog == nil {
		return nil, ErrDogNotFound
	}
	if !dog.IsOwnedBy(ownerID) {
		return nil, ErrDogNotOwned
	}
	return dog, nil
}

func parseBirthDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	date, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
