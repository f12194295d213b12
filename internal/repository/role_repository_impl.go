package repository

import (
	"errors"

	"github.com/pawbook/pawbook/internal/domain/entity"
	domainRepo "github.com/pawbook/pawbook/internal/domain/repository"

	"gorm.io/gorm"
)

type roleRepository struct{}

func NewRoleRepository() domainRepo.RoleRepository {
	return &roleRepository{}
}

func (r *roleRepository) FindByID(db *gorm.DB, id int) (*entity.Role, error) {
	var role entity.Role
	err := db.Where("id = ?", id).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) Upsert(db *gorm.DB, role *entity.Role) error {
	return db.Where("id = ?", role.ID).FirstOrCreate(role).Error
}
