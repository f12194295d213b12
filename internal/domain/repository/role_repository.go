package repository

import (
	"github.com/pawbook/pawbook/internal/domain/entity"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindByID(db *gorm.DB, id int) (*entity.Role, error)
	Upsert(db *gorm.DB, role *entity.Role) error
}
