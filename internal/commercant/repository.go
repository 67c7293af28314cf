package commercant

import (
	"gorm.io/gorm"
)

type Repository interface {
	Sauver(db *gorm.DB, c *Commercant) error
	ChercherParID(db *gorm.DB, id uint) (*Commercant, error)
	ListerTous(db *gorm.DB) ([]Commercant, error)
	ListerActifs(db *gorm.DB) ([]Commercant, error)
	Supprimer(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Sauver(db *gorm.DB, c *Commercant) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) ChercherParID(db *gorm.DB, id uint) (*Commercant, error) {
	var c Commercant
	err := db.First(&c, id).Error
	return &c, err
}

func (r *repositoryImpl) ListerTous(db *gorm.DB) ([]Commercant, error) {
	var list []Commercant
	err := db.Order("nom, prenom").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListerActifs(db *gorm.DB) ([]Commercant, error) {
	var list []Commercant
	err := db.Where("actif = ?", true).Order("nom, prenom").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Supprimer(db *gorm.DB, id uint) error {
	return db.Delete(&Commercant{}, id).Error
}
