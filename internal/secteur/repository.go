package secteur

import (
	"gorm.io/gorm"
)

type Repository interface {
	Sauver(db *gorm.DB, s *Secteur) error
	ChercherParID(db *gorm.DB, id uint) (*Secteur, error)
	ListerTous(db *gorm.DB) ([]Secteur, error)
	Supprimer(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Sauver(db *gorm.DB, s *Secteur) error {
	return db.Save(s).Error
}

func (r *repositoryImpl) ChercherParID(db *gorm.DB, id uint) (*Secteur, error) {
	var s Secteur
	err := db.First(&s, id).Error
	return &s, err
}

func (r *repositoryImpl) ListerTous(db *gorm.DB) ([]Secteur, error) {
	var list []Secteur
	err := db.Order("nom").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Supprimer(db *gorm.DB, id uint) error {
	return db.Delete(&Secteur{}, id).Error
}
