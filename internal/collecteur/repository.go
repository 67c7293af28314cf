package collecteur

import (
	"gorm.io/gorm"
)

type Repository interface {
	Sauver(db *gorm.DB, c *Collecteur) error
	ChercherParID(db *gorm.DB, id uint) (*Collecteur, error)
	ChercherActifParID(db *gorm.DB, id uint) (*Collecteur, error)
	ListerTous(db *gorm.DB) ([]Collecteur, error)
	ListerActifs(db *gorm.DB) ([]Collecteur, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Sauver(db *gorm.DB, c *Collecteur) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) ChercherParID(db *gorm.DB, id uint) (*Collecteur, error) {
	var c Collecteur
	err := db.First(&c, id).Error
	return &c, err
}

func (r *repositoryImpl) ChercherActifParID(db *gorm.DB, id uint) (*Collecteur, error) {
	var c Collecteur
	err := db.Where("actif = ?", true).First(&c, id).Error
	return &c, err
}

func (r *repositoryImpl) ListerTous(db *gorm.DB) ([]Collecteur, error) {
	var list []Collecteur
	err := db.Order("nom, prenom").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListerActifs(db *gorm.DB) ([]Collecteur, error) {
	var list []Collecteur
	err := db.Where("actif = ?", true).Order("nom, prenom").Find(&list).Error
	return list, err
}
