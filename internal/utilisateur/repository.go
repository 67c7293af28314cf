package utilisateur

import (
	"gorm.io/gorm"
)

type Repository interface {
	Sauver(db *gorm.DB, u *Utilisateur) error
	ChercherParID(db *gorm.DB, id uint) (*Utilisateur, error)
	ChercherParUsername(db *gorm.DB, username string) (*Utilisateur, error)
	ListerTous(db *gorm.DB) ([]Utilisateur, error)
	Supprimer(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Sauver(db *gorm.DB, u *Utilisateur) error {
	return db.Save(u).Error
}

func (r *repositoryImpl) ChercherParID(db *gorm.DB, id uint) (*Utilisateur, error) {
	var u Utilisateur
	err := db.First(&u, id).Error
	return &u, err
}

func (r *repositoryImpl) ChercherParUsername(db *gorm.DB, username string) (*Utilisateur, error) {
	var u Utilisateur
	err := db.Where("username = ?", username).First(&u).Error
	return &u, err
}

func (r *repositoryImpl) ListerTous(db *gorm.DB) ([]Utilisateur, error) {
	var list []Utilisateur
	err := db.Order("nom, prenom").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Supprimer(db *gorm.DB, id uint) error {
	return db.Delete(&Utilisateur{}, id).Error
}
