package etal

import (
	"gorm.io/gorm"
)

type Repository interface {
	Sauver(db *gorm.DB, e *Etal) error
	ChercherParID(db *gorm.DB, id uint) (*Etal, error)
	ChercherParNumero(db *gorm.DB, numero string) (*Etal, error)
	ListerTous(db *gorm.DB) ([]Etal, error)
	ListerOccupesAvecCommercant(db *gorm.DB) ([]Etal, error)
	ListerHistorique(db *gorm.DB, etalID uint) ([]HistoriqueAttribution, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Sauver(db *gorm.DB, e *Etal) error {
	return db.Save(e).Error
}

func (r *repositoryImpl) ChercherParID(db *gorm.DB, id uint) (*Etal, error) {
	var e Etal
	err := db.Preload("Secteur").Preload("Commercant").First(&e, id).Error
	return &e, err
}

func (r *repositoryImpl) ChercherParNumero(db *gorm.DB, numero string) (*Etal, error) {
	var e Etal
	err := db.Preload("Secteur").Preload("Commercant").Where("numero = ?", numero).First(&e).Error
	return &e, err
}

func (r *repositoryImpl) ListerTous(db *gorm.DB) ([]Etal, error) {
	var list []Etal
	err := db.Preload("Secteur").Preload("Commercant").Order("secteur_id, numero").Find(&list).Error
	return list, err
}

// ListerOccupesAvecCommercant retourne les étals éligibles à la taxe du
// jour: occupés et attribués à un commerçant.
func (r *repositoryImpl) ListerOccupesAvecCommercant(db *gorm.DB) ([]Etal, error) {
	var list []Etal
	err := db.Where("statut = ? AND commercant_id IS NOT NULL", StatutOccupe).Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListerHistorique(db *gorm.DB, etalID uint) ([]HistoriqueAttribution, error) {
	var list []HistoriqueAttribution
	err := db.Where("etal_id = ?", etalID).Order("date_debut DESC").Find(&list).Error
	return list, err
}
