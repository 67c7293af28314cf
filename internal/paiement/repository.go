package paiement

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	ChercherParID(db *gorm.DB, id uint) (*Paiement, error)
	ListerParDate(db *gorm.DB, date time.Time) ([]Paiement, error)
	ListerParCommercant(db *gorm.DB, commercantID uint) ([]Paiement, error)
	ListerParCollecteur(db *gorm.DB, collecteurID uint, date *time.Time) ([]Paiement, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) ChercherParID(db *gorm.DB, id uint) (*Paiement, error) {
	var p Paiement
	err := db.Preload("Commercant").Preload("Etal").Preload("Ticket").Preload("Collecteur").
		First(&p, id).Error
	return &p, err
}

func (r *repositoryImpl) ListerParDate(db *gorm.DB, date time.Time) ([]Paiement, error) {
	debut := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	fin := debut.AddDate(0, 0, 1)

	var list []Paiement
	err := db.Preload("Commercant").Preload("Ticket").Preload("Collecteur").
		Where("date_paiement >= ? AND date_paiement < ?", debut, fin).
		Order("date_paiement DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListerParCommercant(db *gorm.DB, commercantID uint) ([]Paiement, error) {
	var list []Paiement
	err := db.Preload("Etal").Preload("Ticket").
		Where("commercant_id = ?", commercantID).
		Order("date_paiement DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListerParCollecteur(db *gorm.DB, collecteurID uint, date *time.Time) ([]Paiement, error) {
	q := db.Preload("Commercant").Preload("Ticket").Where("collecteur_id = ?", collecteurID)
	if date != nil {
		debut := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		q = q.Where("date_paiement >= ? AND date_paiement < ?", debut, debut.AddDate(0, 0, 1))
	}

	var list []Paiement
	err := q.Order("date_paiement DESC").Find(&list).Error
	return list, err
}
