package ticket

import (
	"gorm.io/gorm"
)

type Repository interface {
	ChercherParID(db *gorm.DB, id uint) (*Ticket, error)
	ChercherParNumero(db *gorm.DB, numero string) (*Ticket, error)
	ListerParNumeros(db *gorm.DB, numeros []string) ([]Ticket, error)
	ListerParLot(db *gorm.DB, lotID uint) ([]Ticket, error)
	ListerDisponibles(db *gorm.DB, limite int) ([]Ticket, error)
	CompterParStatut(db *gorm.DB, statut string) (int64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) ChercherParID(db *gorm.DB, id uint) (*Ticket, error) {
	var t Ticket
	err := db.First(&t, id).Error
	return &t, err
}

func (r *repositoryImpl) ChercherParNumero(db *gorm.DB, numero string) (*Ticket, error) {
	var t Ticket
	err := db.Where("numero = ?", numero).First(&t).Error
	return &t, err
}

func (r *repositoryImpl) ListerParNumeros(db *gorm.DB, numeros []string) ([]Ticket, error) {
	var list []Ticket
	err := db.Where("numero IN ?", numeros).Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListerParLot(db *gorm.DB, lotID uint) ([]Ticket, error) {
	var list []Ticket
	err := db.Where("lot_id = ?", lotID).Order("numero").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListerDisponibles(db *gorm.DB, limite int) ([]Ticket, error) {
	var list []Ticket
	q := db.Where("statut = ? AND utilise = ?", StatutDisponible, false).Order("numero")
	if limite > 0 {
		q = q.Limit(limite)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) CompterParStatut(db *gorm.DB, statut string) (int64, error) {
	var n int64
	err := db.Model(&Ticket{}).Where("statut = ?", statut).Count(&n).Error
	return n, err
}
