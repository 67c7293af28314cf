package taxe

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	ChercherParID(db *gorm.DB, id uint) (*TaxeJournaliere, error)
	ChercherParPaiement(db *gorm.DB, paiementID uint) (*TaxeJournaliere, error)
	ListerParDate(db *gorm.DB, date time.Time) ([]TaxeJournaliere, error)
	ListerRetards(db *gorm.DB, maintenant time.Time, limite int) ([]TaxeJournaliere, error)
	Annuler(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) ChercherParID(db *gorm.DB, id uint) (*TaxeJournaliere, error) {
	var t TaxeJournaliere
	err := db.Preload("Commercant").First(&t, id).Error
	return &t, err
}

func (r *repositoryImpl) ChercherParPaiement(db *gorm.DB, paiementID uint) (*TaxeJournaliere, error) {
	var t TaxeJournaliere
	err := db.Where("paiement_id = ?", paiementID).First(&t).Error
	return &t, err
}

func (r *repositoryImpl) ListerParDate(db *gorm.DB, date time.Time) ([]TaxeJournaliere, error) {
	var list []TaxeJournaliere
	err := db.Preload("Commercant").Where("date = ?", DateSeule(date)).Order("etal_id").Find(&list).Error
	return list, err
}

// ListerRetards retourne les taxes dues et impayées des jours passés.
func (r *repositoryImpl) ListerRetards(db *gorm.DB, maintenant time.Time, limite int) ([]TaxeJournaliere, error) {
	var list []TaxeJournaliere
	q := db.Preload("Commercant").
		Where("paye = ? AND statut = ? AND date < ?", false, StatutDu, DateSeule(maintenant)).
		Order("date DESC")
	if limite > 0 {
		q = q.Limit(limite)
	}
	err := q.Find(&list).Error
	return list, err
}

// Annuler passe une taxe au statut annulé (opération administrative;
// le moteur de règlement refusera ensuite tout paiement sur cette taxe).
func (r *repositoryImpl) Annuler(db *gorm.DB, id uint) error {
	return db.Model(&TaxeJournaliere{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"statut": StatutAnnule, "paye": false}).Error
}
