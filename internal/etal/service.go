package etal

import (
	"errors"
	"time"

	"github.com/MairieServices/api-marche/internal/commercant"
	"gorm.io/gorm"
)

// ErrEtalOccupe: attribution refusée, l'étal a déjà un occupant.
var ErrEtalOccupe = errors.New("l'étal est déjà occupé")

// Service porte l'attribution et la libération des étals, avec tenue de
// l'historique d'occupation.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Attribuer donne un étal à un commerçant actif. L'intervalle
// d'historique en cours, s'il existe, est clos à la date d'attribution.
func (s *Service) Attribuer(db *gorm.DB, etalID, commercantID uint, dateAttribution *time.Time, userID *uint) (*Etal, error) {
	var e Etal
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&e, etalID).Error; err != nil {
			return err
		}
		var c commercant.Commercant
		if err := tx.First(&c, commercantID).Error; err != nil {
			return err
		}
		if !c.Actif {
			return commercant.ErrInactif
		}
		if e.Statut == StatutOccupe {
			return ErrEtalOccupe
		}

		date := time.Now()
		if dateAttribution != nil {
			date = *dateAttribution
		}

		// Clore l'historique en cours s'il existe
		if err := tx.Model(&HistoriqueAttribution{}).
			Where("etal_id = ? AND date_fin IS NULL", e.ID).
			Update("date_fin", date).Error; err != nil {
			return err
		}

		e.CommercantID = &c.ID
		e.Statut = StatutOccupe
		e.DateAttribution = &date
		if err := tx.Save(&e).Error; err != nil {
			return err
		}

		hist := HistoriqueAttribution{
			EtalID:        e.ID,
			CommercantID:  c.ID,
			DateDebut:     date,
			AttribueParID: userID,
		}
		return tx.Create(&hist).Error
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Liberer libère un étal et clôt l'intervalle d'historique en cours.
func (s *Service) Liberer(db *gorm.DB, etalID uint, userID *uint) (*Etal, error) {
	var e Etal
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&e, etalID).Error; err != nil {
			return err
		}

		maintenant := time.Now()
		updates := map[string]interface{}{"date_fin": maintenant}
		if userID != nil {
			updates["attribue_par_id"] = *userID
		}
		if err := tx.Model(&HistoriqueAttribution{}).
			Where("etal_id = ? AND date_fin IS NULL", e.ID).
			Updates(updates).Error; err != nil {
			return err
		}

		e.CommercantID = nil
		e.Statut = StatutLibre
		e.DateAttribution = nil
		return tx.Save(&e).Error
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}
