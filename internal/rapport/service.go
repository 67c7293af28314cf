package rapport

import (
	"time"

	"github.com/MairieServices/api-marche/internal/paiement"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service consolide les paiements en rapports par collecteur.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

type ligneAgregat struct {
	CollecteurID  uint
	NbPaiements   int
	NbCommercants int
	Total         decimal.Decimal
}

const selectAgregat = "collecteur_id, COUNT(*) AS nb_paiements, " +
	"COUNT(DISTINCT commercant_id) AS nb_commercants, SUM(montant) AS total"

// ConsoliderJournalier recalcule les rapports journaliers de la date
// pour tous les collecteurs ayant encaissé. Rejouable: les lignes
// existantes sont écrasées.
func (s *Service) ConsoliderJournalier(db *gorm.DB, date time.Time) (int, error) {
	debut := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	fin := debut.AddDate(0, 0, 1)

	var lignes []ligneAgregat
	err := db.Model(&paiement.Paiement{}).
		Select(selectAgregat).
		Where("collecteur_id IS NOT NULL AND date_paiement >= ? AND date_paiement < ?", debut, fin).
		Group("collecteur_id").
		Scan(&lignes).Error
	if err != nil {
		return 0, err
	}

	for _, l := range lignes {
		r := RapportJournalierCollecteur{
			Date:          debut,
			CollecteurID:  l.CollecteurID,
			NbPaiements:   l.NbPaiements,
			NbCommercants: l.NbCommercants,
			TotalEncaisse: l.Total,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "collecteur_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"nb_paiements", "nb_commercants", "total_encaisse", "updated_at"}),
		}).Create(&r).Error
		if err != nil {
			return 0, err
		}
	}
	return len(lignes), nil
}

// ConsoliderMensuel recalcule les rapports du mois (année, mois 1-12).
func (s *Service) ConsoliderMensuel(db *gorm.DB, annee, mois int) (int, error) {
	debut := time.Date(annee, time.Month(mois), 1, 0, 0, 0, 0, time.UTC)
	fin := debut.AddDate(0, 1, 0)

	var lignes []ligneAgregat
	err := db.Model(&paiement.Paiement{}).
		Select(selectAgregat).
		Where("collecteur_id IS NOT NULL AND date_paiement >= ? AND date_paiement < ?", debut, fin).
		Group("collecteur_id").
		Scan(&lignes).Error
	if err != nil {
		return 0, err
	}

	for _, l := range lignes {
		r := RapportMensuelCollecteur{
			Annee:         annee,
			Mois:          mois,
			CollecteurID:  l.CollecteurID,
			NbPaiements:   l.NbPaiements,
			NbCommercants: l.NbCommercants,
			TotalEncaisse: l.Total,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "annee"}, {Name: "mois"}, {Name: "collecteur_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"nb_paiements", "nb_commercants", "total_encaisse", "updated_at"}),
		}).Create(&r).Error
		if err != nil {
			return 0, err
		}
	}
	return len(lignes), nil
}

// ListerJournalier retourne les rapports d'une date.
func (s *Service) ListerJournalier(db *gorm.DB, date time.Time) ([]RapportJournalierCollecteur, error) {
	debut := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	var list []RapportJournalierCollecteur
	err := db.Preload("Collecteur").Where("date = ?", debut).
		Order("total_encaisse DESC").Find(&list).Error
	return list, err
}

// ListerMensuel retourne les rapports d'un mois.
func (s *Service) ListerMensuel(db *gorm.DB, annee, mois int) ([]RapportMensuelCollecteur, error) {
	var list []RapportMensuelCollecteur
	err := db.Preload("Collecteur").Where("annee = ? AND mois = ?", annee, mois).
		Order("total_encaisse DESC").Find(&list).Error
	return list, err
}
