package paiement

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResumeJournalierDTO agrège les encaissements d'une journée.
type ResumeJournalierDTO struct {
	Date          string                     `json:"date"`
	NbPaiements   int64                      `json:"nbPaiements"`
	TotalEncaisse decimal.Decimal            `json:"totalEncaisse"`
	ParMode       map[string]decimal.Decimal `json:"parMode"`
}

// MonterResumeJournalierDTO calcule le résumé des encaissements du jour.
func MonterResumeJournalierDTO(db *gorm.DB, date time.Time) (*ResumeJournalierDTO, error) {
	debut := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	fin := debut.AddDate(0, 0, 1)

	var nb int64
	if err := db.Model(&Paiement{}).
		Where("date_paiement >= ? AND date_paiement < ?", debut, fin).
		Count(&nb).Error; err != nil {
		return nil, err
	}

	var total decimal.NullDecimal
	if err := db.Model(&Paiement{}).
		Select("SUM(montant)").
		Where("date_paiement >= ? AND date_paiement < ?", debut, fin).
		Scan(&total).Error; err != nil {
		return nil, err
	}

	var parModeRows []struct {
		ModePaiement string
		Total        decimal.Decimal
	}
	if err := db.Model(&Paiement{}).
		Select("mode_paiement, SUM(montant) AS total").
		Where("date_paiement >= ? AND date_paiement < ?", debut, fin).
		Group("mode_paiement").
		Scan(&parModeRows).Error; err != nil {
		return nil, err
	}

	parMode := make(map[string]decimal.Decimal, len(parModeRows))
	for _, row := range parModeRows {
		parMode[row.ModePaiement] = row.Total
	}

	dto := &ResumeJournalierDTO{
		Date:        debut.Format("2006-01-02"),
		NbPaiements: nb,
		ParMode:     parMode,
	}
	if total.Valid {
		dto.TotalEncaisse = total.Decimal
	} else {
		dto.TotalEncaisse = decimal.Zero
	}
	return dto, nil
}
