package commercant

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResumeCommercantDTO agrège la situation fiscale d'un commerçant.
type ResumeCommercantDTO struct {
	Commercant        Commercant      `json:"commercant"`
	TotalPaye         decimal.Decimal `json:"totalPaye"`
	TotalAttendu      decimal.Decimal `json:"totalAttendu"`
	PaiementsEnRetard int64           `json:"paiementsEnRetard"`
	NombrePaiements   int64           `json:"nombrePaiements"`
	EtalsOccupes      int64           `json:"etalsOccupes"`
}

// MonterResumeCommercantDTO construit le résumé par agrégats SQL.
// Les tables paiements/taxes sont interrogées par nom pour ne pas créer
// de dépendance circulaire entre paquets.
func MonterResumeCommercantDTO(db *gorm.DB, c Commercant) (ResumeCommercantDTO, error) {
	dto := ResumeCommercantDTO{Commercant: c}

	var totalPaye decimal.NullDecimal
	if err := db.Table("paiements").
		Where("commercant_id = ?", c.ID).
		Select("SUM(montant)").
		Scan(&totalPaye).Error; err != nil {
		return dto, err
	}
	dto.TotalPaye = totalPaye.Decimal

	var totalAttendu decimal.NullDecimal
	if err := db.Table("taxes_journalieres").
		Where("commercant_id = ?", c.ID).
		Select("SUM(montant_attendu)").
		Scan(&totalAttendu).Error; err != nil {
		return dto, err
	}
	dto.TotalAttendu = totalAttendu.Decimal

	aujourdhui := time.Now().Format("2006-01-02")
	if err := db.Table("taxes_journalieres").
		Where("commercant_id = ? AND paye = ? AND statut = ? AND date < ?", c.ID, false, "du", aujourdhui).
		Count(&dto.PaiementsEnRetard).Error; err != nil {
		return dto, err
	}

	if err := db.Table("paiements").
		Where("commercant_id = ?", c.ID).
		Count(&dto.NombrePaiements).Error; err != nil {
		return dto, err
	}

	if err := db.Table("etals").
		Where("commercant_id = ? AND statut = ?", c.ID, "occupe").
		Count(&dto.EtalsOccupes).Error; err != nil {
		return dto, err
	}

	return dto, nil
}
