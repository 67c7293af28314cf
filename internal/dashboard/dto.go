package dashboard

import (
	"time"

	"github.com/MairieServices/api-marche/internal/etal"
	"github.com/MairieServices/api-marche/internal/paiement"
	"github.com/MairieServices/api-marche/internal/taxe"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VueEnsembleDTO est la photographie du marché servie au tableau de
// bord: encaissements du jour, occupation des étals et retards.
type VueEnsembleDTO struct {
	Date string `json:"date"`

	TotalEncaisseJour decimal.Decimal            `json:"totalEncaisseJour"`
	NbPaiementsJour   int64                      `json:"nbPaiementsJour"`
	ParMode           map[string]decimal.Decimal `json:"parMode"`

	NbEtals        int64 `json:"nbEtals"`
	NbEtalsOccupes int64 `json:"nbEtalsOccupes"`

	NbTaxesDuesJour int64 `json:"nbTaxesDuesJour"`
	NbTaxesRetard   int64 `json:"nbTaxesRetard"`
}

// MonterVueEnsemble calcule la vue du jour.
func MonterVueEnsemble(db *gorm.DB, maintenant time.Time) (*VueEnsembleDTO, error) {
	jour := taxe.DateSeule(maintenant)

	resume, err := paiement.MonterResumeJournalierDTO(db, maintenant)
	if err != nil {
		return nil, err
	}

	vue := &VueEnsembleDTO{
		Date:              jour.Format("2006-01-02"),
		TotalEncaisseJour: resume.TotalEncaisse,
		NbPaiementsJour:   resume.NbPaiements,
		ParMode:           resume.ParMode,
	}

	if err := db.Model(&etal.Etal{}).Count(&vue.NbEtals).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&etal.Etal{}).
		Where("statut = ?", etal.StatutOccupe).
		Count(&vue.NbEtalsOccupes).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&taxe.TaxeJournaliere{}).
		Where("date = ? AND paye = ? AND statut = ?", jour, false, taxe.StatutDu).
		Count(&vue.NbTaxesDuesJour).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&taxe.TaxeJournaliere{}).
		Where("date < ? AND paye = ? AND statut = ?", jour, false, taxe.StatutDu).
		Count(&vue.NbTaxesRetard).Error; err != nil {
		return nil, err
	}

	return vue, nil
}
