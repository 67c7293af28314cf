package taxe

import (
	"time"

	"github.com/MairieServices/api-marche/internal/commercant"
	"github.com/shopspring/decimal"
)

// Statuts d'une taxe journalière.
const (
	StatutDu     = "du"
	StatutPaye   = "paye"
	StatutAnnule = "annule"
)

// TaxeJournaliere représente l'obligation fiscale d'un étal pour une
// date donnée. Unique par (date, étal); au plus un paiement la règle.
type TaxeJournaliere struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Date   time.Time `gorm:"type:date;not null;uniqueIndex:idx_taxe_date_etal" json:"date"`
	EtalID uint      `gorm:"not null;uniqueIndex:idx_taxe_date_etal;index" json:"etalId"`

	// Commerçant dénormalisé depuis l'étal au moment de la génération.
	CommercantID uint                   `gorm:"not null;index" json:"commercantId"`
	Commercant   *commercant.Commercant `gorm:"foreignKey:CommercantID" json:"commercant,omitempty"`

	MontantAttendu decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"montantAttendu"`
	Paye           bool            `gorm:"not null;default:false;index" json:"paye"`
	Statut         string          `gorm:"size:20;not null;default:'du'" json:"statut"`

	// Référence arrière vers le paiement qui a réglé la taxe.
	PaiementID *uint `gorm:"uniqueIndex" json:"paiementId,omitempty"`
}

// TableName force le pluriel français.
func (TaxeJournaliere) TableName() string {
	return "taxes_journalieres"
}

// EnRetard indique une taxe due et impayée dont la date est passée.
func (t TaxeJournaliere) EnRetard(maintenant time.Time) bool {
	return !t.Paye && t.Statut == StatutDu && t.Date.Before(DateSeule(maintenant))
}

// DateSeule tronque un instant à sa date civile (minuit UTC).
func DateSeule(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
