package secteur

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Secteur représente une zone du marché.
type Secteur struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nom         string `gorm:"size:50;uniqueIndex;not null" json:"nom"`
	Description string `gorm:"type:text" json:"description"`

	// Tarif par défaut par m² en FCFA
	TarifParDefaut decimal.Decimal `gorm:"type:decimal(10,2);not null;default:5000" json:"tarifParDefaut"`

	// Jour du mois pour l'échéance (1-31, 31 = dernier jour du mois)
	JourEcheance int `gorm:"not null;default:31" json:"jourEcheance"`
}
