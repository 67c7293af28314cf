package rapport

import (
	"time"

	"github.com/MairieServices/api-marche/internal/collecteur"
	"github.com/shopspring/decimal"
)

// RapportJournalierCollecteur fige les encaissements d'un collecteur
// pour une journée. Recalculé par upsert: rejouer la consolidation d'une
// date écrase la ligne existante.
type RapportJournalierCollecteur struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Date         time.Time              `gorm:"type:date;not null;uniqueIndex:idx_rapport_jour_collecteur" json:"date"`
	CollecteurID uint                   `gorm:"not null;uniqueIndex:idx_rapport_jour_collecteur" json:"collecteurId"`
	Collecteur   *collecteur.Collecteur `gorm:"foreignKey:CollecteurID" json:"collecteur,omitempty"`

	NbPaiements   int             `gorm:"not null;default:0" json:"nbPaiements"`
	NbCommercants int             `gorm:"not null;default:0" json:"nbCommercants"`
	TotalEncaisse decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalEncaisse"`
}

func (RapportJournalierCollecteur) TableName() string {
	return "rapports_journaliers_collecteurs"
}

// RapportMensuelCollecteur agrège un mois entier par collecteur.
type RapportMensuelCollecteur struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Annee        int                    `gorm:"not null;uniqueIndex:idx_rapport_mois_collecteur" json:"annee"`
	Mois         int                    `gorm:"not null;uniqueIndex:idx_rapport_mois_collecteur" json:"mois"`
	CollecteurID uint                   `gorm:"not null;uniqueIndex:idx_rapport_mois_collecteur" json:"collecteurId"`
	Collecteur   *collecteur.Collecteur `gorm:"foreignKey:CollecteurID" json:"collecteur,omitempty"`

	NbPaiements   int             `gorm:"not null;default:0" json:"nbPaiements"`
	NbCommercants int             `gorm:"not null;default:0" json:"nbCommercants"`
	TotalEncaisse decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"totalEncaisse"`
}

func (RapportMensuelCollecteur) TableName() string {
	return "rapports_mensuels_collecteurs"
}
