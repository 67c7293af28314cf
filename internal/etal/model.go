package etal

import (
	"time"

	"github.com/MairieServices/api-marche/internal/commercant"
	"github.com/MairieServices/api-marche/internal/secteur"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Statuts d'occupation d'un étal.
const (
	StatutLibre  = "libre"
	StatutOccupe = "occupe"
)

// Etal représente un emplacement physique du marché, loué à au plus un
// commerçant à la fois.
type Etal struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Numero    string          `gorm:"size:20;uniqueIndex;not null" json:"numero"`
	SecteurID uint            `gorm:"not null;index" json:"secteurId"`
	Secteur   *secteur.Secteur `gorm:"foreignKey:SecteurID" json:"secteur,omitempty"`

	// Superficie en m², base de la tarification journalière.
	Superficie decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"superficie"`

	// Tarif spécifique par m² pour cet étal (optionnel).
	TarifParMetreCarre *decimal.Decimal `gorm:"type:decimal(10,2)" json:"tarifParMetreCarre,omitempty"`

	Statut          string                 `gorm:"size:10;not null;default:'libre'" json:"statut"`
	CommercantID    *uint                  `gorm:"index" json:"commercantId,omitempty"`
	Commercant      *commercant.Commercant `gorm:"foreignKey:CommercantID" json:"commercant,omitempty"`
	DateAttribution *time.Time             `gorm:"type:date" json:"dateAttribution,omitempty"`
}

// HistoriqueAttribution trace les intervalles d'occupation d'un étal.
// L'intervalle en cours n'a pas de date de fin.
type HistoriqueAttribution struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	EtalID       uint       `gorm:"not null;index" json:"etalId"`
	CommercantID uint       `gorm:"not null;index" json:"commercantId"`
	DateDebut    time.Time  `gorm:"type:date;not null" json:"dateDebut"`
	DateFin      *time.Time `gorm:"type:date" json:"dateFin,omitempty"`
	AttribueParID *uint     `json:"attribueParId,omitempty"`
}
