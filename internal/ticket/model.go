package ticket

import (
	"time"

	"gorm.io/gorm"
)

// Statuts du cycle de vie d'un ticket.
const (
	StatutDisponible = "disponible"
	StatutUtilise    = "utilise"
	StatutAnnule     = "annule"
	StatutPerdu      = "perdu"
)

// Ticket représente un ticket physique de paiement. Le numéro est unique
// sur toute la durée de vie du système. Pas de suppression douce: une
// ligne fantôme garderait le numéro et bloquerait la numérotation.
type Ticket struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Numero          string     `gorm:"size:20;uniqueIndex;not null" json:"numero"`
	DateUtilisation *time.Time `json:"dateUtilisation,omitempty"`

	// Booléen legacy, maintenu en phase avec Statut.
	Utilise bool   `gorm:"not null;default:false" json:"utilise"`
	Statut  string `gorm:"size:20;not null;default:'disponible'" json:"statut"`

	// Carnet propriétaire, nul tant que le ticket n'est pas remis
	// à un collecteur.
	LotID *uint `gorm:"index" json:"lotId,omitempty"`

	// Motif d'annulation ou de perte.
	Motif string `gorm:"type:text" json:"motif,omitempty"`
}

// BeforeSave synchronise le statut et le booléen legacy.
func (t *Ticket) BeforeSave(tx *gorm.DB) error {
	switch {
	case t.Utilise:
		t.Statut = StatutUtilise
	case t.Statut == StatutUtilise:
		t.Utilise = true
	default:
		t.Utilise = false
	}
	return nil
}
