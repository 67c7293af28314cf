package paiement

import (
	"time"

	"github.com/MairieServices/api-marche/internal/collecteur"
	"github.com/MairieServices/api-marche/internal/commercant"
	"github.com/MairieServices/api-marche/internal/etal"
	"github.com/MairieServices/api-marche/internal/ticket"
	"github.com/shopspring/decimal"
)

// Modes de paiement acceptés.
const (
	ModeEspeces     = "especes"
	ModeMobileMoney = "mobile_money"
)

// Paiement représente le règlement d'une taxe journalière: exactement un
// commerçant, un étal, un ticket consommé, un collecteur et l'agent qui
// a saisi l'opération. Le ticket est unique par paiement (contrainte
// d'unicité en base, revalidée au règlement). Pas de suppression douce:
// l'annulation d'un paiement détruit la ligne.
type Paiement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	CommercantID uint                   `gorm:"not null;index" json:"commercantId"`
	Commercant   *commercant.Commercant `gorm:"foreignKey:CommercantID" json:"commercant,omitempty"`

	EtalID *uint      `gorm:"index" json:"etalId,omitempty"`
	Etal   *etal.Etal `gorm:"foreignKey:EtalID" json:"etal,omitempty"`

	Montant      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"montant"`
	DatePaiement time.Time       `gorm:"not null;index" json:"datePaiement"`
	ModePaiement string          `gorm:"size:20;not null;default:'especes'" json:"modePaiement"`

	TicketID *uint          `gorm:"uniqueIndex" json:"ticketId,omitempty"`
	Ticket   *ticket.Ticket `gorm:"foreignKey:TicketID" json:"ticket,omitempty"`

	CollecteurID *uint                  `gorm:"index" json:"collecteurId,omitempty"`
	Collecteur   *collecteur.Collecteur `gorm:"foreignKey:CollecteurID" json:"collecteur,omitempty"`

	EnregistreParID *uint `json:"enregistreParId,omitempty"`
}
