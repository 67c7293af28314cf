package lot

import (
	"time"

	"github.com/MairieServices/api-marche/internal/collecteur"
	"github.com/MairieServices/api-marche/internal/ticket"
	"gorm.io/gorm"
)

// Statuts d'un carnet.
const (
	StatutOuvert = "ouvert"
	StatutClos   = "clos"
)

// LotTickets représente un carnet de tickets remis à un collecteur: une
// plage contiguë [TicketDebut, TicketFin] détenue par exactement un
// collecteur. Un collecteur n'a qu'un seul lot ouvert à la fois (index
// partiel unique posé à la migration).
type LotTickets struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	CollecteurID uint                   `gorm:"not null;index" json:"collecteurId"`
	Collecteur   *collecteur.Collecteur `gorm:"foreignKey:CollecteurID" json:"collecteur,omitempty"`

	DateRemise  time.Time  `gorm:"type:date" json:"dateRemise"`
	RemisParID  *uint      `json:"remisParId,omitempty"`
	Statut      string     `gorm:"size:10;not null;default:'ouvert'" json:"statut"`
	TicketDebut string     `gorm:"size:20" json:"ticketDebut"`
	TicketFin   string     `gorm:"size:20" json:"ticketFin"`
	DateCloture *time.Time `gorm:"type:date" json:"dateCloture,omitempty"`

	Tickets []ticket.Ticket `gorm:"foreignKey:LotID" json:"tickets,omitempty"`
}

// MigrerIndexLotOuvert pose l'index partiel garantissant au plus un lot
// ouvert par collecteur (Postgres et SQLite le supportent).
func MigrerIndexLotOuvert(db *gorm.DB) error {
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_lot_ouvert_par_collecteur
		 ON lot_tickets (collecteur_id) WHERE statut = 'ouvert' AND deleted_at IS NULL`,
	).Error
}
