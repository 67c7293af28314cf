package commercant

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrInactif est retourné quand une opération exige un commerçant actif.
var ErrInactif = errors.New("le commerçant est inactif")

// Commercant représente un commerçant du marché.
type Commercant struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nom             string    `gorm:"size:100;not null" json:"nom"`
	Prenom          string    `gorm:"size:100;not null" json:"prenom"`
	Contact         string    `gorm:"size:20" json:"contact"`
	TypeCommerce    string    `gorm:"size:100" json:"typeCommerce"`
	DateInscription time.Time `gorm:"type:date" json:"dateInscription"`
	Actif           bool      `gorm:"not null;default:true" json:"actif"`
}

// NomComplet retourne "Nom Prénom" pour l'affichage.
func (c Commercant) NomComplet() string {
	return c.Nom + " " + c.Prenom
}
