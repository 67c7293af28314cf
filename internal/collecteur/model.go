package collecteur

import (
	"time"

	"gorm.io/gorm"
)

// Collecteur représente un agent collecteur de taxes, référencé pour la
// traçabilité des carnets de tickets.
type Collecteur struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nom     string `gorm:"size:100;not null" json:"nom"`
	Prenom  string `gorm:"size:100;not null" json:"prenom"`
	Contact string `gorm:"size:20" json:"contact"`
	Actif   bool   `gorm:"not null;default:true" json:"actif"`
}

// NomComplet retourne "Nom Prénom" pour l'affichage.
func (c Collecteur) NomComplet() string {
	return c.Nom + " " + c.Prenom
}
