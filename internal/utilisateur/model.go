package utilisateur

import (
	"time"

	"gorm.io/gorm"
)

// Utilisateur représente un agent de la mairie (régisseur, agent de
// saisie ou administrateur).
type Utilisateur struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nom        string `gorm:"size:100;not null" json:"nom"`
	Prenom     string `gorm:"size:100;not null" json:"prenom"`
	Username   string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	MotDePasse string `gorm:"not null" json:"-"`
	EstAdmin   bool   `gorm:"not null;default:false" json:"estAdmin"`
	Actif      bool   `gorm:"not null;default:true" json:"actif"`
}

// NomComplet retourne "Nom Prénom" pour l'affichage.
func (u Utilisateur) NomComplet() string {
	return u.Nom + " " + u.Prenom
}
