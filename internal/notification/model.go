package notification

import "time"

// Types de notification.
const (
	TypeRetard = "retard"
	TypeInfo   = "info"
)

// Notification est un message interne destiné à un utilisateur du
// back-office (relances de taxes en retard, informations système).
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UtilisateurID uint   `gorm:"not null;index" json:"utilisateurId"`
	Type          string `gorm:"size:20;not null;default:'info'" json:"type"`
	Titre         string `gorm:"size:120;not null" json:"titre"`
	Message       string `gorm:"size:500;not null" json:"message"`
	Lue           bool   `gorm:"not null;default:false" json:"lue"`
}
