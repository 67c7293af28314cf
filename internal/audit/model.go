package audit

import (
	"time"

	"gorm.io/datatypes"
)

// JournalAudit trace chaque opération d'écriture passée par l'API:
// qui, quoi, sur quelle ressource, avec quel corps de requête et quel
// résultat HTTP. Append-only, jamais modifié ni purgé par l'application.
type JournalAudit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UtilisateurID *uint  `gorm:"index" json:"utilisateurId,omitempty"`
	Methode       string `gorm:"size:10;not null" json:"methode"`
	Chemin        string `gorm:"size:255;not null;index" json:"chemin"`
	CodeHTTP      int    `gorm:"not null" json:"codeHttp"`

	Corps     datatypes.JSON `json:"corps,omitempty"`
	AdresseIP string         `gorm:"size:45" json:"adresseIp"`
}

func (JournalAudit) TableName() string {
	return "journal_audit"
}
