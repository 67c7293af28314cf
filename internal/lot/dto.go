package lot

import (
	"github.com/MairieServices/api-marche/internal/ticket"
	"gorm.io/gorm"
)

// ResumeLotDTO expose l'état d'un carnet pour les écrans de suivi.
type ResumeLotDTO struct {
	Lot             LotTickets `json:"lot"`
	NbRemis         int64      `json:"nbRemis"`
	NbUtilises      int64      `json:"nbUtilises"`
	NbPerdusAnnules int64      `json:"nbPerdusAnnules"`
	NbRestants      int64      `json:"nbRestants"`
}

// MonterResumeLotDTO calcule les compteurs de tickets du carnet.
func MonterResumeLotDTO(db *gorm.DB, l LotTickets) (ResumeLotDTO, error) {
	dto := ResumeLotDTO{Lot: l}

	base := func() *gorm.DB {
		return db.Model(&ticket.Ticket{}).Where("lot_id = ?", l.ID)
	}
	if err := base().Count(&dto.NbRemis).Error; err != nil {
		return dto, err
	}
	if err := base().Where("statut = ?", ticket.StatutUtilise).Count(&dto.NbUtilises).Error; err != nil {
		return dto, err
	}
	if err := base().Where("statut IN ?", []string{ticket.StatutAnnule, ticket.StatutPerdu}).Count(&dto.NbPerdusAnnules).Error; err != nil {
		return dto, err
	}
	if err := base().Where("statut = ?", ticket.StatutDisponible).Count(&dto.NbRestants).Error; err != nil {
		return dto, err
	}
	return dto, nil
}
