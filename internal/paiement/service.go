package paiement

import (
	"errors"
	"time"

	"github.com/MairieServices/api-marche/internal/collecteur"
	"github.com/MairieServices/api-marche/internal/commercant"
	"github.com/MairieServices/api-marche/internal/etal"
	"github.com/MairieServices/api-marche/internal/lot"
	"github.com/MairieServices/api-marche/internal/taxe"
	"github.com/MairieServices/api-marche/internal/ticket"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Motifs système posés sur les tickets mis hors circuit par le moteur.
const (
	motifTicketRemplace = "Ticket remplacé lors de la modification du paiement"
	motifPaiementAnnule = "Ticket annulé suite à l'annulation du paiement"
)

// ParamsReglement porte les références du règlement d'une taxe
// journalière. Les entités sont rechargées dans la transaction, jamais
// validées sur l'état vu par l'appelant.
type ParamsReglement struct {
	CommercantID  uint
	Montant       decimal.Decimal
	ModePaiement  string
	EtalID        uint
	TicketID      uint
	CollecteurID  uint
	UtilisateurID *uint
	DatePaiement  *time.Time
}

// Service est le moteur de règlement: consommer un ticket, régler
// exactement une taxe journalière et créer un paiement, le tout
// atomiquement. Toute validation échouée abandonne la transaction sans
// écriture partielle.
type Service struct {
	taxes *taxe.Service
}

func NewService() *Service {
	return &Service{taxes: taxe.NewService()}
}

// Enregistrer règle la taxe du jour de l'étal avec le ticket fourni.
// Chaque contrôle est réévalué dans la transaction sur des entités
// rechargées, pour que deux règlements concurrents du même ticket ou de
// la même taxe ne puissent pas tous deux aboutir. Les violations de
// contraintes d'unicité en base sont la dernière ligne de défense et
// remontent comme l'erreur métier correspondante.
func (s *Service) Enregistrer(db *gorm.DB, p ParamsReglement) (*Paiement, error) {
	var cree Paiement
	err := db.Transaction(func(tx *gorm.DB) error {
		var com commercant.Commercant
		if err := tx.First(&com, p.CommercantID).Error; err != nil {
			return err
		}
		if !com.Actif {
			return ErrCommercantInactif
		}

		if p.EtalID == 0 {
			return ErrEtalObligatoire
		}
		if p.CollecteurID == 0 {
			return ErrCollecteurObligatoire
		}
		var col collecteur.Collecteur
		if err := tx.Where("actif = ?", true).First(&col, p.CollecteurID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCollecteurInvalide
			}
			return err
		}

		if p.TicketID == 0 {
			return ErrTicketObligatoire
		}

		// 1. Valider le ticket avant de créer le paiement. Une référence
		// fournie mais inconnue est un ticket indisponible, pas un ticket
		// manquant.
		var tck ticket.Ticket
		if err := tx.First(&tck, p.TicketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketIndisponible
			}
			return err
		}
		if tck.Statut != ticket.StatutDisponible || tck.Utilise {
			return ErrTicketIndisponible
		}
		var lies int64
		if err := tx.Model(&Paiement{}).Where("ticket_id = ?", tck.ID).Count(&lies).Error; err != nil {
			return err
		}
		if lies > 0 {
			return ErrTicketDejaLie
		}
		if tck.LotID == nil {
			return ErrTicketSansLot
		}
		var carnet lot.LotTickets
		if err := tx.First(&carnet, *tck.LotID).Error; err != nil {
			return err
		}
		if carnet.Statut != lot.StatutOuvert {
			return ErrLotClos
		}
		if carnet.CollecteurID != col.ID {
			return ErrMauvaisCollecteur
		}

		// 2. Valider l'étal
		var emp etal.Etal
		if err := tx.First(&emp, p.EtalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEtalObligatoire
			}
			return err
		}
		if emp.Statut != etal.StatutOccupe || emp.CommercantID == nil || *emp.CommercantID != com.ID {
			return ErrEtalNonOccupe
		}

		// 3. Valider la taxe journalière (pas de partiel)
		datePaiement := time.Now()
		if p.DatePaiement != nil {
			datePaiement = *p.DatePaiement
		}
		tj, err := s.taxes.GetOrCreate(tx, datePaiement, &emp)
		if err != nil {
			return err
		}
		if tj.Statut == taxe.StatutAnnule {
			return ErrTaxeAnnulee
		}
		if tj.Paye || tj.PaiementID != nil {
			return ErrTaxeDejaPayee
		}
		if !p.Montant.Equal(tj.MontantAttendu) {
			return ErreurPaiementPartiel{MontantAttendu: tj.MontantAttendu}
		}

		// 4. Créer le paiement
		mode := p.ModePaiement
		if mode == "" {
			mode = ModeEspeces
		}
		cree = Paiement{
			CommercantID:    com.ID,
			EtalID:          &emp.ID,
			Montant:         p.Montant,
			ModePaiement:    mode,
			TicketID:        &tck.ID,
			CollecteurID:    &col.ID,
			EnregistreParID: p.UtilisateurID,
			DatePaiement:    datePaiement,
		}
		if err := tx.Create(&cree).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrTicketDejaLie
			}
			return err
		}

		// 5. Consommer le ticket. La condition sur le statut ferme la
		// fenêtre entre la relecture et l'écriture.
		res := tx.Model(&ticket.Ticket{}).
			Where("id = ? AND statut = ?", tck.ID, ticket.StatutDisponible).
			Updates(map[string]interface{}{
				"utilise":          true,
				"statut":           ticket.StatutUtilise,
				"date_utilisation": cree.DatePaiement,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTicketIndisponible
		}

		// 6. Marquer la taxe du jour comme payée
		res = tx.Model(&taxe.TaxeJournaliere{}).
			Where("id = ? AND paye = ? AND paiement_id IS NULL", tj.ID, false).
			Updates(map[string]interface{}{
				"paye":        true,
				"statut":      taxe.StatutPaye,
				"paiement_id": cree.ID,
			})
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				return ErrTaxeDejaPayee
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTaxeDejaPayee
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cree, nil
}

// annulerTicketInterne met un ticket hors circuit sans passer par les
// gardes du registre: réservé aux chemins du moteur qui détiennent déjà
// le paiement lié.
func annulerTicketInterne(tx *gorm.DB, ticketID uint, motif string) error {
	return tx.Model(&ticket.Ticket{}).Where("id = ?", ticketID).Updates(map[string]interface{}{
		"utilise":          false,
		"statut":           ticket.StatutAnnule,
		"date_utilisation": nil,
		"motif":            motif,
	}).Error
}

// Modifier amende un paiement existant. Le montant doit toujours égaler
// le tarif recalculé de l'étal; un nouveau ticket remplace l'ancien, qui
// est annulé définitivement.
func (s *Service) Modifier(db *gorm.DB, paiementID uint, nouveauMontant decimal.Decimal, nouveauMode *string, nouveauTicketID *uint) (*Paiement, error) {
	var pmt Paiement
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pmt, paiementID).Error; err != nil {
			return err
		}
		if pmt.EtalID == nil {
			return ErrPaiementSansEtal
		}

		var emp etal.Etal
		if err := tx.First(&emp, *pmt.EtalID).Error; err != nil {
			return err
		}
		montantAttendu := taxe.TarifPour(&emp)
		if !nouveauMontant.Equal(montantAttendu) {
			return ErreurPaiementPartiel{MontantAttendu: montantAttendu}
		}

		if nouveauTicketID != nil {
			var tck ticket.Ticket
			if err := tx.First(&tck, *nouveauTicketID).Error; err != nil {
				return err
			}
			if tck.Statut != ticket.StatutDisponible || tck.Utilise {
				return ErrTicketIndisponible
			}
			var lies int64
			if err := tx.Model(&Paiement{}).Where("ticket_id = ?", tck.ID).Count(&lies).Error; err != nil {
				return err
			}
			if lies > 0 {
				return ErrTicketDejaLie
			}

			// Annuler l'ancien ticket (non réutilisable)
			if pmt.TicketID != nil {
				if err := annulerTicketInterne(tx, *pmt.TicketID, motifTicketRemplace); err != nil {
					return err
				}
			}

			pmt.TicketID = &tck.ID
			res := tx.Model(&ticket.Ticket{}).Where("id = ?", tck.ID).Updates(map[string]interface{}{
				"utilise":          true,
				"statut":           ticket.StatutUtilise,
				"date_utilisation": pmt.DatePaiement,
			})
			if res.Error != nil {
				return res.Error
			}
		}

		pmt.Montant = nouveauMontant
		if nouveauMode != nil && *nouveauMode != "" {
			pmt.ModePaiement = *nouveauMode
		}
		if err := tx.Save(&pmt).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrTicketDejaLie
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &pmt, nil
}

// Annuler défait un règlement: la taxe repasse en dû, le ticket est
// annulé définitivement (jamais rendu disponible) et le paiement est
// supprimé. Retourne l'identifiant supprimé pour la traçabilité.
func (s *Service) Annuler(db *gorm.DB, paiementID uint) (uint, error) {
	var supprime uint
	err := db.Transaction(func(tx *gorm.DB) error {
		var pmt Paiement
		if err := tx.First(&pmt, paiementID).Error; err != nil {
			return err
		}

		var tj taxe.TaxeJournaliere
		err := tx.Where("paiement_id = ?", pmt.ID).First(&tj).Error
		if err == nil {
			if err := tx.Model(&taxe.TaxeJournaliere{}).Where("id = ?", tj.ID).Updates(map[string]interface{}{
				"paye":        false,
				"statut":      taxe.StatutDu,
				"paiement_id": nil,
			}).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if pmt.TicketID != nil {
			if err := annulerTicketInterne(tx, *pmt.TicketID, motifPaiementAnnule); err != nil {
				return err
			}
		}

		if err := tx.Delete(&Paiement{}, pmt.ID).Error; err != nil {
			return err
		}
		supprime = pmt.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return supprime, nil
}
