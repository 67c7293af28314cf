package ticket

import (
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// MotifAnnulationDefaut est utilisé quand aucun motif n'est fourni.
const MotifAnnulationDefaut = "Annulé par l'administration"

// Service porte les règles du registre des tickets: numérotation,
// création et mise hors circuit.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// GenererNumero retourne le numéro suivant: un de plus que le plus haut
// suffixe numérique existant.
func (s *Service) GenererNumero(db *gorm.DB) (string, error) {
	var dernier Ticket
	err := db.Order("id DESC").First(&dernier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return FormatNumero(1), nil
	}
	if err != nil {
		return "", err
	}

	numero := 0
	if parts := strings.SplitN(dernier.Numero, "-", 2); len(parts) == 2 {
		if n, convErr := strconv.Atoi(parts[1]); convErr == nil {
			numero = n
		}
	}
	return FormatNumero(numero + 1), nil
}

// Creer crée un ticket. Si numero est vide il est auto-généré.
func (s *Service) Creer(db *gorm.DB, numero string) (*Ticket, error) {
	if numero == "" {
		genere, err := s.GenererNumero(db)
		if err != nil {
			return nil, err
		}
		numero = genere
	} else if _, err := ParseNumero(numero); err != nil {
		return nil, err
	}

	t := Ticket{Numero: numero, Statut: StatutDisponible}
	if err := db.Create(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNumeroDuplique
		}
		return nil, err
	}
	return &t, nil
}

// CreerEnMasse génère quantite tickets séquentiels. Le registre n'impose
// pas de borne: elle appartient à la surface appelante.
func (s *Service) CreerEnMasse(db *gorm.DB, quantite int) ([]Ticket, error) {
	tickets := make([]Ticket, 0, quantite)
	err := db.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < quantite; i++ {
			t, err := s.Creer(tx, "")
			if err != nil {
				return err
			}
			tickets = append(tickets, *t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// Annuler met un ticket hors circuit (annulé ou perdu). Refusé si le
// ticket a déjà servi ou est lié à un paiement.
func (s *Service) Annuler(db *gorm.DB, t *Ticket, motif, statut string) error {
	if statut != StatutAnnule && statut != StatutPerdu {
		statut = StatutAnnule
	}
	if motif == "" {
		motif = MotifAnnulationDefaut
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var courant Ticket
		if err := tx.First(&courant, t.ID).Error; err != nil {
			return err
		}
		if courant.Utilise || courant.Statut == StatutUtilise {
			return ErrTicketDejaRegle
		}

		var lies int64
		if err := tx.Table("paiements").Where("ticket_id = ?", courant.ID).Count(&lies).Error; err != nil {
			return err
		}
		if lies > 0 {
			return ErrTicketDejaRegle
		}

		res := tx.Model(&Ticket{}).Where("id = ?", courant.ID).Updates(map[string]interface{}{
			"statut":           statut,
			"utilise":          false,
			"date_utilisation": nil,
			"motif":            motif,
		})
		if res.Error != nil {
			return res.Error
		}
		t.Statut = statut
		t.Utilise = false
		t.DateUtilisation = nil
		t.Motif = motif
		return nil
	})
}

// Supprimer détruit définitivement un ticket jamais utilisé; son numéro
// redevient disponible pour la génération.
func (s *Service) Supprimer(db *gorm.DB, t *Ticket) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var courant Ticket
		if err := tx.First(&courant, t.ID).Error; err != nil {
			return err
		}
		if courant.Utilise || courant.Statut == StatutUtilise {
			return ErrTicketDejaRegle
		}
		var lies int64
		if err := tx.Table("paiements").Where("ticket_id = ?", courant.ID).Count(&lies).Error; err != nil {
			return err
		}
		if lies > 0 {
			return ErrTicketDejaRegle
		}
		return tx.Delete(&Ticket{}, courant.ID).Error
	})
}
