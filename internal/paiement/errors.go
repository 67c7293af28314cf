package paiement

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Erreurs du moteur de règlement. Chacune correspond à un refus métier
// précis; le moteur ne retourne jamais de message formaté, la couche de
// présentation s'en charge.
var (
	// ErrCommercantInactif: aucun paiement pour un commerçant inactif.
	ErrCommercantInactif = errors.New("le commerçant est inactif")
	// ErrEtalObligatoire: un étal est obligatoire pour une taxe journalière.
	ErrEtalObligatoire = errors.New("un étal est obligatoire pour enregistrer une taxe journalière")
	// ErrCollecteurObligatoire: le collecteur est obligatoire.
	ErrCollecteurObligatoire = errors.New("le collecteur est obligatoire")
	// ErrCollecteurInvalide: collecteur introuvable ou inactif.
	ErrCollecteurInvalide = errors.New("collecteur invalide ou inactif")
	// ErrTicketObligatoire: pas de paiement sans ticket physique.
	ErrTicketObligatoire = errors.New("un ticket est obligatoire")
	// ErrTicketIndisponible: ticket déjà utilisé ou hors circuit.
	ErrTicketIndisponible = errors.New("ticket déjà utilisé ou non disponible")
	// ErrTicketDejaLie: un paiement référence déjà ce ticket.
	ErrTicketDejaLie = errors.New("ticket déjà lié à un paiement existant")
	// ErrTicketSansLot: le ticket n'a pas été remis à un collecteur.
	ErrTicketSansLot = errors.New("ticket non attribué à un lot")
	// ErrLotClos: le carnet du ticket est clos.
	ErrLotClos = errors.New("lot de tickets clos")
	// ErrMauvaisCollecteur: le ticket appartient au carnet d'un autre collecteur.
	ErrMauvaisCollecteur = errors.New("ticket non attribué à ce collecteur")
	// ErrEtalNonOccupe: l'étal n'est pas occupé par ce commerçant.
	ErrEtalNonOccupe = errors.New("l'étal sélectionné n'est pas occupé par ce commerçant")
	// ErrTaxeAnnulee: la taxe de cet étal à cette date est annulée.
	ErrTaxeAnnulee = errors.New("la taxe journalière est annulée pour cet étal à cette date")
	// ErrTaxeDejaPayee: la taxe de cet étal à cette date est déjà réglée.
	ErrTaxeDejaPayee = errors.New("la taxe journalière est déjà payée pour cet étal à cette date")
	// ErrPaiementSansEtal: modification impossible sans étal lié.
	ErrPaiementSansEtal = errors.New("impossible de modifier: paiement sans étal")
)

// ErreurPaiementPartiel est retournée quand le montant proposé diffère
// du montant attendu. Aucun paiement partiel n'est représentable; le
// montant attendu est porté par l'erreur pour l'affichage.
type ErreurPaiementPartiel struct {
	MontantAttendu decimal.Decimal
}

func (e ErreurPaiementPartiel) Error() string {
	return fmt.Sprintf("paiement partiel interdit, montant attendu: %s FCFA", e.MontantAttendu.StringFixed(0))
}
