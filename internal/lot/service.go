package lot

import (
	"errors"
	"time"

	"github.com/MairieServices/api-marche/internal/ticket"
	"gorm.io/gorm"
)

// Erreurs du partitionnement des carnets.
var (
	// ErrLotClos: opération refusée sur un lot clos.
	ErrLotClos = errors.New("lot de tickets clos")
	// ErrPlageManquante: la plage de tickets doit contenir un début et une fin.
	ErrPlageManquante = errors.New("la plage de tickets est obligatoire")
	// ErrPlageInversee: la fin de plage doit être >= au début de plage.
	ErrPlageInversee = errors.New("la fin de plage doit être supérieure ou égale au début de plage")
	// ErrPlageIncomplete: certains tickets de la plage n'existent pas.
	ErrPlageIncomplete = errors.New("plage incomplète: certains tickets n'existent pas")
	// ErrPlageConflit: la plage chevauche un autre lot.
	ErrPlageConflit = errors.New("plage déjà attribuée à un autre lot")
	// ErrAssignationPartielle: incohérence fatale entre tickets résolus et liés.
	ErrAssignationPartielle = errors.New("assignation partielle détectée")
	// ErrLotImmuable: plage/collecteur figés dès qu'un ticket est assigné.
	ErrLotImmuable = errors.New("lot immuable: des tickets lui sont déjà assignés")
	// ErrLotOuvertExistant: le collecteur possède déjà un lot ouvert.
	ErrLotOuvertExistant = errors.New("ce collecteur possède déjà un lot ouvert")
	// ErrTicketsUtilises: réouverture refusée, des tickets du lot ont servi.
	ErrTicketsUtilises = errors.New("des tickets de ce lot ont déjà été utilisés")
)

// Service porte les règles de partitionnement: une plage de tickets
// appartient à au plus un carnet, sans chevauchement ni trou.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// numerosDePlage résout la liste des numéros externes de [debut, fin].
func numerosDePlage(debut, fin string) ([]string, error) {
	if debut == "" || fin == "" {
		return nil, ErrPlageManquante
	}
	d, err := ticket.ParseNumero(debut)
	if err != nil {
		return nil, err
	}
	f, err := ticket.ParseNumero(fin)
	if err != nil {
		return nil, err
	}
	if f < d {
		return nil, ErrPlageInversee
	}
	numeros := make([]string, 0, f-d+1)
	for i := d; i <= f; i++ {
		numeros = append(numeros, ticket.FormatNumero(i))
	}
	return numeros, nil
}

// Creer enregistre un nouveau carnet pour un collecteur. Un collecteur
// n'a droit qu'à un seul lot ouvert.
func (s *Service) Creer(db *gorm.DB, l *LotTickets) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if l.Statut == "" {
			l.Statut = StatutOuvert
		}
		if l.Statut == StatutOuvert {
			var ouverts int64
			if err := tx.Model(&LotTickets{}).
				Where("collecteur_id = ? AND statut = ?", l.CollecteurID, StatutOuvert).
				Count(&ouverts).Error; err != nil {
				return err
			}
			if ouverts > 0 {
				return ErrLotOuvertExistant
			}
		}
		if l.DateRemise.IsZero() {
			l.DateRemise = time.Now()
		}
		if err := tx.Create(l).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrLotOuvertExistant
			}
			return err
		}
		return nil
	})
}

// AssignerPlage lie chaque ticket de la plage du lot à celui-ci et
// retourne le nombre de tickets liés. L'opération est idempotente: les
// tickets déjà liés à ce lot ne comptent pas comme conflit.
func (s *Service) AssignerPlage(db *gorm.DB, lotID uint) (int, error) {
	var compte int
	err := db.Transaction(func(tx *gorm.DB) error {
		var l LotTickets
		if err := tx.First(&l, lotID).Error; err != nil {
			return err
		}
		if l.Statut != StatutOuvert {
			return ErrLotClos
		}

		numeros, err := numerosDePlage(l.TicketDebut, l.TicketFin)
		if err != nil {
			return err
		}

		var tickets []ticket.Ticket
		if err := tx.Where("numero IN ?", numeros).Find(&tickets).Error; err != nil {
			return err
		}
		if len(tickets) != len(numeros) {
			return ErrPlageIncomplete
		}
		for _, t := range tickets {
			if t.LotID != nil && *t.LotID != l.ID {
				return ErrPlageConflit
			}
		}

		res := tx.Model(&ticket.Ticket{}).
			Where("numero IN ?", numeros).
			Update("lot_id", l.ID)
		if res.Error != nil {
			return res.Error
		}
		if int(res.RowsAffected) != len(numeros) {
			return ErrAssignationPartielle
		}
		compte = len(numeros)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return compte, nil
}

// nbAssignes compte les tickets déjà liés au lot.
func nbAssignes(tx *gorm.DB, lotID uint) (int64, error) {
	var n int64
	err := tx.Model(&ticket.Ticket{}).Where("lot_id = ?", lotID).Count(&n).Error
	return n, err
}

// MettreAJour modifie un lot. Dès qu'un ticket est assigné, le
// collecteur et la plage sont figés; seul le statut reste modifiable.
func (s *Service) MettreAJour(db *gorm.DB, lotID uint, collecteurID *uint, ticketDebut, ticketFin *string) (*LotTickets, error) {
	var l LotTickets
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&l, lotID).Error; err != nil {
			return err
		}

		changeCollecteur := collecteurID != nil && *collecteurID != l.CollecteurID
		changePlage := (ticketDebut != nil && *ticketDebut != l.TicketDebut) ||
			(ticketFin != nil && *ticketFin != l.TicketFin)

		if changeCollecteur || changePlage {
			n, err := nbAssignes(tx, l.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				return ErrLotImmuable
			}
		}

		if changeCollecteur && l.Statut == StatutOuvert {
			var ouverts int64
			if err := tx.Model(&LotTickets{}).
				Where("collecteur_id = ? AND statut = ? AND id <> ?", *collecteurID, StatutOuvert, l.ID).
				Count(&ouverts).Error; err != nil {
				return err
			}
			if ouverts > 0 {
				return ErrLotOuvertExistant
			}
			l.CollecteurID = *collecteurID
		}
		if ticketDebut != nil {
			l.TicketDebut = *ticketDebut
		}
		if ticketFin != nil {
			l.TicketFin = *ticketFin
		}
		return tx.Save(&l).Error
	})
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Clore ferme un carnet et date la clôture. Idempotent.
func (s *Service) Clore(db *gorm.DB, lotID uint) (*LotTickets, error) {
	var l LotTickets
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&l, lotID).Error; err != nil {
			return err
		}
		if l.Statut == StatutClos {
			return nil
		}
		maintenant := time.Now()
		l.Statut = StatutClos
		l.DateCloture = &maintenant
		return tx.Save(&l).Error
	})
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Rouvrir repasse un carnet clos en ouvert. Refusé si un ticket du lot a
// déjà servi ou si le collecteur a un autre lot ouvert.
func (s *Service) Rouvrir(db *gorm.DB, lotID uint) (*LotTickets, error) {
	var l LotTickets
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&l, lotID).Error; err != nil {
			return err
		}
		if l.Statut == StatutOuvert {
			return nil
		}

		var utilises int64
		if err := tx.Model(&ticket.Ticket{}).
			Where("lot_id = ? AND statut = ?", l.ID, ticket.StatutUtilise).
			Count(&utilises).Error; err != nil {
			return err
		}
		if utilises > 0 {
			return ErrTicketsUtilises
		}

		var ouverts int64
		if err := tx.Model(&LotTickets{}).
			Where("collecteur_id = ? AND statut = ? AND id <> ?", l.CollecteurID, StatutOuvert, l.ID).
			Count(&ouverts).Error; err != nil {
			return err
		}
		if ouverts > 0 {
			return ErrLotOuvertExistant
		}

		l.Statut = StatutOuvert
		l.DateCloture = nil
		if err := tx.Save(&l).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrLotOuvertExistant
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &l, nil
}
