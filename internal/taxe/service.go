package taxe

import (
	"errors"
	"time"

	"github.com/MairieServices/api-marche/internal/etal"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrEtalNonAttribue: pas de taxe possible pour un étal sans commerçant.
var ErrEtalNonAttribue = errors.New("l'étal n'est pas attribué à un commerçant")

// Montants du barème journalier en FCFA.
var (
	tarifPetiteSuperficie = decimal.NewFromInt(500)
	tarifGrandeSuperficie = decimal.NewFromInt(1000)
	seuilSuperficie       = decimal.NewFromInt(50)
)

// Service génère et répare les taxes journalières.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// TarifPour calcule la taxe journalière selon la règle métier:
// superficie < 50 m² => 500 FCFA, superficie >= 50 m² => 1000 FCFA.
// C'est la seule source de vérité du montant attendu, à la génération
// comme à la validation du règlement.
func TarifPour(e *etal.Etal) decimal.Decimal {
	if e.Superficie.LessThan(seuilSuperficie) {
		return tarifPetiteSuperficie
	}
	return tarifGrandeSuperficie
}

// GetOrCreate retourne la taxe de (date, étal), en la créant au statut
// dû si besoin. Si l'attribution ou le barème ont changé depuis la
// création, commerçant et montant attendu sont réparés sur place sans
// toucher au statut ni au lien de paiement.
func (s *Service) GetOrCreate(db *gorm.DB, date time.Time, e *etal.Etal) (*TaxeJournaliere, error) {
	if e.CommercantID == nil {
		return nil, ErrEtalNonAttribue
	}
	montantAttendu := TarifPour(e)
	jour := DateSeule(date)

	var t TaxeJournaliere
	err := db.Where("date = ? AND etal_id = ?", jour, e.ID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		t = TaxeJournaliere{
			Date:           jour,
			EtalID:         e.ID,
			CommercantID:   *e.CommercantID,
			MontantAttendu: montantAttendu,
			Paye:           false,
			Statut:         StatutDu,
		}
		err = db.Create(&t).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Course avec une création concurrente: relire la ligne gagnante.
			err = db.Where("date = ? AND etal_id = ?", jour, e.ID).First(&t).Error
		}
		if err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	// Sécuriser les champs en cas de changement d'attribution / de règle
	updates := map[string]interface{}{}
	if t.CommercantID != *e.CommercantID {
		updates["commercant_id"] = *e.CommercantID
		t.CommercantID = *e.CommercantID
	}
	if !t.MontantAttendu.Equal(montantAttendu) {
		updates["montant_attendu"] = montantAttendu
		t.MontantAttendu = montantAttendu
	}
	if len(updates) > 0 {
		if err := db.Model(&TaxeJournaliere{}).Where("id = ?", t.ID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return &t, nil
}

// GenererPourDate crée la taxe du jour (statut dû) pour chaque étal
// occupé et attribué. Idempotent: rejouable sans doublon.
func (s *Service) GenererPourDate(db *gorm.DB, date time.Time) error {
	etals, err := etal.NewRepository().ListerOccupesAvecCommercant(db)
	if err != nil {
		return err
	}
	for i := range etals {
		if _, err := s.GetOrCreate(db, date, &etals[i]); err != nil {
			return err
		}
	}
	return nil
}
