package paiement

import (
	"testing"
	"time"

	"github.com/MairieServices/api-marche/internal/collecteur"
	"github.com/MairieServices/api-marche/internal/commercant"
	"github.com/MairieServices/api-marche/internal/etal"
	"github.com/MairieServices/api-marche/internal/lot"
	"github.com/MairieServices/api-marche/internal/secteur"
	"github.com/MairieServices/api-marche/internal/taxe"
	"github.com/MairieServices/api-marche/internal/ticket"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dbTest(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&secteur.Secteur{},
		&commercant.Commercant{},
		&collecteur.Collecteur{},
		&etal.Etal{},
		&ticket.Ticket{},
		&lot.LotTickets{},
		&taxe.TaxeJournaliere{},
		&Paiement{},
	))
	require.NoError(t, lot.MigrerIndexLotOuvert(db))
	return db
}

// marche regroupe un décor complet: commerçant actif sur un étal de
// 30 m² (tarif 500), collecteur actif avec un lot ouvert de 5 tickets.
type marche struct {
	com     *commercant.Commercant
	col     *collecteur.Collecteur
	emp     *etal.Etal
	carnet  *lot.LotTickets
	tickets []ticket.Ticket
}

func monterMarche(t *testing.T, db *gorm.DB) *marche {
	t.Helper()

	sec := secteur.Secteur{Nom: "Halle centrale"}
	require.NoError(t, db.Create(&sec).Error)

	com := commercant.Commercant{Nom: "Keita", Prenom: "Awa", Actif: true}
	require.NoError(t, db.Create(&com).Error)

	col := collecteur.Collecteur{Nom: "Diallo", Prenom: "Moussa", Actif: true}
	require.NoError(t, db.Create(&col).Error)

	emp := etal.Etal{
		Numero:       "E-001",
		SecteurID:    sec.ID,
		Superficie:   decimal.NewFromInt(30),
		Statut:       etal.StatutOccupe,
		CommercantID: &com.ID,
	}
	require.NoError(t, db.Create(&emp).Error)

	tickets, err := ticket.NewService().CreerEnMasse(db, 5)
	require.NoError(t, err)

	carnet := lot.LotTickets{CollecteurID: col.ID, TicketDebut: "T-000001", TicketFin: "T-000005"}
	require.NoError(t, lot.NewService().Creer(db, &carnet))
	_, err = lot.NewService().AssignerPlage(db, carnet.ID)
	require.NoError(t, err)

	require.NoError(t, db.Order("id").Find(&tickets).Error)
	return &marche{com: &com, col: &col, emp: &emp, carnet: &carnet, tickets: tickets}
}

func (m *marche) params(montant int64, ticketID uint) ParamsReglement {
	date := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	return ParamsReglement{
		CommercantID: m.com.ID,
		Montant:      decimal.NewFromInt(montant),
		EtalID:       m.emp.ID,
		TicketID:     ticketID,
		CollecteurID: m.col.ID,
		DatePaiement: &date,
	}
}

func TestEnregistrerReglementComplet(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	m := monterMarche(t, db)

	p, err := svc.Enregistrer(db, m.params(500, m.tickets[0].ID))
	require.NoError(t, err)
	require.NotZero(t, p.ID)
	assert.True(t, p.Montant.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, ModeEspeces, p.ModePaiement)

	// Le ticket est consommé
	var tck ticket.Ticket
	require.NoError(t, db.First(&tck, m.tickets[0].ID).Error)
	assert.Equal(t, ticket.StatutUtilise, tck.Statut)
	assert.True(t, tck.Utilise)
	require.NotNil(t, tck.DateUtilisation)

	// La taxe du jour est réglée et liée au paiement
	var tj taxe.TaxeJournaliere
	require.NoError(t, db.Where("etal_id = ?", m.emp.ID).First(&tj).Error)
	assert.True(t, tj.Paye)
	assert.Equal(t, taxe.StatutPaye, tj.Statut)
	require.NotNil(t, tj.PaiementID)
	assert.Equal(t, p.ID, *tj.PaiementID)
}

func TestEnregistrerRefusePaiementPartiel(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	m := monterMarche(t, db)

	for _, montant := range []int64{0, 300, 499} {
		_, err := svc.Enregistrer(db, m.params(montant, m.tickets[0].ID))
		var partiel ErreurPaiementPartiel
		require.ErrorAs(t, err, &partiel, "montant %d", montant)
		assert.True(t, partiel.MontantAttendu.Equal(decimal.NewFromInt(500)))
	}

	// Rien n'a été écrit
	var nb int64
	require.NoError(t, db.Model(&Paiement{}).Count(&nb).Error)
	assert.Zero(t, nb)
	var tck ticket.Ticket
	require.NoError(t, db.First(&tck, m.tickets[0].ID).Error)
	assert.Equal(t, ticket.StatutDisponible, tck.Statut)
}

func TestEnregistrerRefuseMontantSuperieur(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	m := monterMarche(t, db)

	_, err := svc.Enregistrer(db, m.params(1000, m.tickets[0].ID))
	var partiel ErreurPaiementPartiel
	require.ErrorAs(t, err, &partiel)
	assert.True(t, partiel.MontantAttendu.Equal(decimal.NewFromInt(500)))
}

func TestEnregistrerRefuseSecondReglementMemeTicket(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	m := monterMarche(t, db)

	_, err := svc.Enregistrer(db, m.params(500, m.tickets[0].ID))
	require.NoError(t, err)

	_, err = svc.Enregistrer(db, m.params(500, m.tickets[0].ID))
	assert.ErrorIs(t, err, ErrTicketIndisponible)
}

// Deux règlements simultanés du même ticket se départagent sur les
// contraintes d'unicité en base: le perdant voit ErrDuplicatedKey,
// remappé en erreur métier par le moteur.
func TestUniciteTicketParPaiementEnBase(t *testing.T) {
	db := dbTest(t)
	m := monterMarche(t, db)

	gagnant := Paiement{
		CommercantID: m.com.ID,
		Montant:      decimal.NewFromInt(500),
		DatePaiement: time.Now(),
		ModePaiement: ModeEspeces,
		TicketID:     &m.tickets[0].ID,
	}
	require.NoError(t, db.Create(&gagnant).Error)

	perdant := Paiement{
		CommercantID: m.com.ID,
		Montant:      decimal.NewFromInt(500),
		DatePaiement: time.Now(),
		ModePaiement: ModeEspeces,
		TicketID:     &m.tickets[0].ID,
	}
	assert.ErrorIs(t, db.Create(&perdant).Error, gorm.ErrDuplicatedKey)
}

// Même garde pour la taxe: un seul paiement peut la référencer.
func TestUnicitePaiementParTaxeEnBase(t *testing.T) {
	db := dbTest(t)
	m := monterMarche(t, db)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	tj, err := taxe.NewService().GetOrCreate(db, date, m.emp)
	require.NoError(t, err)

	paiementID := uint(41)
	require.NoError(t, db.Model(&taxe.TaxeJournaliere{}).
		Where("id = ?", tj.ID).Update("paiement_id", paiementID).Error)

	doublon := taxe.TaxeJournaliere{
		Date:           taxe.DateSeule(date.AddDate(0, 0, 1)),
		EtalID:         m.emp.ID,
		CommercantID:   m.com.ID,
		MontantAttendu: decimal.NewFromInt(500),
		Statut:         taxe.StatutDu,
		PaiementID:     &paiementID,
	}
	assert.ErrorIs(t, db.Create(&doublon).Error, gorm.ErrDuplicatedKey)
}

// Si le ticket est consommé entre la relecture et l'écriture, la mise à
// jour conditionnelle ne touche aucune ligne: c'est la fenêtre que ferme
// le moteur avant de valider la transaction.
func TestConsommationConditionnelleDuTicket(t *testing.T) {
	db := dbTest(t)
	m := monterMarche(t, db)

	res := db.Model(&ticket.Ticket{}).
		Where("id = ? AND statut = ?", m.tickets[0].ID, ticket.StatutDisponible).
		Updates(map[string]interface{}{"utilise": true, "statut": ticket.StatutUtilise})
	require.NoError(t, res.Error)
	assert.EqualValues(t, 1, res.RowsAffected)

	// Un concurrent arrivé en second ne touche aucune ligne
	res = db.Model(&ticket.Ticket{}).
		Where("id = ? AND statut = ?", m.tickets[0].ID, ticket.StatutDisponible).
		Updates(map[string]interface{}{"utilise": true, "statut": ticket.StatutUtilise})
	require.NoError(t, res.Error)
	assert.Zero(t, res.RowsAffected)
}

func TestEnregistrerRefuseTaxeDejaPayee(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	m := monterMarche(t, db)

	_, err := svc.Enregistrer(db, m.params(500, m.tickets[0].ID))
	require.NoError(t, err)

	// Ticket neuf, même étal, même jour
	_, err = svc.Enregistrer(db, m.params(500, m.tickets[1].ID))
	assert.ErrorIs(t, err, ErrTaxeDejaPayee)
}

func TestEnregistrerRefuseCommercantInactif(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	m := monterMarche(t, db)

	require.NoError(t, db.Model(m.com).Update("actif", false).Error)
	_, err := svc.Enregistrer(db, m.params(500, m.tickets[0].ID))
	assert.ErrorIs(t, err, ErrCommercantInactif)
}

func TestEnregistrerRefuseTicketSansLot(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	m := monterMarche(t, db)

	orphelin, err := ticket.NewService().Creer(db, "")
	require.NoError(t, err)

	_, err = svc.Enregistrer(db, m.params(500, orphelin.ID))
	assert.ErrorIs(t, err, ErrTicketSansLot)
}

func TestEnregistrerRefuseLotClos(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	m := monterMarche(t, db)

	_, err := lot.NewService().Clore(db, m.carnet.ID)
	require.NoError(t, err)

	_, err = svc.Enregistrer(db, m.params(500, m.tickets[0].ID))
	assert.ErrorIs(t, err, ErrLotClos)
}

func TestEnregistrerRefuseMauvaisCollecteur(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	m := monterMarche(t, db)

	autre := collecteur.Collecteur{Nom: "Sow", Prenom: "Ibrahima", Actif: true}
	require.NoError(t, db.Create(&autre).Error)

	p := m.params(500, m.tickets[0].ID)
	p.CollecteurID = autre.ID
	_, err := svc.Enregistrer(db, p)
	assert.ErrorIs(t, err, ErrMauvaisCollecteur)
}

func TestEnregistrerRefuseCollecteurInactif(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	m := monterMarche(t, db)

	require.NoError(t, db.Model(m.col).Update("actif", false).Error)
	_, err := svc.Enregistrer(db, m.params(500, m.tickets[0].ID))
	assert.ErrorIs(t, err, ErrCollecteurInvalide)
}

func TestEnregistrerRefuseEtalNonOccupe(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	m := monterMarche(t, db)

	require.NoError(t, db.Model(m.emp).Updates(map[string]interface{}{
		"statut": etal.StatutLibre, "commercant_id": nil,
	}).Error)

	_, err := svc.Enregistrer(db, m.params(500, m.tickets[0].ID))
	assert.ErrorIs(t, err, ErrEtalNonOccupe)
}

func TestEnregistrerRefuseTaxeAnnulee(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	m := monterMarche(t, db)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	tj, err := taxe.NewService().GetOrCreate(db, date, m.emp)
	require.NoError(t, err)
	require.NoError(t, taxe.NewRepository().Annuler(db, tj.ID))

	_, err = svc.Enregistrer(db, m.params(500, m.tickets[0].ID))
	assert.ErrorIs(t, err, ErrTaxeAnnulee)
}

func TestEnregistrerReferencesObligatoires(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	m := monterMarche(t, db)

	p := m.params(500, m.tickets[0].ID)
	p.EtalID = 0
	_, err := svc.Enregistrer(db, p)
	assert.ErrorIs(t, err, ErrEtalObligatoire)

	p = m.params(500, m.tickets[0].ID)
	p.CollecteurID = 0
	_, err = svc.Enregistrer(db, p)
	assert.ErrorIs(t, err, ErrCollecteurObligatoire)

	p = m.params(500, 0)
	_, err = svc.Enregistrer(db, p)
	assert.ErrorIs(t, err, ErrTicketObligatoire)
}

func TestEnregistrerTicketInconnu(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	m := monterMarche(t, db)

	// Référence fournie mais inexistante: indisponible, pas manquant
	_, err := svc.Enregistrer(db, m.params(500, 99999))
	assert.ErrorIs(t, err, ErrTicketIndisponible)
}

func TestAnnulerReglement(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	m := monterMarche(t, db)

	p, err := svc.Enregistrer(db, m.params(500, m.tickets[0].ID))
	require.NoError(t, err)

	supprime, err := svc.Annuler(db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, supprime)

	// La taxe repasse en dû
	var tj taxe.TaxeJournaliere
	require.NoError(t, db.Where("etal_id = ?", m.emp.ID).First(&tj).Error)
	assert.False(t, tj.Paye)
	assert.Equal(t, taxe.StatutDu, tj.Statut)
	assert.Nil(t, tj.PaiementID)

	// Le ticket est annulé définitivement, jamais redisponible
	var tck ticket.Ticket
	require.NoError(t, db.First(&tck, m.tickets[0].ID).Error)
	assert.Equal(t, ticket.StatutAnnule, tck.Statut)
	assert.False(t, tck.Utilise)

	// Le paiement est détruit
	var nb int64
	require.NoError(t, db.Model(&Paiement{}).Count(&nb).Error)
	assert.Zero(t, nb)
}

func TestAnnulerPuisReglerAvecMemeTicket(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	m := monterMarche(t, db)

	p, err := svc.Enregistrer(db, m.params(500, m.tickets[0].ID))
	require.NoError(t, err)
	_, err = svc.Annuler(db, p.ID)
	require.NoError(t, err)

	// Le ticket consommé ne ressert jamais
	_, err = svc.Enregistrer(db, m.params(500, m.tickets[0].ID))
	assert.ErrorIs(t, err, ErrTicketIndisponible)

	// Un ticket neuf règle la taxe redevenue due
	_, err = svc.Enregistrer(db, m.params(500, m.tickets[1].ID))
	require.NoError(t, err)
}

func TestModifierMontantExigeLeTarif(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	m := monterMarche(t, db)

	p, err := svc.Enregistrer(db, m.params(500, m.tickets[0].ID))
	require.NoError(t, err)

	_, err = svc.Modifier(db, p.ID, decimal.NewFromInt(300), nil, nil)
	var partiel ErreurPaiementPartiel
	require.ErrorAs(t, err, &partiel)
	assert.True(t, partiel.MontantAttendu.Equal(decimal.NewFromInt(500)))
}

func TestModifierRemplaceLeTicket(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	m := monterMarche(t, db)

	p, err := svc.Enregistrer(db, m.params(500, m.tickets[0].ID))
	require.NoError(t, err)

	mode := ModeMobileMoney
	maj, err := svc.Modifier(db, p.ID, decimal.NewFromInt(500), &mode, &m.tickets[1].ID)
	require.NoError(t, err)
	assert.Equal(t, ModeMobileMoney, maj.ModePaiement)
	require.NotNil(t, maj.TicketID)
	assert.Equal(t, m.tickets[1].ID, *maj.TicketID)

	// L'ancien ticket est annulé, le nouveau consommé
	var ancien, nouveau ticket.Ticket
	require.NoError(t, db.First(&ancien, m.tickets[0].ID).Error)
	require.NoError(t, db.First(&nouveau, m.tickets[1].ID).Error)
	assert.Equal(t, ticket.StatutAnnule, ancien.Statut)
	assert.Equal(t, ticket.StatutUtilise, nouveau.Statut)
}

func TestModifierRefuseTicketDejaConsomme(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	m := monterMarche(t, db)

	p, err := svc.Enregistrer(db, m.params(500, m.tickets[0].ID))
	require.NoError(t, err)

	_, err = svc.Modifier(db, p.ID, decimal.NewFromInt(500), nil, &m.tickets[0].ID)
	assert.ErrorIs(t, err, ErrTicketIndisponible)
}
