package lot

import (
	"testing"

	"github.com/MairieServices/api-marche/internal/collecteur"
	"github.com/MairieServices/api-marche/internal/ticket"
	"github.com/glebarez/sqlite"
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
	require.NoError(t, db.AutoMigrate(&collecteur.Collecteur{}, &ticket.Ticket{}, &LotTickets{}))
	require.NoError(t, MigrerIndexLotOuvert(db))
	return db
}

func creerCollecteur(t *testing.T, db *gorm.DB) *collecteur.Collecteur {
	t.Helper()
	c := collecteur.Collecteur{Nom: "Diallo", Prenom: "Moussa", Actif: true}
	require.NoError(t, db.Create(&c).Error)
	return &c
}

func creerTickets(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	_, err := ticket.NewService().CreerEnMasse(db, n)
	require.NoError(t, err)
}

func TestCreerLotUnSeulOuvertParCollecteur(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	col := creerCollecteur(t, db)

	l1 := LotTickets{CollecteurID: col.ID}
	require.NoError(t, svc.Creer(db, &l1))
	assert.Equal(t, StatutOuvert, l1.Statut)

	l2 := LotTickets{CollecteurID: col.ID}
	assert.ErrorIs(t, svc.Creer(db, &l2), ErrLotOuvertExistant)

	// Un autre collecteur n'est pas concerné
	autre := creerCollecteur(t, db)
	l3 := LotTickets{CollecteurID: autre.ID}
	require.NoError(t, svc.Creer(db, &l3))
}

func TestAssignerPlage(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	col := creerCollecteur(t, db)
	creerTickets(t, db, 5)

	l := LotTickets{CollecteurID: col.ID, TicketDebut: "T-000001", TicketFin: "T-000005"}
	require.NoError(t, svc.Creer(db, &l))

	compte, err := svc.AssignerPlage(db, l.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, compte)

	var lies int64
	require.NoError(t, db.Model(&ticket.Ticket{}).Where("lot_id = ?", l.ID).Count(&lies).Error)
	assert.EqualValues(t, 5, lies)
}

func TestAssignerPlageIdempotente(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	col := creerCollecteur(t, db)
	creerTickets(t, db, 3)

	l := LotTickets{CollecteurID: col.ID, TicketDebut: "T-000001", TicketFin: "T-000003"}
	require.NoError(t, svc.Creer(db, &l))

	_, err := svc.AssignerPlage(db, l.ID)
	require.NoError(t, err)
	compte, err := svc.AssignerPlage(db, l.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, compte)
}

func TestAssignerPlageIncomplete(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	col := creerCollecteur(t, db)
	creerTickets(t, db, 3)

	l := LotTickets{CollecteurID: col.ID, TicketDebut: "T-000001", TicketFin: "T-000010"}
	require.NoError(t, svc.Creer(db, &l))

	_, err := svc.AssignerPlage(db, l.ID)
	assert.ErrorIs(t, err, ErrPlageIncomplete)
}

func TestAssignerPlageConflit(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	creerTickets(t, db, 5)

	colA := creerCollecteur(t, db)
	lA := LotTickets{CollecteurID: colA.ID, TicketDebut: "T-000001", TicketFin: "T-000003"}
	require.NoError(t, svc.Creer(db, &lA))
	_, err := svc.AssignerPlage(db, lA.ID)
	require.NoError(t, err)

	colB := creerCollecteur(t, db)
	lB := LotTickets{CollecteurID: colB.ID, TicketDebut: "T-000003", TicketFin: "T-000005"}
	require.NoError(t, svc.Creer(db, &lB))
	_, err = svc.AssignerPlage(db, lB.ID)
	assert.ErrorIs(t, err, ErrPlageConflit)
}

func TestAssignerPlageInversee(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	col := creerCollecteur(t, db)
	creerTickets(t, db, 3)

	l := LotTickets{CollecteurID: col.ID, TicketDebut: "T-000003", TicketFin: "T-000001"}
	require.NoError(t, svc.Creer(db, &l))

	_, err := svc.AssignerPlage(db, l.ID)
	assert.ErrorIs(t, err, ErrPlageInversee)
}

func TestMettreAJourLotImmuableApresAssignation(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	col := creerCollecteur(t, db)
	creerTickets(t, db, 2)

	l := LotTickets{CollecteurID: col.ID, TicketDebut: "T-000001", TicketFin: "T-000002"}
	require.NoError(t, svc.Creer(db, &l))
	_, err := svc.AssignerPlage(db, l.ID)
	require.NoError(t, err)

	fin := "T-000005"
	_, err = svc.MettreAJour(db, l.ID, nil, nil, &fin)
	assert.ErrorIs(t, err, ErrLotImmuable)
}

func TestMettreAJourAvantAssignation(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	col := creerCollecteur(t, db)

	l := LotTickets{CollecteurID: col.ID, TicketDebut: "T-000001", TicketFin: "T-000002"}
	require.NoError(t, svc.Creer(db, &l))

	fin := "T-000004"
	maj, err := svc.MettreAJour(db, l.ID, nil, nil, &fin)
	require.NoError(t, err)
	assert.Equal(t, "T-000004", maj.TicketFin)
}

func TestCloreEtRouvrir(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	col := creerCollecteur(t, db)

	l := LotTickets{CollecteurID: col.ID}
	require.NoError(t, svc.Creer(db, &l))

	clos, err := svc.Clore(db, l.ID)
	require.NoError(t, err)
	assert.Equal(t, StatutClos, clos.Statut)
	require.NotNil(t, clos.DateCloture)

	// Idempotent
	again, err := svc.Clore(db, l.ID)
	require.NoError(t, err)
	assert.Equal(t, StatutClos, again.Statut)

	rouvert, err := svc.Rouvrir(db, l.ID)
	require.NoError(t, err)
	assert.Equal(t, StatutOuvert, rouvert.Statut)
	assert.Nil(t, rouvert.DateCloture)
}

func TestRouvrirRefuseTicketsUtilises(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	col := creerCollecteur(t, db)
	creerTickets(t, db, 2)

	l := LotTickets{CollecteurID: col.ID, TicketDebut: "T-000001", TicketFin: "T-000002"}
	require.NoError(t, svc.Creer(db, &l))
	_, err := svc.AssignerPlage(db, l.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(&ticket.Ticket{}).Where("numero = ?", "T-000001").
		Updates(map[string]interface{}{"utilise": true, "statut": ticket.StatutUtilise}).Error)

	_, err = svc.Clore(db, l.ID)
	require.NoError(t, err)
	_, err = svc.Rouvrir(db, l.ID)
	assert.ErrorIs(t, err, ErrTicketsUtilises)
}

func TestRouvrirRefuseAutreLotOuvert(t *testing.T) {
	db := dbTest(t)
	svc := NewService()
	col := creerCollecteur(t, db)

	l1 := LotTickets{CollecteurID: col.ID}
	require.NoError(t, svc.Creer(db, &l1))
	_, err := svc.Clore(db, l1.ID)
	require.NoError(t, err)

	l2 := LotTickets{CollecteurID: col.ID}
	require.NoError(t, svc.Creer(db, &l2))

	_, err = svc.Rouvrir(db, l1.ID)
	assert.ErrorIs(t, err, ErrLotOuvertExistant)
}
