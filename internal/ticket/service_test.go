package ticket

import (
	"testing"

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
	require.NoError(t, db.AutoMigrate(&Ticket{}))
	// Le registre vérifie les liens de paiement par requête brute.
	require.NoError(t, db.Exec("CREATE TABLE paiements (id INTEGER PRIMARY KEY AUTOINCREMENT, ticket_id INTEGER)").Error)
	return db
}

func TestGenererNumeroSequence(t *testing.T) {
	db := dbTest(t)
	svc := NewService()

	n, err := svc.GenererNumero(db)
	require.NoError(t, err)
	assert.Equal(t, "T-000001", n)

	_, err = svc.Creer(db, "")
	require.NoError(t, err)
	_, err = svc.Creer(db, "")
	require.NoError(t, err)

	n, err = svc.GenererNumero(db)
	require.NoError(t, err)
	assert.Equal(t, "T-000003", n)
}

func TestCreerNumeroFourni(t *testing.T) {
	db := dbTest(t)
	svc := NewService()

	tck, err := svc.Creer(db, "T-000100")
	require.NoError(t, err)
	assert.Equal(t, "T-000100", tck.Numero)
	assert.Equal(t, StatutDisponible, tck.Statut)
	assert.False(t, tck.Utilise)
}

func TestCreerNumeroDuplique(t *testing.T) {
	db := dbTest(t)
	svc := NewService()

	_, err := svc.Creer(db, "T-000007")
	require.NoError(t, err)

	_, err = svc.Creer(db, "T-000007")
	assert.ErrorIs(t, err, ErrNumeroDuplique)
}

func TestCreerFormatInvalide(t *testing.T) {
	db := dbTest(t)
	svc := NewService()

	_, err := svc.Creer(db, "BAD-01")
	assert.ErrorIs(t, err, ErrFormatInvalide)
}

func TestCreerEnMasse(t *testing.T) {
	db := dbTest(t)
	svc := NewService()

	tickets, err := svc.CreerEnMasse(db, 5)
	require.NoError(t, err)
	require.Len(t, tickets, 5)
	assert.Equal(t, "T-000001", tickets[0].Numero)
	assert.Equal(t, "T-000005", tickets[4].Numero)

	// Le lot suivant continue la séquence
	tickets, err = svc.CreerEnMasse(db, 2)
	require.NoError(t, err)
	assert.Equal(t, "T-000006", tickets[0].Numero)
	assert.Equal(t, "T-000007", tickets[1].Numero)
}

func TestAnnulerTicketDisponible(t *testing.T) {
	db := dbTest(t)
	svc := NewService()

	tck, err := svc.Creer(db, "")
	require.NoError(t, err)

	require.NoError(t, svc.Annuler(db, tck, "", StatutAnnule))
	assert.Equal(t, StatutAnnule, tck.Statut)
	assert.Equal(t, MotifAnnulationDefaut, tck.Motif)

	var rechargee Ticket
	require.NoError(t, db.First(&rechargee, tck.ID).Error)
	assert.Equal(t, StatutAnnule, rechargee.Statut)
	assert.False(t, rechargee.Utilise)
}

func TestAnnulerPerduAvecMotif(t *testing.T) {
	db := dbTest(t)
	svc := NewService()

	tck, err := svc.Creer(db, "")
	require.NoError(t, err)

	require.NoError(t, svc.Annuler(db, tck, "Carnet égaré par le collecteur", StatutPerdu))
	assert.Equal(t, StatutPerdu, tck.Statut)
	assert.Equal(t, "Carnet égaré par le collecteur", tck.Motif)
}

func TestAnnulerRefuseTicketUtilise(t *testing.T) {
	db := dbTest(t)
	svc := NewService()

	tck, err := svc.Creer(db, "")
	require.NoError(t, err)
	require.NoError(t, db.Model(&Ticket{}).Where("id = ?", tck.ID).
		Updates(map[string]interface{}{"utilise": true, "statut": StatutUtilise}).Error)

	err = svc.Annuler(db, tck, "", StatutAnnule)
	assert.ErrorIs(t, err, ErrTicketDejaRegle)
}

func TestAnnulerRefuseTicketLieAPaiement(t *testing.T) {
	db := dbTest(t)
	svc := NewService()

	tck, err := svc.Creer(db, "")
	require.NoError(t, err)
	require.NoError(t, db.Exec("INSERT INTO paiements (ticket_id) VALUES (?)", tck.ID).Error)

	err = svc.Annuler(db, tck, "", StatutAnnule)
	assert.ErrorIs(t, err, ErrTicketDejaRegle)
}

func TestSupprimerRefuseTicketUtilise(t *testing.T) {
	db := dbTest(t)
	svc := NewService()

	tck, err := svc.Creer(db, "")
	require.NoError(t, err)
	require.NoError(t, db.Model(&Ticket{}).Where("id = ?", tck.ID).
		Updates(map[string]interface{}{"utilise": true, "statut": StatutUtilise}).Error)

	assert.ErrorIs(t, svc.Supprimer(db, tck), ErrTicketDejaRegle)
}

func TestSupprimerTicketNeuf(t *testing.T) {
	db := dbTest(t)
	svc := NewService()

	tck, err := svc.Creer(db, "")
	require.NoError(t, err)
	require.NoError(t, svc.Supprimer(db, tck))

	var n int64
	require.NoError(t, db.Model(&Ticket{}).Where("id = ?", tck.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestSupprimerLibereLeNumero(t *testing.T) {
	db := dbTest(t)
	svc := NewService()

	_, err := svc.CreerEnMasse(db, 3)
	require.NoError(t, err)

	// Supprimer le plus haut numéro: aucune ligne fantôme ne doit le retenir
	var dernier Ticket
	require.NoError(t, db.Where("numero = ?", "T-000003").First(&dernier).Error)
	require.NoError(t, svc.Supprimer(db, &dernier))

	n, err := svc.GenererNumero(db)
	require.NoError(t, err)
	assert.Equal(t, "T-000003", n)

	regenere, err := svc.Creer(db, "")
	require.NoError(t, err)
	assert.Equal(t, "T-000003", regenere.Numero)
}
