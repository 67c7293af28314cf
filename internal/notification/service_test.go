package notification

import (
	"testing"
	"time"

	"github.com/MairieServices/api-marche/internal/taxe"
	"github.com/MairieServices/api-marche/internal/utilisateur"
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
		&utilisateur.Utilisateur{},
		&taxe.TaxeJournaliere{},
		&Notification{},
	))
	return db
}

func TestCreerEtNonLues(t *testing.T) {
	db := dbTest(t)
	svc := NewService()

	n, err := svc.Creer(db, 1, "", "Bienvenue", "Compte créé")
	require.NoError(t, err)
	assert.Equal(t, TypeInfo, n.Type)

	list, err := svc.NonLues(db, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.MarquerLue(db, 1, n.ID))
	list, err = svc.NonLues(db, 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMarquerLueAutreUtilisateur(t *testing.T) {
	db := dbTest(t)
	svc := NewService()

	n, err := svc.Creer(db, 1, TypeInfo, "Titre", "Message")
	require.NoError(t, err)

	err = svc.MarquerLue(db, 2, n.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestNotifierRetards(t *testing.T) {
	db := dbTest(t)
	svc := NewService()

	admin := utilisateur.Utilisateur{Username: "regisseur", MotDePasse: "x", EstAdmin: true, Actif: true}
	agent := utilisateur.Utilisateur{Username: "agent", MotDePasse: "x", Actif: true}
	require.NoError(t, db.Create(&admin).Error)
	require.NoError(t, db.Create(&agent).Error)

	hier := taxe.DateSeule(time.Now().AddDate(0, 0, -1))
	tj := taxe.TaxeJournaliere{
		Date:           hier,
		EtalID:         1,
		CommercantID:   1,
		MontantAttendu: decimal.NewFromInt(500),
		Statut:         taxe.StatutDu,
	}
	require.NoError(t, db.Create(&tj).Error)

	nb, err := svc.NotifierRetards(db, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, nb)

	// Seul l'admin est prévenu
	list, err := svc.NonLues(db, admin.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, TypeRetard, list[0].Type)

	list, err = svc.NonLues(db, agent.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNotifierRetardsSansRetard(t *testing.T) {
	db := dbTest(t)
	svc := NewService()

	admin := utilisateur.Utilisateur{Username: "regisseur", MotDePasse: "x", EstAdmin: true, Actif: true}
	require.NoError(t, db.Create(&admin).Error)

	nb, err := svc.NotifierRetards(db, time.Now())
	require.NoError(t, err)
	assert.Zero(t, nb)
}
