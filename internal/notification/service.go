package notification

import (
	"fmt"
	"time"

	"github.com/MairieServices/api-marche/internal/taxe"
	"github.com/MairieServices/api-marche/internal/utilisateur"

	"gorm.io/gorm"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Creer enregistre une notification pour un utilisateur.
func (s *Service) Creer(db *gorm.DB, utilisateurID uint, typ, titre, message string) (*Notification, error) {
	if typ == "" {
		typ = TypeInfo
	}
	n := Notification{
		UtilisateurID: utilisateurID,
		Type:          typ,
		Titre:         titre,
		Message:       message,
	}
	if err := db.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// NotifierRetards compte les taxes en retard et prévient chaque
// administrateur actif. Sans retard, aucune notification n'est créée.
func (s *Service) NotifierRetards(db *gorm.DB, maintenant time.Time) (int, error) {
	var nbRetards int64
	err := db.Model(&taxe.TaxeJournaliere{}).
		Where("paye = ? AND statut = ? AND date < ?", false, taxe.StatutDu, taxe.DateSeule(maintenant)).
		Count(&nbRetards).Error
	if err != nil {
		return 0, err
	}
	if nbRetards == 0 {
		return 0, nil
	}

	var admins []utilisateur.Utilisateur
	if err := db.Where("est_admin = ? AND actif = ?", true, true).Find(&admins).Error; err != nil {
		return 0, err
	}

	message := fmt.Sprintf("%d taxe(s) journalière(s) impayée(s) de jours antérieurs", nbRetards)
	for _, admin := range admins {
		if _, err := s.Creer(db, admin.ID, TypeRetard, "Taxes en retard", message); err != nil {
			return 0, err
		}
	}
	return len(admins), nil
}

// NonLues retourne les notifications non lues d'un utilisateur.
func (s *Service) NonLues(db *gorm.DB, utilisateurID uint) ([]Notification, error) {
	var list []Notification
	err := db.Where("utilisateur_id = ? AND lue = ?", utilisateurID, false).
		Order("id DESC").Find(&list).Error
	return list, err
}

// MarquerLue marque une notification comme lue si elle appartient bien
// à l'utilisateur.
func (s *Service) MarquerLue(db *gorm.DB, utilisateurID, notificationID uint) error {
	res := db.Model(&Notification{}).
		Where("id = ? AND utilisateur_id = ?", notificationID, utilisateurID).
		Update("lue", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
