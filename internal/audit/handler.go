package audit

import (
	"net/http"
	"strconv"

	"github.com/MairieServices/api-marche/internal/utils"

	"gorm.io/gorm"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// ListerJournal retourne les dernières entrées d'audit (admin uniquement).
func (h *Handler) ListerJournal(w http.ResponseWriter, r *http.Request) {
	limite := 100
	if v := r.URL.Query().Get("limite"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 1000 {
			utils.RespondError(w, http.StatusBadRequest, "limite invalide (1 à 1000)")
			return
		}
		limite = n
	}

	var entrees []JournalAudit
	q := h.DB.Order("id DESC").Limit(limite)
	if v := r.URL.Query().Get("utilisateurId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "utilisateurId invalide")
			return
		}
		q = q.Where("utilisateur_id = ?", id)
	}
	if err := q.Find(&entrees).Error; err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la lecture du journal")
		return
	}
	utils.RespondJSON(w, http.StatusOK, entrees)
}
