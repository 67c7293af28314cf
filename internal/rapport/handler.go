package rapport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MairieServices/api-marche/internal/utils"

	"gorm.io/gorm"
)

type Handler struct {
	DB      *gorm.DB
	Service *Service
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Service: NewService()}
}

func dateDepuisRequete(r *http.Request) (time.Time, bool) {
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}
	return time.Now(), true
}

// ConsoliderJournalier recalcule les rapports du jour (admin uniquement).
func (h *Handler) ConsoliderJournalier(w http.ResponseWriter, r *http.Request) {
	date, ok := dateDepuisRequete(r)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "date invalide, format attendu: AAAA-MM-JJ")
		return
	}

	nb, err := h.Service.ConsoliderJournalier(h.DB, date)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la consolidation")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]int{"rapportsConsolides": nb})
}

// ListerJournalier retourne les rapports journaliers d'une date.
func (h *Handler) ListerJournalier(w http.ResponseWriter, r *http.Request) {
	date, ok := dateDepuisRequete(r)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "date invalide, format attendu: AAAA-MM-JJ")
		return
	}

	list, err := h.Service.ListerJournalier(h.DB, date)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors du listing des rapports")
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

func anneeMoisDepuisRequete(r *http.Request) (int, int, bool) {
	maintenant := time.Now()
	annee, mois := maintenant.Year(), int(maintenant.Month())
	if v := r.URL.Query().Get("annee"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 2000 || n > 2100 {
			return 0, 0, false
		}
		annee = n
	}
	if v := r.URL.Query().Get("mois"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			return 0, 0, false
		}
		mois = n
	}
	return annee, mois, true
}

// ConsoliderMensuel recalcule les rapports du mois (admin uniquement).
func (h *Handler) ConsoliderMensuel(w http.ResponseWriter, r *http.Request) {
	annee, mois, ok := anneeMoisDepuisRequete(r)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "annee/mois invalides")
		return
	}

	nb, err := h.Service.ConsoliderMensuel(h.DB, annee, mois)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la consolidation")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]int{"rapportsConsolides": nb})
}

// ListerMensuel retourne les rapports mensuels d'un mois.
func (h *Handler) ListerMensuel(w http.ResponseWriter, r *http.Request) {
	annee, mois, ok := anneeMoisDepuisRequete(r)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "annee/mois invalides")
		return
	}

	list, err := h.Service.ListerMensuel(h.DB, annee, mois)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors du listing des rapports")
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}
