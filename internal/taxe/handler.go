package taxe

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/MairieServices/api-marche/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Service    *Service
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Service:    NewService(),
	}
}

// GenererPourDate déclenche la génération des taxes du jour. Appelé par
// le planificateur externe ou à la demande; rejouable sans effet.
func (h *Handler) GenererPourDate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "date invalide, format attendu: AAAA-MM-JJ")
			return
		}
		date = parsed
	}

	if err := h.Service.GenererPourDate(h.DB, date); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la génération des taxes")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "taxes générées",
		"date":    DateSeule(date).Format("2006-01-02"),
	})
}

// ListerParDate retourne les taxes d'une date (par défaut aujourd'hui).
func (h *Handler) ListerParDate(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "date invalide, format attendu: AAAA-MM-JJ")
			return
		}
		date = parsed
	}

	list, err := h.Repository.ListerParDate(h.DB, date)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors du listing des taxes")
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

// ListerRetards retourne les taxes impayées des jours passés.
func (h *Handler) ListerRetards(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListerRetards(h.DB, time.Now(), 100)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors du listing des retards")
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

// AnnulerTaxe passe une taxe au statut annulé (admin uniquement).
func (h *Handler) AnnulerTaxe(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "ID invalide")
		return
	}

	if _, err := h.Repository.ChercherParID(h.DB, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(w, http.StatusNotFound, "taxe introuvable")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la recherche de la taxe")
		return
	}

	if err := h.Repository.Annuler(h.DB, uint(id)); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de l'annulation de la taxe")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "taxe annulée"})
}
