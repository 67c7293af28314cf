package secteur

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MairieServices/api-marche/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

func (h *Handler) CreerSecteur(w http.ResponseWriter, r *http.Request) {
	var s Secteur
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "payload invalide")
		return
	}
	if s.Nom == "" {
		utils.RespondError(w, http.StatusBadRequest, "nom obligatoire")
		return
	}
	if s.JourEcheance < 1 || s.JourEcheance > 31 {
		s.JourEcheance = 31
	}
	if err := h.Repository.Sauver(h.DB, &s); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la création du secteur")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, s)
}

func (h *Handler) ListerSecteurs(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListerTous(h.DB)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors du listing des secteurs")
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) ChercherParID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "ID invalide")
		return
	}
	s, err := h.Repository.ChercherParID(h.DB, uint(id))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "secteur introuvable")
		return
	}
	utils.RespondJSON(w, http.StatusOK, s)
}

func (h *Handler) MettreAJourSecteur(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "ID invalide")
		return
	}
	s, err := h.Repository.ChercherParID(h.DB, uint(id))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "secteur introuvable")
		return
	}
	if err := json.NewDecoder(r.Body).Decode(s); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "payload invalide")
		return
	}
	s.ID = uint(id)
	if err := h.Repository.Sauver(h.DB, s); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la mise à jour du secteur")
		return
	}
	utils.RespondJSON(w, http.StatusOK, s)
}

func (h *Handler) SupprimerSecteur(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "ID invalide")
		return
	}
	if err := h.Repository.Supprimer(h.DB, uint(id)); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la suppression du secteur")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "secteur supprimé"})
}
