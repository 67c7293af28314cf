package commercant

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/MairieServices/api-marche/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type createCommercantRequest struct {
	Nom          string `json:"nom"`
	Prenom       string `json:"prenom"`
	Contact      string `json:"contact"`
	TypeCommerce string `json:"typeCommerce"`
}

// Handler encapsule DB et repository
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

// CreerCommercant inscrit un nouveau commerçant
func (h *Handler) CreerCommercant(w http.ResponseWriter, r *http.Request) {
	var req createCommercantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "payload invalide")
		return
	}
	if req.Nom == "" || req.Prenom == "" {
		utils.RespondError(w, http.StatusBadRequest, "nom et prénom obligatoires")
		return
	}

	c := Commercant{
		Nom:             req.Nom,
		Prenom:          req.Prenom,
		Contact:         req.Contact,
		TypeCommerce:    req.TypeCommerce,
		DateInscription: time.Now(),
		Actif:           true,
	}
	if err := h.Repository.Sauver(h.DB, &c); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la création du commerçant")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, c)
}

// ListerCommercants retourne tous les commerçants
func (h *Handler) ListerCommercants(w http.ResponseWriter, r *http.Request) {
	var (
		list []Commercant
		err  error
	)
	if r.URL.Query().Get("actifs") == "true" {
		list, err = h.Repository.ListerActifs(h.DB)
	} else {
		list, err = h.Repository.ListerTous(h.DB)
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors du listing des commerçants")
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}

// ChercherParID retourne un commerçant par son ID
func (h *Handler) ChercherParID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "ID invalide")
		return
	}

	c, err := h.Repository.ChercherParID(h.DB, uint(id))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "commerçant introuvable")
		return
	}
	utils.RespondJSON(w, http.StatusOK, c)
}

// MettreAJourCommercant modifie un commerçant existant
func (h *Handler) MettreAJourCommercant(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "ID invalide")
		return
	}

	c, err := h.Repository.ChercherParID(h.DB, uint(id))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "commerçant introuvable")
		return
	}

	var req struct {
		Nom          *string `json:"nom"`
		Prenom       *string `json:"prenom"`
		Contact      *string `json:"contact"`
		TypeCommerce *string `json:"typeCommerce"`
		Actif        *bool   `json:"actif"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "payload invalide")
		return
	}
	if req.Nom != nil {
		c.Nom = *req.Nom
	}
	if req.Prenom != nil {
		c.Prenom = *req.Prenom
	}
	if req.Contact != nil {
		c.Contact = *req.Contact
	}
	if req.TypeCommerce != nil {
		c.TypeCommerce = *req.TypeCommerce
	}
	if req.Actif != nil {
		c.Actif = *req.Actif
	}

	if err := h.Repository.Sauver(h.DB, c); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la mise à jour du commerçant")
		return
	}
	utils.RespondJSON(w, http.StatusOK, c)
}

// ObtenirResume retourne le résumé fiscal d'un commerçant
func (h *Handler) ObtenirResume(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "ID invalide")
		return
	}

	c, err := h.Repository.ChercherParID(h.DB, uint(id))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "commerçant introuvable")
		return
	}

	dto, err := MonterResumeCommercantDTO(h.DB, *c)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors du calcul du résumé")
		return
	}
	utils.RespondJSON(w, http.StatusOK, dto)
}
