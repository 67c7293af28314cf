package collecteur

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

func (h *Handler) CreerCollecteur(w http.ResponseWriter, r *http.Request) {
	var c Collecteur
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "payload invalide")
		return
	}
	if c.Nom == "" || c.Prenom == "" {
		utils.RespondError(w, http.StatusBadRequest, "nom et prénom obligatoires")
		return
	}
	c.Actif = true
	if err := h.Repository.Sauver(h.DB, &c); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la création du collecteur")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, c)
}

func (h *Handler) ListerCollecteurs(w http.ResponseWriter, r *http.Request) {
	var (
		list []Collecteur
		err  error
	)
	if r.URL.Query().Get("actifs") == "true" {
		list, err = h.Repository.ListerActifs(h.DB)
	} else {
		list, err = h.Repository.ListerTous(h.DB)
	}
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors du listing des collecteurs")
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
	c, err := h.Repository.ChercherParID(h.DB, uint(id))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "collecteur introuvable")
		return
	}
	utils.RespondJSON(w, http.StatusOK, c)
}

func (h *Handler) MettreAJourCollecteur(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "ID invalide")
		return
	}
	c, err := h.Repository.ChercherParID(h.DB, uint(id))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "collecteur introuvable")
		return
	}

	var req struct {
		Nom     *string `json:"nom"`
		Prenom  *string `json:"prenom"`
		Contact *string `json:"contact"`
		Actif   *bool   `json:"actif"`
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
	if req.Actif != nil {
		c.Actif = *req.Actif
	}
	if err := h.Repository.Sauver(h.DB, c); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la mise à jour du collecteur")
		return
	}
	utils.RespondJSON(w, http.StatusOK, c)
}
