package etal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/MairieServices/api-marche/internal/auth"
	"github.com/MairieServices/api-marche/internal/commercant"
	"github.com/MairieServices/api-marche/internal/utils"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
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

type createEtalRequest struct {
	Numero             string           `json:"numero"`
	SecteurID          uint             `json:"secteurId"`
	Superficie         decimal.Decimal  `json:"superficie"`
	TarifParMetreCarre *decimal.Decimal `json:"tarifParMetreCarre"`
}

func (h *Handler) CreerEtal(w http.ResponseWriter, r *http.Request) {
	var req createEtalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "payload invalide")
		return
	}
	if req.Numero == "" || req.SecteurID == 0 {
		utils.RespondError(w, http.StatusBadRequest, "numéro et secteur obligatoires")
		return
	}
	if req.Superficie.LessThanOrEqual(decimal.Zero) {
		utils.RespondError(w, http.StatusBadRequest, "superficie invalide")
		return
	}

	e := Etal{
		Numero:             req.Numero,
		SecteurID:          req.SecteurID,
		Superficie:         req.Superficie,
		TarifParMetreCarre: req.TarifParMetreCarre,
		Statut:             StatutLibre,
	}
	if err := h.Repository.Sauver(h.DB, &e); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(w, http.StatusConflict, "un étal porte déjà ce numéro")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la création de l'étal")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, e)
}

func (h *Handler) ListerEtals(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListerTous(h.DB)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors du listing des étals")
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
	e, err := h.Repository.ChercherParID(h.DB, uint(id))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "étal introuvable")
		return
	}
	utils.RespondJSON(w, http.StatusOK, e)
}

type attribuerRequest struct {
	CommercantID    uint       `json:"commercantId"`
	DateAttribution *time.Time `json:"dateAttribution"`
}

// AttribuerEtal attribue un étal libre à un commerçant actif.
func (h *Handler) AttribuerEtal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "ID invalide")
		return
	}

	var req attribuerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CommercantID == 0 {
		utils.RespondError(w, http.StatusBadRequest, "payload invalide")
		return
	}

	var userIDPtr *uint
	if userID, ok := r.Context().Value(auth.CtxUserID).(uint); ok {
		userIDPtr = &userID
	}

	e, err := h.Service.Attribuer(h.DB, uint(id), req.CommercantID, req.DateAttribution, userIDPtr)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.RespondError(w, http.StatusNotFound, "étal ou commerçant introuvable")
		case errors.Is(err, commercant.ErrInactif):
			utils.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, ErrEtalOccupe):
			utils.RespondError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondError(w, http.StatusInternalServerError, "erreur lors de l'attribution")
		}
		return
	}
	utils.RespondJSON(w, http.StatusOK, e)
}

// LibererEtal libère un étal occupé.
func (h *Handler) LibererEtal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "ID invalide")
		return
	}

	var userIDPtr *uint
	if userID, ok := r.Context().Value(auth.CtxUserID).(uint); ok {
		userIDPtr = &userID
	}

	e, err := h.Service.Liberer(h.DB, uint(id), userIDPtr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(w, http.StatusNotFound, "étal introuvable")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors de la libération")
		return
	}
	utils.RespondJSON(w, http.StatusOK, e)
}

// ListerHistorique retourne les intervalles d'occupation d'un étal.
func (h *Handler) ListerHistorique(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "ID invalide")
		return
	}
	list, err := h.Repository.ListerHistorique(h.DB, uint(id))
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "erreur lors du listing de l'historique")
		return
	}
	utils.RespondJSON(w, http.StatusOK, list)
}
