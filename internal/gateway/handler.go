package gateway

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/petrichor-games/duelist/internal/domain/combat"
	apperr "github.com/petrichor-games/duelist/internal/errors"
	combatsvc "github.com/petrichor-games/duelist/internal/services/combat"
)

// Handler exposes the combat service over HTTP. Intents come in as REST
// calls; resulting state reaches clients through the room websocket, so
// mutation responses echo the stored record only as a convenience.
type Handler struct {
	service combatsvc.Service
	hub     *Hub
	log     zerolog.Logger

	upgrader websocket.Upgrader
}

// HandlerConfig holds configuration for the handler
type HandlerConfig struct {
	Service combatsvc.Service
	Hub     *Hub
	Logger  zerolog.Logger
}

// NewHandler creates a gateway handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg.Service == nil {
		panic("combat service is required")
	}
	if cfg.Hub == nil {
		panic("hub is required")
	}

	return &Handler{
		service: cfg.Service,
		hub:     cfg.Hub,
		log:     cfg.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Routes builds the HTTP router
func (h *Handler) Routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/rooms/{roomID}/combats", h.createCombat).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{roomID}/combats", h.listCombats).Methods(http.MethodGet)
	r.HandleFunc("/rooms/{roomID}/combats/active", h.activeCombat).Methods(http.MethodGet)
	r.HandleFunc("/rooms/{roomID}/ws", h.roomSocket).Methods(http.MethodGet)

	r.HandleFunc("/combats/{combatID}", h.getCombat).Methods(http.MethodGet)
	r.HandleFunc("/combats/{combatID}/weapon", h.selectWeapon).Methods(http.MethodPost)
	r.HandleFunc("/combats/{combatID}/decline", h.declineRetaliation).Methods(http.MethodPost)
	r.HandleFunc("/combats/{combatID}/rolls", h.submitRoll).Methods(http.MethodPost)
	r.HandleFunc("/combats/{combatID}/rolls", h.adjustRoll).Methods(http.MethodPut)
	r.HandleFunc("/combats/{combatID}/rolls/preview", h.previewRoll).Methods(http.MethodGet)
	r.HandleFunc("/combats/{combatID}/advance", h.advanceRound).Methods(http.MethodPost)
	r.HandleFunc("/combats/{combatID}/rounds", h.appendRound).Methods(http.MethodPost)
	r.HandleFunc("/combats/{combatID}/rounds/last", h.removeLastRound).Methods(http.MethodDelete)
	r.HandleFunc("/combats/{combatID}/rounds/swap", h.swapRounds).Methods(http.MethodPost)
	r.HandleFunc("/combats/{combatID}/opportunity", h.injectOpportunity).Methods(http.MethodPost)
	r.HandleFunc("/combats/{combatID}/equipment", h.setWeapon).Methods(http.MethodPost)
	r.HandleFunc("/combats/{combatID}/defense-dice", h.setDefenseDice).Methods(http.MethodPost)
	r.HandleFunc("/combats/{combatID}/mode", h.setMode).Methods(http.MethodPost)
	r.HandleFunc("/combats/{combatID}/end", h.endCombat).Methods(http.MethodPost)

	return r
}

type createCombatRequest struct {
	AttackerID              string `json:"attacker_id"`
	DefenderID              string `json:"defender_id"`
	WeaponKey               string `json:"weapon_key"`
	AllowCounterAttack      bool   `json:"allow_counter_attack"`
	AllowOpportunityAttacks bool   `json:"allow_opportunity_attacks"`
}

func (h *Handler) createCombat(w http.ResponseWriter, r *http.Request) {
	var req createCombatRequest
	if !h.decode(w, r, &req) {
		return
	}

	c, err := h.service.CreateCombat(r.Context(), &combatsvc.CreateCombatInput{
		RoomID:                  mux.Vars(r)["roomID"],
		AttackerID:              req.AttackerID,
		DefenderID:              req.DefenderID,
		WeaponKey:               req.WeaponKey,
		AllowCounterAttack:      req.AllowCounterAttack,
		AllowOpportunityAttacks: req.AllowOpportunityAttacks,
	})
	h.respond(w, c, err, http.StatusCreated)
}

func (h *Handler) listCombats(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListRoomCombats(r.Context(), mux.Vars(r)["roomID"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, list)
}

func (h *Handler) activeCombat(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetActiveCombat(r.Context(), mux.Vars(r)["roomID"])
	h.respond(w, c, err, http.StatusOK)
}

func (h *Handler) getCombat(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetCombat(r.Context(), mux.Vars(r)["combatID"])
	h.respond(w, c, err, http.StatusOK)
}

type actorRequest struct {
	ActorID string `json:"actor_id"`
}

type weaponRequest struct {
	ActorID   string `json:"actor_id"`
	WeaponKey string `json:"weapon_key"`
}

func (h *Handler) selectWeapon(w http.ResponseWriter, r *http.Request) {
	var req weaponRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.service.SelectWeapon(r.Context(), mux.Vars(r)["combatID"], req.ActorID, req.WeaponKey)
	h.respond(w, c, err, http.StatusOK)
}

func (h *Handler) declineRetaliation(w http.ResponseWriter, r *http.Request) {
	var req actorRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.service.DeclineRetaliation(r.Context(), mux.Vars(r)["combatID"], req.ActorID)
	h.respond(w, c, err, http.StatusOK)
}

func (h *Handler) submitRoll(w http.ResponseWriter, r *http.Request) {
	var req actorRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.service.SubmitRoll(r.Context(), mux.Vars(r)["combatID"], req.ActorID)
	h.respond(w, c, err, http.StatusOK)
}

type adjustRollRequest struct {
	ActorID string `json:"actor_id"`
	Round   int    `json:"round"`
	Faces   []int  `json:"faces"`
}

func (h *Handler) adjustRoll(w http.ResponseWriter, r *http.Request) {
	var req adjustRollRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.service.AdjustRoll(r.Context(), mux.Vars(r)["combatID"], req.ActorID, req.Round, req.Faces)
	h.respond(w, c, err, http.StatusOK)
}

func (h *Handler) previewRoll(w http.ResponseWriter, r *http.Request) {
	frames := 6
	if raw := r.URL.Query().Get("frames"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.respondError(w, apperr.InvalidArgumentf("invalid frames: %q", raw))
			return
		}
		frames = parsed
	}

	previews, err := h.service.PreviewRoll(r.Context(), mux.Vars(r)["combatID"], r.URL.Query().Get("actor_id"), frames)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, previews)
}

func (h *Handler) advanceRound(w http.ResponseWriter, r *http.Request) {
	var req actorRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.service.AdvanceRound(r.Context(), mux.Vars(r)["combatID"], req.ActorID)
	h.respond(w, c, err, http.StatusOK)
}

type appendRoundRequest struct {
	ActorID string `json:"actor_id"`
	Action  string `json:"action"`
}

func (h *Handler) appendRound(w http.ResponseWriter, r *http.Request) {
	var req appendRoundRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.service.AppendRound(r.Context(), mux.Vars(r)["combatID"], req.ActorID, combat.ActionType(req.Action))
	h.respond(w, c, err, http.StatusOK)
}

func (h *Handler) removeLastRound(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.RemoveLastRound(r.Context(), mux.Vars(r)["combatID"], r.URL.Query().Get("actor_id"))
	h.respond(w, c, err, http.StatusOK)
}

type swapRoundsRequest struct {
	ActorID string `json:"actor_id"`
	Round   int    `json:"round"`
}

func (h *Handler) swapRounds(w http.ResponseWriter, r *http.Request) {
	var req swapRoundsRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.service.SwapRounds(r.Context(), mux.Vars(r)["combatID"], req.ActorID, req.Round)
	h.respond(w, c, err, http.StatusOK)
}

type opportunityRequest struct {
	ActorID   string `json:"actor_id"`
	WeaponKey string `json:"weapon_key"`
	Target    string `json:"target"`
}

func (h *Handler) injectOpportunity(w http.ResponseWriter, r *http.Request) {
	var req opportunityRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.service.InjectOpportunity(r.Context(), mux.Vars(r)["combatID"], &combatsvc.OpportunityInput{
		ActorID:   req.ActorID,
		WeaponKey: req.WeaponKey,
		Target:    combat.Target(req.Target),
	})
	h.respond(w, c, err, http.StatusOK)
}

func (h *Handler) setWeapon(w http.ResponseWriter, r *http.Request) {
	var req weaponRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.service.SetWeapon(r.Context(), mux.Vars(r)["combatID"], req.ActorID, req.WeaponKey)
	h.respond(w, c, err, http.StatusOK)
}

type defenseDiceRequest struct {
	ActorID string `json:"actor_id"`
	Count   int    `json:"count"`
}

func (h *Handler) setDefenseDice(w http.ResponseWriter, r *http.Request) {
	var req defenseDiceRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.service.SetDefenseDice(r.Context(), mux.Vars(r)["combatID"], req.ActorID, req.Count)
	h.respond(w, c, err, http.StatusOK)
}

type modeRequest struct {
	ActorID string `json:"actor_id"`
	Mode    string `json:"mode"`
}

func (h *Handler) setMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.service.SetMode(r.Context(), mux.Vars(r)["combatID"], req.ActorID, req.Mode)
	h.respond(w, c, err, http.StatusOK)
}

func (h *Handler) endCombat(w http.ResponseWriter, r *http.Request) {
	var req actorRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.service.EndCombat(r.Context(), mux.Vars(r)["combatID"], req.ActorID)
	h.respond(w, c, err, http.StatusOK)
}

func (h *Handler) roomSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	h.hub.Serve(mux.Vars(r)["roomID"], conn)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		h.respondError(w, apperr.WrapWithCode(err, apperr.CodeInvalidArgument, "invalid request body"))
		return false
	}
	return true
}

func (h *Handler) respond(w http.ResponseWriter, c *combat.Combat, err error, status int) {
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, status, c)
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Warn().Err(err).Msg("failed to write response")
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	code := apperr.GetCode(err)
	h.respondJSON(w, httpStatus(code), errorResponse{
		Code:    string(code),
		Message: err.Error(),
	})
}

func httpStatus(code apperr.Code) int {
	switch code {
	case apperr.CodeInvalidArgument:
		return http.StatusBadRequest
	case apperr.CodeNotFound:
		return http.StatusNotFound
	case apperr.CodePermissionDenied:
		return http.StatusForbidden
	case apperr.CodeAlreadyExists, apperr.CodeConflict:
		return http.StatusConflict
	case apperr.CodeFailedPrecondition:
		return http.StatusUnprocessableEntity
	case apperr.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
