package gateway_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/petrichor-games/duelist/internal/domain/combat"
	apperr "github.com/petrichor-games/duelist/internal/errors"
	"github.com/petrichor-games/duelist/internal/gateway"
	"github.com/petrichor-games/duelist/internal/repositories/combats"
	combatsvc "github.com/petrichor-games/duelist/internal/services/combat"
	mockcombat "github.com/petrichor-games/duelist/internal/services/combat/mock"
	roomsync "github.com/petrichor-games/duelist/internal/sync"
	"github.com/petrichor-games/duelist/internal/testutils"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func newTestHandler(t *testing.T) (*gateway.Handler, *mockcombat.MockService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	service := mockcombat.NewMockService(ctrl)
	repo := combats.NewInMemory()
	hub := gateway.NewHub(roomsync.NewCoordinator(&roomsync.CoordinatorConfig{
		Repository: repo,
		Watcher:    repo,
	}), testLogger())

	handler := gateway.NewHandler(&gateway.HandlerConfig{
		Service: service,
		Hub:     hub,
		Logger:  testLogger(),
	})
	return handler, service
}

func storedCombat() *combat.Combat {
	c := combat.New(
		"combat-1",
		"room-1",
		combat.Participant{ID: "char-a", Name: "Aria"},
		combat.Participant{ID: "char-d", Name: "Dax"},
		testutils.Weapon("sabre", 3, 5),
		true,
		false,
	)
	c.Version = 1
	return c
}

func TestCreateCombatEndpoint(t *testing.T) {
	handler, service := newTestHandler(t)

	service.EXPECT().
		CreateCombat(gomock.Any(), &combatsvc.CreateCombatInput{
			RoomID:             "room-1",
			AttackerID:         "char-a",
			DefenderID:         "char-d",
			WeaponKey:          "sabre",
			AllowCounterAttack: true,
		}).
		Return(storedCombat(), nil)

	body, err := json.Marshal(map[string]any{
		"attacker_id":          "char-a",
		"defender_id":          "char-d",
		"weapon_key":           "sabre",
		"allow_counter_attack": true,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/rooms/room-1/combats", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got combat.Combat
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "combat-1", got.ID)
	assert.Equal(t, "Aria", got.AttackerName)
}

func TestCreateCombatEndpoint_BadBody(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/rooms/room-1/combats", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitRollEndpoint(t *testing.T) {
	handler, service := newTestHandler(t)

	service.EXPECT().
		SubmitRoll(gomock.Any(), "combat-1", "char-a").
		Return(storedCombat(), nil)

	body := []byte(`{"actor_id":"char-a"}`)
	req := httptest.NewRequest(http.MethodPost, "/combats/combat-1/rolls", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "invalid argument",
			err:        apperr.InvalidArgument("bad input"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not found",
			err:        apperr.NotFound("no such combat"),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "permission denied",
			err:        apperr.PermissionDenied("not your turn"),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "failed precondition",
			err:        apperr.FailedPrecondition("combat has ended"),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "conflict",
			err:        apperr.Conflict("lost the race"),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "already exists",
			err:        apperr.AlreadyExists("room is busy"),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unavailable",
			err:        apperr.WrapWithCode(assert.AnError, apperr.CodeUnavailable, "store down"),
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "unknown",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := newTestHandler(t)

			service.EXPECT().
				EndCombat(gomock.Any(), "combat-1", "char-a").
				Return(nil, tt.err)

			body := []byte(`{"actor_id":"char-a"}`)
			req := httptest.NewRequest(http.MethodPost, "/combats/combat-1/end", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			handler.Routes().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var payload map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
			assert.NotEmpty(t, payload["message"])
		})
	}
}

func TestPreviewRollEndpoint(t *testing.T) {
	handler, service := newTestHandler(t)

	service.EXPECT().
		PreviewRoll(gomock.Any(), "combat-1", "char-a", 3).
		Return([][]int{{1, 2}, {3, 4}, {5, 6}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/combats/combat-1/rolls/preview?actor_id=char-a&frames=3", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var previews [][]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &previews))
	assert.Len(t, previews, 3)
}

func TestPreviewRollEndpoint_BadFrames(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/combats/combat-1/rolls/preview?actor_id=char-a&frames=lots", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveLastRoundEndpoint(t *testing.T) {
	handler, service := newTestHandler(t)

	service.EXPECT().
		RemoveLastRound(gomock.Any(), "combat-1", "char-a").
		Return(storedCombat(), nil)

	req := httptest.NewRequest(http.MethodDelete, "/combats/combat-1/rounds/last?actor_id=char-a", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInjectOpportunityEndpoint(t *testing.T) {
	handler, service := newTestHandler(t)

	service.EXPECT().
		InjectOpportunity(gomock.Any(), "combat-1", &combatsvc.OpportunityInput{
			ActorID:   "char-vex",
			WeaponKey: "crossbow",
			Target:    combat.TargetAttacker,
		}).
		Return(storedCombat(), nil)

	body := []byte(`{"actor_id":"char-vex","weapon_key":"crossbow","target":"attacker"}`)
	req := httptest.NewRequest(http.MethodPost, "/combats/combat-1/opportunity", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
