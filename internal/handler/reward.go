package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/familyquest/internal/app"
	"github.com/dukerupert/familyquest/internal/model"
)

type RewardHandler struct {
	ctrl   *app.Controller
	logger *slog.Logger
}

func NewRewardHandler(ctrl *app.Controller, logger *slog.Logger) *RewardHandler {
	return &RewardHandler{ctrl: ctrl, logger: logger}
}

type rewardRequest struct {
	Title string `json:"title"`
	Cost  int    `json:"cost"`
	Icon  string `json:"icon"`
}

func (h *RewardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req rewardRequest
	if !decode(w, r, &req) {
		return
	}
	added, err := h.ctrl.AddReward(req.Title, req.Cost, req.Icon)
	if err != nil {
		writeControllerError(w, h.logger, "create reward", err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (h *RewardHandler) List(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.ctrl.Snapshot()
	if !ok {
		writeError(w, http.StatusConflict, app.ErrNoFamily.Error())
		return
	}
	rewards := snap.Family.Rewards
	if rewards == nil {
		rewards = []model.Reward{}
	}
	writeJSON(w, http.StatusOK, rewards)
}

func (h *RewardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.DeleteReward(r.PathValue("id")); err != nil {
		writeControllerError(w, h.logger, "delete reward", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Redeem refuses rewards the member cannot afford; the ledger itself
// would only clip the balance at zero.
func (h *RewardHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID string `json:"memberId"`
	}
	if !decode(w, r, &req) {
		return
	}
	rewardID := r.PathValue("id")

	updated, err := h.ctrl.RedeemIfAffordable(req.MemberID, rewardID)
	if errors.Is(err, app.ErrInsufficientPoints) {
		writeError(w, http.StatusBadRequest, "insufficient points")
		return
	}
	if err != nil {
		writeControllerError(w, h.logger, "redeem reward", err)
		return
	}
	h.logger.Info("reward redeemed", "member_id", updated.ID, "reward_id", rewardID, "balance", updated.Points)
	writeJSON(w, http.StatusOK, updated)
}
