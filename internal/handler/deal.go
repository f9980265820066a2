// internal/handler/deal.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bradyhq/dealdesk/internal/domain"
	"github.com/bradyhq/dealdesk/internal/model"
	"github.com/bradyhq/dealdesk/internal/repository"
	"github.com/bradyhq/dealdesk/internal/service"
	"github.com/go-chi/chi/v5"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type DealHandler struct {
	dealService *service.DealService
}

func NewDealHandler(dealService *service.DealService) *DealHandler {
	return &DealHandler{dealService: dealService}
}

type DealResponse struct {
	BaseResponse
	Deal *model.Deal `json:"deal"`
}

type DealListResponse struct {
	BaseResponse
	Deals []*model.Deal `json:"deals"`
}

type AuditTrailResponse struct {
	BaseResponse
	AuditTrail []*model.DealAudit `json:"audit_trail"`
}

func (h *DealHandler) CreateDeal(w http.ResponseWriter, r *http.Request) {
	var input service.CreateDealInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	deal, err := h.dealService.CreateDeal(r.Context(), actorFrom(r), input)
	if err != nil {
		h.respondWithDealError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, DealResponse{
		BaseResponse: BaseResponse{Ok: true},
		Deal:         deal,
	})
}

func (h *DealHandler) GetDeal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid deal ID")
		return
	}

	deal, err := h.dealService.GetDeal(r.Context(), actorFrom(r), id)
	if err != nil {
		h.respondWithDealError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, DealResponse{
		BaseResponse: BaseResponse{Ok: true},
		Deal:         deal,
	})
}

// ListDeals supports the same filters as the reporting exports: status,
// product category and region. Partner actors only ever see their own
// organisation's rows.
func (h *DealHandler) ListDeals(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repository.DealFilter{
		Status:          model.DealStatus(query.Get("status")),
		ProductCategory: model.ProductCategory(query.Get("product_category")),
		Region:          query.Get("region"),
	}
	if partner := query.Get("partner"); partner != "" {
		partnerID, err := uuid.Parse(partner)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid partner ID")
			return
		}
		filter.PartnerID = &partnerID
	}

	deals, err := h.dealService.FilteredDeals(r.Context(), actorFrom(r), filter)
	if err != nil {
		h.respondWithDealError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, DealListResponse{
		BaseResponse: BaseResponse{Ok: true},
		Deals:        deals,
	})
}

func (h *DealHandler) UpdateDeal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid deal ID")
		return
	}

	var input service.UpdateDealInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	deal, err := h.dealService.UpdateDeal(r.Context(), actorFrom(r), id, input)
	if err != nil {
		h.respondWithDealError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, DealResponse{
		BaseResponse: BaseResponse{Ok: true},
		Deal:         deal,
	})
}

func (h *DealHandler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid deal ID")
		return
	}

	trail, err := h.dealService.AuditTrail(r.Context(), actorFrom(r), id)
	if err != nil {
		h.respondWithDealError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, AuditTrailResponse{
		BaseResponse: BaseResponse{Ok: true},
		AuditTrail:   trail,
	})
}

type TransitionRequest struct {
	TargetStatus model.DealStatus `json:"target_status"`
}

func (h *DealHandler) TransitionDeal(w http.ResponseWriter, r *http.Request) {
	var req TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	h.applyTransition(w, r, req.TargetStatus)
}

// Convenience verbs mirroring the review workflow buttons.

func (h *DealHandler) SubmitDeal(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, model.StatusSubmitted)
}

func (h *DealHandler) StartReview(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, model.StatusUnderReview)
}

func (h *DealHandler) ApproveDeal(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, model.StatusApproved)
}

func (h *DealHandler) RejectDeal(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, model.StatusRejected)
}

func (h *DealHandler) CloseWon(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, model.StatusClosedWon)
}

func (h *DealHandler) CloseLost(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, model.StatusClosedLost)
}

func (h *DealHandler) applyTransition(w http.ResponseWriter, r *http.Request, target model.DealStatus) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid deal ID")
		return
	}

	deal, err := h.dealService.Transition(r.Context(), actorFrom(r), id, target)
	if err != nil {
		h.respondWithDealError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, DealResponse{
		BaseResponse: BaseResponse{Ok: true},
		Deal:         deal,
	})
}

func (h *DealHandler) respondWithDealError(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "Deal operation error", "error", err, "requestID", chmw.GetReqID(r.Context()))
	switch {
	case errors.Is(err, domain.ErrDealNotFound), errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Deal not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrDealConflict):
		respondWithError(w, http.StatusConflict, "Deal was modified concurrently, retry")
	case errors.Is(err, domain.ErrUnauthorized):
		respondWithError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, domain.ErrPartnerRequired):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNegativeValue), errors.Is(err, domain.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
