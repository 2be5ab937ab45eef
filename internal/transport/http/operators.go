package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cyberacademydev/cyberevents/internal/domain"
)

// OperatorService is the minimal interface needed for blanket operator
// grants.
type OperatorService interface {
	SetApprovalForAll(ctx context.Context, caller, operator domain.Identity, approved bool) error
	IsApprovedForAll(owner, operator domain.Identity) (bool, error)
}

// HandleOperators returns an HTTP handler for /operators. POST grants or
// revokes operator authority for the caller; GET answers whether an
// operator holds authority over an owner.
func HandleOperators(svc OperatorService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			owner := domain.Identity(r.URL.Query().Get("owner"))
			operator := domain.Identity(r.URL.Query().Get("operator"))
			approved, err := svc.IsApprovedForAll(owner, operator)
			if err != nil {
				respondError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(operatorResponse{
				Owner:    string(owner),
				Operator: string(operator),
				Approved: approved,
			})
		case http.MethodPost:
			caller, ok := requireIdentity(w, r)
			if !ok {
				return
			}
			var req setOperatorRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if err := svc.SetApprovalForAll(r.Context(), caller, domain.Identity(req.Operator), req.Approved); err != nil {
				respondError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type setOperatorRequest struct {
	Operator string `json:"operator"`
	Approved bool   `json:"approved"`
}

type operatorResponse struct {
	Owner    string `json:"owner"`
	Operator string `json:"operator"`
	Approved bool   `json:"approved"`
}
