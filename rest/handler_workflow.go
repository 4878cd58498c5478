package rest

import (
	"encoding/json"
	"io"
	"net/http"

	api_v1 "github.com/flowgate/flowgate/api/v1"
	"github.com/flowgate/flowgate/auth"
	"github.com/flowgate/flowgate/logger"
	"github.com/flowgate/flowgate/model"
	"github.com/flowgate/flowgate/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func (s *Server) HandleSubmitWorkflow(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var request model.WorkflowRequest
	if len(body) > 0 {
		if err := json.Unmarshal(body, &request); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed workflow request")
			return
		}
	}

	response, err := s.submissionService.Submit(r.Context(), vars["project"], vars["name"], &request, body, auth.FromRequest(r))
	if err != nil {
		logger.Error("error submitting workflow", zap.String("name", vars["name"]), zap.Error(err))
		respondWithError(w, api_v1.HTTPStatus(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusAccepted, response)
}

func (s *Server) HandleGetWorkflowId(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	engine := r.URL.Query().Get("engine")
	if engine == "" {
		engine = service.ENGINE_REMOTE
	}

	resolution, err := s.resolver.Resolve(r.Context(), vars["project"], vars["name"], vars["reference"], engine, auth.FromRequest(r))
	if err != nil {
		logger.Error("error resolving workflow reference", zap.String("reference", vars["reference"]), zap.Error(err))
		respondWithError(w, api_v1.HTTPStatus(err), err.Error())
		return
	}
	if resolution.State == service.RESOLUTION_PENDING {
		respondWithJSON(w, http.StatusAccepted, map[string]string{"status": string(service.RESOLUTION_PENDING)})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"workflow_id": resolution.WorkflowId})
}
