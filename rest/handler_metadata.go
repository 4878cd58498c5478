package rest

import (
	"encoding/json"
	"net/http"

	api_v1 "github.com/flowgate/flowgate/api/v1"
	"github.com/flowgate/flowgate/logger"
	"github.com/flowgate/flowgate/model"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func (s *Server) HandleSaveProject(w http.ResponseWriter, r *http.Request) {
	var project model.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()
	if err := s.projectService.SaveProject(project); err != nil {
		logger.Error("error saving project", zap.String("project", project.Name), zap.Error(err))
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondOK(w, "created")
}

func (s *Server) HandleGetProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	project, err := s.projectService.GetProject(vars["name"])
	if err != nil {
		logger.Info("project does not exist", zap.String("name", vars["name"]))
		respondWithError(w, api_v1.HTTPStatus(err), err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, project)
}

func (s *Server) HandleDeleteProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := s.projectService.DeleteProject(vars["name"]); err != nil {
		logger.Error("error deleting project", zap.String("name", vars["name"]), zap.Error(err))
		respondWithError(w, api_v1.HTTPStatus(err), err.Error())
		return
	}
	respondOK(w, "deleted")
}
