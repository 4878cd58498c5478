package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/flowgate/flowgate/logger"
	"github.com/flowgate/flowgate/metadata"
	"github.com/flowgate/flowgate/service"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Server struct {
	http.Server
	Port              int
	projectService    metadata.ProjectService
	submissionService *service.WorkflowSubmissionService
	resolver          *service.ReferenceResolver
}

func NewServer(httpPort int, projectService metadata.ProjectService,
	submissionService *service.WorkflowSubmissionService, resolver *service.ReferenceResolver) (*Server, error) {
	s := &Server{
		Server: http.Server{
			Addr: fmt.Sprintf(":%d", httpPort),
		},
		Port:              httpPort,
		projectService:    projectService,
		submissionService: submissionService,
		resolver:          resolver,
	}

	router := mux.NewRouter()
	router.HandleFunc("/projects", s.HandleSaveProject).Methods(http.MethodPost)
	router.HandleFunc("/projects/{name}", s.HandleGetProject).Methods(http.MethodGet)
	router.HandleFunc("/projects/{name}", s.HandleDeleteProject).Methods(http.MethodDelete)
	router.HandleFunc("/projects/{project}/workflows/{name}/submit", s.HandleSubmitWorkflow).Methods(http.MethodPost)
	router.HandleFunc("/projects/{project}/workflows/{name}/references/{reference}", s.HandleGetWorkflowId).Methods(http.MethodGet)
	router.Use(loggingMiddleware)
	s.Handler = router
	return s, nil
}

func (s *Server) Start() error {
	logger.Info("starting http server", zap.Int("port", s.Port))
	if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop() error {
	logger.Info("stopping http server")
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := s.Shutdown(ctx)
	if err != nil {
		logger.Error("error shutting down http server")
	}
	return nil
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info(r.RequestURI)
		next.ServeHTTP(w, r)
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondOK(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)
	res, _ := json.Marshal(map[string]string{"message": message})
	w.Write(res)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
