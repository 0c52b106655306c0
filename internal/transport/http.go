package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/BVTRay/vioflow/internal/domain/activity"
	"github.com/BVTRay/vioflow/internal/domain/delivery"
	"github.com/BVTRay/vioflow/internal/domain/project"
	"github.com/BVTRay/vioflow/internal/domain/upload"
	"github.com/BVTRay/vioflow/internal/domain/video"
	"github.com/BVTRay/vioflow/internal/state"
	"github.com/BVTRay/vioflow/internal/workflow"
)

// Server wires HTTP handlers over the workflow services and the live
// snapshot store.
type Server struct {
	store      *state.Store
	projects   *workflow.ProjectService
	videos     *workflow.VideoService
	deliveries *workflow.DeliveryService
	tags       *workflow.TagService
	uploads    *workflow.UploadManager
	activities *activity.Service
	logger     *slog.Logger
}

// Services bundles the dependencies the HTTP surface exposes.
type Services struct {
	Store      *state.Store
	Projects   *workflow.ProjectService
	Videos     *workflow.VideoService
	Deliveries *workflow.DeliveryService
	Tags       *workflow.TagService
	Uploads    *workflow.UploadManager
	Activities *activity.Service
}

// NewServer creates the HTTP router with middleware.
func NewServer(svcs Services, logger *slog.Logger, authMiddleware func(http.Handler) http.Handler) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{
		store:      svcs.Store,
		projects:   svcs.Projects,
		videos:     svcs.Videos,
		deliveries: svcs.Deliveries,
		tags:       svcs.Tags,
		uploads:    svcs.Uploads,
		activities: svcs.Activities,
		logger:     logger,
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(api chi.Router) {
		if authMiddleware != nil {
			api.Use(authMiddleware)
		}

		api.Get("/state", srv.handleState)
		api.Post("/events", srv.handleEvent)

		api.Route("/projects", func(pr chi.Router) {
			pr.Get("/", srv.handleListProjects)
			pr.Post("/", srv.handleCreateProject)
			pr.Route("/{projectID}", func(one chi.Router) {
				one.Patch("/", srv.handleUpdateProject)
				one.Delete("/", srv.handleDeleteProject)
				one.Post("/finalize", srv.handleFinalizeProject)
				one.Post("/deliver", srv.handleCompleteDelivery)
				one.Post("/archive", srv.handleArchiveProject)
				one.Get("/activity", srv.handleProjectActivity)
				one.Post("/checklist/note", srv.handleChecklistNote)
				one.Post("/checklist/info", srv.handleChecklistInfo)
				one.Post("/checklist/{field}", srv.handleChecklistFlag)
				one.Post("/packages", srv.handleGenerateLink)
				one.Post("/packages/{packageID}/download", srv.handleRecordDownload)
				one.Post("/packages/{packageID}/active", srv.handlePackageActive)
			})
		})

		api.Route("/videos/{videoID}", func(vr chi.Router) {
			vr.Delete("/", srv.handleDeleteVideo)
			vr.Post("/tags", srv.handleVideoTags)
			vr.Post("/status", srv.handleVideoStatus)
			vr.Post("/case-file", srv.handleToggleCaseFile)
			vr.Post("/main-delivery", srv.handleToggleMainDelivery)
		})

		api.Route("/uploads", func(ur chi.Router) {
			ur.Post("/", srv.handleBeginUpload)
			ur.Delete("/{taskID}", srv.handleCancelUpload)
		})

		api.Route("/tags", func(tr chi.Router) {
			tr.Get("/", srv.handleListTags)
			tr.Post("/", srv.handleEnsureTag)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var env EventEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ev, err := DecodeEvent(env)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.store.Apply(ev)
	s.writeJSON(w, http.StatusOK, map[string]any{"version": s.store.Snapshot().Version})
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.projects.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string   `json:"name"`
		Client      string   `json:"client"`
		Producer    string   `json:"producer"`
		Director    string   `json:"director"`
		Group       string   `json:"group"`
		TeamMembers []string `json:"team_members"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	proj, err := s.projects.Create(r.Context(), workflow.CreateProjectRequest{
		Name:        body.Name,
		Client:      body.Client,
		Producer:    body.Producer,
		Director:    body.Director,
		Group:       body.Group,
		TeamMembers: body.TeamMembers,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, proj)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        *string  `json:"name"`
		Client      *string  `json:"client"`
		Producer    *string  `json:"producer"`
		Director    *string  `json:"director"`
		Group       *string  `json:"group"`
		TeamMembers []string `json:"team_members"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	proj, err := s.projects.UpdateSettings(r.Context(), workflow.UpdateSettingsRequest{
		ID:          chi.URLParam(r, "projectID"),
		Name:        body.Name,
		Client:      body.Client,
		Producer:    body.Producer,
		Director:    body.Director,
		Group:       body.Group,
		TeamMembers: body.TeamMembers,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, proj)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.projects.Delete(r.Context(), chi.URLParam(r, "projectID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFinalizeProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.projects.Finalize(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, proj)
}

func (s *Server) handleCompleteDelivery(w http.ResponseWriter, r *http.Request) {
	proj, err := s.projects.CompleteDelivery(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, proj)
}

func (s *Server) handleArchiveProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.projects.Archive(r.Context(), chi.URLParam(r, "projectID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, proj)
}

func (s *Server) handleProjectActivity(w http.ResponseWriter, r *http.Request) {
	entries, err := s.activities.Recent(r.Context(), activity.ListOptions{
		ProjectID: chi.URLParam(r, "projectID"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleChecklistFlag(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value bool `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	field := delivery.Field(chi.URLParam(r, "field"))
	err := s.deliveries.SetFlag(r.Context(), chi.URLParam(r, "projectID"), field, body.Value)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChecklistNote(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Note string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.deliveries.SetNote(r.Context(), chi.URLParam(r, "projectID"), body.Note); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChecklistInfo(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.deliveries.SetInfo(r.Context(), chi.URLParam(r, "projectID"), body.Title, body.Description); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGenerateLink(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		FileIDs     []string `json:"file_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	pkg, err := s.deliveries.GenerateLink(r.Context(), workflow.GenerateLinkRequest{
		ProjectID:   chi.URLParam(r, "projectID"),
		Title:       body.Title,
		Description: body.Description,
		FileIDs:     body.FileIDs,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, pkg)
}

func (s *Server) handleRecordDownload(w http.ResponseWriter, r *http.Request) {
	err := s.deliveries.RecordDownload(r.Context(), chi.URLParam(r, "projectID"), chi.URLParam(r, "packageID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePackageActive(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	err := s.deliveries.SetPackageActive(r.Context(), chi.URLParam(r, "projectID"), chi.URLParam(r, "packageID"), body.Active)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	if err := s.videos.Delete(r.Context(), chi.URLParam(r, "videoID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleVideoTags(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Tags []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.videos.UpdateTags(r.Context(), chi.URLParam(r, "videoID"), body.Tags); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleVideoStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.videos.SetStatus(r.Context(), chi.URLParam(r, "videoID"), video.Status(body.Status)); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleCaseFile(w http.ResponseWriter, r *http.Request) {
	if err := s.videos.ToggleCaseFile(r.Context(), chi.URLParam(r, "videoID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleMainDelivery(w http.ResponseWriter, r *http.Request) {
	if err := s.videos.ToggleMainDelivery(r.Context(), chi.URLParam(r, "videoID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBeginUpload(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Filename    string `json:"filename"`
		ProjectID   string `json:"project_id"`
		ProjectName string `json:"project_name"`
		BaseName    string `json:"base_name"`
		Type        string `json:"type"`
		ChangeLog   string `json:"change_log"`
		TargetVideo string `json:"target_video"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	taskID, version, err := s.uploads.Begin(r.Context(), workflow.BeginRequest{
		Filename:    body.Filename,
		ProjectID:   body.ProjectID,
		ProjectName: body.ProjectName,
		BaseName:    body.BaseName,
		Type:        video.MediaType(body.Type),
		ChangeLog:   body.ChangeLog,
		TargetVideo: body.TargetVideo,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusAccepted, map[string]any{
		"task_id": taskID,
		"version": version,
	})
}

func (s *Server) handleCancelUpload(w http.ResponseWriter, r *http.Request) {
	if err := s.uploads.Cancel(chi.URLParam(r, "taskID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.tags.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleEnsureTag(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	tg, err := s.tags.Ensure(r.Context(), body.Name, body.Category)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tg)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, video.ErrVideoNotFound),
		errors.Is(err, delivery.ErrChecklistNotFound),
		errors.Is(err, delivery.ErrPackageNotFound),
		errors.Is(err, upload.ErrTaskNotFound):
		status = http.StatusNotFound
	case errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, video.ErrInvalidInput),
		errors.Is(err, delivery.ErrInvalidInput),
		errors.Is(err, delivery.ErrUnknownField),
		errors.Is(err, upload.ErrInvalidInput),
		errors.Is(err, upload.ErrProjectUnknown):
		status = http.StatusBadRequest
	case errors.Is(err, project.ErrInvalidTransition),
		errors.Is(err, project.ErrNotReady):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
