package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"daily-quest/internal/auth"
	"daily-quest/internal/logging"
	"daily-quest/internal/model"
	"daily-quest/internal/service"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type addSelectionRequest struct {
	TaskName string `json:"task_name"`
	Priority *int   `json:"priority"`
}

type priorityRequest struct {
	Priority int `json:"priority"`
}

type swapRequest struct {
	A uint `json:"a"`
	B uint `json:"b"`
}

type missionRequest struct {
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Category     string           `json:"category"`
	Difficulty   model.Difficulty `json:"difficulty"`
	TimeRequired int              `json:"time_required"`
	ProjectID    *uint            `json:"project_id"`
}

type generateRequest struct {
	Energy        int        `json:"energy"`
	Mood          model.Mood `json:"mood"`
	TimeAvailable int        `json:"time_available"`
}

type progressRequest struct {
	MissionID   uint                 `json:"mission_id"`
	Status      model.ProgressStatus `json:"status"`
	Mood        *model.Mood          `json:"mood"`
	EnergyLevel *int                 `json:"energy_level"`
	Notes       string               `json:"notes"`
}

type projectRequest struct {
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Status        model.ProjectStatus `json:"status"`
	StartDate     *time.Time          `json:"start_date"`
	EndDate       *time.Time          `json:"end_date"`
	CurrentAmount int64               `json:"current_amount"`
	TargetAmount  int64               `json:"target_amount"`
}

type amountRequest struct {
	CurrentAmount int64 `json:"current_amount"`
}

type projectTaskRequest struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Status      model.ProjectTaskStatus `json:"status"`
	Deadline    *time.Time              `json:"deadline"`
}

type taskStatusRequest struct {
	Status model.ProjectTaskStatus `json:"status"`
}

type projectView struct {
	model.Project
	GoalPercent *int `json:"goal_percent,omitempty"`
}

type projectsResponse struct {
	Projects      []projectView `json:"projects"`
	MainProjectID *uint         `json:"main_project_id"`
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	user, err := a.Users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !a.startSession(w, user.ID) {
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	user, err := a.Users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !a.startSession(w, user.ID) {
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (a *API) startSession(w http.ResponseWriter, userID uint) bool {
	token, err := a.Auth.GenerateToken(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Could not start session")
		return false
	}
	http.SetCookie(w, a.Auth.SessionCookieFor(token, a.SecureCookies))
	return true
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ExpiredCookie())
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := a.Users.Get(r.Context(), mustUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (a *API) handleListCatalog(w http.ResponseWriter, r *http.Request) {
	templates, err := a.Catalog.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(templates))
}

func (a *API) handleGroupedCatalog(w http.ResponseWriter, r *http.Request) {
	templates, err := a.Catalog.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service.Grouped(templates))
}

// dayParam reads ?day=: absent means today, "all" means every day.
func (a *API) dayParam(r *http.Request) (*model.Day, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("day"))
	switch raw {
	case "":
		today := a.Selections.Today()
		return &today, nil
	case "all":
		return nil, nil
	}
	day, err := model.ParseDay(raw)
	if err != nil {
		return nil, service.ErrInvalidArgument
	}
	return &day, nil
}

func (a *API) handleListSelections(w http.ResponseWriter, r *http.Request) {
	day, err := a.dayParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "day must be YYYY-MM-DD or all")
		return
	}
	selections, err := a.Selections.List(r.Context(), mustUserID(r), day)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(selections))
}

func (a *API) handleAddSelection(w http.ResponseWriter, r *http.Request) {
	var req addSelectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	userID := mustUserID(r)
	sel, err := a.Selections.Add(r.Context(), userID, req.TaskName, req.Priority)
	if a.Metrics != nil {
		a.Metrics.RecordSelectionAdd(err != nil)
	}
	if errors.Is(err, service.ErrCapacityExceeded) {
		logging.WithUser(userID).Info("daily selection cap reached", "source", "http")
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sel)
}

func (a *API) handleReorderSelection(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req priorityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	sel, err := a.Selections.Reorder(r.Context(), mustUserID(r), id, req.Priority)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sel)
}

func (a *API) handleSwapSelections(w http.ResponseWriter, r *http.Request) {
	var req swapRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := a.Selections.Swap(r.Context(), mustUserID(r), req.A, req.B); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleRemoveSelection(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := a.Selections.Remove(r.Context(), mustUserID(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleClearSelections(w http.ResponseWriter, r *http.Request) {
	day, err := a.dayParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "day must be YYYY-MM-DD or all")
		return
	}
	removed, err := a.Selections.Clear(r.Context(), mustUserID(r), day)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"removed": removed})
}

func (a *API) handleListMissions(w http.ResponseWriter, r *http.Request) {
	missions, err := a.Missions.List(r.Context(), mustUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(missions))
}

func (a *API) handleCreateMission(w http.ResponseWriter, r *http.Request) {
	var req missionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	mission, err := a.Missions.Create(r.Context(), mustUserID(r), service.MissionInput{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Difficulty:   req.Difficulty,
		TimeRequired: req.TimeRequired,
		ProjectID:    req.ProjectID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mission)
}

func (a *API) handleGenerateMissions(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	userID := mustUserID(r)
	missions, err := a.Missions.Generate(r.Context(), userID, service.GenerateRequest{
		Energy:        req.Energy,
		Mood:          req.Mood,
		TimeAvailable: req.TimeAvailable,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	placeholder := len(missions) == 1 && !missions[0].Persisted()
	if a.Metrics != nil {
		a.Metrics.RecordGeneration(placeholder)
	}
	if placeholder {
		logging.WithUser(userID).Debug("no mission fits, returning placeholder", "minutes", req.TimeAvailable)
	}
	writeJSON(w, http.StatusOK, missions)
}

func (a *API) handleListProgress(w http.ResponseWriter, r *http.Request) {
	records, err := a.Progress.List(r.Context(), mustUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(records))
}

func (a *API) handleRecordProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	record, err := a.Progress.Record(r.Context(), mustUserID(r), service.ProgressInput{
		MissionID:   req.MissionID,
		Status:      req.Status,
		Mood:        req.Mood,
		EnergyLevel: req.EnergyLevel,
		Notes:       req.Notes,
	}, a.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (a *API) handleProgressSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.Progress.Summarize(r.Context(), mustUserID(r), a.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (a *API) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := a.Projects.List(r.Context(), mustUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := projectsResponse{Projects: make([]projectView, 0, len(projects))}
	for _, p := range projects {
		view := projectView{Project: p}
		if pct, err := service.GoalPercent(p); err == nil {
			view.GoalPercent = &pct
		}
		resp.Projects = append(resp.Projects, view)
	}
	if primary := service.MainProject(projects, a.MainProjectKeyword); primary != nil {
		resp.MainProjectID = &primary.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	project, err := a.Projects.Create(r.Context(), mustUserID(r), service.ProjectInput{
		Name:          req.Name,
		Description:   req.Description,
		Status:        req.Status,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		CurrentAmount: req.CurrentAmount,
		TargetAmount:  req.TargetAmount,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (a *API) handleUpdateProjectAmount(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req amountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	project, err := a.Projects.UpdateAmount(r.Context(), mustUserID(r), id, req.CurrentAmount)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (a *API) handleListProjectTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	tasks, err := a.Projects.ListTasks(r.Context(), mustUserID(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(tasks))
}

func (a *API) handleAddProjectTask(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req projectTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	task, err := a.Projects.AddTask(r.Context(), mustUserID(r), id, service.ProjectTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Deadline:    req.Deadline,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (a *API) handleSetProjectTaskStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	taskID, err := strconv.ParseUint(chi.URLParam(r, "taskID"), 10, 64)
	if err != nil || taskID == 0 {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "Invalid task id")
		return
	}
	var req taskStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, err)
		return
	}
	task, err := a.Projects.SetTaskStatus(r.Context(), mustUserID(r), id, uint(taskID), req.Status, a.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (a *API) handleRandomQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := a.Quotes.Random(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func idParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// mustUserID is only called behind authMiddleware.
func mustUserID(r *http.Request) uint {
	id, _ := auth.UserIDFromContext(r.Context())
	return id
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
