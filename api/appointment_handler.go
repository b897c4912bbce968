package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"mentorhub/application"
	"mentorhub/cache"
	"mentorhub/config"
	"mentorhub/domain/entities"
	"mentorhub/domain/interfaces"
	"mentorhub/domain/services"
	"mentorhub/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// AppointmentHandler serves the appointment lifecycle endpoints
type AppointmentHandler struct {
	uowFactory  application.UnitOfWorkFactory
	walletCache *cache.WalletCache
	metrics     *metrics.Metrics
	validate    *validator.Validate
}

// NewAppointmentHandler creates the appointment handler
func NewAppointmentHandler(uowFactory application.UnitOfWorkFactory, walletCache *cache.WalletCache, m *metrics.Metrics) *AppointmentHandler {
	return &AppointmentHandler{
		uowFactory:  uowFactory,
		walletCache: walletCache,
		metrics:     m,
		validate:    validator.New(),
	}
}

// RegisterRoutes mounts the appointment routes on the router
func (h *AppointmentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/appointments", h.CreateAppointment).Methods("POST")
	router.HandleFunc("/appointments/{id}", h.GetAppointment).Methods("GET")
	router.HandleFunc("/appointments/{id}/confirm", h.ConfirmAppointment).Methods("POST")
	router.HandleFunc("/appointments/{id}/cancel", h.CancelAppointment).Methods("POST")
	router.HandleFunc("/appointments/{id}/complete", h.CompleteAppointment).Methods("POST")
	router.HandleFunc("/appointments/student/{studentId}", h.GetStudentAppointments).Methods("GET")
	router.HandleFunc("/appointments/mentor/{mentorId}", h.GetMentorAppointments).Methods("GET")
	router.HandleFunc("/appointments/group/{groupId}", h.GetGroupAppointments).Methods("GET")
	router.HandleFunc("/mentors/{id}/slots", h.ListAvailableSlots).Methods("GET")
	router.HandleFunc("/mentors/{id}/availability", h.CheckAvailability).Methods("GET")
}

type createAppointmentRequest struct {
	MentorID       int64     `json:"mentor_id" validate:"required,gt=0"`
	StudentID      int64     `json:"student_id" validate:"required,gt=0"`
	Title          string    `json:"title" validate:"required,max=255"`
	Description    string    `json:"description"`
	StartTime      time.Time `json:"start_time" validate:"required"`
	EndTime        time.Time `json:"end_time" validate:"required"`
	ProjectGroupID *int64    `json:"project_group_id"`
}

// CreateAppointment books a new session and deducts its point cost
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var appointment *entities.Appointment
	err := withUnitOfWork(r.Context(), h.uowFactory, func(uow application.UnitOfWork) error {
		scheduler := newScheduler(uow)
		var err error
		appointment, err = scheduler.CreateAppointment(r.Context(), interfaces.CreateAppointmentParams{
			MentorID:       req.MentorID,
			StudentID:      req.StudentID,
			Title:          req.Title,
			Description:    req.Description,
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
			ProjectGroupID: req.ProjectGroupID,
		})
		return err
	})
	if err != nil {
		h.recordBookingFailure(err)
		writeError(w, err)
		return
	}

	h.metrics.AppointmentsCreated.WithLabelValues(string(appointment.Status)).Inc()
	h.metrics.PointsSpent.Add(float64(appointment.PointsUsed))
	h.invalidateBalance(r, req.StudentID)

	writeJSON(w, http.StatusCreated, appointment)
}

// GetAppointment returns one appointment by id
func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var appointment *entities.Appointment
	err := withUnitOfWork(r.Context(), h.uowFactory, func(uow application.UnitOfWork) error {
		var err error
		appointment, err = uow.AppointmentRepository().GetByID(r.Context(), id)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if appointment == nil {
		writeError(w, entities.ErrAppointmentNotFound)
		return
	}

	writeJSON(w, http.StatusOK, appointment)
}

// ConfirmAppointment moves a pending appointment to confirmed
func (h *AppointmentHandler) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "confirmed", func(scheduler interfaces.SchedulerService, id int64) (bool, error) {
		return scheduler.ConfirmAppointment(r.Context(), id)
	})
}

type cancelAppointmentRequest struct {
	RequestedBy int64 `json:"requested_by" validate:"required,gt=0"`
}

// CancelAppointment cancels an appointment and refunds its points
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req cancelAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var cancelled bool
	var oldStatus entities.AppointmentStatus
	var appointment *entities.Appointment
	err := withUnitOfWork(r.Context(), h.uowFactory, func(uow application.UnitOfWork) error {
		scheduler := newScheduler(uow)
		if existing, err := uow.AppointmentRepository().GetByID(r.Context(), id); err != nil {
			return err
		} else if existing != nil {
			oldStatus = existing.Status
		}
		var err error
		cancelled, err = scheduler.CancelAppointment(r.Context(), id, req.RequestedBy)
		if err != nil || !cancelled {
			return err
		}
		appointment, err = uow.AppointmentRepository().GetByID(r.Context(), id)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if !cancelled {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "appointment cannot be cancelled"})
		return
	}

	h.metrics.AppointmentTransitions.WithLabelValues(string(oldStatus), string(entities.AppointmentStatusCancelled)).Inc()
	if appointment != nil {
		h.metrics.PointsRefunded.Add(float64(appointment.PointsUsed))
		h.invalidateBalance(r, appointment.StudentID)
	}

	writeJSON(w, http.StatusOK, appointment)
}

// CompleteAppointment marks a confirmed appointment as completed
func (h *AppointmentHandler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "completed", func(scheduler interfaces.SchedulerService, id int64) (bool, error) {
		return scheduler.CompleteAppointment(r.Context(), id)
	})
}

// GetStudentAppointments returns a student's appointments
func (h *AppointmentHandler) GetStudentAppointments(w http.ResponseWriter, r *http.Request) {
	h.listBy(w, r, "studentId", func(scheduler interfaces.SchedulerService, id int64) ([]*entities.Appointment, error) {
		return scheduler.GetAppointmentsByStudent(r.Context(), id)
	})
}

// GetMentorAppointments returns a mentor's appointments
func (h *AppointmentHandler) GetMentorAppointments(w http.ResponseWriter, r *http.Request) {
	h.listBy(w, r, "mentorId", func(scheduler interfaces.SchedulerService, id int64) ([]*entities.Appointment, error) {
		return scheduler.GetAppointmentsByMentor(r.Context(), id)
	})
}

// GetGroupAppointments returns a project group's appointments
func (h *AppointmentHandler) GetGroupAppointments(w http.ResponseWriter, r *http.Request) {
	h.listBy(w, r, "groupId", func(scheduler interfaces.SchedulerService, id int64) ([]*entities.Appointment, error) {
		return scheduler.GetAppointmentsByProjectGroup(r.Context(), id)
	})
}

// ListAvailableSlots returns the free slots of a mentor on a day
func (h *AppointmentHandler) ListAvailableSlots(w http.ResponseWriter, r *http.Request) {
	mentorID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	day, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "date must be YYYY-MM-DD"})
		return
	}

	durationHours := 1.0
	if raw := r.URL.Query().Get("duration_hours"); raw != "" {
		durationHours, err = strconv.ParseFloat(raw, 64)
		if err != nil || durationHours <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "duration_hours must be a positive number"})
			return
		}
	}

	var slots []*entities.Slot
	err = withUnitOfWork(r.Context(), h.uowFactory, func(uow application.UnitOfWork) error {
		var err error
		slots, err = newAvailability(uow).ListAvailableSlots(r.Context(), mentorID, day, durationHours)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, slots)
}

// CheckAvailability reports whether a mentor is free for an interval
func (h *AppointmentHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	mentorID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "start must be RFC3339"})
		return
	}
	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "end must be RFC3339"})
		return
	}

	var available bool
	err = withUnitOfWork(r.Context(), h.uowFactory, func(uow application.UnitOfWork) error {
		var err error
		available, err = newAvailability(uow).IsAvailable(r.Context(), mentorID, start, end)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}

// transition runs a status change that reports applied/not-applied
func (h *AppointmentHandler) transition(w http.ResponseWriter, r *http.Request, target string, fn func(scheduler interfaces.SchedulerService, id int64) (bool, error)) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var applied bool
	var oldStatus entities.AppointmentStatus
	var appointment *entities.Appointment
	err := withUnitOfWork(r.Context(), h.uowFactory, func(uow application.UnitOfWork) error {
		scheduler := newScheduler(uow)
		if existing, err := uow.AppointmentRepository().GetByID(r.Context(), id); err != nil {
			return err
		} else if existing != nil {
			oldStatus = existing.Status
		}
		var err error
		applied, err = fn(scheduler, id)
		if err != nil || !applied {
			return err
		}
		appointment, err = uow.AppointmentRepository().GetByID(r.Context(), id)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if !applied {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "transition not allowed"})
		return
	}

	h.metrics.AppointmentTransitions.WithLabelValues(string(oldStatus), target).Inc()
	writeJSON(w, http.StatusOK, appointment)
}

func (h *AppointmentHandler) listBy(w http.ResponseWriter, r *http.Request, param string, fn func(scheduler interfaces.SchedulerService, id int64) ([]*entities.Appointment, error)) {
	id, ok := pathID(w, r, param)
	if !ok {
		return
	}

	var appointments []*entities.Appointment
	err := withUnitOfWork(r.Context(), h.uowFactory, func(uow application.UnitOfWork) error {
		scheduler := newScheduler(uow)
		var err error
		appointments, err = fn(scheduler, id)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if appointments == nil {
		appointments = []*entities.Appointment{}
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (h *AppointmentHandler) recordBookingFailure(err error) {
	reason := "internal"
	switch {
	case errors.Is(err, entities.ErrInvalidInterval):
		reason = "invalid_interval"
	case errors.Is(err, entities.ErrMentorNotFound):
		reason = "mentor_not_found"
	case errors.Is(err, entities.ErrSlotUnavailable):
		reason = "slot_unavailable"
	case errors.Is(err, entities.ErrInsufficientBalance):
		reason = "insufficient_balance"
	}
	h.metrics.BookingFailures.WithLabelValues(reason).Inc()
}

func (h *AppointmentHandler) invalidateBalance(r *http.Request, userID int64) {
	if h.walletCache == nil {
		return
	}
	if err := h.walletCache.Invalidate(r.Context(), userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("failed to invalidate balance cache")
	}
}

// newScheduler assembles the scheduler with all collaborators bound to the
// unit of work's transaction
func newScheduler(uow application.UnitOfWork) interfaces.SchedulerService {
	wallet := services.NewWalletService(uow.WalletRepository(), uow.EventBus())
	return services.NewSchedulerService(
		uow.AppointmentRepository(),
		uow.MentorRepository(),
		newAvailability(uow),
		wallet,
		uow.EventBus(),
	)
}

// newAvailability binds the availability resolver to the unit of work's
// transaction, with the working window taken from configuration
func newAvailability(uow application.UnitOfWork) interfaces.AvailabilityService {
	cfg := config.Get()
	return services.NewAvailabilityServiceWithWindow(
		uow.MentorRepository(),
		uow.AppointmentRepository(),
		cfg.WorkdayStartHour,
		cfg.WorkdayEndHour,
	)
}

// pathID parses a numeric path variable, writing a 400 on failure
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + name})
		return 0, false
	}
	return id, true
}
