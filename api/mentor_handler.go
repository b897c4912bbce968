package api

import (
	"encoding/json"
	"net/http"
	"time"

	"mentorhub/application"
	"mentorhub/domain/entities"
	"mentorhub/domain/interfaces"
	"mentorhub/domain/services"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// MentorHandler serves the mentor directory endpoints
type MentorHandler struct {
	uowFactory application.UnitOfWorkFactory
	validate   *validator.Validate
}

// NewMentorHandler creates the mentor handler
func NewMentorHandler(uowFactory application.UnitOfWorkFactory) *MentorHandler {
	return &MentorHandler{
		uowFactory: uowFactory,
		validate:   validator.New(),
	}
}

// RegisterRoutes mounts the mentor routes on the router
func (h *MentorHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/mentors", h.CreateMentor).Methods("POST")
	router.HandleFunc("/mentors", h.ListMentors).Methods("GET")
	router.HandleFunc("/mentors/{id}", h.GetMentor).Methods("GET")
	router.HandleFunc("/mentors/{id}", h.UpdateMentor).Methods("PATCH")
	router.HandleFunc("/mentors/{id}", h.DeleteMentor).Methods("DELETE")
	router.HandleFunc("/mentors/{id}/status", h.UpdateMentorStatus).Methods("PATCH")
	router.HandleFunc("/mentors/{id}/schedule", h.GetMentorSchedule).Methods("GET")
}

type createMentorRequest struct {
	UserID            int64    `json:"user_id" validate:"required,gt=0"`
	Bio               string   `json:"bio"`
	ExpertiseAreas    []string `json:"expertise_areas"`
	HourlyRate        int64    `json:"hourly_rate" validate:"gte=0"`
	MaxSessionsPerDay int      `json:"max_sessions_per_day" validate:"gte=0"`
}

type updateMentorRequest struct {
	Bio               *string  `json:"bio"`
	ExpertiseAreas    []string `json:"expertise_areas"`
	HourlyRate        *int64   `json:"hourly_rate"`
	MaxSessionsPerDay *int     `json:"max_sessions_per_day"`
}

type updateMentorStatusRequest struct {
	Status entities.MentorStatus `json:"status" validate:"required"`
}

// CreateMentor registers a new mentor profile
func (h *MentorHandler) CreateMentor(w http.ResponseWriter, r *http.Request) {
	var req createMentorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var mentor *entities.Mentor
	err := withUnitOfWork(r.Context(), h.uowFactory, func(uow application.UnitOfWork) error {
		var err error
		mentor, err = h.mentorService(uow).CreateMentor(r.Context(), req.UserID, req.Bio, req.ExpertiseAreas, req.HourlyRate, req.MaxSessionsPerDay)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, mentor)
}

// ListMentors returns mentors, filtered by expertise or availability
func (h *MentorHandler) ListMentors(w http.ResponseWriter, r *http.Request) {
	expertise := r.URL.Query().Get("expertise")
	availableOnly := r.URL.Query().Get("available") == "true"

	var mentors []*entities.Mentor
	err := withUnitOfWork(r.Context(), h.uowFactory, func(uow application.UnitOfWork) error {
		mentorService := h.mentorService(uow)
		var err error
		switch {
		case expertise != "":
			mentors, err = mentorService.GetMentorsByExpertise(r.Context(), expertise)
		case availableOnly:
			mentors, err = mentorService.GetAvailableMentors(r.Context())
		default:
			mentors, err = mentorService.GetAllMentors(r.Context())
		}
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if mentors == nil {
		mentors = []*entities.Mentor{}
	}
	writeJSON(w, http.StatusOK, mentors)
}

// GetMentor returns one mentor profile by id
func (h *MentorHandler) GetMentor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var mentor *entities.Mentor
	err := withUnitOfWork(r.Context(), h.uowFactory, func(uow application.UnitOfWork) error {
		var err error
		mentor, err = h.mentorService(uow).GetMentorByID(r.Context(), id)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if mentor == nil {
		writeError(w, entities.ErrMentorNotFound)
		return
	}

	writeJSON(w, http.StatusOK, mentor)
}

// UpdateMentor updates the provided profile fields, keeping the rest
func (h *MentorHandler) UpdateMentor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateMentorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	var mentor *entities.Mentor
	err := withUnitOfWork(r.Context(), h.uowFactory, func(uow application.UnitOfWork) error {
		var err error
		mentor, err = h.mentorService(uow).UpdateMentorProfile(r.Context(), id, req.Bio, req.ExpertiseAreas, req.HourlyRate, req.MaxSessionsPerDay)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mentor)
}

// UpdateMentorStatus sets a mentor's availability status
func (h *MentorHandler) UpdateMentorStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateMentorStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if !req.Status.IsValid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown mentor status"})
		return
	}

	err := withUnitOfWork(r.Context(), h.uowFactory, func(uow application.UnitOfWork) error {
		return h.mentorService(uow).UpdateMentorStatus(r.Context(), id, req.Status)
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

// GetMentorSchedule returns the mentor's non-cancelled appointments on a day
func (h *MentorHandler) GetMentorSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	day, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "date must be YYYY-MM-DD"})
		return
	}

	var schedule []*entities.Appointment
	err = withUnitOfWork(r.Context(), h.uowFactory, func(uow application.UnitOfWork) error {
		var err error
		schedule, err = h.mentorService(uow).GetMentorSchedule(r.Context(), id, day)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if schedule == nil {
		schedule = []*entities.Appointment{}
	}
	writeJSON(w, http.StatusOK, schedule)
}

// DeleteMentor removes a mentor profile
func (h *MentorHandler) DeleteMentor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	err := withUnitOfWork(r.Context(), h.uowFactory, func(uow application.UnitOfWork) error {
		return h.mentorService(uow).DeleteMentor(r.Context(), id)
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (h *MentorHandler) mentorService(uow application.UnitOfWork) interfaces.MentorService {
	return services.NewMentorService(uow.MentorRepository(), uow.AppointmentRepository())
}
