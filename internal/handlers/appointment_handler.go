package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/salon-admin/internal/dto"
	"github.com/BruksfildServices01/salon-admin/internal/httperr"
	"github.com/BruksfildServices01/salon-admin/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/salon-admin/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC *ucAppointment.CreateAppointment
	updateUC *ucAppointment.UpdateAppointment
	decideUC *ucAppointment.DecideAppointment
	deleteUC *ucAppointment.DeleteAppointment
	getUC    *ucAppointment.GetAppointment
	listUC   *ucAppointment.ListAppointments
	log      *logrus.Logger
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	decideUC *ucAppointment.DecideAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	getUC *ucAppointment.GetAppointment,
	listUC *ucAppointment.ListAppointments,
	log *logrus.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC: createUC,
		updateUC: updateUC,
		decideUC: decideUC,
		deleteUC: deleteUC,
		getUC:    getUC,
		listUC:   listUC,
		log:      log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID        uint   `json:"client_id" binding:"required"`
	ServiceID       uint   `json:"service_id" binding:"required"`
	StaffID         *uint  `json:"staff_id"`
	AppointmentDate string `json:"appointment_date" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	EndTime         string `json:"end_time" binding:"required"`
	Notes           string `json:"notes"`
	Status          string `json:"status"`
}

type UpdateAppointmentRequest struct {
	ClientID        *uint   `json:"client_id"`
	ServiceID       *uint   `json:"service_id"`
	StaffID         *uint   `json:"staff_id"`
	AppointmentDate *string `json:"appointment_date"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	Notes           *string `json:"notes"`
	Status          *string `json:"status"`
}

type DecideAppointmentRequest struct {
	Status  string `json:"status" binding:"required"`
	StaffID *uint  `json:"staff_id"`
	Reason  string `json:"reason"`
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	staffID, ok1 := optionalUint(c.Query("staff_id"))
	clientID, ok2 := optionalUint(c.Query("client_id"))
	if !ok1 || !ok2 {
		httperr.BadRequest(c, "invalid_filter", "Invalid staff_id or client_id.")
		return
	}

	rows, err := h.listUC.Execute(c.Request.Context(), ucAppointment.ListAppointmentsInput{
		Status:   c.Query("status"),
		StaffID:  staffID,
		ClientID: clientID,
		From:     c.Query("from"),
		To:       c.Query("to"),
	})
	if err != nil {
		writeError(c, h.log, err, "appointment_list_failed")
		return
	}

	httpresp.List(c, dto.NewAppointmentList(rows))
}

// ======================================================
// GET
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	d, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err, "appointment_get_failed")
		return
	}

	httpresp.OK(c, dto.NewAppointmentListDTO(*d))
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:  req.ClientID,
		ServiceID: req.ServiceID,
		StaffID:   req.StaffID,
		Date:      req.AppointmentDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
		Status:    req.Status,
		Actor:     actor(c),
	})
	if err != nil {
		writeError(c, h.log, err, "appointment_create_failed")
		return
	}

	httpresp.Created(c, gin.H{
		"message":        "Appointment created successfully",
		"appointment_id": ap.ID,
	})
}

// ======================================================
// UPDATE (PUT)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		ID:        id,
		ClientID:  req.ClientID,
		ServiceID: req.ServiceID,
		StaffID:   req.StaffID,
		Date:      req.AppointmentDate,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
		Status:    req.Status,
		Actor:     actor(c),
	})
	if err != nil {
		writeError(c, h.log, err, "appointment_update_failed")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// CONFIRM / DECLINE (PATCH)
// ======================================================

func (h *AppointmentHandler) Decide(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req DecideAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.decideUC.Execute(c.Request.Context(), ucAppointment.DecideAppointmentInput{
		ID:      id,
		Status:  req.Status,
		StaffID: req.StaffID,
		Reason:  req.Reason,
		Actor:   actor(c),
	})
	if err != nil {
		writeError(c, h.log, err, "appointment_decide_failed")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id, actor(c)); err != nil {
		writeError(c, h.log, err, "appointment_delete_failed")
		return
	}

	httpresp.Message(c, "Appointment deleted successfully")
}
