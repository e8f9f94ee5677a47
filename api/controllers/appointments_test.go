package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/garagelab/modstudio-backend/internal/appointments"
	"github.com/garagelab/modstudio-backend/pkg/enums"
	pkgerrors "github.com/garagelab/modstudio-backend/pkg/errors"
)

type stubAppointmentSvc struct {
	appt      appointments.AppointmentDTO
	items     []appointments.AppointmentDTO
	err       error
	scheduled *appointments.ScheduleInput
	cancelled *uuid.UUID
}

func (s *stubAppointmentSvc) Schedule(_ context.Context, _ uuid.UUID, input appointments.ScheduleInput) (appointments.AppointmentDTO, error) {
	if s.scheduled != nil {
		*s.scheduled = input
	}
	return s.appt, s.err
}

func (s *stubAppointmentSvc) List(context.Context, uuid.UUID) ([]appointments.AppointmentDTO, error) {
	return s.items, s.err
}

func (s *stubAppointmentSvc) Cancel(_ context.Context, _ uuid.UUID, appointmentID uuid.UUID) (appointments.AppointmentDTO, error) {
	if s.cancelled != nil {
		*s.cancelled = appointmentID
	}
	return s.appt, s.err
}

func (s *stubAppointmentSvc) Complete(context.Context, uuid.UUID, uuid.UUID) (appointments.AppointmentDTO, error) {
	return s.appt, s.err
}

func TestAppointmentScheduleRejectsUnknownServiceType(t *testing.T) {
	handler := AppointmentSchedule(&stubAppointmentSvc{}, nil)

	body := `{"service_type":"detailing","scheduled_at":"2026-09-10T10:00:00Z"}`
	req := authedRequest(http.MethodPost, "/api/v1/appointments", body, uuid.New())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAppointmentScheduleSuccess(t *testing.T) {
	var scheduled appointments.ScheduleInput
	svc := &stubAppointmentSvc{
		appt: appointments.AppointmentDTO{
			ID:          uuid.New(),
			ServiceType: enums.ServiceTypeConsultation,
			Status:      enums.AppointmentStatusScheduled,
		},
		scheduled: &scheduled,
	}
	handler := AppointmentSchedule(svc, nil)

	body := `{"service_type":"consultation","scheduled_at":"2026-09-10T10:00:00Z","notes":"discuss exhaust options"}`
	req := authedRequest(http.MethodPost, "/api/v1/appointments", body, uuid.New())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if scheduled.ServiceType != enums.ServiceTypeConsultation {
		t.Fatalf("unexpected service type %q", scheduled.ServiceType)
	}
	want := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	if !scheduled.ScheduledAt.Equal(want) {
		t.Fatalf("unexpected scheduled_at %s", scheduled.ScheduledAt)
	}
	if scheduled.Notes == nil || *scheduled.Notes != "discuss exhaust options" {
		t.Fatalf("notes not propagated: %+v", scheduled.Notes)
	}

	var envelope struct {
		Data appointments.AppointmentDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Status != enums.AppointmentStatusScheduled {
		t.Fatalf("unexpected status %q", envelope.Data.Status)
	}
}

func TestAppointmentCancelPassesPathID(t *testing.T) {
	var cancelled uuid.UUID
	handler := AppointmentCancel(&stubAppointmentSvc{cancelled: &cancelled}, nil)

	appointmentID := uuid.New()
	req := authedRequest(http.MethodPost, "/api/v1/appointments/x/cancel", "", uuid.New())
	req = withURLParam(req, "appointmentId", appointmentID.String())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if cancelled != appointmentID {
		t.Fatalf("expected %s got %s", appointmentID, cancelled)
	}
}

func TestAppointmentCompleteStateConflictPropagates(t *testing.T) {
	svc := &stubAppointmentSvc{err: pkgerrors.New(pkgerrors.CodeStateConflict, "appointment is not scheduled")}
	handler := AppointmentComplete(svc, nil)

	req := authedRequest(http.MethodPost, "/api/v1/appointments/x/complete", "", uuid.New())
	req = withURLParam(req, "appointmentId", uuid.NewString())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", rec.Code)
	}
}
