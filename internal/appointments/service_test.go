package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/garagelab/modstudio-backend/internal/cars"
	"github.com/garagelab/modstudio-backend/pkg/db/models"
	"github.com/garagelab/modstudio-backend/pkg/enums"
	pkgerrors "github.com/garagelab/modstudio-backend/pkg/errors"
)

var appointmentsTestNow = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

func setupAppointmentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS cars (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  make TEXT NOT NULL,
  model TEXT NOT NULL,
  year INTEGER,
  color TEXT,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS appointments (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  car_id TEXT,
  service_type TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'scheduled',
  scheduled_at DATETIME NOT NULL,
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(schema).Error)
	return conn
}

func newAppointmentsService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		AppointmentRepo: NewRepository(conn),
		CarRepo:         cars.NewRepository(conn),
		Now:             func() time.Time { return appointmentsTestNow },
	})
	require.NoError(t, err)
	return svc
}

func TestScheduleAndList(t *testing.T) {
	conn := setupAppointmentsTestDB(t)
	svc := newAppointmentsService(t, conn)
	ctx := context.Background()

	customerID := uuid.New()
	car := &models.Car{ID: uuid.New(), CustomerID: customerID, Make: "Honda", Model: "City"}
	require.NoError(t, conn.Create(car).Error)

	carID := car.ID
	notes := "turbo install consult"
	later := appointmentsTestNow.Add(72 * time.Hour)
	sooner := appointmentsTestNow.Add(24 * time.Hour)

	first, err := svc.Schedule(ctx, customerID, ScheduleInput{
		CarID:       &carID,
		ServiceType: enums.ServiceTypeConsultation,
		ScheduledAt: later,
		Notes:       &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.AppointmentStatusScheduled, first.Status)
	require.NotNil(t, first.CarID)
	assert.Equal(t, car.ID, *first.CarID)

	_, err = svc.Schedule(ctx, customerID, ScheduleInput{
		ServiceType: enums.ServiceTypeMaintenance,
		ScheduledAt: sooner,
	})
	require.NoError(t, err)

	listed, err := svc.List(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	// soonest first
	assert.Equal(t, enums.ServiceTypeMaintenance, listed[0].ServiceType)
	assert.Equal(t, first.ID, listed[1].ID)
}

func TestScheduleValidation(t *testing.T) {
	conn := setupAppointmentsTestDB(t)
	svc := newAppointmentsService(t, conn)
	ctx := context.Background()

	customerID := uuid.New()
	foreignCar := &models.Car{ID: uuid.New(), CustomerID: uuid.New(), Make: "BMW", Model: "M3"}
	require.NoError(t, conn.Create(foreignCar).Error)
	foreignCarID := foreignCar.ID

	cases := []struct {
		name     string
		input    ScheduleInput
		wantCode pkgerrors.Code
	}{
		{
			name: "unknown service type",
			input: ScheduleInput{
				ServiceType: enums.ServiceType("detailing"),
				ScheduledAt: appointmentsTestNow.Add(time.Hour),
			},
			wantCode: pkgerrors.CodeValidation,
		},
		{
			name: "past date",
			input: ScheduleInput{
				ServiceType: enums.ServiceTypeRepair,
				ScheduledAt: appointmentsTestNow.Add(-time.Hour),
			},
			wantCode: pkgerrors.CodeValidation,
		},
		{
			name: "someone else's car",
			input: ScheduleInput{
				CarID:       &foreignCarID,
				ServiceType: enums.ServiceTypeRepair,
				ScheduledAt: appointmentsTestNow.Add(time.Hour),
			},
			wantCode: pkgerrors.CodeForbidden,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Schedule(ctx, customerID, tc.input)
			require.Error(t, err)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, tc.wantCode, typed.Code())
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	conn := setupAppointmentsTestDB(t)
	svc := newAppointmentsService(t, conn)
	ctx := context.Background()

	customerID := uuid.New()
	appt, err := svc.Schedule(ctx, customerID, ScheduleInput{
		ServiceType: enums.ServiceTypeInspection,
		ScheduledAt: appointmentsTestNow.Add(24 * time.Hour),
	})
	require.NoError(t, err)

	completed, err := svc.Complete(ctx, customerID, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.AppointmentStatusCompleted, completed.Status)

	// terminal states never transition again
	_, err = svc.Cancel(ctx, customerID, appt.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())

	_, err = svc.Complete(ctx, customerID, appt.ID)
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestTransitionOwnershipAndMissing(t *testing.T) {
	conn := setupAppointmentsTestDB(t)
	svc := newAppointmentsService(t, conn)
	ctx := context.Background()

	customerID := uuid.New()
	appt, err := svc.Schedule(ctx, customerID, ScheduleInput{
		ServiceType: enums.ServiceTypeOther,
		ScheduledAt: appointmentsTestNow.Add(24 * time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, uuid.New(), appt.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	_, err = svc.Cancel(ctx, customerID, uuid.New())
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	cancelled, err := svc.Cancel(ctx, customerID, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.AppointmentStatusCancelled, cancelled.Status)
}
