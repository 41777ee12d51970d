package kafka_test

import (
	"context"
	"testing"
	"time"

	"go-staffhub/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingEvent() kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            "evt-1",
		RequestID:     "req-1",
		AggregateType: "employee",
		AggregateID:   "emp-1",
		EventType:     "employee_created",
		Topic:         "staffhub.employee.lifecycle.v1",
		Payload:       []byte(`{"employee_id":"emp-1"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestOutboxRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)
	event := pendingEvent()

	t.Run("Insert Outside Transaction", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO outbox_events").
			WithArgs(event.ID, event.RequestID, event.AggregateType,
				event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(context.Background(), event))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insert Inside Transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO outbox_events").
			WithArgs(event.ID, event.RequestID, event.AggregateType,
				event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.Begin()
		require.NoError(t, err)

		assert.NoError(t, repo.WithTx(tx).Create(context.Background(), event))
		assert.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "aggregate_type", "aggregate_id", "event_type",
		"topic", "payload", "status", "retry_count", "next_retry_at",
	}).AddRow(
		"evt-1", "employee", "emp-1", "employee_created",
		"staffhub.employee.lifecycle.v1", []byte(`{}`), kafka.OutboxStatusPending, 0, time.Now(),
	)

	mock.ExpectQuery("SELECT").
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 50).
		WillReturnRows(rows)

	events, err := repo.ListPending(context.Background(), 50)

	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "evt-1", events[0].ID)
	assert.Equal(t, kafka.OutboxStatusPending, events[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkSentAndFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)
	ctx := context.Background()

	t.Run("Mark Sent", func(t *testing.T) {
		mock.ExpectExec("UPDATE outbox_events").
			WithArgs("evt-1", kafka.OutboxStatusSent).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.MarkSent(ctx, "evt-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Mark Failed Schedules Retry With Default Backoff", func(t *testing.T) {
		mock.ExpectExec("UPDATE outbox_events").
			WithArgs("evt-1", kafka.OutboxStatusFailed, "broker unreachable", float64(30)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.MarkFailed(ctx, "evt-1", "broker unreachable"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Configured Backoff Changes The Retry Delay", func(t *testing.T) {
		tuned := kafka.NewOutboxRepositoryWithBackoff(db, 10*time.Second)

		mock.ExpectExec("UPDATE outbox_events").
			WithArgs("evt-1", kafka.OutboxStatusFailed, "broker unreachable", float64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, tuned.MarkFailed(ctx, "evt-1", "broker unreachable"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestValidateOutboxEvent(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, kafka.ValidateOutboxEvent(pendingEvent()))
	})

	t.Run("Missing ID", func(t *testing.T) {
		event := pendingEvent()
		event.ID = ""
		assert.Error(t, kafka.ValidateOutboxEvent(event))
	})

	t.Run("Missing Topic", func(t *testing.T) {
		event := pendingEvent()
		event.Topic = ""
		assert.Error(t, kafka.ValidateOutboxEvent(event))
	})

	t.Run("Empty Payload", func(t *testing.T) {
		event := pendingEvent()
		event.Payload = nil
		assert.Error(t, kafka.ValidateOutboxEvent(event))
	})

	t.Run("Unknown Status", func(t *testing.T) {
		event := pendingEvent()
		event.Status = "queued"
		assert.Error(t, kafka.ValidateOutboxEvent(event))
	})
}
