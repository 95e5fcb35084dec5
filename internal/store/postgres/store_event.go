package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/barenakeddev/intelliplan-sub000/internal/models"
	"github.com/barenakeddev/intelliplan-sub000/internal/store"
)

const eventColumns = "id, organization_id, name, conversation_id, status, created_at, updated_at"

func scanEvent(row pgx.Row) (*models.Event, error) {
	ev := &models.Event{}
	err := row.Scan(
		&ev.ID,
		&ev.OrganizationID,
		&ev.Name,
		&ev.ConversationID,
		&ev.Status,
		&ev.CreatedAt,
		&ev.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("database error scanning event: %w", err)
	}
	return ev, nil
}

// CreateEvent inserts a new planner event.
func (s *PostgresStore) CreateEvent(ctx context.Context, arg store.CreateEventParams) (*models.Event, error) {
	query := `
		INSERT INTO events (id, organization_id, name, conversation_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + eventColumns

	row := s.db.QueryRow(ctx, query,
		arg.ID,
		arg.OrganizationID,
		arg.Name,
		arg.ConversationID, // pgx handles *string to NULL automatically
		arg.Status,
	)
	return scanEvent(row)
}

// GetEventByID retrieves an event scoped to its organization.
func (s *PostgresStore) GetEventByID(ctx context.Context, id uuid.UUID, orgID uuid.UUID) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND organization_id = $2`
	return scanEvent(s.db.QueryRow(ctx, query, id, orgID))
}

// ListEventsByOrg retrieves all events for an organization, newest first.
func (s *PostgresStore) ListEventsByOrg(ctx context.Context, orgID uuid.UUID) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE organization_id = $1 ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query, orgID)
	if err != nil {
		log.Printf("ERROR [PostgresStore] ListEventsByOrg: query failed for org %s: %v", orgID, err)
		return nil, fmt.Errorf("database error listing events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error iterating events: %w", err)
	}
	return events, nil
}

// UpdateEvent applies a partial update and returns the updated row.
func (s *PostgresStore) UpdateEvent(ctx context.Context, arg store.UpdateEventParams) (*models.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{arg.ID, arg.OrganizationID}
	argPos := 3

	if arg.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *arg.Name)
		argPos++
	}
	if arg.ConversationID != nil {
		setClauses = append(setClauses, fmt.Sprintf("conversation_id = $%d", argPos))
		args = append(args, *arg.ConversationID)
		argPos++
	}
	if arg.Status != nil {
		setClauses = append(setClauses, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *arg.Status)
		argPos++
	}

	query := `
		UPDATE events SET ` + strings.Join(setClauses, ", ") + `
		WHERE id = $1 AND organization_id = $2
		RETURNING ` + eventColumns

	return scanEvent(s.db.QueryRow(ctx, query, args...))
}

// DeleteEvent removes an event scoped to its organization.
func (s *PostgresStore) DeleteEvent(ctx context.Context, id uuid.UUID, orgID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM events WHERE id = $1 AND organization_id = $2`, id, orgID)
	if err != nil {
		log.Printf("ERROR [PostgresStore] DeleteEvent: delete failed for event %s: %v", id, err)
		return fmt.Errorf("database error deleting event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
