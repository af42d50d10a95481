package roomRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"laohotel/models"

	"github.com/google/uuid"
)

type sqliteRoomRepo struct {
	db *sql.DB
}

// NewSQLiteRoomRepo returns a RoomRepository on the rooms table.
func NewSQLiteRoomRepo(db *sql.DB) RoomRepository {
	return &sqliteRoomRepo{db: db}
}

func newRoomID() string {
	return "R-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}

func (r *sqliteRoomRepo) Seed(ctx context.Context, roomNumbers []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, number := range roomNumbers {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO rooms (roomId, roomNumber, status) VALUES (?, ?, ?)`,
			newRoomID(), number, models.RoomAvailable,
		); err != nil {
			return fmt.Errorf("seed room %s: %w", number, err)
		}
	}
	return tx.Commit()
}

func (r *sqliteRoomRepo) ListAvailable(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT roomNumber FROM rooms WHERE status = ? ORDER BY roomNumber`, models.RoomAvailable)
	if err != nil {
		return nil, fmt.Errorf("query available rooms: %w", err)
	}
	defer func() { _ = rows.Close() }()

	rooms := []string{}
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return nil, fmt.Errorf("scan room number: %w", err)
		}
		rooms = append(rooms, number)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rooms: %w", err)
	}
	return rooms, nil
}

const roomColumns = `roomId, roomNumber, status,
	COALESCE(reserveStartDate, ''), COALESCE(reserveEndDate, ''), COALESCE(note, '')`

func scanRoom(scan func(dest ...any) error) (*models.Room, error) {
	var room models.Room
	if err := scan(&room.RoomID, &room.RoomNumber, &room.Status,
		&room.ReserveStartDate, &room.ReserveEndDate, &room.Note); err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *sqliteRoomRepo) ListAll(ctx context.Context) ([]models.Room, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+roomColumns+` FROM rooms ORDER BY roomNumber`)
	if err != nil {
		return nil, fmt.Errorf("query rooms: %w", err)
	}
	defer func() { _ = rows.Close() }()

	rooms := []models.Room{}
	for rows.Next() {
		room, err := scanRoom(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, *room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rooms: %w", err)
	}
	return rooms, nil
}

func (r *sqliteRoomRepo) Get(ctx context.Context, roomNumber string) (*models.Room, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+roomColumns+` FROM rooms WHERE roomNumber = ?`, roomNumber)
	room, err := scanRoom(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan room %s: %w", roomNumber, err)
	}
	return room, nil
}

func (r *sqliteRoomRepo) BookIfAvailable(ctx context.Context, roomNumber string, start, end time.Time, note string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rooms SET status = ?, reserveStartDate = ?, reserveEndDate = ?, note = ?
		 WHERE roomNumber = ? AND status = ?`,
		models.RoomBooked, start.Format(DateLayout), end.Format(DateLayout), note,
		roomNumber, models.RoomAvailable,
	)
	if err != nil {
		return false, fmt.Errorf("book room %s: %w", roomNumber, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for room %s: %w", roomNumber, err)
	}
	return affected > 0, nil
}
