package postgres

import (
	"autoDetailing/internal/config"
	"autoDetailing/internal/models"
	"autoDetailing/internal/storage"
	"autoDetailing/internal/storage/postgres/migrations"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"strings"
	"time"
)

const uniqueViolation = "23505"

type Storage struct {
	DB *sql.DB
}

func InitDB(ctx context.Context, dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storage{DB: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) CreateUser(ctx context.Context, email string, passwordHash []byte, role models.Role) (models.User, error) {
	query := `
		INSERT INTO users (id, email, password_hash, role)
		VALUES ($1, $2, $3, $4)`

	user := models.User{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: models.DisplayNameFromEmail(email),
		Role:        role,
	}

	_, err := s.DB.ExecContext(ctx, query, user.ID, strings.ToLower(email), passwordHash, string(role))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.User{}, storage.ErrUserExists
		}
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *Storage) UserByEmail(ctx context.Context, email string) (models.Account, error) {
	query := `
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE email = $1`

	acc, err := scanAccount(s.DB.QueryRowContext(ctx, query, strings.ToLower(email)))
	if err != nil {
		return models.Account{}, err
	}

	return acc, nil
}

func (s *Storage) User(ctx context.Context, id string) (models.User, error) {
	query := `
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE id = $1`

	acc, err := scanAccount(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return models.User{}, err
	}

	return acc.User, nil
}

func scanAccount(row *sql.Row) (models.Account, error) {
	var acc models.Account
	var role string

	err := row.Scan(&acc.ID, &acc.Email, &acc.PasswordHash, &role, &acc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, storage.ErrUserNotFound
		}
		return models.Account{}, fmt.Errorf("failed to get user: %w", err)
	}

	acc.Role = models.Role(role)
	acc.DisplayName = models.DisplayNameFromEmail(acc.Email)

	return acc, nil
}

func (s *Storage) CreateBooking(ctx context.Context, b models.Booking) (string, error) {
	query := `
		INSERT INTO jobs (id, name, email, phone, address, date, service, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}

	id := uuid.NewString()

	_, err := s.DB.ExecContext(ctx, query,
		id,
		b.Name,
		b.Email,
		b.Phone,
		b.Address,
		b.Date,
		string(b.Service),
		b.OwnerID,
		b.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create booking: %w", err)
	}

	return id, nil
}

func (s *Storage) Bookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error) {
	query := `
		SELECT id, name, email, phone, address, date, service, user_id, created_at
		FROM jobs`
	var args []any

	if filter.OwnerID != "" {
		query += ` WHERE user_id = $1`
		args = append(args, filter.OwnerID)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]models.Booking, 0)
	for rows.Next() {
		var b models.Booking
		var service string

		err = rows.Scan(
			&b.ID,
			&b.Name,
			&b.Email,
			&b.Phone,
			&b.Address,
			&b.Date,
			&service,
			&b.OwnerID,
			&b.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}

		b.Service = models.Service(service)
		bookings = append(bookings, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}
