package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ecosoap/internal/logging"
	"ecosoap/internal/model"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("store: not found")

const SchemaSQL = `
CREATE TABLE IF NOT EXISTS users (
  user_id        VARCHAR PRIMARY KEY,
  username       VARCHAR NOT NULL UNIQUE,
  password_hash  VARCHAR NOT NULL,
  first_name     VARCHAR,
  last_name      VARCHAR,
  email          VARCHAR,
  phone          VARCHAR
);

CREATE TABLE IF NOT EXISTS properties (
  property_id    VARCHAR PRIMARY KEY,
  name           VARCHAR NOT NULL,
  property_type  VARCHAR NOT NULL,
  rooms          INTEGER,
  city           VARCHAR
);

CREATE TABLE IF NOT EXISTS user_properties (
  user_id        VARCHAR NOT NULL,
  property_id    VARCHAR NOT NULL,
  position       INTEGER NOT NULL,
  PRIMARY KEY(user_id, property_id)
);

CREATE TABLE IF NOT EXISTS pickups (
  pickup_id          VARCHAR PRIMARY KEY,
  confirmation_code  VARCHAR NOT NULL,
  property_id        VARCHAR NOT NULL,
  status             VARCHAR NOT NULL,
  collection_type    VARCHAR NOT NULL,
  ready_date         TIMESTAMP NOT NULL,
  pickup_date        TIMESTAMP,
  notes              VARCHAR
);

CREATE TABLE IF NOT EXISTS cartons (
  pickup_id      VARCHAR NOT NULL,
  position       INTEGER NOT NULL,
  product_type   VARCHAR NOT NULL,
  percentage     INTEGER NOT NULL,
  PRIMARY KEY(pickup_id, position)
);
`

// Repo reads and writes console records.
type Repo struct {
	client *Client
	db     *sql.DB
	log    *slog.Logger
}

func NewRepo(client *Client, log *slog.Logger) *Repo {
	return &Repo{
		client: client,
		db:     client.DB(),
		log:    logging.OrDiscard(log),
	}
}

func (r *Repo) Close() error {
	return r.client.Close()
}

func (r *Repo) Migrate(ctx context.Context) error {
	ctx, cancel := r.client.context(ctx)
	defer cancel()
	if _, err := r.db.ExecContext(ctx, SchemaSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// LoadFixture inserts every record of f in a single transaction.
func (r *Repo) LoadFixture(ctx context.Context, f *Fixture) error {
	users, properties, pickups, err := f.Records()
	if err != nil {
		return err
	}

	ctx, cancel := r.client.context(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin fixture load: %w", err)
	}
	defer tx.Rollback()

	for _, p := range properties {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO properties (property_id, name, property_type, rooms, city) VALUES (?, ?, ?, ?, ?)`,
			p.ID.String(), p.Name, string(p.Type), p.Rooms, p.City,
		); err != nil {
			return fmt.Errorf("insert property %s: %w", p.Name, err)
		}
	}

	for _, u := range users {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (user_id, username, password_hash, first_name, last_name, email, phone)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			u.ID.String(), u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Email, u.Phone,
		); err != nil {
			return fmt.Errorf("insert user %s: %w", u.Username, err)
		}
		for pos, pid := range u.PropertyIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO user_properties (user_id, property_id, position) VALUES (?, ?, ?)`,
				u.ID.String(), pid.String(), pos,
			); err != nil {
				return fmt.Errorf("link user %s to property %s: %w", u.Username, pid, err)
			}
		}
	}

	for _, p := range pickups {
		var pickupDate sql.NullTime
		if p.PickupDate != nil {
			pickupDate = sql.NullTime{Time: *p.PickupDate, Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO pickups (pickup_id, confirmation_code, property_id, status, collection_type, ready_date, pickup_date, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID.String(), p.ConfirmationCode, p.PropertyID.String(), string(p.Status),
			string(p.CollectionType), p.ReadyDate, pickupDate, p.Notes,
		); err != nil {
			return fmt.Errorf("insert pickup %s: %w", p.ConfirmationCode, err)
		}
		for pos, c := range p.Cartons {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO cartons (pickup_id, position, product_type, percentage) VALUES (?, ?, ?, ?)`,
				p.ID.String(), pos, string(c.ProductType), c.Percentage,
			); err != nil {
				return fmt.Errorf("insert carton for %s: %w", p.ConfirmationCode, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit fixture load: %w", err)
	}

	r.log.Info("fixture loaded",
		"users", len(users),
		"properties", len(properties),
		"pickups", len(pickups),
	)
	return nil
}

const userColumns = `user_id, username, password_hash, first_name, last_name, email, phone`

func (r *Repo) UserByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.queryUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (r *Repo) UserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.queryUser(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = ?`, id.String())
}

func (r *Repo) queryUser(ctx context.Context, query string, arg any) (*model.User, error) {
	ctx, cancel := r.client.context(ctx)
	defer cancel()

	var (
		u                         model.User
		id                        string
		first, last, email, phone sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&id, &u.Username, &u.PasswordHash, &first, &last, &email, &phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	if u.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse user id %q: %w", id, err)
	}
	u.FirstName, u.LastName, u.Email, u.Phone = first.String, last.String, email.String, phone.String

	rows, err := r.db.QueryContext(ctx,
		`SELECT property_id FROM user_properties WHERE user_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("query user properties: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pid string
		if err := rows.Scan(&pid); err != nil {
			return nil, fmt.Errorf("scan user property: %w", err)
		}
		parsed, err := uuid.Parse(pid)
		if err != nil {
			return nil, fmt.Errorf("parse property id %q: %w", pid, err)
		}
		u.PropertyIDs = append(u.PropertyIDs, parsed)
	}
	return &u, rows.Err()
}

// Profile is the editable part of a user record.
type Profile struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// UpdateProfile overwrites the editable fields and returns the updated user.
func (r *Repo) UpdateProfile(ctx context.Context, userID uuid.UUID, p Profile) (*model.User, error) {
	execCtx, cancel := r.client.context(ctx)
	defer cancel()

	res, err := r.db.ExecContext(execCtx,
		`UPDATE users SET first_name = ?, last_name = ?, email = ?, phone = ? WHERE user_id = ?`,
		p.FirstName, p.LastName, p.Email, p.Phone, userID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	r.log.Debug("profile updated", "user_id", userID.String())
	return r.UserByID(ctx, userID)
}

// PropertiesForUser returns the user's properties in their stored order.
func (r *Repo) PropertiesForUser(ctx context.Context, userID uuid.UUID) ([]model.Property, error) {
	ctx, cancel := r.client.context(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT p.property_id, p.name, p.property_type, p.rooms, p.city
		FROM user_properties up
		JOIN properties p ON p.property_id = up.property_id
		WHERE up.user_id = ?
		ORDER BY up.position
	`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("query properties: %w", err)
	}
	defer rows.Close()

	var out []model.Property
	for rows.Next() {
		var (
			p         model.Property
			id, ptype string
			rooms     sql.NullInt64
			city      sql.NullString
		)
		if err := rows.Scan(&id, &p.Name, &ptype, &rooms, &city); err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		if p.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse property id %q: %w", id, err)
		}
		p.Type = model.PropertyType(ptype)
		p.Rooms = int(rooms.Int64)
		p.City = city.String
		out = append(out, p)
	}
	return out, rows.Err()
}

// PickupsForProperty returns a property's pickups newest first with their cartons.
func (r *Repo) PickupsForProperty(ctx context.Context, propertyID uuid.UUID) ([]model.Pickup, error) {
	ctx, cancel := r.client.context(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT pickup_id, confirmation_code, status, collection_type, ready_date, pickup_date, notes
		FROM pickups
		WHERE property_id = ?
		ORDER BY ready_date DESC, confirmation_code
	`, propertyID.String())
	if err != nil {
		return nil, fmt.Errorf("query pickups: %w", err)
	}

	var (
		pickups []model.Pickup
		index   = map[string]int{}
	)
	for rows.Next() {
		var (
			p                 model.Pickup
			id, status, ctype string
			pickupDate        sql.NullTime
			notes             sql.NullString
		)
		if err := rows.Scan(&id, &p.ConfirmationCode, &status, &ctype, &p.ReadyDate, &pickupDate, &notes); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan pickup: %w", err)
		}
		if p.ID, err = uuid.Parse(id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("parse pickup id %q: %w", id, err)
		}
		p.PropertyID = propertyID
		p.Status = model.Status(status)
		p.CollectionType = model.CollectionType(ctype)
		p.Notes = notes.String
		if pickupDate.Valid {
			t := pickupDate.Time
			p.PickupDate = &t
		}
		index[id] = len(pickups)
		pickups = append(pickups, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate pickups: %w", err)
	}
	rows.Close()

	cartons, err := r.db.QueryContext(ctx, `
		SELECT c.pickup_id, c.product_type, c.percentage
		FROM cartons c
		JOIN pickups p ON p.pickup_id = c.pickup_id
		WHERE p.property_id = ?
		ORDER BY c.pickup_id, c.position
	`, propertyID.String())
	if err != nil {
		return nil, fmt.Errorf("query cartons: %w", err)
	}
	defer cartons.Close()
	for cartons.Next() {
		var (
			pickupID, product string
			c                 model.Carton
		)
		if err := cartons.Scan(&pickupID, &product, &c.Percentage); err != nil {
			return nil, fmt.Errorf("scan carton: %w", err)
		}
		c.ProductType = model.ProductType(product)
		if i, ok := index[pickupID]; ok {
			pickups[i].Cartons = append(pickups[i].Cartons, c)
		}
	}
	return pickups, cartons.Err()
}

// MonthTotal is the number of soap cartons collected in one month.
type MonthTotal struct {
	Month       time.Time
	SoapCartons int
}

// Summary aggregates a property's pickups.
type Summary struct {
	Counts       map[model.Status]int
	TotalCartons int
	Monthly      []MonthTotal
}

// PickupSummary counts pickups by status and totals soap cartons per month,
// ignoring cancelled pickups.
func (r *Repo) PickupSummary(ctx context.Context, propertyID uuid.UUID) (*Summary, error) {
	ctx, cancel := r.client.context(ctx)
	defer cancel()

	s := &Summary{Counts: make(map[model.Status]int)}

	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM pickups WHERE property_id = ? GROUP BY status`,
		propertyID.String())
	if err != nil {
		return nil, fmt.Errorf("query status counts: %w", err)
	}
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		s.Counts[model.Status(status)] = n
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}
	rows.Close()

	if err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM cartons c
		JOIN pickups p ON p.pickup_id = c.pickup_id
		WHERE p.property_id = ? AND p.status <> 'cancelled'
	`, propertyID.String()).Scan(&s.TotalCartons); err != nil {
		return nil, fmt.Errorf("query carton total: %w", err)
	}

	monthly, err := r.db.QueryContext(ctx, `
		SELECT date_trunc('month', p.ready_date) AS month, COUNT(*) AS soap_cartons
		FROM cartons c
		JOIN pickups p ON p.pickup_id = c.pickup_id
		WHERE p.property_id = ? AND p.status <> 'cancelled' AND c.product_type = 'soap'
		GROUP BY month
		ORDER BY month
	`, propertyID.String())
	if err != nil {
		return nil, fmt.Errorf("query monthly totals: %w", err)
	}
	defer monthly.Close()
	for monthly.Next() {
		var mt MonthTotal
		if err := monthly.Scan(&mt.Month, &mt.SoapCartons); err != nil {
			return nil, fmt.Errorf("scan monthly total: %w", err)
		}
		s.Monthly = append(s.Monthly, mt)
	}
	return s, monthly.Err()
}
