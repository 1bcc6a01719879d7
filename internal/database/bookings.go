package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"roombooker/internal/models"
)

// ListIDs returns the ids of all bookings matching the filter, in insertion
// order. Name filters match exactly; checkIn is a strict lower bound and
// checkOut a strict upper bound on the stored dates.
func (s *Store) ListIDs(ctx context.Context, filter models.BookingFilter) ([]int64, error) {
	query := `SELECT id FROM bookings`
	var clauses []string
	var args []any

	if filter.FirstName != nil {
		clauses = append(clauses, "first_name = ?")
		args = append(args, *filter.FirstName)
	}
	if filter.LastName != nil {
		clauses = append(clauses, "last_name = ?")
		args = append(args, *filter.LastName)
	}
	if filter.CheckIn != nil {
		clauses = append(clauses, "date(checkin) > date(?)")
		args = append(args, *filter.CheckIn)
	}
	if filter.CheckOut != nil {
		clauses = append(clauses, "date(checkout) < date(?)")
		args = append(args, *filter.CheckOut)
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list booking ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan booking id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read booking ids: %w", err)
	}
	return ids, nil
}

// Get returns a single booking or ErrNotFound.
func (s *Store) Get(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT id, first_name, last_name, total_price, deposit_paid, checkin, checkout, additional_needs
              FROM bookings WHERE id = ?`

	var booking models.Booking
	var needs sql.NullString
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&booking.ID,
		&booking.FirstName,
		&booking.LastName,
		&booking.TotalPrice,
		&booking.DepositPaid,
		&booking.BookingDates.CheckIn,
		&booking.BookingDates.CheckOut,
		&needs,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if needs.Valid {
		booking.AdditionalNeeds = &needs.String
	}
	return &booking, nil
}

// Exists reports whether a booking id is present.
func (s *Store) Exists(ctx context.Context, id int64) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check booking existence: %w", err)
	}
	return n > 0, nil
}

// Create inserts a booking and assigns its id.
func (s *Store) Create(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (
				first_name, last_name, total_price, deposit_paid,
				checkin, checkout, additional_needs, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := s.db.ExecContext(ctx, query,
		booking.FirstName,
		booking.LastName,
		booking.TotalPrice,
		booking.DepositPaid,
		booking.BookingDates.CheckIn,
		booking.BookingDates.CheckOut,
		needsValue(booking.AdditionalNeeds),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	return nil
}

// Replace overwrites every field of an existing booking. Replacing a
// missing id is not an error here; callers detect that by re-fetching.
func (s *Store) Replace(ctx context.Context, id int64, booking models.Booking) error {
	query := `UPDATE bookings SET
				first_name = ?, last_name = ?, total_price = ?, deposit_paid = ?,
				checkin = ?, checkout = ?, additional_needs = ?, updated_at = ?
			  WHERE id = ?`
	_, err := s.db.ExecContext(ctx, query,
		booking.FirstName,
		booking.LastName,
		booking.TotalPrice,
		booking.DepositPaid,
		booking.BookingDates.CheckIn,
		booking.BookingDates.CheckOut,
		needsValue(booking.AdditionalNeeds),
		time.Now(),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to replace booking: %w", err)
	}
	return nil
}

// Merge updates only the fields present in the input, leaving the rest of
// the record untouched. An input with no fields set is a no-op.
func (s *Store) Merge(ctx context.Context, id int64, in *models.BookingInput) error {
	var sets []string
	var args []any

	if in.FirstName != nil {
		sets = append(sets, "first_name = ?")
		args = append(args, *in.FirstName)
	}
	if in.LastName != nil {
		sets = append(sets, "last_name = ?")
		args = append(args, *in.LastName)
	}
	if in.TotalPrice != nil {
		sets = append(sets, "total_price = ?")
		args = append(args, int(*in.TotalPrice))
	}
	if in.DepositPaid != nil {
		sets = append(sets, "deposit_paid = ?")
		args = append(args, bool(*in.DepositPaid))
	}
	if in.BookingDates != nil && in.BookingDates.CheckIn != nil {
		sets = append(sets, "checkin = ?")
		args = append(args, *in.BookingDates.CheckIn)
	}
	if in.BookingDates != nil && in.BookingDates.CheckOut != nil {
		sets = append(sets, "checkout = ?")
		args = append(args, *in.BookingDates.CheckOut)
	}
	if in.AdditionalNeeds != nil {
		sets = append(sets, "additional_needs = ?")
		args = append(args, *in.AdditionalNeeds)
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now(), id)

	query := "UPDATE bookings SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to merge booking: %w", err)
	}
	return nil
}

// Delete removes a booking. Deleting a missing id is not an error; callers
// check existence first when they need to.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}

func needsValue(needs *string) any {
	if needs == nil {
		return nil
	}
	return *needs
}
