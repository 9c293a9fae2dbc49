package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/passenger-registry/internal/model"
)

// passengerColumns is the column list shared by every SELECT so the scan
// order stays in one place.
const passengerColumns = `id, passenger_name, passport, registration_no, report, wafid_status,
	unfit_com, registration_date, slip_file_submit, sender,
	slip_payment_receive, commission, slip_payment_send, profit_margin,
	code, remark, created_at, updated_at`

// PassengerRepo encapsulates all database queries for passenger records.
type PassengerRepo struct {
	db *sql.DB
}

// NewPassengerRepo constructs a PassengerRepo with the provided DB handle,
// allowing the connection to be injected at startup and in tests.
func NewPassengerRepo(db *sql.DB) *PassengerRepo {
	return &PassengerRepo{db: db}
}

func scanPassenger(row interface{ Scan(...any) error }, p *model.Passenger) error {
	return row.Scan(
		&p.ID, &p.PassengerName, &p.Passport, &p.RegistrationNo, &p.Report, &p.WafidStatus,
		&p.UnfitCom, &p.RegistrationDate, &p.SlipFileSubmit, &p.Sender,
		&p.SlipPaymentReceive, &p.Commission, &p.SlipPaymentSend, &p.ProfitMargin,
		&p.Code, &p.Remark, &p.CreatedAt, &p.UpdatedAt,
	)
}

// isDuplicateKey detects the MySQL duplicate entry error (1062) on the
// unique passport index.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// Create inserts a new passenger. On success the ID field is populated with
// the auto-generated value and a follow-up SELECT fills the timestamps so
// callers receive a fully populated record.
func (r *PassengerRepo) Create(ctx context.Context, p *model.Passenger) error {
	const qInsert = `INSERT INTO passengers
		(passenger_name, passport, registration_no, report, wafid_status,
		 unfit_com, registration_date, slip_file_submit, sender,
		 slip_payment_receive, commission, slip_payment_send, profit_margin,
		 code, remark)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		p.PassengerName, p.Passport, p.RegistrationNo, p.Report, p.WafidStatus,
		p.UnfitCom, p.RegistrationDate, p.SlipFileSubmit, p.Sender,
		p.SlipPaymentReceive, p.Commission, p.SlipPaymentSend, p.ProfitMargin,
		p.Code, p.Remark)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicatePassport
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)

	const qSelect = "SELECT " + passengerColumns + " FROM passengers WHERE id = ?"
	return scanPassenger(r.db.QueryRowContext(ctx, qSelect, p.ID), p)
}

// GetByID fetches a single passenger, returning ErrPassengerNotFound when
// the id does not exist.
func (r *PassengerRepo) GetByID(ctx context.Context, id uint64) (*model.Passenger, error) {
	const q = "SELECT " + passengerColumns + " FROM passengers WHERE id = ?"
	var p model.Passenger
	if err := scanPassenger(r.db.QueryRowContext(ctx, q, id), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPassengerNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns every passenger, newest first.
func (r *PassengerRepo) List(ctx context.Context) ([]*model.Passenger, error) {
	const q = "SELECT " + passengerColumns + " FROM passengers ORDER BY created_at DESC, id DESC"
	return r.queryMany(ctx, q)
}

// Search performs a case-insensitive substring match across passenger name,
// passport, registration number and code, mirroring the list search box.
func (r *PassengerRepo) Search(ctx context.Context, query string) ([]*model.Passenger, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	const q = "SELECT " + passengerColumns + ` FROM passengers
		WHERE LOWER(passenger_name) LIKE ?
		   OR LOWER(passport) LIKE ?
		   OR LOWER(registration_no) LIKE ?
		   OR LOWER(code) LIKE ?
		ORDER BY created_at DESC, id DESC`
	return r.queryMany(ctx, q, like, like, like, like)
}

func (r *PassengerRepo) queryMany(ctx context.Context, q string, args ...any) ([]*model.Passenger, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Passenger{}
	for rows.Next() {
		p := new(model.Passenger)
		if err := scanPassenger(rows, p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites every business column of an existing record and bumps
// updated_at. The identifier and created_at are never touched. Returns
// ErrPassengerNotFound when the id does not exist and ErrDuplicatePassport
// when the new passport collides with another record.
func (r *PassengerRepo) Update(ctx context.Context, p *model.Passenger) error {
	const q = `UPDATE passengers SET
		passenger_name=?, passport=?, registration_no=?, report=?, wafid_status=?,
		unfit_com=?, registration_date=?, slip_file_submit=?, sender=?,
		slip_payment_receive=?, commission=?, slip_payment_send=?, profit_margin=?,
		code=?, remark=?, updated_at=NOW()
		WHERE id=?`
	res, err := r.db.ExecContext(ctx, q,
		p.PassengerName, p.Passport, p.RegistrationNo, p.Report, p.WafidStatus,
		p.UnfitCom, p.RegistrationDate, p.SlipFileSubmit, p.Sender,
		p.SlipPaymentReceive, p.Commission, p.SlipPaymentSend, p.ProfitMargin,
		p.Code, p.Remark, p.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicatePassport
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Zero affected rows is ambiguous (identical values also count), so
		// confirm the row exists before reporting not found.
		var exists uint64
		if scanErr := r.db.QueryRowContext(ctx, "SELECT id FROM passengers WHERE id=?", p.ID).Scan(&exists); scanErr != nil {
			if errors.Is(scanErr, sql.ErrNoRows) {
				return ErrPassengerNotFound
			}
			return scanErr
		}
	}

	const qSelect = "SELECT " + passengerColumns + " FROM passengers WHERE id = ?"
	return scanPassenger(r.db.QueryRowContext(ctx, qSelect, p.ID), p)
}

// Delete removes a passenger permanently. There is no soft delete.
func (r *PassengerRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM passengers WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPassengerNotFound
	}
	return nil
}
