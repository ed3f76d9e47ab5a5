package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/Masterminds/squirrel"
	"github.com/deppfellow/contacts/internal/logger"
	"github.com/deppfellow/contacts/internal/model"
	"github.com/deppfellow/contacts/internal/outcome"
	"github.com/deppfellow/contacts/internal/sqlerr"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const contactsTable = "contacts"

var contactColumns = []string{"id", "name", "address", "birth_date", "email", "kind"}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// DBTX is the subset of pgx used by repositories.
// Both *pgxpool.Pool and pgxmock.PgxPoolIface satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ContactRepository stores contacts in PostgreSQL.
//
// Every method returns an outcome.Outcome; faults never escape as errors.
type ContactRepository struct {
	db            DBTX
	slowThreshold time.Duration
}

// NewContactRepository returns a repository over db. Calls slower than
// slowThreshold are logged as warnings; zero disables the check.
func NewContactRepository(db DBTX, slowThreshold time.Duration) *ContactRepository {
	return &ContactRepository{db: db, slowThreshold: slowThreshold}
}

type contactRow struct {
	ID        int        `db:"id"`
	Name      string     `db:"name"`
	Address   *string    `db:"address"`
	BirthDate *time.Time `db:"birth_date"`
	Email     *string    `db:"email"`
	Kind      string     `db:"kind"`
}

func (r contactRow) toModel() model.Contact {
	c := model.Contact{
		ID:      r.ID,
		Name:    r.Name,
		Address: r.Address,
		Email:   r.Email,
		Kind:    model.Kind(r.Kind),
	}
	if r.BirthDate != nil {
		d := civil.DateOf(*r.BirthDate)
		c.BirthDate = &d
	}
	return c
}

func birthDateArg(d *civil.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.In(time.UTC)
	return &t
}

func kindArg(k model.Kind) string {
	if k == "" {
		return string(model.DefaultKind)
	}
	return string(k)
}

// Add inserts contact and returns the stored row, id included.
func (r *ContactRepository) Add(ctx context.Context, contact model.Contact) outcome.Outcome {
	defer r.observe(ctx, "add", time.Now())

	query, args, err := psql.Insert(contactsTable).
		Columns("name", "address", "birth_date", "email", "kind").
		Values(contact.Name, contact.Address, birthDateArg(contact.BirthDate), contact.Email, kindArg(contact.Kind)).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return r.fault(ctx, "add", err)
	}

	var row contactRow
	if err := pgxscan.Get(ctx, r.db, &row, query, args...); err != nil {
		return r.fault(ctx, "add", err)
	}

	return outcome.Ok(row.toModel())
}

// GetByID returns the contact with the given id, or NotFound.
func (r *ContactRepository) GetByID(ctx context.Context, id int) outcome.Outcome {
	defer r.observe(ctx, "get_by_id", time.Now())

	query, args, err := psql.Select(contactColumns...).
		From(contactsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return r.fault(ctx, "get_by_id", err)
	}

	var row contactRow
	if err := pgxscan.Get(ctx, r.db, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return contactNotFound(id)
		}
		return r.fault(ctx, "get_by_id", err)
	}

	return outcome.Ok(row.toModel())
}

// GetAll returns every contact ordered by id. An empty table yields an empty slice.
func (r *ContactRepository) GetAll(ctx context.Context) outcome.Outcome {
	defer r.observe(ctx, "get_all", time.Now())

	query, args, err := psql.Select(contactColumns...).
		From(contactsTable).
		OrderBy("id").
		ToSql()
	if err != nil {
		return r.fault(ctx, "get_all", err)
	}

	var rows []contactRow
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return r.fault(ctx, "get_all", err)
	}

	contacts := make([]model.Contact, 0, len(rows))
	for _, row := range rows {
		contacts = append(contacts, row.toModel())
	}

	return outcome.Ok(contacts)
}

// Update overwrites every field but the id of an existing contact.
func (r *ContactRepository) Update(ctx context.Context, id int, data model.Contact) outcome.Outcome {
	if existing := r.GetByID(ctx, id); !isSuccess(existing) {
		return existing
	}

	defer r.observe(ctx, "update", time.Now())

	query, args, err := psql.Update(contactsTable).
		Set("name", data.Name).
		Set("address", data.Address).
		Set("birth_date", birthDateArg(data.BirthDate)).
		Set("email", data.Email).
		Set("kind", kindArg(data.Kind)).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return r.fault(ctx, "update", err)
	}

	var row contactRow
	if err := pgxscan.Get(ctx, r.db, &row, query, args...); err != nil {
		// Deleted between the lookup and the update.
		if pgxscan.NotFound(err) {
			return contactNotFound(id)
		}
		return r.fault(ctx, "update", err)
	}

	return outcome.Ok(row.toModel())
}

// Delete removes an existing contact.
func (r *ContactRepository) Delete(ctx context.Context, id int) outcome.Outcome {
	if existing := r.GetByID(ctx, id); !isSuccess(existing) {
		return existing
	}

	defer r.observe(ctx, "delete", time.Now())

	query, args, err := psql.Delete(contactsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return r.fault(ctx, "delete", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return r.fault(ctx, "delete", err)
	}

	return outcome.Void{}
}

func contactNotFound(id int) outcome.Outcome {
	return outcome.Missing("Contact %d not found", id)
}

func isSuccess(o outcome.Outcome) bool {
	_, ok := o.(outcome.Success[model.Contact])
	return ok
}

func columnList() string {
	return strings.Join(contactColumns, ", ")
}

func (r *ContactRepository) fault(ctx context.Context, operation string, err error) outcome.Outcome {
	err = sqlerr.Wrap(err)

	logger.FromContext(ctx).Error().
		Err(err).
		Str("repository", "contact").
		Str("operation", operation).
		Str("sql_code", string(sqlerr.ErrCode(err))).
		Msg("contact repository fault")

	return outcome.Fault(err)
}

func (r *ContactRepository) observe(ctx context.Context, operation string, start time.Time) {
	if r.slowThreshold <= 0 {
		return
	}
	if elapsed := time.Since(start); elapsed > r.slowThreshold {
		logger.FromContext(ctx).Warn().
			Str("repository", "contact").
			Str("operation", operation).
			Dur("duration", elapsed).
			Msg("slow contact query")
	}
}
