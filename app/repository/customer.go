package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/anseninnov/conference-registration/app/entity"
)

// Columns the admin listing may sort by. Anything else falls back to id
// so user input never reaches the ORDER BY clause verbatim.
var customerSortColumns = map[string]string{
	"id":          "id",
	"first_name":  "first_name",
	"last_name":   "last_name",
	"email":       "email",
	"affiliation": "affiliation",
	"position":    "position",
	"type":        "type",
	"status":      "status",
	"create_date": "create_date",
}

type CustomerFilter struct {
	Search    string
	SortBy    string
	SortOrder string
	Limit     int32
	Offset    int32
}

type CustomerRepository struct {
	db DBTX
}

func NewCustomerRepository(db DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerColumns = `
	id, title, other_title, first_name, middle_name, last_name, email, phone,
	affiliation, position, type, paper_number, have_visa, dietary_requirements,
	other_explain, status, attendee_name,
	line1, line2, city, state, postal_code, country, create_date
`

func (r *CustomerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customer_info (
			title, other_title, first_name, middle_name, last_name, email, phone,
			affiliation, position, type, paper_number, have_visa, dietary_requirements,
			other_explain, status, create_date
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		nullableStringValue(customer.Title),
		nullableStringValue(customer.OtherTitle),
		customer.FirstName,
		nullableStringValue(customer.MiddleName),
		customer.LastName,
		customer.Email,
		nullableStringValue(customer.Phone),
		customer.Affiliation,
		nullableStringValue(customer.Position),
		customer.Type,
		nullableStringValue(customer.PaperNumber),
		nullableInt32Value(customer.HaveVisa),
		customer.DietaryRequirements,
		nullableStringValue(customer.OtherExplain),
		customer.Status,
		customer.CreateDate,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	customer.ID = uint64(id)
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uint64) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customer_info WHERE id = ?`

	customer := &entity.Customer{}
	if err := scanCustomer(r.db.QueryRowContext(ctx, query, id), customer); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return customer, nil
}

// MarkPaid performs the one-way unpaid-to-paid transition, copying the
// billing address captured at checkout. The status guard in the WHERE
// clause means an already-paid row is never rewritten; the bool reports
// whether this call performed the transition.
func (r *CustomerRepository) MarkPaid(ctx context.Context, id uint64, address entity.BillingAddress, attendeeName string) (bool, error) {
	query := `
		UPDATE customer_info SET
			status = 1,
			line1 = ?,
			line2 = ?,
			city = ?,
			state = ?,
			postal_code = ?,
			country = ?,
			attendee_name = ?
		WHERE id = ? AND status = 0
	`

	result, err := r.db.ExecContext(ctx, query,
		nullableStringValue(address.Line1),
		nullableStringValue(address.Line2),
		nullableStringValue(address.City),
		nullableStringValue(address.State),
		nullableStringValue(address.PostalCode),
		nullableStringValue(address.Country),
		attendeeName,
		id,
	)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *CustomerRepository) List(ctx context.Context, filter CustomerFilter) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customer_info`

	where, args := customerSearchClause(filter.Search)
	query += where

	column, ok := customerSortColumns[strings.TrimSpace(filter.SortBy)]
	if !ok {
		column = "id"
	}
	direction := "DESC"
	if strings.EqualFold(strings.TrimSpace(filter.SortOrder), "asc") {
		direction = "ASC"
	}
	query += " ORDER BY " + column + " " + direction + " LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]*entity.Customer, 0)
	for rows.Next() {
		item := &entity.Customer{}
		if err := scanCustomer(rows, item); err != nil {
			return nil, err
		}
		customers = append(customers, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return customers, nil
}

func (r *CustomerRepository) Count(ctx context.Context, search string) (int64, error) {
	query := `SELECT COUNT(*) FROM customer_info`
	where, args := customerSearchClause(search)
	query += where

	var total int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// ListAll returns every record ordered by create date descending; used
// by the staff export.
func (r *CustomerRepository) ListAll(ctx context.Context) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customer_info ORDER BY create_date DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]*entity.Customer, 0)
	for rows.Next() {
		item := &entity.Customer{}
		if err := scanCustomer(rows, item); err != nil {
			return nil, err
		}
		customers = append(customers, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return customers, nil
}

func customerSearchClause(search string) (string, []interface{}) {
	search = strings.TrimSpace(search)
	if search == "" {
		return "", nil
	}

	pattern := "%" + search + "%"
	clause := ` WHERE (first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR affiliation LIKE ? OR position LIKE ?)`
	return clause, []interface{}{pattern, pattern, pattern, pattern, pattern}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCustomer(scan rowScanner, customer *entity.Customer) error {
	var title sql.NullString
	var otherTitle sql.NullString
	var middleName sql.NullString
	var phone sql.NullString
	var position sql.NullString
	var paperNumber sql.NullString
	var haveVisa sql.NullInt32
	var otherExplain sql.NullString
	var attendeeName sql.NullString
	var line1, line2, city, state, postalCode, country sql.NullString

	err := scan.Scan(
		&customer.ID,
		&title,
		&otherTitle,
		&customer.FirstName,
		&middleName,
		&customer.LastName,
		&customer.Email,
		&phone,
		&customer.Affiliation,
		&position,
		&customer.Type,
		&paperNumber,
		&haveVisa,
		&customer.DietaryRequirements,
		&otherExplain,
		&customer.Status,
		&attendeeName,
		&line1,
		&line2,
		&city,
		&state,
		&postalCode,
		&country,
		&customer.CreateDate,
	)
	if err != nil {
		return err
	}

	customer.Title = stringPtrFromNull(title)
	customer.OtherTitle = stringPtrFromNull(otherTitle)
	customer.MiddleName = stringPtrFromNull(middleName)
	customer.Phone = stringPtrFromNull(phone)
	customer.Position = stringPtrFromNull(position)
	customer.PaperNumber = stringPtrFromNull(paperNumber)
	customer.HaveVisa = int32PtrFromNull(haveVisa)
	customer.OtherExplain = stringPtrFromNull(otherExplain)
	customer.AttendeeName = stringPtrFromNull(attendeeName)
	customer.Line1 = stringPtrFromNull(line1)
	customer.Line2 = stringPtrFromNull(line2)
	customer.City = stringPtrFromNull(city)
	customer.State = stringPtrFromNull(state)
	customer.PostalCode = stringPtrFromNull(postalCode)
	customer.Country = stringPtrFromNull(country)

	return nil
}
