package domain

import (
	"database/sql"
	"encoding/json"
	"time"
)

// RowScanner is satisfied by *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...interface{}) error
}

type dbCustomer struct {
	ID              int64
	PrimaryEmail    sql.NullString
	PrimaryPhone    sql.NullString
	FirstName       sql.NullString
	LastName        sql.NullString
	Company         sql.NullString
	IsVIP           bool
	CreditRiskLevel sql.NullString
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CustomerColumns is the select list every customer scan expects, in order.
const CustomerColumns = `id, primary_email, primary_phone, first_name, last_name, company, is_vip, credit_risk_level, created_at, updated_at`

// ScanCustomer scans a customer row from the database
func ScanCustomer(scanner RowScanner) (*Customer, error) {
	var dbc dbCustomer
	if err := scanner.Scan(
		&dbc.ID,
		&dbc.PrimaryEmail,
		&dbc.PrimaryPhone,
		&dbc.FirstName,
		&dbc.LastName,
		&dbc.Company,
		&dbc.IsVIP,
		&dbc.CreditRiskLevel,
		&dbc.CreatedAt,
		&dbc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &Customer{
		ID:              dbc.ID,
		PrimaryEmail:    &NullableString{String: dbc.PrimaryEmail.String, IsNull: !dbc.PrimaryEmail.Valid},
		PrimaryPhone:    &NullableString{String: dbc.PrimaryPhone.String, IsNull: !dbc.PrimaryPhone.Valid},
		FirstName:       &NullableString{String: dbc.FirstName.String, IsNull: !dbc.FirstName.Valid},
		LastName:        &NullableString{String: dbc.LastName.String, IsNull: !dbc.LastName.Valid},
		Company:         &NullableString{String: dbc.Company.String, IsNull: !dbc.Company.Valid},
		IsVIP:           dbc.IsVIP,
		CreditRiskLevel: &NullableString{String: dbc.CreditRiskLevel.String, IsNull: !dbc.CreditRiskLevel.Valid},
		CreatedAt:       dbc.CreatedAt,
		UpdatedAt:       dbc.UpdatedAt,
	}, nil
}

// ScanRankedCustomer scans a customer row followed by a score column.
func ScanRankedCustomer(scanner RowScanner) (*RankedCustomer, error) {
	var dbc dbCustomer
	var score float64
	if err := scanner.Scan(
		&dbc.ID,
		&dbc.PrimaryEmail,
		&dbc.PrimaryPhone,
		&dbc.FirstName,
		&dbc.LastName,
		&dbc.Company,
		&dbc.IsVIP,
		&dbc.CreditRiskLevel,
		&dbc.CreatedAt,
		&dbc.UpdatedAt,
		&score,
	); err != nil {
		return nil, err
	}

	return &RankedCustomer{
		Customer: Customer{
			ID:              dbc.ID,
			PrimaryEmail:    &NullableString{String: dbc.PrimaryEmail.String, IsNull: !dbc.PrimaryEmail.Valid},
			PrimaryPhone:    &NullableString{String: dbc.PrimaryPhone.String, IsNull: !dbc.PrimaryPhone.Valid},
			FirstName:       &NullableString{String: dbc.FirstName.String, IsNull: !dbc.FirstName.Valid},
			LastName:        &NullableString{String: dbc.LastName.String, IsNull: !dbc.LastName.Valid},
			Company:         &NullableString{String: dbc.Company.String, IsNull: !dbc.Company.Valid},
			IsVIP:           dbc.IsVIP,
			CreditRiskLevel: &NullableString{String: dbc.CreditRiskLevel.String, IsNull: !dbc.CreditRiskLevel.Valid},
			CreatedAt:       dbc.CreatedAt,
			UpdatedAt:       dbc.UpdatedAt,
		},
		Score: score,
	}, nil
}

type dbIdentity struct {
	ID         string
	CustomerID int64
	Provider   string
	ExternalID sql.NullString
	Email      sql.NullString
	Phone      sql.NullString
	Metadata   []byte
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IdentityColumns is the select list every identity scan expects, in order.
const IdentityColumns = `id, customer_id, provider, external_id, email, phone, metadata, created_at, updated_at`

// ScanCustomerIdentity scans an identity row from the database
func ScanCustomerIdentity(scanner RowScanner) (*CustomerIdentity, error) {
	var dbi dbIdentity
	if err := scanner.Scan(
		&dbi.ID,
		&dbi.CustomerID,
		&dbi.Provider,
		&dbi.ExternalID,
		&dbi.Email,
		&dbi.Phone,
		&dbi.Metadata,
		&dbi.CreatedAt,
		&dbi.UpdatedAt,
	); err != nil {
		return nil, err
	}

	identity := &CustomerIdentity{
		ID:         dbi.ID,
		CustomerID: dbi.CustomerID,
		Provider:   Provider(dbi.Provider),
		ExternalID: &NullableString{String: dbi.ExternalID.String, IsNull: !dbi.ExternalID.Valid},
		Email:      &NullableString{String: dbi.Email.String, IsNull: !dbi.Email.Valid},
		Phone:      &NullableString{String: dbi.Phone.String, IsNull: !dbi.Phone.Valid},
		CreatedAt:  dbi.CreatedAt,
		UpdatedAt:  dbi.UpdatedAt,
	}

	if len(dbi.Metadata) > 0 {
		if err := json.Unmarshal(dbi.Metadata, &identity.Metadata); err != nil {
			return nil, err
		}
	}

	return identity, nil
}

// ScanSyncCursor scans a cursor row from the database
func ScanSyncCursor(scanner RowScanner) (*SyncCursor, error) {
	var (
		cursor        SyncCursor
		cursorValue   []byte
		lastSuccessAt sql.NullTime
		lastError     sql.NullString
	)
	if err := scanner.Scan(
		&cursor.SourceType,
		&cursorValue,
		&lastSuccessAt,
		&lastError,
		&cursor.ItemsSynced,
		&cursor.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(cursorValue) > 0 {
		cursor.CursorValue = json.RawMessage(cursorValue)
	}
	cursor.LastSuccessAt = &NullableTime{Time: lastSuccessAt.Time, IsNull: !lastSuccessAt.Valid}
	cursor.LastError = &NullableString{String: lastError.String, IsNull: !lastError.Valid}

	return &cursor, nil
}
