package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/deppfellow/maska/internal/model"
	"github.com/deppfellow/maska/internal/sqlerr"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const memberColumns = "id, first_name, last_name, cin, nationality, accession_date, licence_expiry_date, membership_number"

var memberColumnNames = []string{
	"id", "first_name", "last_name", "cin", "nationality",
	"accession_date", "licence_expiry_date", "membership_number",
}

func newMockMembers(t *testing.T) (*PostgresGateway[model.Member], pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	g, err := NewPostgresGateway(mock, MemberTable())
	require.NoError(t, err)
	return g, mock
}

func memberRow(rows *pgxmock.Rows, id int64, m model.Member) *pgxmock.Rows {
	return rows.AddRow(id, m.FirstName, m.LastName, m.CIN, m.Nationality,
		m.AccessionDate, m.LicenceExpiryDate, m.MembershipNumber)
}

func TestPostgresGateway_Statements(t *testing.T) {
	g, _ := newMockMembers(t)

	assert.Equal(t,
		"INSERT INTO members (first_name, last_name, cin, nationality, accession_date, licence_expiry_date, membership_number) "+
			"VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING "+memberColumns,
		g.insertSQL)
	assert.Equal(t,
		"UPDATE members SET first_name = $2, last_name = $3, cin = $4, nationality = $5, accession_date = $6, "+
			"licence_expiry_date = $7, membership_number = $8 WHERE id = $1 RETURNING "+memberColumns,
		g.updateSQL)
	assert.Equal(t, "DELETE FROM members WHERE id = $1 RETURNING "+memberColumns, g.deleteSQL)
	assert.Equal(t, "SELECT "+memberColumns+" FROM members WHERE id = $1", g.selectByIDSQL)
	assert.Equal(t, "SELECT "+memberColumns+" FROM members ORDER BY id", g.selectAllSQL)
}

func TestPostgresGateway_Save(t *testing.T) {
	g, mock := newMockMembers(t)
	m := member("PA123456", 889939)

	mock.ExpectQuery(regexp.QuoteMeta(g.insertSQL)).
		WithArgs("John", "Doe", "PA123456", "American", pgxmock.AnyArg(), pgxmock.AnyArg(), int32(889939)).
		WillReturnRows(memberRow(pgxmock.NewRows(memberColumnNames), 1, m))

	saved, err := g.Save(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
	assert.Equal(t, "PA123456", saved.CIN)
	assert.Equal(t, m.AccessionDate, saved.AccessionDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGateway_SaveUniqueViolation(t *testing.T) {
	g, mock := newMockMembers(t)

	mock.ExpectQuery(regexp.QuoteMeta(g.insertSQL)).
		WillReturnError(&pgconn.PgError{
			Code:           "23505",
			TableName:      "members",
			ConstraintName: "members_cin_key",
		})

	_, err := g.Save(context.Background(), member("PA123456", 889939))
	require.Error(t, err)
	assert.Equal(t, sqlerr.UniqueViolation, sqlerr.ErrCode(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGateway_SaveWithIDUpdates(t *testing.T) {
	g, mock := newMockMembers(t)
	m := member("PA123456", 889939)
	m.ID = 4

	mock.ExpectQuery(regexp.QuoteMeta(g.updateSQL)).
		WithArgs(int64(4), "John", "Doe", "PA123456", "American", pgxmock.AnyArg(), pgxmock.AnyArg(), int32(889939)).
		WillReturnRows(memberRow(pgxmock.NewRows(memberColumnNames), 4, m))

	saved, err := g.Save(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, int64(4), saved.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGateway_UpdateMissing(t *testing.T) {
	g, mock := newMockMembers(t)
	m := member("PA123456", 889939)
	m.ID = 99

	mock.ExpectQuery(regexp.QuoteMeta(g.updateSQL)).
		WillReturnRows(pgxmock.NewRows(memberColumnNames))

	_, err := g.Update(context.Background(), m)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), sqlerr.TablePrefix+"members")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGateway_Delete(t *testing.T) {
	g, mock := newMockMembers(t)
	m := member("PA123456", 889939)
	m.ID = 2

	mock.ExpectQuery(regexp.QuoteMeta(g.deleteSQL)).
		WithArgs(int64(2)).
		WillReturnRows(memberRow(pgxmock.NewRows(memberColumnNames), 2, m))

	deleted, err := g.Delete(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGateway_FindByID(t *testing.T) {
	g, mock := newMockMembers(t)
	m := member("PA123456", 889939)

	mock.ExpectQuery(regexp.QuoteMeta(g.selectByIDSQL)).
		WithArgs(int64(1)).
		WillReturnRows(memberRow(pgxmock.NewRows(memberColumnNames), 1, m))
	mock.ExpectQuery(regexp.QuoteMeta(g.selectByIDSQL)).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows(memberColumnNames))

	found, ok, err := g.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "PA123456", found.CIN)

	_, ok, err = g.FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGateway_FindAll(t *testing.T) {
	g, mock := newMockMembers(t)

	rows := pgxmock.NewRows(memberColumnNames)
	memberRow(rows, 1, member("PA123456", 889939))
	memberRow(rows, 2, member("PA123457", 889940))
	mock.ExpectQuery(regexp.QuoteMeta(g.selectAllSQL)).WillReturnRows(rows)

	all, err := g.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(1), all[0].ID)
	assert.Equal(t, "PA123457", all[1].CIN)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGateway_FindAllError(t *testing.T) {
	g, mock := newMockMembers(t)

	mock.ExpectQuery(regexp.QuoteMeta(g.selectAllSQL)).WillReturnError(errors.New("connection reset"))

	_, err := g.FindAll(context.Background())
	assert.ErrorContains(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGateway_VerifySchema(t *testing.T) {
	g, mock := newMockMembers(t)

	columns := pgxmock.NewRows([]string{"column_name"})
	for _, name := range memberColumnNames {
		columns.AddRow(name)
	}
	mock.ExpectQuery("information_schema.columns").WithArgs("members").WillReturnRows(columns)

	require.NoError(t, g.VerifySchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGateway_VerifySchemaMissingColumn(t *testing.T) {
	g, mock := newMockMembers(t)

	columns := pgxmock.NewRows([]string{"column_name"})
	for _, name := range memberColumnNames[:7] {
		columns.AddRow(name)
	}
	mock.ExpectQuery("information_schema.columns").WithArgs("members").WillReturnRows(columns)

	err := g.VerifySchema(context.Background())
	assert.ErrorContains(t, err, "membership_number")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGateway_VerifySchemaMissingTable(t *testing.T) {
	g, mock := newMockMembers(t)

	mock.ExpectQuery("information_schema.columns").
		WithArgs("members").
		WillReturnRows(pgxmock.NewRows([]string{"column_name"}))

	err := g.VerifySchema(context.Background())
	assert.ErrorContains(t, err, "does not exist")
}
