package repository

import (
	"database/sql"
	"database/sql/driver"
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// passThroughConverter lets slice arguments reach the mock untouched, as the pgx driver accepts them
type passThroughConverter struct{}

func (passThroughConverter) ConvertValue(v interface{}) (driver.Value, error) {
	return v, nil
}

// stringsArg matches a []string argument
type stringsArg []string

func (a stringsArg) Match(v driver.Value) bool {
	got, ok := v.([]string)
	return ok && reflect.DeepEqual([]string(a), got)
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	return newMockWithMatcher(t, sqlmock.QueryMatcherEqual)
}

func newRegexpMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	return newMockWithMatcher(t, sqlmock.QueryMatcherRegexp)
}

func newMockWithMatcher(t *testing.T, matcher sqlmock.QueryMatcher) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	database, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(matcher),
		sqlmock.ValueConverterOption(passThroughConverter{}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, mock
}
