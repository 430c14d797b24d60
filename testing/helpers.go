package testing

import (
	"context"
	"fmt"
)

// WithRefreshDatabase drops every table before each test.
type WithRefreshDatabase struct {
	TestCase
}

func (w *WithRefreshDatabase) SetupTest() {
	w.EnableRefreshDatabase()
	w.TestCase.SetupTest()
}

type DatabaseHelper struct {
	tc *TestCase
}

func NewDatabaseHelper(tc *TestCase) *DatabaseHelper {
	return &DatabaseHelper{tc: tc}
}

func (d *DatabaseHelper) AssertTableExists(table string) {
	exists, err := d.tc.Schema.HasTable(context.Background(), table)
	d.tc.Require().NoError(err)
	d.tc.True(exists, "Expected table %s to exist", table)
}

func (d *DatabaseHelper) AssertTableMissing(table string) {
	exists, err := d.tc.Schema.HasTable(context.Background(), table)
	d.tc.Require().NoError(err)
	d.tc.False(exists, "Expected table %s to be missing", table)
}

func (d *DatabaseHelper) AssertDatabaseCount(table string, expectedCount int) {
	quoted, err := d.tc.Schema.QuoteIdentifier(table)
	d.tc.Require().NoError(err)
	rows, err := d.tc.Adapter.Query(context.Background(), fmt.Sprintf("SELECT COUNT(*) AS total FROM %s", quoted))
	d.tc.Require().NoError(err)
	d.tc.Require().Len(rows, 1)
	d.tc.Equal(fmt.Sprintf("%d", expectedCount), fmt.Sprintf("%v", rows[0]["total"]),
		"Expected %d records in table %s", expectedCount, table)
}
