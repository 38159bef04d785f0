package export

import (
	"context"
	"database/sql"
	"regexp"
	"strings"

	"github.com/524D/mzidtool/internal/mzidentml"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// column types of the SQLite table, same order as columns
var columnTypes = []string{
	"TEXT", "TEXT", "TEXT", "TEXT", "TEXT", "INTEGER", "REAL",
	"TEXT", "TEXT", "REAL", "TEXT", "INTEGER", "INTEGER", "REAL", "REAL",
	"INTEGER", "INTEGER", "INTEGER", "INTEGER", "REAL", "REAL",
	"REAL", "REAL", "INTEGER",
}

// SQLite inserts identifications into a table. All rows are written in a
// single transaction that is committed by Close.
type SQLite struct {
	ctx  context.Context
	db   *sql.DB
	tx   *sql.Tx
	stmt *sql.Stmt
}

// NewSQLite opens (or creates) the database at path and creates the table
// if it doesn't exist.
func NewSQLite(ctx context.Context, path, table string) (*SQLite, error) {
	if !tableName.MatchString(table) {
		return nil, errors.Errorf("export: invalid table name %q", table)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = c + " " + columnTypes[i]
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+table+` (`+strings.Join(defs, ", ")+`)`); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "create table %s", table)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "begin transaction")
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+table+` (`+strings.Join(columns, ", ")+`) VALUES (`+marks+`)`)
	if err != nil {
		_ = tx.Rollback()
		db.Close()
		return nil, errors.Wrap(err, "prepare insert")
	}
	return &SQLite{ctx: ctx, db: db, tx: tx, stmt: stmt}, nil
}

func (s *SQLite) Write(source string, id mzidentml.Identification) error {
	_, err := s.stmt.ExecContext(s.ctx, values(source, id)...)
	return errors.Wrapf(err, "insert %s", id.SpecItemID)
}

// Close commits the transaction and closes the database
func (s *SQLite) Close() (retErr error) {
	defer func() {
		if err := s.db.Close(); retErr == nil {
			retErr = err
		}
	}()
	if err := s.stmt.Close(); err != nil {
		_ = s.tx.Rollback()
		return err
	}
	return errors.Wrap(s.tx.Commit(), "commit")
}
