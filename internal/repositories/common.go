// Package repositories holds the MySQL access code. Each repository wraps a
// DBTX so services can run several of them inside one transaction; a zero
// repository falls back to the shared pool in config.DB.
package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "busadmin/internal/config"
	intdb "busadmin/internal/db"
	"busadmin/internal/domain"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func pick(db intdb.DBTX) intdb.DBTX {
	if db != nil {
		return db
	}
	return intconfig.DB
}

// mapWriteError turns driver errors on INSERT/UPDATE/DELETE into domain errors.
func mapWriteError(resource string, err error) error {
	switch {
	case err == nil:
		return nil
	case intdb.IsMySQLError(err, intdb.ErrDupEntry):
		return domain.ConflictError{Resource: resource, Msg: "already exists", Err: err}
	case intdb.IsMySQLError(err, intdb.ErrRowIsReferenced):
		return domain.ConflictError{Resource: resource, Msg: "still referenced by other records", Err: err}
	case intdb.IsMySQLError(err, intdb.ErrNoReferencedRow):
		return domain.ValidationError{Field: resource, Msg: "references a record that does not exist", Err: err}
	}
	return err
}

// mapReadError turns sql.ErrNoRows into a NotFoundError.
func mapReadError(resource string, id int64, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, ID: id, Err: err}
	}
	return err
}

// affectedOrNotFound reports NotFound when an UPDATE/DELETE touched no row.
func affectedOrNotFound(res sql.Result, resource string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: resource, ID: id}
	}
	return nil
}

// likePattern escapes LIKE wildcards in a user search term.
func likePattern(term string) string {
	term = strings.TrimSpace(term)
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

// whereClause accumulates AND-ed conditions and their args.
type whereClause struct {
	conds []string
	args  []any
}

func (w *whereClause) add(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w whereClause) String() string {
	if len(w.conds) == 0 {
		return "1=1"
	}
	return strings.Join(w.conds, " AND ")
}
