package postgres_test

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var errStop = errors.New("consulta detenida en test")

// recordingQuerier registra cada SQL con sus argumentos. QueryRow responde count a los
// COUNT(*) y pgx.ErrNoRows al resto; Query y Exec se cortan con errStop.
type recordingQuerier struct {
	count int
	sqls  []string
	args  [][]any
}

func (q *recordingQuerier) record(sql string, args []any) {
	q.sqls = append(q.sqls, sql)
	q.args = append(q.args, args)
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.record(sql, args)
	return pgconn.CommandTag{}, errStop
}

func (q *recordingQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.record(sql, args)
	return nil, errStop
}

func (q *recordingQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.record(sql, args)
	return countRow{n: q.count}
}

type countRow struct{ n int }

func (r countRow) Scan(dest ...any) error {
	if len(dest) == 1 {
		if p, ok := dest[0].(*int); ok {
			*p = r.n
			return nil
		}
	}
	return pgx.ErrNoRows
}
