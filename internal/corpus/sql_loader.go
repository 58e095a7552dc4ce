package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	// Registers the "sqlite3" database/sql driver, the same way the
	// teacher's demo-database tooling pulls in a file-based driver
	// alongside its primary Postgres path (see DESIGN.md).
	_ "github.com/mattn/go-sqlite3"

	"github.com/jackc/pgx/v5"
)

// SQLRow is a single (doc, sent, tk, token_json) row as stored by the SQL
// corpus source: each token's sentence/document grouping is reconstructed
// from its (doc, sent, tk) coordinates rather than from nesting, since SQL
// has no native notion of the corpus's nested document/sentence/token
// shape.
type SQLRow struct {
	Doc       int
	Sent      int
	Tok       int
	TokenJSON string
}

// LoadFromSQLiteFile opens a local sqlite3 database at path and loads its
// `tokens(doc, sent, tk, token_json)` table into the §3 RawDocument shape,
// the common case for a self-contained demo corpus (spec.md §1 keeps
// loaders out of the core; this is one of the two concrete sources the
// domain stack provides per SPEC_FULL.md).
func LoadFromSQLiteFile(ctx context.Context, path string) ([]RawDocument, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite corpus %q: %w", path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT doc, sent, tk, token_json FROM tokens ORDER BY doc, sent, tk`)
	if err != nil {
		return nil, fmt.Errorf("querying sqlite corpus: %w", err)
	}
	defer rows.Close()

	return scanTokenRows(rows)
}

// LoadFromPostgres connects to dsn with pgx and loads the same
// `tokens(doc, sent, tk, token_json)` table from a shared Postgres corpus
// store, grounded on the teacher's direct `pgx.Connect` usage in
// `internal/cli/commands/db.go` (the teacher's ORM path goes through
// database/sql + lib/pq instead; this loader uses pgx directly since it
// needs no transaction/migration machinery, only a read).
func LoadFromPostgres(ctx context.Context, dsn string) ([]RawDocument, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres corpus: %w", err)
	}
	defer conn.Close(ctx)

	pgxRows, err := conn.Query(ctx, `SELECT doc, sent, tk, token_json FROM tokens ORDER BY doc, sent, tk`)
	if err != nil {
		return nil, fmt.Errorf("querying postgres corpus: %w", err)
	}
	defer pgxRows.Close()

	var out []RawDocument
	for pgxRows.Next() {
		var r SQLRow
		if err := pgxRows.Scan(&r.Doc, &r.Sent, &r.Tok, &r.TokenJSON); err != nil {
			return nil, fmt.Errorf("scanning postgres corpus row: %w", err)
		}
		if err := appendRow(&out, r); err != nil {
			return nil, err
		}
	}
	if err := pgxRows.Err(); err != nil {
		return nil, fmt.Errorf("reading postgres corpus: %w", err)
	}
	return out, nil
}

// scannableRows is the subset of *sql.Rows the sqlite path needs, kept
// small so it can be exercised with a sqlmock-backed *sql.Rows in tests.
type scannableRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanTokenRows(rows scannableRows) ([]RawDocument, error) {
	var out []RawDocument
	for rows.Next() {
		var r SQLRow
		if err := rows.Scan(&r.Doc, &r.Sent, &r.Tok, &r.TokenJSON); err != nil {
			return nil, fmt.Errorf("scanning sqlite corpus row: %w", err)
		}
		if err := appendRow(&out, r); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading sqlite corpus: %w", err)
	}
	return out, nil
}

// appendRow grows docs/sentences on demand as (doc, sent, tk) coordinates
// are scanned in order, decoding each row's token_json into the raw token
// shape Normalize accepts (spec.md §4.A).
func appendRow(docs *[]RawDocument, r SQLRow) error {
	for len(*docs) <= r.Doc {
		*docs = append(*docs, RawDocument{})
	}
	doc := (*docs)[r.Doc]
	for len(doc) <= r.Sent {
		doc = append(doc, RawSentence{})
	}

	var tok interface{}
	if err := json.Unmarshal([]byte(r.TokenJSON), &tok); err != nil {
		return fmt.Errorf("decoding token_json at (%d,%d,%d): %w", r.Doc, r.Sent, r.Tok, err)
	}

	sent := doc[r.Sent]
	for len(sent) <= r.Tok {
		sent = append(sent, nil)
	}
	sent[r.Tok] = tok
	doc[r.Sent] = sent
	(*docs)[r.Doc] = doc
	return nil
}
