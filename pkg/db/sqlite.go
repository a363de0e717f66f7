package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/yumyai/scagaire/logger"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE species_genes (
		species      TEXT NOT NULL,
		gene         TEXT NOT NULL,
		occurrences  INTEGER NOT NULL,
		source       TEXT NOT NULL DEFAULT '',
		amr_database TEXT NOT NULL DEFAULT '',
		method       TEXT NOT NULL DEFAULT '',
		date         TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX idx_species_genes_species ON species_genes (species, amr_database);
`

// SQLiteReference serves the species reference from an indexed SQLite file,
// for references too large to load on every run.
type SQLiteReference struct {
	Path string
	db   *sql.DB
}

// ImportReference writes every entry of ref into a new SQLite file at path,
// replacing any previous species_genes table.
func ImportReference(ctx context.Context, path string, ref *SpeciesReference) error {

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS species_genes`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	stm, err := tx.PrepareContext(ctx, `
		INSERT INTO species_genes (species, gene, occurrences, source, amr_database, method, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stm.Close()

	entries := ref.All()
	for _, e := range entries {
		if _, err := stm.ExecContext(ctx, e.Species, e.Gene, e.Occurrences, e.Source, e.Database, e.Method, e.Date); err != nil {
			return fmt.Errorf("insert %s/%s: %w", e.Species, e.Gene, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	logger.Info("Indexed species reference", zap.String("path", path), zap.Int("entries", len(entries)))
	return nil
}

// OpenSQLite opens an index built by ImportReference. A missing file is an
// error, never an empty new database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteReference, error) {

	if _, err := os.Stat(path); err != nil {
		return nil, &DataError{Path: path, Msg: "cannot open", Err: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &DataError{Path: path, Msg: "cannot open", Err: err}
	}
	db.SetMaxOpenConns(1)

	var n int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM species_genes`).Scan(&n)
	if err != nil {
		db.Close()
		return nil, &DataError{Path: path, Msg: "not a species reference index", Err: err}
	}
	if n == 0 {
		db.Close()
		return nil, &DataError{Path: path, Msg: "no usable rows", Err: ErrEmptyReference}
	}

	return &SQLiteReference{Path: path, db: db}, nil
}

func (s *SQLiteReference) Close() error {
	return s.db.Close()
}

func (s *SQLiteReference) GenesFor(species, database string) (map[string]int, error) {

	ctx := context.TODO()

	stm, err := s.db.PrepareContext(ctx, `
		SELECT gene, MAX(occurrences)
		FROM species_genes
		WHERE species = ? AND (? = '' OR amr_database = ?)
		GROUP BY gene`)
	if err != nil {
		return nil, err
	}
	defer stm.Close()

	rows, err := stm.QueryContext(ctx, species, database, database)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genes := make(map[string]int)
	for rows.Next() {
		var gene string
		var n int
		if err := rows.Scan(&gene, &n); err != nil {
			return nil, fmt.Errorf("scan gene row: %w", err)
		}
		genes[gene] = n
	}
	return genes, rows.Err()
}

func (s *SQLiteReference) ListSpecies() ([]string, error) {
	return s.distinct(`SELECT DISTINCT species FROM species_genes ORDER BY species`)
}

func (s *SQLiteReference) ListDatabases() ([]string, error) {
	return s.distinct(`SELECT DISTINCT amr_database FROM species_genes WHERE amr_database <> '' ORDER BY amr_database`)
}

func (s *SQLiteReference) distinct(query string) ([]string, error) {

	rows, err := s.db.QueryContext(context.TODO(), query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
