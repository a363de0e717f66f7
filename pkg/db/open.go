package db

import (
	"context"

	"github.com/yumyai/scagaire/internal/util"
)

// Open loads the reference at path, from an SQLite index when the extension
// says so and from a TSV otherwise.
func Open(ctx context.Context, path string) (Store, error) {
	if util.IsSQLitePath(path) {
		idx, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		return idx, nil
	}

	ref, err := Load(path)
	if err != nil {
		return nil, err
	}
	return ref, nil
}
