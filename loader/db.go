package loader

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oarkflow/log"
	"github.com/oarkflow/metadata"
	"github.com/oarkflow/squealx"
	"github.com/oarkflow/squealx/dbresolver"

	"github.com/oarkflow/dossier"
)

// ReadDB pulls every row of the configured table or query into records.
// Row order follows the query; field order within a record is sorted,
// since driver rows come back as maps.
func ReadDB(ctx context.Context, name string, db dossier.Database) ([]dossier.Record, error) {
	con := metadata.New(metadata.Config{
		Name:     name,
		Host:     db.Host,
		Port:     db.Port,
		Driver:   db.Driver,
		Username: db.Username,
		Password: db.Password,
		Database: db.Database,
		SslMode:  db.SslMode,
	})
	source, err := con.Connect()
	if err != nil {
		return nil, err
	}
	defer source.Close()
	query := db.Query
	if query == "" {
		if db.Table == "" {
			return nil, fmt.Errorf("dataset %s: database source needs a table or query", name)
		}
		query = fmt.Sprintf("SELECT * FROM %s", db.Table)
	}
	query = strings.TrimSuffix(strings.TrimSpace(query), ";")

	start := time.Now()
	var records []dossier.Record
	if resolver, ok := source.Client().(dbresolver.DBResolver); ok {
		sqDB, err := resolver.UseDefault()
		if err != nil {
			return nil, err
		}
		err = squealx.SelectEach(sqDB, func(row map[string]any) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records = append(records, dossier.FromMap(row))
			return nil
		}, query)
		if err != nil {
			return nil, err
		}
	} else {
		rows, err := source.GetRawCollection(query)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			records = append(records, dossier.FromMap(row))
		}
	}
	log.Info().
		Str("dataset", name).
		Int("rows", len(records)).
		Str("latency", time.Since(start).String()).
		Msg("rows fetched")
	return records, nil
}

// DB returns a dossier.SourceFunc reading each dataset from its
// configured database.
func DB(byName map[string]dossier.Database) dossier.SourceFunc {
	return func(ctx context.Context, name string, _ dossier.DatasetConfig) ([]dossier.Record, error) {
		db, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("no database configured for dataset %s", name)
		}
		return ReadDB(ctx, name, db)
	}
}
