package web

import (
	"github.com/oarkflow/dossier"
)

type Query struct {
	Query string `json:"q" query:"q"`
	Field string `json:"f" query:"f"`
	TopN  int    `json:"n" query:"n"`
}

type ExportRequest struct {
	Format string `json:"format" query:"format"`
}

// DatabaseRequest declares a SQL table to index as a dataset, the
// connection and the index shape in one flat body.
type DatabaseRequest struct {
	TableName      string   `json:"table_name"`
	Database       string   `json:"database"`
	Query          string   `json:"query"`
	Driver         string   `json:"driver"`
	Password       string   `json:"password"`
	Host           string   `json:"host"`
	SslMode        string   `json:"ssl_mode"`
	Username       string   `json:"username"`
	TextFields     []string `json:"text_fields"`
	UniqueKeyField string   `json:"unique_key_field"`
	Port           int      `json:"port"`
	ShingleSize    int      `json:"shingle_size"`
}

func (r DatabaseRequest) database() dossier.Database {
	return dossier.Database{
		Host:     r.Host,
		Port:     r.Port,
		Driver:   r.Driver,
		Username: r.Username,
		Password: r.Password,
		Database: r.Database,
		SslMode:  r.SslMode,
		Table:    r.TableName,
		Query:    r.Query,
	}
}

func (r DatabaseRequest) options() dossier.Options {
	return dossier.Options{
		TextFields:     r.TextFields,
		UniqueKeyField: r.UniqueKeyField,
		ShingleSize:    r.ShingleSize,
	}
}
