package web

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/oarkflow/filters"
	"github.com/oarkflow/frame"
	"github.com/oarkflow/frame/middlewares/server/cors"
	"github.com/oarkflow/frame/middlewares/server/monitor"
	"github.com/oarkflow/frame/pkg/common/utils"
	"github.com/oarkflow/frame/pkg/protocol/consts"
	"github.com/oarkflow/frame/pkg/route"
	"github.com/oarkflow/frame/server"
	"github.com/oarkflow/json"
	"github.com/oarkflow/log"

	"github.com/oarkflow/dossier"
	"github.com/oarkflow/dossier/cache"
	"github.com/oarkflow/dossier/lib"
	"github.com/oarkflow/dossier/loader"
)

// DefaultTopN is the result count search responses fall back to when the
// caller does not set n.
const DefaultTopN = 3

const (
	responseCacheSize = 512
	responseCacheTTL  = 30 * time.Second
)

// builtInFields are reserved query parameters; anything else becomes an
// equality filter on the hit records.
var builtInFields = []string{"q", "f", "n", "format"}

type DatasetController struct {
	registry  *dossier.Registry
	responses *cache.Cache[int64, []byte]
}

func NewDatasetController(registry *dossier.Registry) *DatasetController {
	responses := cache.New[int64, []byte](responseCacheSize, responseCacheTTL)
	responses.StartSweeper(time.Minute)
	return &DatasetController{registry: registry, responses: responses}
}

func (d *DatasetController) engine(ctx *frame.Context) (*dossier.Engine, bool) {
	name := ctx.Param("dataset")
	eng, ok := d.registry.Get(name)
	if !ok {
		Failed(ctx, consts.StatusBadRequest,
			fmt.Sprintf("unknown dataset %q, available: %s", name, strings.Join(d.registry.Names(), ", ")), nil)
		return nil, false
	}
	return eng, true
}

func (d *DatasetController) Datasets(_ context.Context, ctx *frame.Context) {
	details := utils.H{}
	for _, name := range d.registry.Names() {
		if eng, ok := d.registry.Get(name); ok {
			details[name] = eng.Metadata()
		}
	}
	Success(ctx, consts.StatusOK, details)
}

func (d *DatasetController) Metadata(_ context.Context, ctx *frame.Context) {
	eng, ok := d.engine(ctx)
	if !ok {
		return
	}
	Success(ctx, consts.StatusOK, eng.Metadata())
}

// searchKey is the cache identity of one search request.
type searchKey struct {
	Dataset string            `json:"dataset"`
	Query   string            `json:"q"`
	Field   string            `json:"f"`
	TopN    int               `json:"n"`
	Filters []*filters.Filter `json:"filters,omitempty"`
}

/// SearchResult is the search response payload: ranked hits with their
// scores and positions, the hit count, and the dataset size.
type SearchResult struct {
	Hits  dossier.Hits `json:"hits"`
	Count int          `json:"count"`
	Total int          `json:"total"`
}

func (d *DatasetController) Search(_ context.Context, ctx *frame.Context) {
	eng, ok := d.engine(ctx)
	if !ok {
		return
	}
	var query Query
	if err := ctx.Bind(&query); err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	var extra []*filters.Filter
	var extraMap map[string]any
	if err := ctx.Bind(&extraMap); err == nil {
		for k, v := range extraMap {
			if slices.Contains(builtInFields, k) {
				continue
			}
			extra = append(extra, &filters.Filter{Field: k, Operator: filters.Equal, Value: v})
		}
	}
	if len(extra) == 0 {
		parsed, err := filters.ParseQuery(ctx.QueryArgs().String(), builtInFields...)
		if err != nil {
			Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
			return
		}
		extra = parsed
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Field < extra[j].Field })
	if query.Field == "" {
		Failed(ctx, consts.StatusBadRequest,
			fmt.Sprintf("search field is required, indexed fields: %s", strings.Join(eng.Fields(), ", ")), nil)
		return
	}
	topN := query.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	sum := lib.CRC32Checksum(searchKey{Dataset: eng.Name(), Query: query.Query, Field: query.Field, TopN: topN, Filters: extra})
	if sum != 0 {
		if payload, found := d.responses.Get(sum); found {
			File(ctx, payload, jsonContentType)
			return
		}
	}

	limit := topN
	if len(extra) > 0 {
		limit = eng.Len()
	}
	hits, err := eng.SearchHits(query.Query, query.Field, limit)
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	if len(extra) > 0 {
		conds := make([]filters.Condition, len(extra))
		for i, f := range extra {
			conds[i] = f
		}
		group := &filters.FilterGroup{Operator: filters.AND, Filters: conds}
		kept := hits[:0]
		for _, hit := range hits {
			if filters.MatchGroup(hit.Record.Map(), group) {
				kept = append(kept, hit)
			}
		}
		hits = kept
		if topN < len(hits) {
			hits = hits[:topN]
		}
	}

	result := SearchResult{Hits: hits, Count: len(hits), Total: eng.Len()}
	payload, err := json.Marshal(Response{Code: consts.StatusOK, Data: result, Success: true})
	if err != nil {
		Failed(ctx, consts.StatusInternalServerError, err.Error(), nil)
		return
	}
	if sum != 0 {
		d.responses.Set(sum, payload)
	}
	File(ctx, payload, jsonContentType)
}

func (d *DatasetController) Lookup(_ context.Context, ctx *frame.Context) {
	eng, ok := d.engine(ctx)
	if !ok {
		return
	}
	rec, found, err := eng.Lookup(ctx.Param("key"))
	if err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	if !found {
		Success(ctx, consts.StatusOK, nil, "no record matched")
		return
	}
	Success(ctx, consts.StatusOK, rec)
}

func (d *DatasetController) Export(_ context.Context, ctx *frame.Context) {
	eng, ok := d.engine(ctx)
	if !ok {
		return
	}
	var req ExportRequest
	if err := ctx.Bind(&req); err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	records := eng.Dataset().Records()
	var buf bytes.Buffer
	if req.Format == "msgpack" {
		if err := loader.WriteMsgpack(&buf, records); err != nil {
			Failed(ctx, consts.StatusInternalServerError, err.Error(), nil)
			return
		}
		DownloadBytes(ctx, buf.Bytes(), eng.Name()+".msgpack", "application/x-msgpack")
		return
	}
	if err := loader.WriteRecords(&buf, records); err != nil {
		Failed(ctx, consts.StatusInternalServerError, err.Error(), nil)
		return
	}
	DownloadBytes(ctx, buf.Bytes(), eng.Name()+".json", jsonContentType)
}

func (d *DatasetController) IndexFromDatabase(_ context.Context, ctx *frame.Context) {
	name := ctx.Param("dataset")
	var req DatabaseRequest
	if err := ctx.Bind(&req); err != nil {
		Failed(ctx, consts.StatusBadRequest, err.Error(), nil)
		return
	}
	if len(req.TextFields) == 0 {
		Failed(ctx, consts.StatusBadRequest, "text_fields is required", nil)
		return
	}
	start := time.Now()
	go func() {
		records, err := loader.ReadDB(context.Background(), name, req.database())
		if err != nil {
			log.Error().Err(err).Str("dataset", name).Msg("database load failed")
			return
		}
		eng, err := dossier.New(name, records, req.options())
		if err != nil {
			log.Error().Err(err).Str("dataset", name).Msg("index build failed")
			return
		}
		d.registry.Add(eng)
		d.responses.Purge()
		log.Info().
			Str("dataset", name).
			Int("records", eng.Len()).
			Str("latency", time.Since(start).String()).
			Msg("dataset indexed from database")
	}()
	Success(ctx, consts.StatusOK, utils.H{"dataset": name, "started_at": start.Format(time.DateTime)}, "Indexing started in background")
}

func (d *DatasetController) ClearCache(_ context.Context, ctx *frame.Context) {
	d.responses.Purge()
	Success(ctx, consts.StatusOK, nil, "Cache cleared...")
}

func DatasetRoutes(route route.IRouter, controller *DatasetController) route.IRouter {
	route.GET("/datasets", controller.Datasets)
	route.GET("/search/:dataset", controller.Search)
	route.POST("/search/:dataset", controller.Search)
	route.GET("/lookup/:dataset/:key", controller.Lookup)
	route.GET("/metadata/:dataset", controller.Metadata)
	route.GET("/export/:dataset", controller.Export)
	route.POST("/database/:dataset", controller.IndexFromDatabase)
	route.POST("/cache/clear", controller.ClearCache)
	return route
}

func StartServer(addr string, registry *dossier.Registry, routePrefix ...string) {
	prefix := "/"
	if len(routePrefix) > 0 {
		prefix = routePrefix[0]
	}
	srv := server.New(
		server.WithDisablePrintRoute(true),
		server.WithHostPorts(addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithStreamBody(true),
	)
	srv.Use(cors.Default())
	srv.GET("/monitor", monitor.New())
	DatasetRoutes(srv.Group(prefix), NewDatasetController(registry))
	srv.Spin()
}
