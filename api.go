package forestdb

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/gopsql/logger"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 4

// API is the entry point: it holds named database connections, the value
// processor registry and a bounded worker pool for the Async variants.
// Create one with New and share it; all methods are safe for concurrent
// use once setup (AddDatabase, RegisterProcessor, SetLogger) is done.
type API struct {
	logger     logger.Logger
	databases  map[string]Database
	processors ProcessorMap
	group      *errgroup.Group
}

// New returns an API with the built-in processors registered ([]string and
// map[string]string) and the worker pool at its default size.
func New() *API {
	api := &API{
		logger:     logger.NoopLogger,
		databases:  map[string]Database{},
		processors: ProcessorMap{},
		group:      &errgroup.Group{},
	}
	api.group.SetLimit(defaultWorkers)
	api.RegisterProcessor(reflect.TypeOf([]string(nil)), StringSliceProcessor{})
	api.RegisterProcessor(reflect.TypeOf(map[string]string(nil)), StringMapProcessor{})
	return api
}

// SetLogger changes the logger used for statement logging and async error
// reporting. Defaults to the no-op logger.
func (api *API) SetLogger(l logger.Logger) *API {
	api.logger = l
	return api
}

// SetWorkers resizes the async worker pool. Must be called before any
// async work is submitted.
func (api *API) SetWorkers(n int) *API {
	if n > 0 {
		api.group.SetLimit(n)
	}
	return api
}

// RegisterProcessor installs a value processor for fields of the given
// type, replacing any existing one.
func (api *API) RegisterProcessor(t reflect.Type, p ValueProcessor) *API {
	api.processors[t] = p
	return api
}

// AddDatabase registers a connection under a case-insensitive name. The
// first registration for a name wins; later ones are ignored.
func (api *API) AddDatabase(name string, database Database) *API {
	key := strings.ToUpper(name)
	if _, ok := api.databases[key]; !ok {
		api.databases[key] = database
	}
	return api
}

func (api *API) database(name string) (Database, error) {
	database, ok := api.databases[strings.ToUpper(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoDatabase, name)
	}
	return database, nil
}

// CloseAll closes every registered connection, returning the first error.
func (api *API) CloseAll() error {
	var first error
	for _, database := range api.databases {
		if err := database.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (api *API) model(object interface{}, database Database) *Model {
	return NewModel(object, database, api.logger, api.processors)
}

// CreateTable issues the entity's CREATE TABLE IF NOT EXISTS statement on
// the named database.
func (api *API) CreateTable(ctx context.Context, dbName string, object interface{}) error {
	database, err := api.database(dbName)
	if err != nil {
		return err
	}
	m := api.model(object, database)
	query, err := m.Schema()
	if err != nil {
		return err
	}
	_, err = m.execute(ctx, query)
	return err
}

// InsertOrUpdate saves the entity, inserting it or, on a primary key
// conflict, updating every persisted column. When instance is a pointer
// and the table has an auto-increment key, the generated key is written
// back into the instance.
func (api *API) InsertOrUpdate(ctx context.Context, dbName string, instance interface{}) error {
	database, err := api.database(dbName)
	if err != nil {
		return err
	}
	m := api.model(instance, database)
	query, err := m.UpsertSQL(instance)
	if err != nil {
		return err
	}
	writeBack := reflect.ValueOf(instance).Kind() == reflect.Ptr
	autoColumns := m.autoColumns()
	if writeBack && len(autoColumns) > 0 {
		query = strings.TrimSuffix(query, ";") + " RETURNING " + strings.Join(autoColumns, ", ") + ";"
	}
	rows, err := m.execute(ctx, query)
	if err != nil {
		return err
	}
	if writeBack && len(rows) > 0 {
		m.backfillSerial(instance, rows[0])
	}
	return nil
}

// Delete removes the row matching the instance's primary key values.
func (api *API) Delete(ctx context.Context, dbName string, instance interface{}) error {
	database, err := api.database(dbName)
	if err != nil {
		return err
	}
	m := api.model(instance, database)
	query, err := m.DeleteSQL(instance)
	if err != nil {
		return err
	}
	_, err = m.execute(ctx, query)
	return err
}

// DeleteAll removes every row of the entity's table.
func (api *API) DeleteAll(ctx context.Context, dbName string, object interface{}) error {
	database, err := api.database(dbName)
	if err != nil {
		return err
	}
	m := api.model(object, database)
	query, err := m.DeleteAllSQL()
	if err != nil {
		return err
	}
	_, err = m.execute(ctx, query)
	return err
}

// FindAll loads every row of T's table. Rows that fail to convert are
// logged and skipped rather than failing the whole result.
func FindAll[T any](ctx context.Context, api *API, dbName string) ([]T, error) {
	var zero T
	m := NewModel(zero, api.logger, api.processors)
	query, err := m.SelectAllSQL()
	if err != nil {
		return nil, err
	}
	return findAll[T](ctx, api, dbName, m, query)
}

// FindAllQuery is FindAll with a caller-supplied statement, optionally with
// bound parameters; the selected columns must match T's persisted column
// names.
func FindAllQuery[T any](ctx context.Context, api *API, dbName, query string, args ...interface{}) ([]T, error) {
	var zero T
	return findAll[T](ctx, api, dbName, NewModel(zero, api.logger, api.processors), query, args...)
}

func findAll[T any](ctx context.Context, api *API, dbName string, m *Model, query string, args ...interface{}) ([]T, error) {
	database, err := api.database(dbName)
	if err != nil {
		return nil, err
	}
	rows, err := m.SetConnection(database).execute(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		entity, err := ConvertToEntity[T](m, row)
		if err != nil {
			api.logger.Error("forestdb: skipping row of", m.TableName(), "-", err)
			continue
		}
		out = append(out, entity)
	}
	return out, nil
}
