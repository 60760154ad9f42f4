// Package forestdb maps Go structs to PostgreSQL tables and renders the
// statements needed to create, save, load and delete them.
//
// # Overview
//
// A struct becomes an entity by tagging the fields that should be
// persisted. From the tagged struct, forestdb derives the table schema
// and complete SQL statement text: CREATE TABLE IF NOT EXISTS, SELECT *,
// INSERT ... ON CONFLICT ... DO UPDATE, and DELETE by primary key.
// Result rows are mapped back into entity values by column name.
//
// Key features include:
//   - Schema and statement generation from struct definitions
//   - Upsert semantics: one Save path that inserts or updates
//   - Value processors for collection and custom field types
//   - Named connections managed behind a single API value
//   - Async variants of every operation on a bounded worker pool
//
// # Basic Usage
//
// Tag the persisted fields and hand instances to an API:
//
//	type Car struct {
//		ID    int    `column:"" pk:"" auto:""`
//		Brand string `column:"brand" length:"50"`
//		Year  int    `column:""`
//	}
//
//	api := forestdb.New()
//	api.AddDatabase("main", pool)
//
//	api.CreateTable(ctx, "main", Car{})
//	api.InsertOrUpdate(ctx, "main", &Car{Brand: "Toyota", Year: 2020})
//
//	cars, err := forestdb.FindAll[Car](ctx, api, "main")
//
// # Table and Column Naming
//
// Table and column names are the snake_case form of the type and field
// names. Override the table name by implementing TableName() string on
// the entity, or a single column name with a value in the column tag:
//
//	type GPSLocation struct {          // table "gps_location"
//		Lat float64 `column:"latitude"` // column "latitude"
//	}
//
// # Tags
//
// Only fields carrying the column tag are persisted. The other tags
// refine the column definition:
//   - pk: part of the primary key (also the upsert conflict target)
//   - auto: database-assigned value, rendered as SERIAL
//   - nullable: omit the NOT NULL constraint
//   - unique: add a UNIQUE constraint
//   - dataType: exact SQL type, overriding the derived one
//   - length: VARCHAR width for string fields; negative means TEXT
//
// # Value Processors
//
// A ValueProcessor converts between a Go type and its column text.
// Processors for []string and map[string]string are registered out of
// the box; register your own per type:
//
//	api.RegisterProcessor(reflect.TypeOf(Money{}), moneyProcessor{})
//
// # Configuration
//
// LoadConfig layers defaults, an optional YAML file and FORESTDB_*
// environment variables into a Config, and Open dials the server from
// it:
//
//	cfg, err := forestdb.LoadConfig("db.yml")
//	pool, err := forestdb.Open(cfg)
//
// # Async Operations
//
// Every operation has an async form running on the API's worker pool.
// Mutations are fire and forget with logged errors; reads return a
// Future:
//
//	api.InsertOrUpdateAsync(ctx, "main", &car)
//	future := forestdb.FindAllAsync[Car](ctx, api, "main")
//	cars, err := future.Wait(ctx)
//	api.Wait() // drain pending work before shutdown
package forestdb
