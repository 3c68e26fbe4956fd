package clickhouse

import "fmt"

// TickSchema returns idempotent DDL for the raw tick table.
func TickSchema(database, table string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (
			ts DateTime64(3),
			symbol LowCardinality(String),
			price Float64,
			volume Float64,
			source LowCardinality(String),
			event_id String,
			seq UInt64
		) ENGINE = ReplacingMergeTree(seq)
		PARTITION BY toYYYYMM(ts)
		ORDER BY (symbol, ts, event_id)
		TTL toDateTime(ts) + INTERVAL 90 DAY`, database, table),
	}
}
