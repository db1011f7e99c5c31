package metrics

import "time"

// RecordSeedInserted records rows written for an entity type.
func RecordSeedInserted(entity string, count int) {
	if count <= 0 {
		return
	}
	SeedRowsInsertedTotal.WithLabelValues(entity).Add(float64(count))
}

// RecordSeedStepDuration records the time taken by one seeding step.
func RecordSeedStepDuration(entity string, duration time.Duration) {
	SeedStepDuration.WithLabelValues(entity).Observe(duration.Seconds())
}

// RecordSeedFailure records a seeding step that stopped at phase.
func RecordSeedFailure(entity, phase string) {
	SeedStepFailuresTotal.WithLabelValues(entity, phase).Inc()
}

// UpdateArticlesTotal sets the articles gauge.
func UpdateArticlesTotal(count int) {
	ArticlesTotal.Set(float64(count))
}

// RecordDBQuery observes one statement, labelled like "insert_people".
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats publishes sql.DBStats in-use and idle counts.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
