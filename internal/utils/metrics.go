package utils

import (
	"time"

	"propertyhub-api/pkg/metrics"
)

// ObserveMongo records the duration of a MongoDB call and counts it as failed when err is set.
func ObserveMongo(operation, collection string, start time.Time, err error) {
	metrics.MongoOperationDuration.WithLabelValues(operation, collection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues(operation, collection).Inc()
	}
}
