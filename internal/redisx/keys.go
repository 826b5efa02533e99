package redisx

import (
	"fmt"
	"time"
)

const (
	// Full catalog snapshot: products:all -> JSON array of products.
	KeyProductsAll = "products:all"

	// Single product snapshot: product:{id}.
	keyProductFmt = "product:%d"

	// Dedup event processing: dedup:{service}:{event_id}.
	keyDedupFmt = "dedup:%s:%s"
)

var (
	TTLCatalog = 300 * time.Second
	TTLDedup   = 48 * time.Hour
)

func KeyProduct(id int64) string { return fmt.Sprintf(keyProductFmt, id) }

func KeyDedup(service, eventID string) string { return fmt.Sprintf(keyDedupFmt, service, eventID) }
