package utils

import "time"

// CatalogCachePrefix is the prefix used for cached winery documents.
const CatalogCachePrefix = "winery:"

// DefaultCatalogCacheTTL applies when CATALOG_CACHE_TTL is unset.
const DefaultCatalogCacheTTL = 5 * time.Minute

// DefaultPageSize is used by list endpoints when no limit is given.
const DefaultPageSize = 10

// MaxPageSize caps the limit query parameter.
const MaxPageSize = 100
