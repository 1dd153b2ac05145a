package constants

// Redis key formats
const (
	// Provider live state
	KeyProviderGeo      = "providers:geo"        // GEO set of online provider positions
	KeyOnlineProviders  = "providers:online"     // Set of online provider IDs
	KeyProviderLocation = "provider:location:%s" // Format: provider:location:{provider_id}

	// Request tracking
	KeyRequestLocation = "request:location:%s" // Format: request:location:{request_id}
	KeyRequestSeq      = "request:seq:%s"      // Format: request:seq:{request_id}
	KeyRequestOffers   = "request:offers:%s"   // Set of provider IDs a pending request was offered to

	// Realtime presence
	KeyUserPresence = "ws:presence:%s" // Sorted set of live connection IDs scored by expiry, per user

	// Rate Limiting
	KeyRateLimit = "rate:limit:%s:%s" // Format: rate:limit:{resource}:{caller}
)

// Redis hash fields
const (
	FieldLatitude  = "lat"
	FieldLongitude = "lng"
	FieldGeohash   = "geohash"
	FieldTimestamp = "ts"
	FieldHeading   = "heading"
	FieldSpeed     = "speed"
	FieldSeq       = "seq"
	FieldServerTS  = "server_ts"
	FieldProvider  = "provider_id"
)
