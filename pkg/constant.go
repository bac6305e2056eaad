package pkg

const (
	// mean earth radius used by the haversine distance, in meter.
	EARTH_RADIUS_METER = 6_371_007.2

	// one degree srtm tiles: 3601x3601 big-endian int16 samples, row-major north to south.
	SRTM_TILE_SIZE   = 3601
	SRTM_SAMPLE_SIZE = 2

	// unsuitability factor applied to ways referenced by a tagged bicycle route relation.
	BICYCLE_RELATION_DISCOUNT = 0.5

	// fallback speed (km/h) when neither maxspeed nor the road class gives one.
	DEFAULT_ROAD_SPEED = 50.0

	MAX_TRUCK_SPEED = 80.0

	// unsuitability of a road class we know nothing about.
	UNSUITABILITY_UNKNOWN_ROAD = 6.0
)
