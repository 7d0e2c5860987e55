package geo

// Resolution is the outcome of location detection for a normalized query.
type Resolution struct {
	District string // display name, "" when no district resolved
	Key      string // normalized matching key for District
	Place    string // landmark display name, "" when no landmark matched
}

// Resolve detects a district through three ordered strategies, first success
// wins: exact substring match, fuzzy match, landmark lookup. A landmark never
// overrides a district found by the earlier strategies, but its place name is
// still recorded for the explanation.
func Resolve(normalizedQuery string) Resolution {
	if normalizedQuery == "" {
		return Resolution{}
	}

	var res Resolution

	key := matchDistrict(normalizedQuery)
	if key == "" {
		key = fuzzyDistrict(normalizedQuery)
	}
	if key != "" {
		res.District = DisplayName(key)
		res.Key = NormalizeKey(res.District)
	}

	place, placeDistrict := lookupPlace(normalizedQuery)
	if place != "" {
		res.Place = place
		if res.District == "" {
			res.District = placeDistrict
			res.Key = NormalizeKey(placeDistrict)
		}
	}

	return res
}

// SanitizeDistrict validates a free-form district string (typically from the
// AI provider) against the known district list, accepting display or
// lower-case forms and single-typo misspellings. Returns the display name,
// or "" when the value cannot be resolved.
func SanitizeDistrict(raw string) string {
	key := NormalizeKey(raw)
	if key == "" {
		return ""
	}

	if d := matchDistrict(key); d != "" {
		return DisplayName(d)
	}
	if d := fuzzyDistrict(key); d != "" {
		return DisplayName(d)
	}
	return ""
}
