package models

// ContentKey identifies a station by frequency and truncated name.
type ContentKey struct {
	Frequency Frequency
	Name      string
}

// ByFrequency is the primary key of a station.
func ByFrequency(s Station) Frequency { return s.Frequency }

// ByContent returns a key function comparing frequency and the name truncated to maxLen.
func ByContent(maxLen int) func(Station) ContentKey {
	return func(s Station) ContentKey {
		return ContentKey{Frequency: s.Frequency, Name: Truncate(s.Name, maxLen)}
	}
}

// Except returns the distinct stations of a whose key does not occur in b, in order of first occurrence in a.
func Except[K comparable](a, b []Station, key func(Station) K) []Station {
	seen := make(map[K]struct{}, len(a)+len(b))
	for _, s := range b {
		seen[key(s)] = struct{}{}
	}

	var result []Station
	for _, s := range a {
		k := key(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, s)
	}
	return result
}

// Intersect returns the distinct stations of a whose key also occurs in b, in order of first occurrence in a.
func Intersect[K comparable](a, b []Station, key func(Station) K) []Station {
	present := make(map[K]bool, len(b))
	for _, s := range b {
		present[key(s)] = true
	}

	var result []Station
	for _, s := range a {
		k := key(s)
		if !present[k] {
			continue
		}
		present[k] = false
		result = append(result, s)
	}
	return result
}

// FilterBand keeps the stations whose frequency lies within the broadcast band.
func FilterBand(stations []Station) []Station {
	result := make([]Station, 0, len(stations))
	for _, s := range stations {
		if s.Frequency.InBand() {
			result = append(result, s)
		}
	}
	return result
}
