package bulk

// Normalize deduplicates task ids while preserving the relative order of
// first occurrence. An empty input yields an empty set, which downstream
// treats as zero tasks processed rather than a failure. Pure function.
func Normalize(ids []string) NormalizedTaskSet {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	return NormalizedTaskSet{
		IDs:               unique,
		OriginalCount:     len(ids),
		DeduplicatedCount: len(unique),
	}
}
