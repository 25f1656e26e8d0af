package connector

import "dex-swap/pkg/chains"

// OrderedURLs flattens a chain's endpoint categories into the list the
// failover transport tries on each call. Category priority is fixed:
// interface endpoints first, then default, public, fallback. Empty entries
// are dropped and duplicates removed, first occurrence winning.
func OrderedURLs(e chains.Endpoints) []string {
	ordered := make([]string, 0, len(e.Interface)+len(e.Default)+len(e.Public)+len(e.Fallback))
	seen := make(map[string]struct{})

	for _, category := range [][]string{e.Interface, e.Default, e.Public, e.Fallback} {
		for _, url := range category {
			if url == "" {
				continue
			}
			if _, dup := seen[url]; dup {
				continue
			}
			seen[url] = struct{}{}
			ordered = append(ordered, url)
		}
	}

	return ordered
}
