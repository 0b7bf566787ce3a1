package recipes

import "strings"

// AggregateAnswer combines the top-level answer with fragments recovered during
// normalization. Duplicates are removed by exact string equality, keeping the
// first occurrence, and the parts are joined with a blank line.
//
// The default display path shows only the top-level answer; callers opt into
// this aggregated form to surface nested context.
func AggregateAnswer(answer string, fragments []string) string {
	seen := make(map[string]struct{}, len(fragments)+1)
	parts := make([]string, 0, len(fragments)+1)

	for _, part := range append([]string{answer}, fragments...) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		parts = append(parts, part)
	}
	return strings.Join(parts, "\n\n")
}
