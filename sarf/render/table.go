// Package render formats index structures for terminal display: the
// hash table's bucket chains and stats as tables, the AVL tree as
// colored ASCII art.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/sarfdb/sarf/sarf/index"
)

// BucketTable writes the non-empty bucket chains of the hash table.
// Chains are shown in insertion order, which is the stored order.
func BucketTable(w io.Writer, buckets []index.BucketInfo) {
	table := tablewriter.NewTable(w)
	table.Header([]string{"Bucket", "Chain Len", "Templates", "Hashes"})

	for _, b := range buckets {
		if len(b.Entries) == 0 {
			continue
		}
		templates := make([]string, len(b.Entries))
		hashes := make([]string, len(b.Entries))
		for i, e := range b.Entries {
			templates[i] = string(e.Template)
			hashes[i] = strconv.FormatUint(e.Hash, 10)
		}
		table.Append([]string{
			strconv.Itoa(b.Index),
			strconv.Itoa(len(b.Entries)),
			strings.Join(templates, " → "),
			strings.Join(hashes, ", "),
		})
	}
	table.Render()
}

// StatsTable writes the table-wide diagnostics.
func StatsTable(w io.Writer, stats index.TableStats) {
	table := tablewriter.NewTable(w)
	table.Header([]string{"Size", "Count", "Load Factor", "Non-Empty", "Collisions"})
	table.Append([]string{
		strconv.Itoa(stats.Size),
		strconv.Itoa(stats.Count),
		fmt.Sprintf("%.3f", stats.LoadFactor),
		strconv.Itoa(stats.NonEmptyBuckets),
		strconv.Itoa(stats.Collisions),
	})
	table.Render()
}
