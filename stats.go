package appendix

import "fmt"

// Stats reports storage usage across one arena lineage.
type Stats struct {
	SubArenas int // sub-arenas registered in the lineage
	Values    int // values stored across all sub-arenas
	Rows      int // rows allocated across all sub-arenas
	Capacity  int // total value capacity across all sub-arenas
}

func (s Stats) String() string {
	return fmt.Sprintf(
		"Arena{sub-arenas: %d, values: %d, rows: %d, capacity: %d}",
		s.SubArenas,
		s.Values,
		s.Rows,
		s.Capacity,
	)
}
