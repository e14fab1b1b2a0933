package report

import "fmt"

// innings splits an outs total into whole innings and leftover outs
func innings(outs int) (whole, thirds int) {
	return outs / 3, outs % 3
}

// FormatInnings renders outs in scorebook notation: 10 outs is "3.1", i.e.
// three innings and one third, never a decimal fraction
func FormatInnings(outs int) string {
	whole, thirds := innings(outs)
	return fmt.Sprintf("%d.%d", whole, thirds)
}
