// Package stats provides the histogram and summary-statistics types
// used by every access oracle to turn N raw timing trials into an
// average/median/min/max column summary.
package stats
