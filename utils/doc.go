// Package utils provides small helpers shared by the command and formatter:
// wall-clock parsing and formatting for trip times.
package utils
