// Package config provides configuration structures and utilities for surveyscope.
// It defines which dataset to read, which survey columns feed each report
// section, the thresholds used by the analysis, and the output format.
//
// Values come from three layers, later layers winning:
//  1. Built-in defaults matching the BC AI survey export (NewConfig)
//  2. An optional YAML file (.surveyscope in the working directory, or
//     config.yaml in the XDG config directory)
//  3. Command-line flags
package config
