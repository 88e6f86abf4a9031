package main

import "strings"

func deduceFormat(format, filePath string) string {
	if format == "" && strings.HasSuffix(filePath, ".mapbundle") {
		return "bundle"
	}
	if format == "" && strings.HasSuffix(filePath, ".mappack") {
		return "pack"
	}
	if format == "" && strings.Contains(filePath, "{name}") {
		return "dir"
	}
	return format
}
