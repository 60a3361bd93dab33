// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-safe-keeper/models"
)

// RenderBuildInfo renders the version report. devnetVersion is left out
// when empty.
func RenderBuildInfo(info models.AppBuildInfo, devnetVersion string) string {
	var b strings.Builder

	b.WriteString("Application: go-safe-keeper\n")
	b.WriteString("Version:     ")
	b.WriteString(valueOrNA(info.BuildVersion()))
	b.WriteString("\n")
	b.WriteString("Date:        ")
	b.WriteString(valueOrNA(info.BuildDate()))
	b.WriteString("\n")
	b.WriteString("Commit:      ")
	b.WriteString(valueOrNA(info.BuildCommit()))
	b.WriteString("\n")
	if devnetVersion != "" {
		b.WriteString("Devnet:      ")
		b.WriteString(devnetVersion)
		b.WriteString("\n")
	}

	return b.String()
}
