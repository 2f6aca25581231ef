// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ANSI sequences for plain text output. Emptied when NO_COLOR is set.
var (
	Green = "\033[32m"
	Red   = "\033[31m"
	Reset = "\033[0m"
)

func init() {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		Green, Red, Reset = "", "", ""
	}
}

// Styles holds all the styling for the step viewer and the run summary
type Styles struct {
	Border       lipgloss.Style
	Title        lipgloss.Style
	Command      lipgloss.Style
	Position     lipgloss.Style
	Status       lipgloss.Style
	ErrorMessage lipgloss.Style
	StatKey      lipgloss.Style
	StatValue    lipgloss.Style
}

// NewStyles creates the default styles
func NewStyles() *Styles {
	return &Styles{
		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // Bright cyan/blue, more visible on dark backgrounds
			Padding(0, 1).
			Bold(true),
		Command: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),
		Position: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true),
		ErrorMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		StatKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(16),
		StatValue: lipgloss.NewStyle().
			Bold(true),
	}
}

// formatStats lays out run counters as an aligned two-column block.
func formatStats(s *Styles, stats Stats) string {
	rows := []struct {
		name  string
		value int
	}{
		{"commands", stats.Commands},
		{"inserted", stats.Inserted},
		{"duplicates", stats.Duplicates},
		{"deleted", stats.Deleted},
		{"missing", stats.Missing},
		{"skipped deletes", stats.SkippedDeletes},
		{"prints", stats.Prints},
		{"cache hits", stats.CacheHits},
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			s.StatKey.Render(row.name),
			s.StatValue.Render(fmt.Sprint(row.value)),
		))
	}
	return strings.Join(lines, "\n")
}
