// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("62")
	colorSecondary = lipgloss.Color("241")
	colorHighlight = lipgloss.Color("212")
	colorError     = lipgloss.Color("160")
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

var headingStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)

// activeItemStyle marks the selected entry in the index list.
var activeItemStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary)

// cursorItemStyle marks the list row under the cursor.
var cursorItemStyle = lipgloss.NewStyle().
	Foreground(colorHighlight)

var normalItemStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("252"))

var mutedStyle = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Italic(true)

var suggestionStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("252")).
	Background(lipgloss.Color("236"))

var focusedSuggestionStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary)

var errorStyle = lipgloss.NewStyle().
	Foreground(colorError).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorError).
	Padding(0, 1)

var statusBarStyle = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Background(lipgloss.Color("236"))

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("238"))
