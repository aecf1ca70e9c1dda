// Copyright 2025 The Rivaas Authors
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

package nextrush

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	figure "github.com/common-nighthawk/go-figure"
)

// bannerWidth is used for the routes table. The terminal's real width isn't
// queried: the app doesn't carry a dependency whose only job would be that
// one measurement (see DESIGN.md on golang.org/x/term).
const bannerWidth = 80

func (a *App) colorWriter(w io.Writer) *colorprofile.Writer {
	cpw := colorprofile.NewWriter(w, os.Environ())
	if a.config.environment == "production" {
		cpw.Profile = colorprofile.NoTTY
	}
	return cpw
}

// PrintBanner writes the startup banner (service identity plus, in the
// "development" environment, a routes table) to stdout. OnReady is a natural place to call
// it, after the listener is bound and the real address is known.
func (a *App) PrintBanner(addr string) {
	w := a.colorWriter(os.Stdout)

	art := figure.NewFigure(a.config.serviceName, "", false)

	var gradient []string
	if a.config.environment == "development" {
		gradient = []string{"12", "14", "10", "11"}
	} else {
		gradient = []string{"10", "11"}
	}

	var styled strings.Builder
	for _, line := range art.Slicify() {
		if strings.TrimSpace(line) == "" {
			styled.WriteString("\n")
			continue
		}
		for i, ch := range line {
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(gradient[i%len(gradient)])).
				Bold(true)
			styled.WriteString(style.Render(string(ch)))
		}
		styled.WriteString("\n")
	}

	categoryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(14).PaddingLeft(2)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)

	displayAddr := addr
	if strings.HasPrefix(addr, ":") {
		displayAddr = "0.0.0.0" + addr
	}
	displayAddr = "http://" + displayAddr

	var out strings.Builder
	out.WriteString(categoryStyle.Render("Service") + "\n")
	out.WriteString(labelStyle.Render("Version:") + "  " + valueStyle.Foreground(lipgloss.Color("14")).Render(a.config.serviceVersion) + "\n")
	out.WriteString(labelStyle.Render("Environment:") + "  " + valueStyle.Foreground(lipgloss.Color("11")).Render(a.config.environment) + "\n")
	out.WriteString(labelStyle.Render("Address:") + "  " + valueStyle.Foreground(lipgloss.Color("10")).Render(displayAddr) + "\n")

	fmt.Fprintln(w)
	fmt.Fprint(w, styled.String())
	fmt.Fprintln(w)
	fmt.Fprint(w, out.String())

	if a.config.environment == "development" {
		if routes := a.router.Routes(); len(routes) > 0 {
			fmt.Fprintln(w)
			a.renderRoutesTable(w)
		}
	}
	fmt.Fprintln(w)
}

func (a *App) renderRoutesTable(w io.Writer) {
	routes := a.router.Routes()

	methodStyles := map[string]lipgloss.Style{
		http.MethodGet:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		http.MethodPost:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		http.MethodPut:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		http.MethodDelete:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		http.MethodPatch:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		http.MethodHead:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		http.MethodOptions: lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Bold(true),
	}
	useColors := a.config.environment == "development"

	rows := make([][]string, 0, len(routes))
	for _, route := range routes {
		method := route.Method
		if useColors {
			if style, ok := methodStyles[method]; ok {
				method = style.Render(method)
			}
		}
		kind := "static"
		if route.ParamCount > 0 {
			kind = "dynamic"
		}
		rows = append(rows, []string{
			method,
			route.Path,
			strconv.Itoa(route.Middleware),
			kind,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			style := lipgloss.NewStyle().Align(lipgloss.Left).Padding(0, 1)
			if row == 0 && useColors {
				style = style.Bold(true).Foreground(lipgloss.Color("230"))
			}
			return style
		}).
		Headers("Method", "Path", "Middleware", "Kind").
		Rows(rows...).
		Width(bannerWidth)

	fmt.Fprintln(w, t.Render())
}
