// Copyright (C) 2025-2026 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package badge renders the "My Connection Alerts" link and its count badge.
package badge

import (
	"html/template"
	"strconv"
	"strings"
)

var linkTemplate = template.Must(template.New("link").Parse(
	`<a class="connection-alerts" href="{{.Href}}"><i class="fa fa-plug"></i>{{.Badge}}</a>`,
))

// Render returns the count badge, or an empty fragment when count is not
// positive.
func Render(count int) template.HTML {
	if count <= 0 {
		return ""
	}
	return template.HTML("<span class='badge badge-info'>" + strconv.Itoa(count) + "</span>")
}

// Link is the clickable element wrapping the badge.
type Link struct {
	Href  string
	Badge template.HTML
}

// NewLink builds a link to href carrying the badge for count.
func NewLink(href string, count int) Link {
	return Link{Href: href, Badge: Render(count)}
}

// HTML renders l with href escaped.
func (l Link) HTML() (template.HTML, error) {
	var buf strings.Builder
	if err := linkTemplate.Execute(&buf, l); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
