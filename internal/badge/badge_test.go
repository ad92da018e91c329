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

package badge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	assert.Equal(t, "<span class='badge badge-info'>3</span>", string(Render(3)))
	assert.Equal(t, "<span class='badge badge-info'>120</span>", string(Render(120)))
	assert.Empty(t, string(Render(0)))
	assert.Empty(t, string(Render(-1)))
}

func TestLinkHTML(t *testing.T) {
	html, err := NewLink("/alerts/connections/open", 3).HTML()
	require.NoError(t, err)
	assert.Equal(t,
		`<a class="connection-alerts" href="/alerts/connections/open"><i class="fa fa-plug"></i><span class='badge badge-info'>3</span></a>`,
		string(html))

	html, err = NewLink("/alerts/connections/open", 0).HTML()
	require.NoError(t, err)
	assert.NotContains(t, string(html), "badge")
}

func TestLinkHTML_EscapesHref(t *testing.T) {
	html, err := NewLink(`javascript:alert("x")`, 1).HTML()
	require.NoError(t, err)
	assert.NotContains(t, string(html), "javascript:")
}
