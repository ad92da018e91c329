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

package idgen

import (
	"net"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlakeGenerator_NextID(t *testing.T) {
	gen, err := newFlakeGenerator()
	require.NoError(t, err)

	id := gen.NextID()
	id2 := gen.NextID()
	assert.Positive(t, id)
	assert.Greater(t, id2, id)
}

func TestFlakeGenerator_NextCycleID(t *testing.T) {
	gen, err := newFlakeGenerator()
	require.NoError(t, err)

	id1 := gen.NextCycleID()
	id2 := gen.NextCycleID()
	assert.NotEqual(t, id1, id2)
	assert.Len(t, id1, 13)
	assert.False(t, strings.Contains(id1, "="))
	assert.Equal(t, strings.ToLower(id1), id1)

	assert.NotEmpty(t, NextCycleID())
}

func TestNewRequestID(t *testing.T) {
	id := NewRequestID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, NewRequestID())
}

func ipNet(s string) *net.IPNet {
	return &net.IPNet{IP: net.ParseIP(s), Mask: net.CIDRMask(24, 32)}
}

func TestMachineID_PrivateIPv4(t *testing.T) {
	addrs := []net.Addr{ipNet("127.0.0.1"), ipNet("203.0.113.9"), ipNet("10.0.1.2")}
	assert.Equal(t, uint16(0x0102), machineID(addrs, "ignored"))
}

func TestMachineID_NoPrivateAddressUsesHostname(t *testing.T) {
	addrs := []net.Addr{
		ipNet("203.0.113.9"),
		&net.IPNet{IP: net.ParseIP("2001:db8::1"), Mask: net.CIDRMask(64, 128)},
	}

	id := machineID(addrs, "alerts-1.example.com")
	assert.Equal(t, id, machineID(nil, "alerts-1.example.com"))
	assert.NotEqual(t, id, machineID(nil, "alerts-2.example.com"))
}

func TestMachineID_NothingAvailable(t *testing.T) {
	assert.NotPanics(t, func() { machineID(nil, "") })
}

func TestFlakeGenerator_WithoutSonyflake(t *testing.T) {
	gen := &FlakeGenerator{}
	assert.Positive(t, gen.NextID())
	assert.Len(t, gen.NextCycleID(), 13)
}
