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

// Package idgen hands out identifiers for process instances, render
// cycles and requests.
package idgen

import (
	"encoding/base32"
	"encoding/binary"
	"errors"
	"hash/fnv"
	"math/rand/v2"
	"net"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/sonyflake"
)

var defaultGenerator *FlakeGenerator

func init() {
	var err error
	defaultGenerator, err = newFlakeGenerator()
	if err != nil {
		// NextID falls back to random ids without sonyflake.
		defaultGenerator = &FlakeGenerator{}
	}
}

// FlakeGenerator produces roughly time-ordered int64 ids.
type FlakeGenerator struct {
	sf *sonyflake.Sonyflake
}

func newFlakeGenerator() (*FlakeGenerator, error) {
	sf, err := sonyflake.New(sonyflake.Settings{
		StartTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		MachineID: func() (uint16, error) {
			addrs, _ := net.InterfaceAddrs()
			host, _ := os.Hostname()
			return machineID(addrs, host), nil
		},
	})
	if err != nil {
		return nil, err
	}
	if sf == nil {
		return nil, errors.New("failed to create Sonyflake instance")
	}
	return &FlakeGenerator{sf: sf}, nil
}

// machineID uses the lower 16 bits of the first private IPv4 address, as
// sonyflake does by default. Hosts without one hash their hostname, and a
// random value is used when even that is unavailable.
func machineID(addrs []net.Addr, hostname string) uint16 {
	for _, a := range addrs {
		ipnet, ok := a.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() {
			continue
		}
		if ip := ipnet.IP.To4(); ip != nil && ip.IsPrivate() {
			return uint16(ip[2])<<8 + uint16(ip[3])
		}
	}
	if hostname != "" {
		h := fnv.New32a()
		_, _ = h.Write([]byte(hostname))
		return uint16(h.Sum32())
	}
	return uint16(rand.UintN(1 << 16))
}

// NextID returns a positive id. If the generator is exhausted or the clock
// moved backwards it falls back to a random value.
func (g *FlakeGenerator) NextID() int64 {
	if g.sf == nil {
		return rand.Int64()
	}
	v, err := g.sf.NextID()
	if err != nil {
		return rand.Int64()
	}
	return int64(v)
}

// NextCycleID returns a compact lowercase base32 id suitable for log attributes.
func (g *FlakeGenerator) NextCycleID() string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(g.NextID()))
	return strings.ToLower(base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(b[:]))
}

// NextID returns the next id from the process-wide generator.
func NextID() int64 {
	return defaultGenerator.NextID()
}

// NextCycleID returns the next render cycle id from the process-wide generator.
func NextCycleID() string {
	return defaultGenerator.NextCycleID()
}

// NewRequestID returns a random id for requests that arrive without one.
func NewRequestID() string {
	return uuid.NewString()
}
