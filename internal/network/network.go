// Package network loads nuclear network isotope tables and aggregates
// per-zone composition into bulk quantities.
package network

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/progs/internal/stellar"
)

//go:embed tables/*.txt
var tables embed.FS

var (
	ErrUnknownNetwork = errors.New("network: unknown network")
	ErrBadTable       = errors.New("network: malformed isotope table")
)

// Isotope is one network species with mass number A and charge Z.
type Isotope struct {
	Name string `json:"isotope" yaml:"isotope"`
	A    int    `json:"A" yaml:"A"`
	Z    int    `json:"Z" yaml:"Z"`
}

// Network is an ordered isotope list.
type Network struct {
	Name     string    `json:"name"`
	Isotopes []Isotope `json:"isotopes"`
}

// Names returns the isotope names in network order.
func (n Network) Names() []string {
	names := make([]string, len(n.Isotopes))
	for i, iso := range n.Isotopes {
		names[i] = iso.Name
	}
	return names
}

// Composition returns the network's isotope columns from t.
func (n Network) Composition(t *stellar.Table) (*stellar.Table, error) {
	return t.Select(n.Names()...)
}

// Parse reads a whitespace-delimited isotope table. The first non-blank
// line is a header that must name the isotope, A and Z columns.
func Parse(name string, r io.Reader) (Network, error) {
	net := Network{Name: name}
	sc := bufio.NewScanner(r)

	isoCol, aCol, zCol := -1, -1, -1
	width := 0
	seen := make(map[string]bool)
	line := 0

	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		if isoCol < 0 {
			for i, f := range fields {
				switch f {
				case "isotope":
					isoCol = i
				case "A":
					aCol = i
				case "Z":
					zCol = i
				}
			}
			if isoCol < 0 || aCol < 0 || zCol < 0 {
				return Network{}, fmt.Errorf("%w: header %q needs isotope, A and Z", ErrBadTable, sc.Text())
			}
			width = len(fields)
			continue
		}

		if len(fields) < width {
			return Network{}, fmt.Errorf("%w: line %d has %d fields, want %d", ErrBadTable, line, len(fields), width)
		}
		a, err := strconv.Atoi(fields[aCol])
		if err != nil || a <= 0 {
			return Network{}, fmt.Errorf("%w: line %d: bad A %q", ErrBadTable, line, fields[aCol])
		}
		z, err := strconv.Atoi(fields[zCol])
		if err != nil || z < 0 {
			return Network{}, fmt.Errorf("%w: line %d: bad Z %q", ErrBadTable, line, fields[zCol])
		}
		iso := fields[isoCol]
		if seen[iso] {
			return Network{}, fmt.Errorf("%w: duplicate isotope %q", ErrBadTable, iso)
		}
		seen[iso] = true
		net.Isotopes = append(net.Isotopes, Isotope{Name: iso, A: a, Z: z})
	}
	if err := sc.Err(); err != nil {
		return Network{}, err
	}
	if isoCol < 0 {
		return Network{}, fmt.Errorf("%w: no header", ErrBadTable)
	}

	return net, nil
}

// LoadFile reads a network table from disk. The network is named after
// the file without its extension.
func LoadFile(file string) (Network, error) {
	f, err := os.Open(file)
	if err != nil {
		return Network{}, err
	}
	defer f.Close()

	base := filepath.Base(file)
	return Parse(strings.TrimSuffix(base, filepath.Ext(base)), f)
}

// Builtin returns one of the tables shipped with the package.
func Builtin(name string) (Network, error) {
	f, err := tables.Open("tables/" + name + ".txt")
	if err != nil {
		return Network{}, fmt.Errorf("%w: %s", ErrUnknownNetwork, name)
	}
	defer f.Close()
	return Parse(name, f)
}

// BuiltinNames lists the shipped networks.
func BuiltinNames() []string {
	entries, err := tables.ReadDir("tables")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".txt"))
	}
	sort.Strings(names)
	return names
}
