package mlst

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Database is a loaded MLST scheme: the fixed locus order, the exact
// profile lookup, and optional per-ST annotation text. It's read-only
// after loading and safe to share across concurrent typing runs.
type Database struct {
	// STs are the ST ids in file order
	STs []string

	// Loci are the locus names in header order. This order fixes the
	// layout of every profile comparison
	Loci []string

	// ProfileToST maps comma-joined allele numbers to an ST id
	ProfileToST map[string]string

	// STToInfo maps an ST id to its annotation text, eg clonal complex
	STToInfo map[string]string

	// HasInfo is whether the profiles file carried a trailing info column
	HasInfo bool
}

// LoadDatabase reads a tab-separated ST profiles file. The first line is
// the header: an ST column label, one column per locus, and, when hasInfo,
// a trailing annotation column. Every data row must have the same number
// of fields as the header.
func LoadDatabase(path string, hasInfo bool) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	db := &Database{
		ProfileToST: make(map[string]string),
		STToInfo:    make(map[string]string),
		HasInfo:     hasInfo,
	}

	fieldCount := 0
	lineNum := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")

		if db.Loci == nil {
			fieldCount = len(fields)

			fields = fields[1:] // remove the ST label
			if hasInfo {
				if len(fields) == 0 {
					return nil, fmt.Errorf("%s: header has no locus columns", path)
				}
				fields = fields[:len(fields)-1] // remove the info label
			}
			if len(fields) == 0 {
				return nil, fmt.Errorf("%s: header has no locus columns", path)
			}
			db.Loci = fields
			continue
		}

		if len(fields) != fieldCount {
			return nil, fmt.Errorf("%s: line %d has %d fields, expected %d per the header",
				path, lineNum, len(fields), fieldCount)
		}

		st := fields[0]
		fields = fields[1:]

		info := ""
		if hasInfo {
			info = fields[len(fields)-1]
			fields = fields[:len(fields)-1]
		}

		db.STs = append(db.STs, st)
		db.ProfileToST[strings.Join(fields, ",")] = st
		if hasInfo {
			db.STToInfo[st] = info
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if db.Loci == nil {
		return nil, fmt.Errorf("%s: empty profiles file", path)
	}

	return db, nil
}
