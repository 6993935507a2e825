package plan

import (
	"strconv"
	"strings"
	"time"
)

// Document is an account plan as a generic tree of values: maps, lists and
// scalars as decoded from JSON. The shape is provider-generated, so consumers
// must tolerate missing sections and string-typed list leaves.
type Document map[string]any

// IsError reports whether this document is the degraded generation form.
func (d Document) IsError() bool {
	_, ok := d["error"]
	return ok
}

// Metadata returns the metadata block, or nil when absent.
func (d Document) Metadata() map[string]any {
	meta, _ := d["metadata"].(map[string]any)
	return meta
}

// CompanyName returns metadata.company_name, or "" when absent.
func (d Document) CompanyName() string {
	name, _ := d.Metadata()["company_name"].(string)
	return name
}

// Version returns metadata.version, or "" when absent (degraded documents
// carry no version).
func (d Document) Version() string {
	version, _ := d.Metadata()["version"].(string)
	return version
}

// ApplyUpdate writes value at the dot-separated path, creating empty maps for
// missing intermediate keys, then bumps the version and update timestamp. The
// leaf is overwritten wholesale; sibling keys at every traversed level are
// untouched. The document is mutated in place and returned for chaining.
//
// This is the one sanctioned mutation path into a stored document.
func ApplyUpdate(doc Document, path string, value any) Document {
	keys := strings.Split(path, ".")
	upsert(map[string]any(doc), keys, value)

	meta, ok := doc["metadata"].(map[string]any)
	if !ok {
		meta = map[string]any{}
		doc["metadata"] = meta
	}
	meta["last_updated"] = time.Now().Format(time.RFC3339)

	version, _ := meta["version"].(string)
	meta["version"] = bumpVersion(version)

	return doc
}

func upsert(node map[string]any, keys []string, value any) {
	if len(keys) == 1 {
		node[keys[0]] = value
		return
	}
	child, ok := node[keys[0]].(map[string]any)
	if !ok {
		// Absent or non-map intermediates are replaced by a fresh map;
		// this is an upsert, not a strict navigation.
		child = map[string]any{}
		node[keys[0]] = child
	}
	upsert(child, keys[1:], value)
}

// bumpVersion adds 0.1 to a decimal version string. The arithmetic is plain
// float addition, so "1.1" becomes "1.2000000000000002" and "1.9" becomes
// "2.0" — both are tolerated downstream, not normalized.
func bumpVersion(version string) string {
	v, err := strconv.ParseFloat(version, 64)
	if err != nil {
		v = 1.0
	}
	v += 0.1

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
