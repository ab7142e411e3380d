// Package dialect loads caller-supplied keyword, operator, and function
// name extensions on top of the compiled-in token table, so embedding
// applications can recognize vendor-specific SQL without a code change.
//
// Extensions are expressed as YAML:
//
//	keywords:
//	  - MATCH_RECOGNIZE
//	  - QUALIFY
//	functions:
//	  - approx_count_distinct
//	  - date_trunc
//
// Keywords and functions are indexed for case-insensitive lookup through
// IsKeyword and IsFunction; operators are stored but not indexed. The
// parser in this module does not consult an Extension, so a loaded
// extension changes nothing about how SQL is lexed or parsed.
package dialect

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Extension is a parsed, ready-to-use dialect extension.
type Extension struct {
	Keywords  []string `yaml:"keywords"`
	Functions []string `yaml:"functions"`
	Operators []string `yaml:"operators"`

	keywordSet  map[string]struct{}
	functionSet map[string]struct{}
}

// Load parses a YAML dialect extension document from r.
func Load(r io.Reader) (*Extension, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "dialect: read extension")
	}
	var ext Extension
	if err := yaml.Unmarshal(data, &ext); err != nil {
		return nil, errors.Wrap(err, "dialect: parse extension")
	}
	ext.index()
	return &ext, nil
}

// Merge combines the receiver with additional extensions by appending
// their lists in order; a name listed more than once stays in the lists
// and matches once in IsKeyword/IsFunction. The receiver itself is left
// unmodified.
func (e *Extension) Merge(others ...*Extension) *Extension {
	out := &Extension{}
	out.Keywords = append(out.Keywords, e.Keywords...)
	out.Functions = append(out.Functions, e.Functions...)
	out.Operators = append(out.Operators, e.Operators...)
	for _, o := range others {
		if o == nil {
			continue
		}
		out.Keywords = append(out.Keywords, o.Keywords...)
		out.Functions = append(out.Functions, o.Functions...)
		out.Operators = append(out.Operators, o.Operators...)
	}
	out.index()
	return out
}

func (e *Extension) index() {
	e.keywordSet = make(map[string]struct{}, len(e.Keywords))
	for _, k := range e.Keywords {
		e.keywordSet[normalize(k)] = struct{}{}
	}
	e.functionSet = make(map[string]struct{}, len(e.Functions))
	for _, f := range e.Functions {
		e.functionSet[normalize(f)] = struct{}{}
	}
}

// IsKeyword reports whether name was registered as an extension keyword.
func (e *Extension) IsKeyword(name string) bool {
	if e == nil {
		return false
	}
	_, ok := e.keywordSet[normalize(name)]
	return ok
}

// IsFunction reports whether name was registered as an extension function.
func (e *Extension) IsFunction(name string) bool {
	if e == nil {
		return false
	}
	_, ok := e.functionSet[normalize(name)]
	return ok
}

func normalize(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// log is the package-level logger, replaceable via SetLogger. Load does
// not write to it.
var log = logrus.New()

// SetLogger replaces the package logger; a nil l is ignored.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		log = l
	}
}
