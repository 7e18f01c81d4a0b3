package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Indent width bounds for emitted reports.
const (
	MinIndent = 1
	MaxIndent = 8
)

// verboseKeys are the provenance fields appended to the reporting key
// set in verbose mode.
var verboseKeys = []string{"created_at", "updated_at", "link"}

// Emitter serializes rule records as an indented report: a JSON array
// of nested objects with a fixed key order. With MapActors set, Team
// bypass actors additionally carry their resolved actor_name; with
// Verbose set, server provenance fields are appended. Output with
// either flag active is a reporting format only; the write path
// strips the extra fields during sanitization.
type Emitter struct {
	Indent    int
	MapActors bool
	Verbose   bool
	Resolver  *Resolver
}

// Emit writes the rules to w.
func (e *Emitter) Emit(w io.Writer, rules []Record) error {
	if e.Indent < MinIndent || e.Indent > MaxIndent {
		return fmt.Errorf("indent width %d out of range [%d..%d]", e.Indent, MinIndent, MaxIndent)
	}

	p := &printer{w: w, width: e.Indent}
	if len(rules) == 0 {
		p.raw("[]\n")
		return p.err
	}

	p.raw("[\n")
	for i, rule := range rules {
		if err := e.emitRule(p, rule, 1); err != nil {
			return err
		}
		p.sep(i == len(rules)-1)
	}
	p.raw("]\n")
	return p.err
}

func (e *Emitter) emitRule(p *printer, rule Record, depth int) error {
	rec := rule.Clone()
	if e.Verbose {
		if link := selfLink(rule); link != "" {
			rec["link"] = link
		}
	}

	keys := ruleKeys
	if e.Verbose {
		keys = append(append([]string{}, ruleKeys...), verboseKeys...)
	}
	present := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, ok := rec[key]; ok {
			present = append(present, key)
		}
	}

	p.indent(depth)
	p.raw("{\n")
	for i, key := range present {
		last := i == len(present)-1
		switch key {
		case "bypass_actors":
			actors, err := e.actorsForEmit(rec[key])
			if err != nil {
				return err
			}
			if err := emitFlatList(p, key, actors, depth+1, last); err != nil {
				return err
			}
		case "rules":
			entries, err := recordList(key, rec[key])
			if err != nil {
				return err
			}
			if err := emitFlatList(p, key, entries, depth+1, last); err != nil {
				return err
			}
		case "conditions":
			p.indent(depth + 1)
			p.raw(quoteKey(key))
			if err := emitNested(p, rec[key], depth+1); err != nil {
				return err
			}
			p.sep(last)
		default:
			data, err := json.Marshal(rec[key])
			if err != nil {
				return fmt.Errorf("encoding %s: %w", key, err)
			}
			p.indent(depth + 1)
			p.raw(quoteKey(key))
			p.raw(string(data))
			p.sep(last)
		}
	}
	p.indent(depth)
	p.raw("}")
	return p.err
}

// actorsForEmit injects the resolved actor_name into Team actors when
// mapping is requested. An id the resolver no longer knows is left
// unmapped rather than failing the report.
func (e *Emitter) actorsForEmit(v any) ([]Record, error) {
	actors, err := recordList("bypass_actors", v)
	if err != nil {
		return nil, err
	}
	if !e.MapActors {
		return actors, nil
	}

	out := make([]Record, 0, len(actors))
	for _, actor := range actors {
		mapped := actor.Clone()
		actorType, _ := mapped[actorTypeKey].(string)
		if id, ok := toInt64(mapped[actorIDKey]); ok && actorType == ActorTypeTeam {
			name, err := e.Resolver.TeamName(id)
			var unresolved *UnresolvedError
			switch {
			case err == nil:
				mapped[actorNameKey] = name
			case !errors.As(err, &unresolved):
				return nil, err
			}
		}
		out = append(out, mapped)
	}
	return out, nil
}

// emitFlatList writes a sequence as one flat single-line object per
// entry. Keys within each entry come out sorted (encoding/json orders
// map keys), which also covers the re-sort after actor-name injection.
func emitFlatList(p *printer, key string, entries []Record, depth int, last bool) error {
	p.indent(depth)
	p.raw(quoteKey(key))
	if len(entries) == 0 {
		p.raw("[]")
		p.sep(last)
		return p.err
	}
	p.raw("[\n")
	for i, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("encoding %s entry: %w", key, err)
		}
		p.line(depth+1, string(data))
		p.sep(i == len(entries)-1)
	}
	p.indent(depth)
	p.raw("]")
	p.sep(last)
	return p.err
}

// emitNested renders an arbitrarily deep mapping-of-sequences value,
// one indent level per nesting level. Empty containers and scalars are
// emitted inline.
func emitNested(p *printer, v any, depth int) error {
	switch val := normalize(v).(type) {
	case map[string]any:
		if len(val) == 0 {
			p.raw("{}")
			return p.err
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		p.raw("{\n")
		for i, k := range keys {
			p.indent(depth + 1)
			p.raw(quoteKey(k))
			if err := emitNested(p, val[k], depth+1); err != nil {
				return err
			}
			p.sep(i == len(keys)-1)
		}
		p.indent(depth)
		p.raw("}")
	case []any:
		if len(val) == 0 {
			p.raw("[]")
			return p.err
		}
		p.raw("[\n")
		for i, item := range val {
			data, err := json.Marshal(item)
			if err != nil {
				return err
			}
			p.line(depth+1, string(data))
			p.sep(i == len(val)-1)
		}
		p.indent(depth)
		p.raw("]")
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		p.raw(string(data))
	}
	return p.err
}

// normalize widens the concrete container types a decoded or
// hand-built value may carry to the two shapes emitNested handles.
func normalize(v any) any {
	switch val := v.(type) {
	case Record:
		return map[string]any(val)
	case map[string]any:
		return val
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	case []any:
		return val
	default:
		return v
	}
}

// selfLink digs the self URL out of a read record's link metadata.
func selfLink(rec Record) string {
	links, ok := rec["_links"].(map[string]any)
	if !ok {
		return ""
	}
	self, ok := links["self"].(map[string]any)
	if !ok {
		return ""
	}
	href, _ := self["href"].(string)
	return href
}

func quoteKey(key string) string {
	return fmt.Sprintf("%q: ", key)
}

// printer tracks indentation as an integer depth; the separator string
// is repeated per write rather than kept as growing state. Errors are
// sticky: after the first write failure every call is a no-op.
type printer struct {
	w     io.Writer
	width int
	err   error
}

func (p *printer) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *printer) indent(depth int) {
	p.raw(strings.Repeat(" ", depth*p.width))
}

func (p *printer) line(depth int, s string) {
	p.indent(depth)
	p.raw(s)
}

// sep terminates a member: comma-newline between members, bare newline
// after the last so the output stays valid JSON.
func (p *printer) sep(last bool) {
	if last {
		p.raw("\n")
	} else {
		p.raw(",\n")
	}
}
