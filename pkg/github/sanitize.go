package github

import (
	"fmt"
	"strconv"
)

// ruleKeys is the full key set a rule may carry into a write, in
// reporting order. Everything else a read attaches (timestamps, link
// metadata, injected actor names) is stripped before resubmission.
var ruleKeys = []string{
	"id", "source", "source_type", "name", "enforcement",
	"target", "bypass_actors", "conditions", "rules",
}

// requiredRuleKeys must be present after projection; id and source
// fields are server-assigned and legitimately absent on new rules.
var requiredRuleKeys = []string{
	"name", "enforcement", "target", "bypass_actors", "conditions", "rules",
}

// Sanitizer turns an externally supplied rule record into one that is
// legal to submit: server-only fields stripped, required fields
// verified, actor-name references resolved back to actor ids.
type Sanitizer struct {
	resolver *Resolver
}

// NewSanitizer creates a sanitizer backed by the given resolver.
func NewSanitizer(resolver *Resolver) *Sanitizer {
	return &Sanitizer{resolver: resolver}
}

// Sanitize projects raw down to the rule key set, validates that every
// required key is present, and normalizes bypass_actors: a Team actor
// carrying an actor_name and no actor_id gets the name resolved to an
// id; the injected actor_name key is always removed. Actor order is
// preserved. Any actor left without an actor_id is a data error.
func (s *Sanitizer) Sanitize(raw Record) (Record, error) {
	clean := make(Record, len(ruleKeys))
	for _, key := range ruleKeys {
		if v, ok := raw[key]; ok {
			clean[key] = v
		}
	}

	var errs ValidationErrors
	for _, key := range requiredRuleKeys {
		if _, ok := clean[key]; !ok {
			errs.Add(key, "", "required rule field is missing")
		}
	}
	if errs.HasErrors() {
		return nil, errs
	}

	actors, err := s.sanitizeActors(clean["bypass_actors"])
	if err != nil {
		return nil, err
	}
	clean["bypass_actors"] = actors

	return clean, nil
}

func (s *Sanitizer) sanitizeActors(v any) ([]Record, error) {
	raw, err := recordList("bypass_actors", v)
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(raw))
	for i, entry := range raw {
		actor := entry.Clone()
		actorType, _ := actor[actorTypeKey].(string)
		name, hasName := actor[actorNameKey].(string)
		_, hasID := toInt64(actor[actorIDKey])

		if !hasID {
			if actorType != ActorTypeTeam || !hasName {
				return nil, &ValidationError{
					Field:   fmt.Sprintf("bypass_actors[%d]", i),
					Value:   actorType,
					Message: "actor has no actor_id and no resolvable actor_name",
				}
			}
			id, err := s.resolver.TeamID(name)
			if err != nil {
				return nil, err
			}
			actor[actorIDKey] = id
		}

		// Report-only key, never sent back to the server.
		delete(actor, actorNameKey)
		out = append(out, actor)
	}
	return out, nil
}

// recordList tolerates the two shapes a record sequence arrives in:
// []any from a JSON/YAML decode, or []Record from in-process
// construction.
func recordList(field string, v any) ([]Record, error) {
	switch entries := v.(type) {
	case nil:
		return nil, nil
	case []Record:
		return entries, nil
	case []any:
		out := make([]Record, 0, len(entries))
		for i, entry := range entries {
			switch rec := entry.(type) {
			case Record:
				out = append(out, rec)
			case map[string]any:
				out = append(out, Record(rec))
			default:
				return nil, &ValidationError{
					Field:   field + "[" + strconv.Itoa(i) + "]",
					Message: "entry is not a mapping",
				}
			}
		}
		return out, nil
	default:
		return nil, &ValidationError{
			Field:   field,
			Message: "expected a sequence of mappings",
		}
	}
}
