package github

// Record is a generic API object: string keys mapped to whatever the
// server returned. Within one collection a record is identified by its
// "name" (caller-meaningful, stable) and, once created, its "id"
// (server-assigned, opaque).
type Record map[string]any

// Name returns the record's "name" field, or "" if absent.
func (r Record) Name() string {
	name, _ := r["name"].(string)
	return name
}

// ID returns the record's "id" field. The second return is false when
// the record has no numeric id, which is the case for records that
// have not been created on the server yet.
func (r Record) ID() (int64, bool) {
	return toInt64(r["id"])
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// toInt64 normalizes the numeric types a decoded JSON value may carry.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

// Actor field names and the one actor type the resolver can map.
const (
	actorTypeKey = "actor_type"
	actorIDKey   = "actor_id"
	actorNameKey = "actor_name"

	ActorTypeTeam = "Team"
)

// SourceTypeRepository is the only rule scope this tool manages.
// Organization-scoped rules are deliberately left alone.
const SourceTypeRepository = "Repository"
