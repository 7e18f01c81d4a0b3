package github

// Default rule template names. They are project-wide constants: the
// same name lands in every seeded repository, which is what lets the
// reconciler match them on later runs.
const (
	DefaultBranchRuleName = "default-branch-protection"
	DefaultTagRuleName    = "default-tag-protection"
)

// DefaultRules builds the fixed rule templates seeded by the
// default-rules command. Bypass actors are named teams; the sanitizer
// resolves them to ids before anything is written.
func DefaultRules(enforcement string, bypassTeams []string) []Record {
	if enforcement == "" {
		enforcement = "active"
	}

	actors := make([]Record, 0, len(bypassTeams))
	for _, team := range bypassTeams {
		actors = append(actors, Record{
			actorTypeKey:  ActorTypeTeam,
			actorNameKey:  team,
			"bypass_mode": "always",
		})
	}

	return []Record{
		{
			"name":          DefaultBranchRuleName,
			"enforcement":   enforcement,
			"target":        "branch",
			"source_type":   SourceTypeRepository,
			"bypass_actors": actors,
			"conditions": Record{
				"ref_name": Record{
					"include": []any{"~DEFAULT_BRANCH"},
					"exclude": []any{},
				},
			},
			"rules": []any{
				Record{"type": "deletion"},
				Record{"type": "non_fast_forward"},
				Record{
					"type": "pull_request",
					"parameters": Record{
						"required_approving_review_count": 1,
						"dismiss_stale_reviews_on_push":   true,
						"require_code_owner_review":       false,
						"require_last_push_approval":      false,
						"required_review_thread_resolution": false,
					},
				},
			},
		},
		{
			"name":          DefaultTagRuleName,
			"enforcement":   enforcement,
			"target":        "tag",
			"source_type":   SourceTypeRepository,
			"bypass_actors": actors,
			"conditions": Record{
				"ref_name": Record{
					"include": []any{"~ALL"},
					"exclude": []any{},
				},
			},
			"rules": []any{
				Record{"type": "deletion"},
				Record{"type": "update"},
			},
		},
	}
}
